package ust

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// buildSampleTree returns a small tree:
//
//	program
//	├── function_declaration "add"
//	│   └── return_statement
//	│       └── binary_expression
//	└── variable_declaration "x"
//	    └── literal 5
func buildSampleTree() *UniversalSyntaxTree {
	root := NewProgramNode("javascript")

	fn := NewFunctionNode("add", []string{"a", "b"}, "")
	ret := NewNode(NodeReturnStatement)
	ret.AddChild(NewNode(NodeBinaryExpression))
	fn.AddChild(ret)
	root.AddChild(fn)

	v := NewVariableNode("x", "", nil)
	v.AddChild(NewLiteralNode(5, DataInteger))
	root.AddChild(v)

	return NewTree(root, map[string]any{"language": "javascript"})
}

// ---------------------------------------------------------------------------
// Node basics
// ---------------------------------------------------------------------------

func TestNewNode_UniqueIDs(t *testing.T) {
	a := NewNode(NodeIdentifier)
	b := NewNode(NodeIdentifier)
	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID, "node ids must be unique")
}

func TestAddChild_PreservesOrder(t *testing.T) {
	parent := NewNode(NodeBlockStatement)
	first := NewIdentifierNode("first")
	second := NewIdentifierNode("second")
	third := NewIdentifierNode("third")

	parent.AddChild(first)
	parent.AddChild(second)
	parent.AddChild(third)

	require.Len(t, parent.Children, 3)
	assert.Equal(t, "first", parent.Children[0].Attribute("name", ""))
	assert.Equal(t, "second", parent.Children[1].Attribute("name", ""))
	assert.Equal(t, "third", parent.Children[2].Attribute("name", ""))
}

func TestAttributes_SchemaLess(t *testing.T) {
	n := NewNode(NodeLiteral)

	// Any key may be set; there is no per-type validation.
	n.SetAttribute("value", 42)
	n.SetAttribute("decorators", []string{"cached"})
	n.SetAttribute("whatever", map[string]any{"nested": true})

	assert.Equal(t, 42, n.Attribute("value", nil))
	assert.Equal(t, []string{"cached"}, n.Attribute("decorators", nil))
	assert.Equal(t, "fallback", n.Attribute("missing", "fallback"))
}

// ---------------------------------------------------------------------------
// Tree traversal
// ---------------------------------------------------------------------------

func TestGetNodesByType(t *testing.T) {
	tree := buildSampleTree()

	fns := tree.GetNodesByType(NodeFunctionDeclaration)
	require.Len(t, fns, 1)
	assert.Equal(t, "add", fns[0].Attribute("name", ""))

	lits := tree.GetNodesByType(NodeLiteral)
	require.Len(t, lits, 1)
	assert.Equal(t, 5, lits[0].Attribute("value", nil))

	assert.Empty(t, tree.GetNodesByType(NodeClassDeclaration))
}

func TestGetNodesByType_PreOrder(t *testing.T) {
	root := NewNode(NodeProgram)
	outer := NewIdentifierNode("outer")
	inner := NewIdentifierNode("inner")
	outer.AddChild(inner)
	root.AddChild(outer)
	root.AddChild(NewIdentifierNode("sibling"))
	tree := NewTree(root, nil)

	ids := tree.GetNodesByType(NodeIdentifier)
	require.Len(t, ids, 3)
	assert.Equal(t, "outer", ids[0].Attribute("name", ""))
	assert.Equal(t, "inner", ids[1].Attribute("name", ""))
	assert.Equal(t, "sibling", ids[2].Attribute("name", ""))
}

func TestFindNodeByID(t *testing.T) {
	tree := buildSampleTree()
	want := tree.Root.Children[1].Children[0] // the literal

	got := tree.FindNodeByID(want.ID)
	require.NotNil(t, got)
	assert.Same(t, want, got)

	assert.Nil(t, tree.FindNodeByID("no-such-id"))
}

func TestNodeCount(t *testing.T) {
	tree := buildSampleTree()
	assert.Equal(t, 6, tree.NodeCount())

	single := NewTree(NewNode(NodeProgram), nil)
	assert.Equal(t, 1, single.NodeCount())
}
