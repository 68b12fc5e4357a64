package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lea-labs/ustree/internal/ust"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// chain builds a linear tree of the given node types, root first.
func chain(types ...ust.NodeType) *ust.UniversalSyntaxTree {
	root := ust.NewNode(types[0])
	cur := root
	for _, t := range types[1:] {
		next := ust.NewNode(t)
		cur.AddChild(next)
		cur = next
	}
	return ust.NewTree(root, nil)
}

// ---------------------------------------------------------------------------
// Depth
// ---------------------------------------------------------------------------

func TestDepth_SingleNode(t *testing.T) {
	tree := ust.NewTree(ust.NewNode(ust.NodeProgram), nil)
	assert.Equal(t, 0, Depth(tree))
}

func TestDepth_Chain(t *testing.T) {
	tree := chain(ust.NodeProgram, ust.NodeBlockStatement, ust.NodeReturnStatement, ust.NodeLiteral)
	assert.Equal(t, 3, Depth(tree))
}

func TestDepth_TakesLongestBranch(t *testing.T) {
	root := ust.NewNode(ust.NodeProgram)
	root.AddChild(ust.NewNode(ust.NodeIdentifier)) // depth-1 branch

	deep := ust.NewNode(ust.NodeBlockStatement)
	inner := ust.NewNode(ust.NodeReturnStatement)
	deep.AddChild(inner)
	root.AddChild(deep) // depth-2 branch

	assert.Equal(t, 2, Depth(ust.NewTree(root, nil)))
}

// ---------------------------------------------------------------------------
// Histogram
// ---------------------------------------------------------------------------

func TestNodeTypeHistogram(t *testing.T) {
	root := ust.NewNode(ust.NodeProgram)
	root.AddChild(ust.NewNode(ust.NodeIdentifier))
	root.AddChild(ust.NewNode(ust.NodeIdentifier))
	root.AddChild(ust.NewNode(ust.NodeLiteral))
	tree := ust.NewTree(root, nil)

	hist := NodeTypeHistogram(tree)
	assert.Equal(t, 1, hist[ust.NodeProgram])
	assert.Equal(t, 2, hist[ust.NodeIdentifier])
	assert.Equal(t, 1, hist[ust.NodeLiteral])

	// Counts sum to the unconditional node count.
	total := 0
	for _, n := range hist {
		total += n
	}
	assert.Equal(t, tree.NodeCount(), total)
}

// ---------------------------------------------------------------------------
// Cyclomatic estimate
// ---------------------------------------------------------------------------

func TestCyclomaticEstimate_Base(t *testing.T) {
	tree := ust.NewTree(ust.NewNode(ust.NodeProgram), nil)
	assert.Equal(t, 1, CyclomaticEstimate(tree))
}

func TestCyclomaticEstimate_CountsControlFlow(t *testing.T) {
	root := ust.NewNode(ust.NodeProgram)
	root.AddChild(ust.NewNode(ust.NodeIfStatement))
	root.AddChild(ust.NewNode(ust.NodeWhileStatement))
	root.AddChild(ust.NewNode(ust.NodeForStatement))
	root.AddChild(ust.NewNode(ust.NodeBinaryExpression))
	root.AddChild(ust.NewNode(ust.NodeReturnStatement)) // not counted
	tree := ust.NewTree(root, nil)

	assert.Equal(t, 5, CyclomaticEstimate(tree))
}

// ---------------------------------------------------------------------------
// Summary
// ---------------------------------------------------------------------------

func TestSummarize(t *testing.T) {
	root := ust.NewProgramNode("python")
	root.AddChild(ust.NewFunctionNode("fib", []string{"n"}, ""))

	cls := ust.NewNode(ust.NodeClassDeclaration)
	cls.SetAttribute("name", "Calculator")
	root.AddChild(cls)

	root.AddChild(ust.NewVariableNode("result", "", nil))
	root.AddChild(ust.NewNode(ust.NodeImportDeclaration))
	tree := ust.NewTree(root, nil)

	s := Summarize(tree)
	assert.Equal(t, 5, s.NodeCount)
	assert.Equal(t, 1, s.Depth)
	require.Len(t, s.Functions, 1)
	assert.Equal(t, "fib", s.Functions[0].Name)
	assert.Equal(t, []string{"n"}, s.Functions[0].Parameters)
	assert.Equal(t, []string{"Calculator"}, s.Classes)
	assert.Equal(t, []string{"result"}, s.Variables)
	assert.Equal(t, 1, s.Imports)
	assert.Equal(t, 1, s.Histogram["program"])
}

func TestSummarize_AfterRoundTrip(t *testing.T) {
	root := ust.NewProgramNode("javascript")
	root.AddChild(ust.NewFunctionNode("f", []string{"x", "y"}, ""))
	tree := ust.NewTree(root, nil)

	data, err := tree.ToCanonical()
	require.NoError(t, err)
	back, err := ust.FromCanonical(data)
	require.NoError(t, err)

	// Reloaded attribute lists arrive as []any; Summarize tolerates both.
	s := Summarize(back)
	require.Len(t, s.Functions, 1)
	assert.Equal(t, []string{"x", "y"}, s.Functions[0].Parameters)
}
