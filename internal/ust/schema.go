// Package ust defines the Universal Syntax Tree: a language-agnostic
// representation of parsed source code. Every language parser in this
// repository produces trees of this shape, so downstream consumers
// (analysis, storage, external tooling) only ever deal with one model.
package ust

import "github.com/google/uuid"

// --- Enums ---

// NodeType classifies nodes in the universal syntax tree. The set is closed:
// parsers map every native construct onto one of these categories, falling
// back to NodeExpressionStatement for anything without a better fit.
type NodeType string

const (
	NodeProgram NodeType = "program"
	NodeModule  NodeType = "module"

	// Declarations.
	NodeVariableDeclaration  NodeType = "variable_declaration"
	NodeFunctionDeclaration  NodeType = "function_declaration"
	NodeClassDeclaration     NodeType = "class_declaration"
	NodeInterfaceDeclaration NodeType = "interface_declaration"
	NodeImportDeclaration    NodeType = "import_declaration"

	// Expressions.
	NodeLiteral              NodeType = "literal"
	NodeIdentifier           NodeType = "identifier"
	NodeBinaryExpression     NodeType = "binary_expression"
	NodeUnaryExpression      NodeType = "unary_expression"
	NodeCallExpression       NodeType = "call_expression"
	NodeMemberExpression     NodeType = "member_expression"
	NodeAssignmentExpression NodeType = "assignment_expression"

	// Statements.
	NodeExpressionStatement NodeType = "expression_statement"
	NodeBlockStatement      NodeType = "block_statement"
	NodeIfStatement         NodeType = "if_statement"
	NodeWhileStatement      NodeType = "while_statement"
	NodeForStatement        NodeType = "for_statement"
	NodeReturnStatement     NodeType = "return_statement"
	NodeBreakStatement      NodeType = "break_statement"
	NodeContinueStatement   NodeType = "continue_statement"

	// Type annotations.
	NodePrimitiveType NodeType = "primitive_type"
	NodeArrayType     NodeType = "array_type"
	NodeObjectType    NodeType = "object_type"
	NodeFunctionType  NodeType = "function_type"

	// Comments and metadata.
	NodeComment    NodeType = "comment"
	NodeAnnotation NodeType = "annotation"
)

// DataType classifies the primitive kind of a literal value.
type DataType string

const (
	DataString    DataType = "string"
	DataNumber    DataType = "number"
	DataInteger   DataType = "integer"
	DataFloat     DataType = "float"
	DataBoolean   DataType = "boolean"
	DataNull      DataType = "null"
	DataUndefined DataType = "undefined"
	DataVoid      DataType = "void"
	DataAny       DataType = "any"
)

// --- Models ---

// SourceLocation is a position in the original source text. Lines are
// 1-based, columns 0-based, matching what the parsers emit.
type SourceLocation struct {
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	FilePath string `json:"file_path,omitempty"`
}

// SourceRange is the span a node covers in the original source. It is only
// attached when the originating representation exposes positions.
type SourceRange struct {
	Start SourceLocation `json:"start"`
	End   SourceLocation `json:"end"`
}

// ASTNode is one node of the universal syntax tree. A tree exclusively owns
// its nodes: children are containment edges only, there are no parent
// back-references, and no node is shared between trees. Consumers that need
// a parent pointer must track it themselves during traversal.
//
// Attributes is an intentionally schema-less bag: each parser stores whatever
// is semantically relevant for the node kind (names, parameter lists,
// operators, literal values, import specifiers) under string keys, with no
// validation of keys against the node type.
type ASTNode struct {
	ID               string         `json:"id"`
	Type             NodeType       `json:"type"`
	Children         []*ASTNode     `json:"children"`
	Attributes       map[string]any `json:"attributes"`
	SourceRange      *SourceRange   `json:"source_range,omitempty"`
	OriginalLanguage string         `json:"original_language,omitempty"`
}

// NewNode creates a node of the given type with a fresh unique id.
func NewNode(t NodeType) *ASTNode {
	return &ASTNode{
		ID:         uuid.NewString(),
		Type:       t,
		Attributes: make(map[string]any),
	}
}

// AddChild appends child to the node's child sequence. Children are never
// reordered; sequence order is lexical order in the source.
func (n *ASTNode) AddChild(child *ASTNode) {
	n.Children = append(n.Children, child)
}

// Attribute returns the attribute stored under key, or def if absent.
func (n *ASTNode) Attribute(key string, def any) any {
	if v, ok := n.Attributes[key]; ok {
		return v
	}
	return def
}

// SetAttribute stores value under key, overwriting any previous value.
func (n *ASTNode) SetAttribute(key string, value any) {
	if n.Attributes == nil {
		n.Attributes = make(map[string]any)
	}
	n.Attributes[key] = value
}

// UniversalSyntaxTree is a complete parse result: a single root node plus
// parser metadata. Trees are built fresh per parse call and must not be
// mutated once handed to a consumer.
type UniversalSyntaxTree struct {
	Root     *ASTNode       `json:"root"`
	Metadata map[string]any `json:"metadata"`
	Version  string         `json:"version"`
}

// FormatVersion tags the canonical serialized form produced by ToCanonical.
const FormatVersion = "1.0"

// NewTree wraps root in a tree with the current format version.
func NewTree(root *ASTNode, metadata map[string]any) *UniversalSyntaxTree {
	if metadata == nil {
		metadata = make(map[string]any)
	}
	return &UniversalSyntaxTree{Root: root, Metadata: metadata, Version: FormatVersion}
}

// GetNodesByType collects every node whose type equals t, in pre-order
// (first-encountered) order.
func (u *UniversalSyntaxTree) GetNodesByType(t NodeType) []*ASTNode {
	var out []*ASTNode
	var walk func(n *ASTNode)
	walk = func(n *ASTNode) {
		if n.Type == t {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	if u.Root != nil {
		walk(u.Root)
	}
	return out
}

// FindNodeByID returns the first node with the given id in pre-order, or nil.
// Ids are unique within a tree, so the first match is the only match.
func (u *UniversalSyntaxTree) FindNodeByID(id string) *ASTNode {
	var find func(n *ASTNode) *ASTNode
	find = func(n *ASTNode) *ASTNode {
		if n.ID == id {
			return n
		}
		for _, c := range n.Children {
			if hit := find(c); hit != nil {
				return hit
			}
		}
		return nil
	}
	if u.Root == nil {
		return nil
	}
	return find(u.Root)
}

// NodeCount returns the total number of nodes in the tree.
func (u *UniversalSyntaxTree) NodeCount() int {
	var count func(n *ASTNode) int
	count = func(n *ASTNode) int {
		total := 1
		for _, c := range n.Children {
			total += count(c)
		}
		return total
	}
	if u.Root == nil {
		return 0
	}
	return count(u.Root)
}
