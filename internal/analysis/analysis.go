// Package analysis provides read-only metrics over universal syntax trees.
// Every function here is a pure single traversal: no mutation, no I/O.
package analysis

import "github.com/lea-labs/ustree/internal/ust"

// Depth returns the maximum root-to-leaf path length. A root with no
// children has depth 0; a nil root has depth 0 as well.
func Depth(tree *ust.UniversalSyntaxTree) int {
	if tree == nil || tree.Root == nil {
		return 0
	}
	return nodeDepth(tree.Root)
}

func nodeDepth(n *ust.ASTNode) int {
	max := 0
	for _, c := range n.Children {
		if d := nodeDepth(c) + 1; d > max {
			max = d
		}
	}
	return max
}

// NodeTypeHistogram counts nodes per type over the whole tree. The counts
// sum to the total node count.
func NodeTypeHistogram(tree *ust.UniversalSyntaxTree) map[ust.NodeType]int {
	hist := make(map[ust.NodeType]int)
	if tree == nil || tree.Root == nil {
		return hist
	}
	var walk func(n *ust.ASTNode)
	walk = func(n *ust.ASTNode) {
		hist[n.Type]++
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(tree.Root)
	return hist
}

// controlFlowTypes are the node types counted by CyclomaticEstimate.
var controlFlowTypes = map[ust.NodeType]bool{
	ust.NodeIfStatement:      true,
	ust.NodeWhileStatement:   true,
	ust.NodeForStatement:     true,
	ust.NodeBinaryExpression: true,
}

// CyclomaticEstimate returns 1 plus the number of control-flow nodes in the
// tree. This is a coarse proxy, not a sound cyclomatic-complexity
// calculation: it counts every binary expression, not only boolean
// short-circuit operators.
func CyclomaticEstimate(tree *ust.UniversalSyntaxTree) int {
	complexity := 1
	for t := range controlFlowTypes {
		complexity += len(tree.GetNodesByType(t))
	}
	return complexity
}

// FunctionInfo summarizes one function declaration found in a tree.
type FunctionInfo struct {
	Name       string   `json:"name"`
	Parameters []string `json:"parameters,omitempty"`
}

// Summary aggregates the common questions callers ask of a parsed tree.
type Summary struct {
	NodeCount  int            `json:"nodeCount"`
	Depth      int            `json:"depth"`
	Cyclomatic int            `json:"cyclomaticEstimate"`
	Functions  []FunctionInfo `json:"functions,omitempty"`
	Classes    []string       `json:"classes,omitempty"`
	Variables  []string       `json:"variables,omitempty"`
	Imports    int            `json:"imports"`
	Histogram  map[string]int `json:"histogram"`
}

// Summarize runs the full metric set over a tree.
func Summarize(tree *ust.UniversalSyntaxTree) *Summary {
	s := &Summary{
		NodeCount:  tree.NodeCount(),
		Depth:      Depth(tree),
		Cyclomatic: CyclomaticEstimate(tree),
		Histogram:  make(map[string]int),
	}
	for t, n := range NodeTypeHistogram(tree) {
		s.Histogram[string(t)] = n
	}
	for _, fn := range tree.GetNodesByType(ust.NodeFunctionDeclaration) {
		s.Functions = append(s.Functions, FunctionInfo{
			Name:       attrString(fn, "name", "anonymous"),
			Parameters: attrStrings(fn, "parameters"),
		})
	}
	for _, cls := range tree.GetNodesByType(ust.NodeClassDeclaration) {
		s.Classes = append(s.Classes, attrString(cls, "name", "unknown"))
	}
	for _, v := range tree.GetNodesByType(ust.NodeVariableDeclaration) {
		s.Variables = append(s.Variables, attrString(v, "name", "unknown"))
	}
	s.Imports = len(tree.GetNodesByType(ust.NodeImportDeclaration))
	return s
}

// attrString reads a string attribute, tolerating trees reloaded from
// canonical JSON where values arrive as any.
func attrString(n *ust.ASTNode, key, def string) string {
	if s, ok := n.Attribute(key, nil).(string); ok && s != "" {
		return s
	}
	return def
}

// attrStrings reads a string-list attribute from either a native []string or
// a reloaded []any.
func attrStrings(n *ust.ASTNode, key string) []string {
	switch v := n.Attribute(key, nil).(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
