package parser

import (
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/lea-labs/ustree/internal/ust"
)

// attrExtractor copies the semantically relevant fields of one native node
// kind into the attribute bag of the converted node. Kinds without an
// extractor get no attributes beyond their type tag.
type attrExtractor func(node *tree_sitter.Node, source []byte, out *ust.ASTNode)

// treeSitterParser adapts a native tree-sitter grammar to the universal
// model. It never re-implements lexing: the grammar parses the source and
// the adapter walks the resulting native tree, mapping each node kind onto a
// NodeType via a static table. Unmapped kinds fall back to
// expression_statement so every native node has a target.
type treeSitterParser struct {
	info       LanguageInfo
	language   *tree_sitter.Language
	kinds      map[string]ust.NodeType
	extractors map[string]attrExtractor
}

// Parse runs the native grammar and converts its tree. If the grammar
// rejects the source, a *ust.ParseError carrying the first error position is
// returned and no partial tree is produced.
func (p *treeSitterParser) Parse(source []byte, filePath string) (*ust.UniversalSyntaxTree, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(p.language); err != nil {
		return nil, fmt.Errorf("%s: set language: %w", p.info.Name, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, &ust.ParseError{Language: p.info.Name, Message: "grammar returned no tree"}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		bad := firstErrorNode(root)
		pos := bad.StartPosition()
		return nil, &ust.ParseError{
			Language: p.info.Name,
			Message:  "syntax error near " + snippet(bad, source),
			Line:     int(pos.Row) + 1,
			Column:   int(pos.Column),
		}
	}

	converted := p.convert(root, source, filePath)

	return ust.NewTree(converted, map[string]any{
		"language":   p.info.Name,
		"file_path":  filePath,
		"parser":     "tree-sitter-" + p.info.Name,
		"node_count": countNamed(root),
	}), nil
}

// convert maps one native node and its named children, in native order.
func (p *treeSitterParser) convert(node *tree_sitter.Node, source []byte, filePath string) *ust.ASTNode {
	kind := node.Kind()

	t, ok := p.kinds[kind]
	if !ok {
		t = ust.NodeExpressionStatement
	}

	out := ust.NewNode(t)
	out.OriginalLanguage = p.info.Name

	start := node.StartPosition()
	end := node.EndPosition()
	out.SourceRange = &ust.SourceRange{
		Start: ust.SourceLocation{Line: int(start.Row) + 1, Column: int(start.Column), FilePath: filePath},
		End:   ust.SourceLocation{Line: int(end.Row) + 1, Column: int(end.Column), FilePath: filePath},
	}

	if extract, ok := p.extractors[kind]; ok {
		extract(node, source, out)
	}

	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		out.AddChild(p.convert(child, source, filePath))
	}

	return out
}

// CanParse reports whether this adapter claims the extension.
func (p *treeSitterParser) CanParse(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range p.info.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Info returns the adapter's language info.
func (p *treeSitterParser) Info() LanguageInfo {
	return p.info
}

// firstErrorNode returns the shallowest ERROR or missing node under n, or n
// itself when the error position cannot be narrowed further.
func firstErrorNode(n *tree_sitter.Node) *tree_sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil || !child.HasError() {
			continue
		}
		return firstErrorNode(child)
	}
	return n
}

// snippet returns a short excerpt of the node's source text for error
// messages.
func snippet(n *tree_sitter.Node, source []byte) string {
	text := n.Utf8Text(source)
	text = strings.ReplaceAll(text, "\n", " ")
	if len(text) > 40 {
		text = text[:40] + "..."
	}
	if text == "" {
		return "end of input"
	}
	return fmt.Sprintf("%q", text)
}

// countNamed counts named nodes in the native tree, reported as a
// parser-specific metadata counter.
func countNamed(n *tree_sitter.Node) int {
	total := 1
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if child := n.NamedChild(i); child != nil {
			total += countNamed(child)
		}
	}
	return total
}

// --- Shared extractor helpers ---

// fieldText returns the source text of a field child, or "".
func fieldText(n *tree_sitter.Node, field string, source []byte) string {
	child := n.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return child.Utf8Text(source)
}

// collectIdentifiers gathers the text of every named descendant of n whose
// kind is in kinds, in traversal order. Used for parameter lists and base
// classes.
func collectIdentifiers(n *tree_sitter.Node, source []byte, kinds ...string) []string {
	want := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	var out []string
	var walk func(node *tree_sitter.Node)
	walk = func(node *tree_sitter.Node) {
		if want[node.Kind()] {
			out = append(out, node.Utf8Text(source))
			return
		}
		for i := uint(0); i < node.NamedChildCount(); i++ {
			if child := node.NamedChild(i); child != nil {
				walk(child)
			}
		}
	}
	if n != nil {
		walk(n)
	}
	return out
}
