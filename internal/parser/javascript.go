package parser

import (
	"strconv"
	"strings"

	"github.com/lea-labs/ustree/internal/ust"
)

// JavaScriptParser builds universal trees directly from raw text with a
// hand-written tokenizer and a one-token-lookahead statement parser; no
// native grammar is involved. The parse is shallow by design: declaration
// headers and top-level statement shapes are decomposed, but block bodies
// are recorded as opaque block nodes whose internal statements are not
// visible to analysis. It never returns an error: unparsable input degrades
// to partial trees rather than failures.
type JavaScriptParser struct {
	info LanguageInfo
}

// NewJavaScriptParser returns the hand-written JavaScript parser.
func NewJavaScriptParser() *JavaScriptParser {
	return &JavaScriptParser{
		info: LanguageInfo{
			Name:       "javascript",
			Extensions: []string{".js", ".jsx", ".mjs"},
			Version:    "1.0",
		},
	}
}

// Parse tokenizes source and dispatches statements into a tree. Empty input
// yields a tree whose root has no children.
func (p *JavaScriptParser) Parse(source []byte, filePath string) (*ust.UniversalSyntaxTree, error) {
	tokens := tokenizeJS(string(source))

	root := ust.NewProgramNode("javascript")

	i := 0
	for i < len(tokens) {
		node, consumed := p.parseStatement(tokens, i, filePath)
		if node != nil {
			root.AddChild(node)
		}
		if consumed < 1 {
			// Every handler must consume at least one token so the parse
			// terminates within the token count.
			consumed = 1
		}
		i += consumed
	}

	return ust.NewTree(root, map[string]any{
		"language":    "javascript",
		"file_path":   filePath,
		"parser":      "javascript-handwritten",
		"token_count": len(tokens),
	}), nil
}

// CanParse reports whether this parser claims the extension.
func (p *JavaScriptParser) CanParse(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range p.info.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Info returns the parser's language info.
func (p *JavaScriptParser) Info() LanguageInfo {
	return p.info
}

// parseStatement dispatches on the token at start and returns the
// constructed node plus the number of tokens consumed.
func (p *JavaScriptParser) parseStatement(tokens []Token, start int, filePath string) (*ust.ASTNode, int) {
	switch tokens[start].Type {
	case TokFunction:
		return p.parseFunction(tokens, start, filePath)
	case TokConst, TokLet, TokVar:
		return p.parseVariable(tokens, start, filePath)
	case TokIf:
		return p.parseHeaderOnly(tokens, start, ust.NodeIfStatement, filePath)
	case TokFor:
		return p.parseHeaderOnly(tokens, start, ust.NodeForStatement, filePath)
	case TokWhile:
		return p.parseHeaderOnly(tokens, start, ust.NodeWhileStatement, filePath)
	case TokReturn:
		return p.parseReturn(tokens, start, filePath)
	case TokBreak:
		return p.parseBare(tokens, start, ust.NodeBreakStatement, filePath)
	case TokContinue:
		return p.parseBare(tokens, start, ust.NodeContinueStatement, filePath)
	case TokClass:
		return p.parseClass(tokens, start, filePath)
	case TokImport, TokExport:
		return p.parseImportExport(tokens, start, filePath)
	default:
		return p.parseExpressionStatement(tokens, start, filePath)
	}
}

// parseFunction decomposes a function declaration header (name, parameter
// list) and attaches a single opaque block node for the body.
func (p *JavaScriptParser) parseFunction(tokens []Token, start int, filePath string) (*ust.ASTNode, int) {
	node := p.newNode(ust.NodeFunctionDeclaration)
	i := start + 1 // skip 'function'

	if i < len(tokens) && tokens[i].Type == TokIdentifier {
		node.SetAttribute("name", tokens[i].Value)
		i++
	}

	if i < len(tokens) && tokens[i].Type == TokLParen {
		i++
		params := []string{}
		for i < len(tokens) && tokens[i].Type != TokRParen {
			if tokens[i].Type == TokIdentifier {
				params = append(params, tokens[i].Value)
			}
			i++
		}
		node.SetAttribute("parameters", params)
		if i < len(tokens) {
			i++ // closing paren
		}
	}

	if i < len(tokens) && tokens[i].Type == TokLBrace {
		bodyEnd := skipBalancedBraces(tokens, i)
		body := p.newNode(ust.NodeBlockStatement)
		p.setRange(body, tokens[i], tokens[min(bodyEnd-1, len(tokens)-1)], filePath)
		node.AddChild(body)
		i = bodyEnd
	}

	p.setRange(node, tokens[start], tokens[min(i-1, len(tokens)-1)], filePath)
	return node, i - start
}

// parseVariable decomposes "kind name = initializer;" where the initializer
// is a primary expression.
func (p *JavaScriptParser) parseVariable(tokens []Token, start int, filePath string) (*ust.ASTNode, int) {
	node := p.newNode(ust.NodeVariableDeclaration)
	node.SetAttribute("kind", tokens[start].Value)
	i := start + 1

	if i < len(tokens) && tokens[i].Type == TokIdentifier {
		node.SetAttribute("name", tokens[i].Value)
		i++
	}

	if i < len(tokens) && tokens[i].Type == TokAssign {
		i++
		if value, consumed := p.parsePrimary(tokens, i, filePath); value != nil {
			node.AddChild(value)
			i += consumed
		}
	}

	if i < len(tokens) && tokens[i].Type == TokSemicolon {
		i++
	}

	p.setRange(node, tokens[start], tokens[min(i-1, len(tokens)-1)], filePath)
	return node, i - start
}

// parseHeaderOnly handles if/for/while: the header and body span is
// consumed, the condition and body are not decomposed.
func (p *JavaScriptParser) parseHeaderOnly(tokens []Token, start int, t ust.NodeType, filePath string) (*ust.ASTNode, int) {
	node := p.newNode(t)
	i := skipToBlockEnd(tokens, start)
	p.setRange(node, tokens[start], tokens[min(i-1, len(tokens)-1)], filePath)
	return node, i - start
}

// parseReturn consumes "return [primary] [;]".
func (p *JavaScriptParser) parseReturn(tokens []Token, start int, filePath string) (*ust.ASTNode, int) {
	node := p.newNode(ust.NodeReturnStatement)
	i := start + 1

	if i < len(tokens) && tokens[i].Type != TokSemicolon {
		if value, consumed := p.parsePrimary(tokens, i, filePath); value != nil {
			node.AddChild(value)
			i += consumed
		}
	}
	if i < len(tokens) && tokens[i].Type == TokSemicolon {
		i++
	}

	p.setRange(node, tokens[start], tokens[min(i-1, len(tokens)-1)], filePath)
	return node, i - start
}

// parseBare consumes "break;" or "continue;".
func (p *JavaScriptParser) parseBare(tokens []Token, start int, t ust.NodeType, filePath string) (*ust.ASTNode, int) {
	node := p.newNode(t)
	i := start + 1
	if i < len(tokens) && tokens[i].Type == TokSemicolon {
		i++
	}
	p.setRange(node, tokens[start], tokens[min(i-1, len(tokens)-1)], filePath)
	return node, i - start
}

// parseClass records the class name and skips the body to its matching
// close brace without decomposing members.
func (p *JavaScriptParser) parseClass(tokens []Token, start int, filePath string) (*ust.ASTNode, int) {
	node := p.newNode(ust.NodeClassDeclaration)
	i := start + 1

	if i < len(tokens) && tokens[i].Type == TokIdentifier {
		node.SetAttribute("name", tokens[i].Value)
		i++
	}

	i = skipToBlockEnd(tokens, i)

	p.setRange(node, tokens[start], tokens[min(i-1, len(tokens)-1)], filePath)
	return node, i - start
}

// parseImportExport consumes through the terminating semicolon, recording
// only which keyword introduced the statement.
func (p *JavaScriptParser) parseImportExport(tokens []Token, start int, filePath string) (*ust.ASTNode, int) {
	node := p.newNode(ust.NodeImportDeclaration)
	node.SetAttribute("type", tokens[start].Value)
	i := start + 1

	for i < len(tokens) && tokens[i].Type != TokSemicolon {
		i++
	}
	if i < len(tokens) {
		i++ // semicolon
	}

	p.setRange(node, tokens[start], tokens[min(i-1, len(tokens)-1)], filePath)
	return node, i - start
}

// parseExpressionStatement wraps a primary expression; tokens that do not
// begin a primary are consumed without producing a node.
func (p *JavaScriptParser) parseExpressionStatement(tokens []Token, start int, filePath string) (*ust.ASTNode, int) {
	expr, consumed := p.parsePrimary(tokens, start, filePath)
	if expr == nil {
		return nil, consumed
	}
	stmt := p.newNode(ust.NodeExpressionStatement)
	stmt.AddChild(expr)
	stmt.SourceRange = expr.SourceRange
	return stmt, consumed
}

// parsePrimary parses a single literal or identifier token.
func (p *JavaScriptParser) parsePrimary(tokens []Token, start int, filePath string) (*ust.ASTNode, int) {
	if start >= len(tokens) {
		return nil, 0
	}
	tok := tokens[start]

	switch tok.Type {
	case TokString, TokTemplate:
		node := p.newNode(ust.NodeLiteral)
		node.SetAttribute("value", tok.Value[1:len(tok.Value)-1])
		node.SetAttribute("data_type", string(ust.DataString))
		p.setRange(node, tok, tok, filePath)
		return node, 1

	case TokNumber:
		node := p.newNode(ust.NodeLiteral)
		if strings.Contains(tok.Value, ".") {
			v, _ := strconv.ParseFloat(tok.Value, 64)
			node.SetAttribute("value", v)
			node.SetAttribute("data_type", string(ust.DataFloat))
		} else {
			v, _ := strconv.Atoi(tok.Value)
			node.SetAttribute("value", v)
			node.SetAttribute("data_type", string(ust.DataInteger))
		}
		p.setRange(node, tok, tok, filePath)
		return node, 1

	case TokTrue, TokFalse:
		node := p.newNode(ust.NodeLiteral)
		node.SetAttribute("value", tok.Type == TokTrue)
		node.SetAttribute("data_type", string(ust.DataBoolean))
		p.setRange(node, tok, tok, filePath)
		return node, 1

	case TokNull:
		node := p.newNode(ust.NodeLiteral)
		node.SetAttribute("value", nil)
		node.SetAttribute("data_type", string(ust.DataNull))
		p.setRange(node, tok, tok, filePath)
		return node, 1

	case TokUndefined:
		node := p.newNode(ust.NodeLiteral)
		node.SetAttribute("value", nil)
		node.SetAttribute("data_type", string(ust.DataUndefined))
		p.setRange(node, tok, tok, filePath)
		return node, 1

	case TokIdentifier:
		node := p.newNode(ust.NodeIdentifier)
		node.SetAttribute("name", tok.Value)
		p.setRange(node, tok, tok, filePath)
		return node, 1
	}

	return nil, 1
}

// newNode creates a node tagged with this parser's language.
func (p *JavaScriptParser) newNode(t ust.NodeType) *ust.ASTNode {
	n := ust.NewNode(t)
	n.OriginalLanguage = "javascript"
	return n
}

// setRange records the source span from startTok through the end of endTok.
func (p *JavaScriptParser) setRange(node *ust.ASTNode, startTok, endTok Token, filePath string) {
	node.SourceRange = &ust.SourceRange{
		Start: ust.SourceLocation{Line: startTok.Line, Column: startTok.Column, FilePath: filePath},
		End:   ust.SourceLocation{Line: endTok.Line, Column: endTok.Column + len(endTok.Value), FilePath: filePath},
	}
}

// skipBalancedBraces returns the index just past the brace that matches the
// opening brace at open, tracking nesting depth. When no match exists before
// the end of the stream it returns len(tokens): the caller keeps whatever
// partial node it has built instead of failing.
func skipBalancedBraces(tokens []Token, open int) int {
	depth := 1
	i := open + 1
	for i < len(tokens) && depth > 0 {
		switch tokens[i].Type {
		case TokLBrace:
			depth++
		case TokRBrace:
			depth--
		}
		i++
	}
	return i
}

// skipToBlockEnd consumes from start through the matching close brace of the
// first block encountered, or to the end of the stream if no block opens.
func skipToBlockEnd(tokens []Token, start int) int {
	i := start
	for i < len(tokens) && tokens[i].Type != TokLBrace {
		i++
	}
	if i >= len(tokens) {
		return len(tokens)
	}
	return skipBalancedBraces(tokens, i)
}
