package parser

import "regexp"

// TokenType labels a lexical category produced by the JavaScript tokenizer.
type TokenType string

const (
	TokCommentSingle TokenType = "COMMENT_SINGLE"
	TokCommentMulti  TokenType = "COMMENT_MULTI"
	TokString        TokenType = "STRING"
	TokTemplate      TokenType = "STRING_TEMPLATE"
	TokNumber        TokenType = "NUMBER"

	TokFunction  TokenType = "FUNCTION"
	TokConst     TokenType = "CONST"
	TokLet       TokenType = "LET"
	TokVar       TokenType = "VAR"
	TokIf        TokenType = "IF"
	TokElse      TokenType = "ELSE"
	TokFor       TokenType = "FOR"
	TokWhile     TokenType = "WHILE"
	TokReturn    TokenType = "RETURN"
	TokBreak     TokenType = "BREAK"
	TokContinue  TokenType = "CONTINUE"
	TokClass     TokenType = "CLASS"
	TokImport    TokenType = "IMPORT"
	TokExport    TokenType = "EXPORT"
	TokFrom      TokenType = "FROM"
	TokTrue      TokenType = "TRUE"
	TokFalse     TokenType = "FALSE"
	TokNull      TokenType = "NULL"
	TokUndefined TokenType = "UNDEFINED"

	TokArrow      TokenType = "ARROW"
	TokEquality   TokenType = "EQUALITY"
	TokInequality TokenType = "INEQUALITY"
	TokCompoundOp TokenType = "COMPOUND_OP"
	TokLogicalOp  TokenType = "LOGICAL_OP"
	TokAssign     TokenType = "ASSIGN"
	TokOperator   TokenType = "OPERATOR"

	TokSemicolon  TokenType = "SEMICOLON"
	TokComma      TokenType = "COMMA"
	TokDot        TokenType = "DOT"
	TokLParen     TokenType = "LPAREN"
	TokRParen     TokenType = "RPAREN"
	TokLBrace     TokenType = "LBRACE"
	TokRBrace     TokenType = "RBRACE"
	TokLBracket   TokenType = "LBRACKET"
	TokRBracket   TokenType = "RBRACKET"
	TokIdentifier TokenType = "IDENTIFIER"
	TokWhitespace TokenType = "WHITESPACE"
)

// Token is one lexical unit of JavaScript source. Line is 1-based, Column
// 0-based.
type Token struct {
	Type   TokenType
	Value  string
	Line   int
	Column int
}

// tokenRule is one lexical pattern, tried in list order at each scan
// position. Discardable rules (whitespace, comments) advance the scan
// position without emitting a token.
type tokenRule struct {
	typ     TokenType
	re      *regexp.Regexp
	discard bool
}

// jsTokenRules is ordered deliberately and the order is load-bearing:
// keyword literals come before the generic identifier pattern so keywords
// are never mis-tokenized as identifiers, and multi-character operators come
// before their single-character prefixes.
var jsTokenRules = []tokenRule{
	{TokCommentSingle, regexp.MustCompile(`^//.*`), true},
	{TokCommentMulti, regexp.MustCompile(`^/\*.*?\*/`), true},
	{TokString, regexp.MustCompile(`^"(?:[^"\\]|\\.)*"`), false},
	{TokString, regexp.MustCompile(`^'(?:[^'\\]|\\.)*'`), false},
	{TokTemplate, regexp.MustCompile("^`(?:[^`\\\\]|\\\\.)*`"), false},
	{TokNumber, regexp.MustCompile(`^\d+\.?\d*`), false},

	{TokFunction, regexp.MustCompile(`^function\b`), false},
	{TokConst, regexp.MustCompile(`^const\b`), false},
	{TokLet, regexp.MustCompile(`^let\b`), false},
	{TokVar, regexp.MustCompile(`^var\b`), false},
	{TokIf, regexp.MustCompile(`^if\b`), false},
	{TokElse, regexp.MustCompile(`^else\b`), false},
	{TokFor, regexp.MustCompile(`^for\b`), false},
	{TokWhile, regexp.MustCompile(`^while\b`), false},
	{TokReturn, regexp.MustCompile(`^return\b`), false},
	{TokBreak, regexp.MustCompile(`^break\b`), false},
	{TokContinue, regexp.MustCompile(`^continue\b`), false},
	{TokClass, regexp.MustCompile(`^class\b`), false},
	{TokImport, regexp.MustCompile(`^import\b`), false},
	{TokExport, regexp.MustCompile(`^export\b`), false},
	{TokFrom, regexp.MustCompile(`^from\b`), false},
	{TokTrue, regexp.MustCompile(`^true\b`), false},
	{TokFalse, regexp.MustCompile(`^false\b`), false},
	{TokNull, regexp.MustCompile(`^null\b`), false},
	{TokUndefined, regexp.MustCompile(`^undefined\b`), false},

	{TokArrow, regexp.MustCompile(`^=>`), false},
	{TokEquality, regexp.MustCompile(`^===|^==`), false},
	{TokInequality, regexp.MustCompile(`^!==|^!=`), false},
	{TokCompoundOp, regexp.MustCompile(`^(\+=|-=|\*=|/=|<=|>=)`), false},
	{TokLogicalOp, regexp.MustCompile(`^(&&|\|\|)`), false},
	{TokAssign, regexp.MustCompile(`^=`), false},
	{TokOperator, regexp.MustCompile(`^[+\-*/%<>!]`), false},

	{TokSemicolon, regexp.MustCompile(`^;`), false},
	{TokComma, regexp.MustCompile(`^,`), false},
	{TokDot, regexp.MustCompile(`^\.`), false},
	{TokLParen, regexp.MustCompile(`^\(`), false},
	{TokRParen, regexp.MustCompile(`^\)`), false},
	{TokLBrace, regexp.MustCompile(`^\{`), false},
	{TokRBrace, regexp.MustCompile(`^\}`), false},
	{TokLBracket, regexp.MustCompile(`^\[`), false},
	{TokRBracket, regexp.MustCompile(`^\]`), false},

	{TokIdentifier, regexp.MustCompile(`^[a-zA-Z_$][a-zA-Z0-9_$]*`), false},
	{TokWhitespace, regexp.MustCompile(`^\s+`), true},
}

// tokenizeJS scans the line-split source and emits tokens. At each position
// the first rule (in list order) that matches wins. When no rule matches,
// the scanner skips exactly one character and continues: this guarantees
// forward progress on any finite input at the cost of silently discarding
// unrecognized characters. The tokenizer never fails.
func tokenizeJS(source string) []Token {
	var tokens []Token

	line := 1
	start := 0
	for start <= len(source) {
		end := start
		for end < len(source) && source[end] != '\n' {
			end++
		}
		text := source[start:end]

		col := 0
		for col < len(text) {
			matched := false
			for _, rule := range jsTokenRules {
				m := rule.re.FindString(text[col:])
				if m == "" {
					continue
				}
				if !rule.discard {
					tokens = append(tokens, Token{Type: rule.typ, Value: m, Line: line, Column: col})
				}
				col += len(m)
				matched = true
				break
			}
			if !matched {
				col++ // unrecognized character, skip it
			}
		}

		if end >= len(source) {
			break
		}
		start = end + 1
		line++
	}

	return tokens
}
