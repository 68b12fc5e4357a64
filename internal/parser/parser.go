// Package parser converts raw source text into universal syntax trees. Each
// supported language implements the Parser interface: tree-sitter adapters
// for languages with a native grammar, and a hand-written tokenizer plus
// statement parser for JavaScript.
package parser

import (
	"github.com/lea-labs/ustree/internal/ust"
)

// LanguageInfo describes a parser's language and the file extensions it
// claims. Extensions include the leading dot and are lower-case.
type LanguageInfo struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
	Version    string   `json:"parser_version"`
}

// Parser converts source text in one language into a universal syntax tree.
// Implementations are stateless: each Parse call allocates and returns an
// independent tree owned by the caller.
type Parser interface {
	// Parse converts source into a tree. filePath is optional and only used
	// for source locations and metadata. Malformed input yields
	// *ust.ParseError; parsers perform no partial-tree recovery when the
	// native grammar rejects the source.
	Parse(source []byte, filePath string) (*ust.UniversalSyntaxTree, error)

	// CanParse reports whether this parser handles files with the given
	// extension (leading dot, case-insensitive).
	CanParse(ext string) bool

	// Info returns the language name and claimed extensions.
	Info() LanguageInfo
}
