package parser

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/lea-labs/ustree/internal/ust"
)

// Registry maps language names and file extensions to parsers. The expected
// lifecycle is populate-once-then-read-many: call Register for every parser
// at startup, then treat the registry as read-only. Concurrent reads after
// population are safe without locking; concurrent Register calls during
// active lookups are not and must be externally serialized.
type Registry struct {
	parsers    map[string]Parser // language name -> parser
	extensions map[string]string // ".py" -> language name
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers:    make(map[string]Parser),
		extensions: make(map[string]string),
	}
}

// NewDefaultRegistry returns a registry with every built-in parser
// registered: tree-sitter adapters for Python, TypeScript, Go and Rust, and
// the hand-written JavaScript parser.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewPythonParser())
	r.Register(NewTypeScriptParser())
	r.Register(NewGoParser())
	r.Register(NewRustParser())
	r.Register(NewJavaScriptParser())
	return r
}

// Register adds a parser under its language name and claims its extensions.
// A later registration for the same language or extension wins.
func (r *Registry) Register(p Parser) {
	info := p.Info()
	r.parsers[info.Name] = p
	for _, ext := range info.Extensions {
		r.extensions[strings.ToLower(ext)] = info.Name
	}
}

// Get returns the parser for a language name, or nil if none is registered.
func (r *Registry) Get(language string) Parser {
	return r.parsers[strings.ToLower(language)]
}

// GetByExtension returns the parser claiming the given file extension
// (leading dot, case-insensitive), or nil.
func (r *Registry) GetByExtension(ext string) Parser {
	lang, ok := r.extensions[strings.ToLower(ext)]
	if !ok {
		return nil
	}
	return r.parsers[lang]
}

// LanguageForExtension returns the language name claiming ext, if any.
func (r *Registry) LanguageForExtension(ext string) (string, bool) {
	lang, ok := r.extensions[strings.ToLower(ext)]
	return lang, ok
}

// Languages returns all registered language names, sorted.
func (r *Registry) Languages() []string {
	out := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Extensions returns all claimed file extensions, sorted.
func (r *Registry) Extensions() []string {
	out := make([]string, 0, len(r.extensions))
	for ext := range r.extensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// ParseCode resolves a parser and delegates to it. Resolution order: the
// explicit language argument first, then the file-path extension. When
// neither resolves to a registered parser it fails with
// *ust.UnsupportedLanguageError.
func ParseCode(reg *Registry, source []byte, language, filePath string) (*ust.UniversalSyntaxTree, error) {
	var p Parser
	if language != "" {
		p = reg.Get(language)
	} else if filePath != "" {
		p = reg.GetByExtension(filepath.Ext(filePath))
	}
	if p == nil {
		return nil, &ust.UnsupportedLanguageError{Language: language, FilePath: filePath}
	}
	return p.Parse(source, filePath)
}
