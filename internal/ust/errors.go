package ust

import "fmt"

// ParseError reports malformed input rejected by a parser. Line and Column
// are populated when the underlying layer supplies positions; zero means
// unknown. Parse errors are surfaced to the caller unchanged: a syntax error
// in fixed input cannot succeed on retry.
type ParseError struct {
	Language string
	Message  string
	Line     int
	Column   int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: parse error at line %d, column %d: %s", e.Language, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: parse error: %s", e.Language, e.Message)
}

// UnsupportedLanguageError reports that no registered parser resolves for a
// language name or file extension.
type UnsupportedLanguageError struct {
	Language string
	FilePath string
}

func (e *UnsupportedLanguageError) Error() string {
	switch {
	case e.Language != "" && e.FilePath != "":
		return fmt.Sprintf("no parser for language %q or file %q", e.Language, e.FilePath)
	case e.Language != "":
		return fmt.Sprintf("no parser for language %q", e.Language)
	case e.FilePath != "":
		return fmt.Sprintf("no parser for file %q", e.FilePath)
	default:
		return "no language or file path given"
	}
}
