package mcptools

import (
	"github.com/lea-labs/ustree/internal/analysis"
	"github.com/lea-labs/ustree/internal/parser"
	"github.com/lea-labs/ustree/internal/treestore"
	"github.com/lea-labs/ustree/internal/ust"
)

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// ParseCodeInput is the input for the parse_code MCP tool.
type ParseCodeInput struct {
	Code     string `json:"code" jsonschema:"source code to parse"`
	Language string `json:"language,omitempty" jsonschema:"language name (python, javascript, typescript, go, rust). Omit to resolve from filePath"`
	FilePath string `json:"filePath,omitempty" jsonschema:"file path used for language resolution and source positions"`
}

// ParseCodeOutput is the result of the parse_code MCP tool.
type ParseCodeOutput struct {
	Tree      *ust.UniversalSyntaxTree `json:"tree"`
	NodeCount int                      `json:"nodeCount"`
	TreeID    string                   `json:"treeId,omitempty"`
}

// DetectLanguageInput is the input for the detect_language MCP tool.
type DetectLanguageInput struct {
	Code     string `json:"code" jsonschema:"source code to classify"`
	FilePath string `json:"filePath,omitempty" jsonschema:"optional file path; a known extension short-circuits content heuristics"`
}

// DetectLanguageOutput is the result of the detect_language MCP tool.
type DetectLanguageOutput struct {
	Language  string `json:"language"`
	Supported bool   `json:"supported"`
}

// AnalyzeCodeInput is the input for the analyze_code MCP tool.
type AnalyzeCodeInput struct {
	Code     string `json:"code" jsonschema:"source code to parse and analyze"`
	Language string `json:"language,omitempty" jsonschema:"language name. Omit to resolve from filePath"`
	FilePath string `json:"filePath,omitempty" jsonschema:"file path used for language resolution"`
}

// AnalyzeCodeOutput is the result of the analyze_code MCP tool.
type AnalyzeCodeOutput struct {
	Summary analysis.Summary `json:"summary"`
}

// ListLanguagesInput is the input for the list_languages MCP tool.
type ListLanguagesInput struct{}

// ListLanguagesOutput is the result of the list_languages MCP tool.
type ListLanguagesOutput struct {
	Languages []parser.LanguageInfo `json:"languages"`
}

// IndexRepoInput is the input for the index_repo MCP tool.
type IndexRepoInput struct {
	RepoPath    string   `json:"repoPath" jsonschema:"absolute path to the repository to index"`
	ExcludeDirs []string `json:"excludeDirs,omitempty" jsonschema:"directories to exclude from indexing (e.g. vendor, node_modules)"`
	Workers     int      `json:"workers,omitempty" jsonschema:"maximum concurrent parse workers (default: 4)"`
}

// IndexRepoOutput is the result of the index_repo MCP tool.
type IndexRepoOutput struct {
	Parsed    int                  `json:"parsed"`
	Skipped   int                  `json:"skipped"`
	Failed    int                  `json:"failed"`
	NodeCount int                  `json:"nodeCount"`
	Stats     treestore.StoreStats `json:"stats"`
}

// GetTreeInput is the input for the get_tree MCP tool.
type GetTreeInput struct {
	TreeID string `json:"treeId" jsonschema:"id of a stored tree, as returned by parse_code or index_repo"`
}

// GetTreeOutput is the result of the get_tree MCP tool.
type GetTreeOutput struct {
	Tree *ust.UniversalSyntaxTree `json:"tree"`
}

// ListTreesInput is the input for the list_trees MCP tool.
type ListTreesInput struct{}

// ListTreesOutput is the result of the list_trees MCP tool.
type ListTreesOutput struct {
	Trees []treestore.TreeMeta `json:"trees"`
	Total int                  `json:"total"`
}
