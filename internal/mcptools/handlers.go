package mcptools

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lea-labs/ustree/internal/analysis"
	"github.com/lea-labs/ustree/internal/indexer"
	"github.com/lea-labs/ustree/internal/parser"
	"github.com/lea-labs/ustree/internal/treestore"
)

// ASTService holds the parser registry and tree store used by MCP tool
// handlers.
type ASTService struct {
	reg   *parser.Registry
	store treestore.Store
}

// NewASTService creates an ASTService with the given registry and store.
func NewASTService(reg *parser.Registry, store treestore.Store) *ASTService {
	return &ASTService{reg: reg, store: store}
}

// ParseCode parses a snippet into a universal syntax tree and stores it.
func (s *ASTService) ParseCode(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ParseCodeInput,
) (*mcp.CallToolResult, ParseCodeOutput, error) {
	if input.Code == "" {
		return nil, ParseCodeOutput{}, fmt.Errorf("code is required")
	}

	tree, err := parser.ParseCode(s.reg, []byte(input.Code), input.Language, input.FilePath)
	if err != nil {
		return nil, ParseCodeOutput{}, err
	}

	out := ParseCodeOutput{Tree: tree, NodeCount: tree.NodeCount()}
	if s.store != nil {
		id, err := s.store.PutTree(ctx, tree)
		if err != nil {
			return nil, ParseCodeOutput{}, fmt.Errorf("store tree: %w", err)
		}
		out.TreeID = id
	}
	return nil, out, nil
}

// DetectLanguage classifies a snippet without parsing it.
func (s *ASTService) DetectLanguage(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input DetectLanguageInput,
) (*mcp.CallToolResult, DetectLanguageOutput, error) {
	lang := parser.DetectLanguage(s.reg, []byte(input.Code), input.FilePath)
	return nil, DetectLanguageOutput{
		Language:  lang,
		Supported: lang != "" && s.reg.Get(lang) != nil,
	}, nil
}

// AnalyzeCode parses a snippet and returns the metric summary.
func (s *ASTService) AnalyzeCode(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeCodeInput,
) (*mcp.CallToolResult, AnalyzeCodeOutput, error) {
	if input.Code == "" {
		return nil, AnalyzeCodeOutput{}, fmt.Errorf("code is required")
	}

	tree, err := parser.ParseCode(s.reg, []byte(input.Code), input.Language, input.FilePath)
	if err != nil {
		return nil, AnalyzeCodeOutput{}, err
	}
	return nil, AnalyzeCodeOutput{Summary: *analysis.Summarize(tree)}, nil
}

// ListLanguages returns every registered parser's info.
func (s *ASTService) ListLanguages(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListLanguagesInput,
) (*mcp.CallToolResult, ListLanguagesOutput, error) {
	names := s.reg.Languages()
	out := ListLanguagesOutput{Languages: make([]parser.LanguageInfo, 0, len(names))}
	for _, name := range names {
		out.Languages = append(out.Languages, s.reg.Get(name).Info())
	}
	return nil, out, nil
}

// IndexRepo walks a repository, parses every recognized file and stores the
// trees. Returns per-run counts plus store-wide stats.
func (s *ASTService) IndexRepo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IndexRepoInput,
) (*mcp.CallToolResult, IndexRepoOutput, error) {
	if input.RepoPath == "" {
		return nil, IndexRepoOutput{}, fmt.Errorf("repoPath is required")
	}
	info, err := os.Stat(input.RepoPath)
	if err != nil {
		return nil, IndexRepoOutput{}, fmt.Errorf("cannot access repoPath: %w", err)
	}
	if !info.IsDir() {
		return nil, IndexRepoOutput{}, fmt.Errorf("repoPath is not a directory: %s", input.RepoPath)
	}
	if s.store == nil {
		return nil, IndexRepoOutput{}, fmt.Errorf("no tree store configured")
	}

	if err := s.store.InitSchema(ctx); err != nil {
		return nil, IndexRepoOutput{}, fmt.Errorf("init schema: %w", err)
	}

	res, err := indexer.IndexDir(ctx, s.reg, s.store, input.RepoPath, indexer.Options{
		Workers:     input.Workers,
		ExcludeDirs: input.ExcludeDirs,
	})
	if err != nil {
		return nil, IndexRepoOutput{}, fmt.Errorf("index: %w", err)
	}

	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, IndexRepoOutput{}, fmt.Errorf("stats: %w", err)
	}

	return nil, IndexRepoOutput{
		Parsed:    res.Parsed,
		Skipped:   res.Skipped,
		Failed:    res.Failed,
		NodeCount: res.NodeCount,
		Stats:     *stats,
	}, nil
}

// GetTree retrieves a stored tree by id.
func (s *ASTService) GetTree(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetTreeInput,
) (*mcp.CallToolResult, GetTreeOutput, error) {
	if input.TreeID == "" {
		return nil, GetTreeOutput{}, fmt.Errorf("treeId is required")
	}
	if s.store == nil {
		return nil, GetTreeOutput{}, fmt.Errorf("no tree store configured")
	}

	tree, err := s.store.GetTree(ctx, input.TreeID)
	if err != nil {
		return nil, GetTreeOutput{}, fmt.Errorf("get tree: %w", err)
	}
	if tree == nil {
		return nil, GetTreeOutput{}, fmt.Errorf("no tree with id %s", input.TreeID)
	}
	return nil, GetTreeOutput{Tree: tree}, nil
}

// ListTrees returns summaries of every stored tree.
func (s *ASTService) ListTrees(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListTreesInput,
) (*mcp.CallToolResult, ListTreesOutput, error) {
	if s.store == nil {
		return nil, ListTreesOutput{}, fmt.Errorf("no tree store configured")
	}
	metas, err := s.store.ListTrees(ctx)
	if err != nil {
		return nil, ListTreesOutput{}, fmt.Errorf("list trees: %w", err)
	}
	return nil, ListTreesOutput{Trees: metas, Total: len(metas)}, nil
}
