package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewASTMCPServer creates an MCP server with all 7 syntax tree tools
// registered.
func NewASTMCPServer(svc *ASTService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "ustree",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse_code",
		Description: "Parse source code into a universal syntax tree. Resolves the parser from the explicit language or the file extension, stores the tree, and returns it with its id.",
	}, svc.ParseCode)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "detect_language",
		Description: "Guess the language of a code snippet from its file extension or content keywords, without parsing it.",
	}, svc.DetectLanguage)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_code",
		Description: "Parse source code and return structural metrics: node count, tree depth, a cyclomatic complexity estimate, and the functions, classes, variables and imports found.",
	}, svc.AnalyzeCode)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_languages",
		Description: "List every supported language with its file extensions and parser version.",
	}, svc.ListLanguages)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "index_repo",
		Description: "Walk a repository, parse every recognized source file in parallel and store the resulting trees. Returns parsed/skipped/failed counts and store-wide statistics.",
	}, svc.IndexRepo)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_tree",
		Description: "Retrieve a previously stored syntax tree by id.",
	}, svc.GetTree)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_trees",
		Description: "List summaries (id, file path, language, node count) of every stored syntax tree.",
	}, svc.ListTrees)

	return server
}

// RunMCPServer starts an HTTP server exposing the syntax tree MCP tools.
func RunMCPServer(ctx context.Context, svc *ASTService, addr string) error {
	server := NewASTMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
