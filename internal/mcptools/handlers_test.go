package mcptools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lea-labs/ustree/internal/parser"
	"github.com/lea-labs/ustree/internal/treestore"
	"github.com/lea-labs/ustree/internal/ust"
)

// newTestService wires an ASTService backed by the default registry and an
// in-memory store.
func newTestService(t *testing.T) *ASTService {
	t.Helper()
	store := treestore.NewMemStore()
	require.NoError(t, store.InitSchema(context.Background()))
	return NewASTService(parser.NewDefaultRegistry(), store)
}

// writeFixture creates a file (and parent dirs) under root.
func writeFixture(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// ---------------------------------------------------------------------------
// parse_code
// ---------------------------------------------------------------------------

func TestParseCode_Python(t *testing.T) {
	svc := newTestService(t)

	_, out, err := svc.ParseCode(context.Background(), nil, ParseCodeInput{
		Code:     "def f(x): return x",
		Language: "python",
	})
	require.NoError(t, err)
	require.NotNil(t, out.Tree)
	assert.Equal(t, ust.NodeProgram, out.Tree.Root.Type)
	assert.Greater(t, out.NodeCount, 1)
	assert.NotEmpty(t, out.TreeID, "parsed tree should be stored")

	// The stored tree is retrievable by the returned id.
	_, got, err := svc.GetTree(context.Background(), nil, GetTreeInput{TreeID: out.TreeID})
	require.NoError(t, err)
	assert.Equal(t, out.Tree.Root.ID, got.Tree.Root.ID)
}

func TestParseCode_ResolvesFromFilePath(t *testing.T) {
	svc := newTestService(t)

	_, out, err := svc.ParseCode(context.Background(), nil, ParseCodeInput{
		Code:     "const x = 5;",
		FilePath: "app.js",
	})
	require.NoError(t, err)
	assert.Equal(t, "javascript", out.Tree.Metadata["language"])
}

func TestParseCode_UnsupportedLanguage(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.ParseCode(context.Background(), nil, ParseCodeInput{
		Code:     "mystery",
		FilePath: "file.xyz",
	})
	var uerr *ust.UnsupportedLanguageError
	assert.ErrorAs(t, err, &uerr)
}

func TestParseCode_SyntaxError(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.ParseCode(context.Background(), nil, ParseCodeInput{
		Code:     "def f(:",
		Language: "python",
	})
	var perr *ust.ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestParseCode_EmptyCode(t *testing.T) {
	svc := newTestService(t)
	_, _, err := svc.ParseCode(context.Background(), nil, ParseCodeInput{Language: "python"})
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// detect_language
// ---------------------------------------------------------------------------

func TestDetectLanguage(t *testing.T) {
	svc := newTestService(t)

	_, out, err := svc.DetectLanguage(context.Background(), nil, DetectLanguageInput{
		Code: "def main():\n    pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "python", out.Language)
	assert.True(t, out.Supported)

	// Detected but unregistered languages are reported as unsupported.
	_, out, err = svc.DetectLanguage(context.Background(), nil, DetectLanguageInput{
		Code: "public static void main(String[] args) {}",
	})
	require.NoError(t, err)
	assert.Equal(t, "java", out.Language)
	assert.False(t, out.Supported)

	// Undetectable input is not an error.
	_, out, err = svc.DetectLanguage(context.Background(), nil, DetectLanguageInput{
		Code: "hello world",
	})
	require.NoError(t, err)
	assert.Empty(t, out.Language)
	assert.False(t, out.Supported)
}

// ---------------------------------------------------------------------------
// analyze_code
// ---------------------------------------------------------------------------

func TestAnalyzeCode(t *testing.T) {
	svc := newTestService(t)

	src := `
def fib(n):
    if n < 2:
        return n
    return fib(n - 1) + fib(n - 2)
`
	_, out, err := svc.AnalyzeCode(context.Background(), nil, AnalyzeCodeInput{
		Code:     src,
		Language: "python",
	})
	require.NoError(t, err)

	require.Len(t, out.Summary.Functions, 1)
	assert.Equal(t, "fib", out.Summary.Functions[0].Name)
	assert.Equal(t, []string{"n"}, out.Summary.Functions[0].Parameters)
	assert.Greater(t, out.Summary.Cyclomatic, 1)
	assert.Greater(t, out.Summary.Depth, 2)
}

// ---------------------------------------------------------------------------
// list_languages
// ---------------------------------------------------------------------------

func TestListLanguages(t *testing.T) {
	svc := newTestService(t)

	_, out, err := svc.ListLanguages(context.Background(), nil, ListLanguagesInput{})
	require.NoError(t, err)
	require.Len(t, out.Languages, 5)

	names := make([]string, len(out.Languages))
	for i, info := range out.Languages {
		names[i] = info.Name
		assert.NotEmpty(t, info.Extensions, "language %s has no extensions", info.Name)
	}
	assert.Equal(t, []string{"go", "javascript", "python", "rust", "typescript"}, names)
}

// ---------------------------------------------------------------------------
// index_repo, get_tree, list_trees
// ---------------------------------------------------------------------------

func TestIndexRepo(t *testing.T) {
	svc := newTestService(t)

	root := t.TempDir()
	writeFixture(t, root, "a.py", "def f():\n    return 1\n")
	writeFixture(t, root, "b.js", "const x = 2;\n")
	writeFixture(t, root, "notes.txt", "not source\n")

	_, out, err := svc.IndexRepo(context.Background(), nil, IndexRepoInput{RepoPath: root})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Parsed)
	assert.Equal(t, 1, out.Skipped)
	assert.Equal(t, 0, out.Failed)
	assert.Equal(t, 2, out.Stats.TreeCount)

	_, trees, err := svc.ListTrees(context.Background(), nil, ListTreesInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, trees.Total)
}

func TestIndexRepo_InvalidPath(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.IndexRepo(context.Background(), nil, IndexRepoInput{})
	assert.Error(t, err)

	_, _, err = svc.IndexRepo(context.Background(), nil, IndexRepoInput{RepoPath: "/does/not/exist"})
	assert.Error(t, err)
}

func TestGetTree_UnknownID(t *testing.T) {
	svc := newTestService(t)
	_, _, err := svc.GetTree(context.Background(), nil, GetTreeInput{TreeID: "nope"})
	assert.Error(t, err)
}
