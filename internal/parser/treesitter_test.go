package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lea-labs/ustree/internal/ust"
)

func parseWith(t *testing.T, p Parser, source, filePath string) *ust.UniversalSyntaxTree {
	t.Helper()
	tree, err := p.Parse([]byte(source), filePath)
	require.NoError(t, err)
	require.NotNil(t, tree)
	return tree
}

// ---------------------------------------------------------------------------
// Python adapter
// ---------------------------------------------------------------------------

func TestPython_FunctionDeclaration(t *testing.T) {
	tree := parseWith(t, NewPythonParser(), "def f(x): return x", "test.py")

	assert.Equal(t, ust.NodeProgram, tree.Root.Type)

	fns := tree.GetNodesByType(ust.NodeFunctionDeclaration)
	require.Len(t, fns, 1)
	assert.Equal(t, "f", fns[0].Attribute("name", ""))
	assert.Equal(t, []string{"x"}, fns[0].Attribute("parameters", nil))

	rets := tree.GetNodesByType(ust.NodeReturnStatement)
	require.Len(t, rets, 1)

	// The return statement sits inside the function subtree.
	sub := ust.NewTree(fns[0], nil)
	assert.Same(t, rets[0], sub.FindNodeByID(rets[0].ID))
}

func TestPython_FunctionDetails(t *testing.T) {
	src := `
@cached
def fib(n, depth=0):
    return fib(n - 1) + fib(n - 2)

async def fetch(url):
    pass
`
	tree := parseWith(t, NewPythonParser(), src, "test.py")

	fns := tree.GetNodesByType(ust.NodeFunctionDeclaration)
	require.Len(t, fns, 2)

	fib := fns[0]
	assert.Equal(t, "fib", fib.Attribute("name", ""))
	assert.Equal(t, []string{"n", "depth"}, fib.Attribute("parameters", nil))
	assert.Equal(t, []string{"cached"}, fib.Attribute("decorators", nil))

	fetch := fns[1]
	assert.Equal(t, "fetch", fetch.Attribute("name", ""))
	assert.Equal(t, true, fetch.Attribute("is_async", false))

	// The recursive body contains calls and a binary expression.
	calls := tree.GetNodesByType(ust.NodeCallExpression)
	assert.GreaterOrEqual(t, len(calls), 2)
	assert.Equal(t, "fib", calls[0].Attribute("function_name", ""))

	bins := tree.GetNodesByType(ust.NodeBinaryExpression)
	require.NotEmpty(t, bins)
	assert.Equal(t, "+", bins[0].Attribute("operator", ""))
}

func TestPython_ClassDeclaration(t *testing.T) {
	src := `
class Calculator(Base):
    def add(self, x, y):
        return x + y
`
	tree := parseWith(t, NewPythonParser(), src, "calc.py")

	classes := tree.GetNodesByType(ust.NodeClassDeclaration)
	require.Len(t, classes, 1)
	assert.Equal(t, "Calculator", classes[0].Attribute("name", ""))
	assert.Equal(t, []string{"Base"}, classes[0].Attribute("base_classes", nil))

	// Methods are function declarations nested in the class subtree.
	fns := tree.GetNodesByType(ust.NodeFunctionDeclaration)
	require.Len(t, fns, 1)
	assert.Equal(t, []string{"self", "x", "y"}, fns[0].Attribute("parameters", nil))
}

func TestPython_Imports(t *testing.T) {
	src := "import os, sys\nfrom json import dumps as d"
	tree := parseWith(t, NewPythonParser(), src, "")

	imports := tree.GetNodesByType(ust.NodeImportDeclaration)
	require.Len(t, imports, 2)

	names := imports[0].Attribute("names", nil).([]map[string]string)
	require.Len(t, names, 2)
	assert.Equal(t, "os", names[0]["name"])
	assert.Equal(t, "sys", names[1]["name"])

	assert.Equal(t, "json", imports[1].Attribute("module", ""))
	fromNames := imports[1].Attribute("names", nil).([]map[string]string)
	require.Len(t, fromNames, 1)
	assert.Equal(t, "dumps", fromNames[0]["name"])
	assert.Equal(t, "d", fromNames[0]["alias"])
}

func TestPython_Literals(t *testing.T) {
	tree := parseWith(t, NewPythonParser(), "x = 5\ny = 2.5\nz = \"hello\"\nok = True\nnothing = None", "")

	lits := tree.GetNodesByType(ust.NodeLiteral)
	require.Len(t, lits, 5)
	assert.Equal(t, 5, lits[0].Attribute("value", nil))
	assert.Equal(t, "integer", lits[0].Attribute("data_type", ""))
	assert.Equal(t, 2.5, lits[1].Attribute("value", nil))
	assert.Equal(t, "float", lits[1].Attribute("data_type", ""))
	assert.Equal(t, "hello", lits[2].Attribute("value", nil))
	assert.Equal(t, "string", lits[2].Attribute("data_type", ""))
	assert.Equal(t, true, lits[3].Attribute("value", nil))
	assert.Equal(t, "boolean", lits[3].Attribute("data_type", ""))
	assert.Equal(t, "null", lits[4].Attribute("data_type", ""))
}

func TestPython_SourceRanges(t *testing.T) {
	tree := parseWith(t, NewPythonParser(), "def f():\n    pass", "pos.py")

	fns := tree.GetNodesByType(ust.NodeFunctionDeclaration)
	require.Len(t, fns, 1)
	require.NotNil(t, fns[0].SourceRange)
	assert.Equal(t, 1, fns[0].SourceRange.Start.Line)
	assert.Equal(t, 0, fns[0].SourceRange.Start.Column)
	assert.Equal(t, 2, fns[0].SourceRange.End.Line)
	assert.Equal(t, "pos.py", fns[0].SourceRange.Start.FilePath)
}

func TestPython_SyntaxError(t *testing.T) {
	_, err := NewPythonParser().Parse([]byte("def f(:"), "bad.py")
	require.Error(t, err)

	var perr *ust.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "python", perr.Language)
	assert.GreaterOrEqual(t, perr.Line, 1)
}

func TestPython_UnmappedKindsFallBack(t *testing.T) {
	// A yield expression has no dedicated category; it must still convert
	// (as expression_statement), never be dropped.
	tree := parseWith(t, NewPythonParser(), "def g():\n    yield 1", "")
	assert.Greater(t, tree.NodeCount(), 3)
}

func TestPython_CanonicalRoundTrip(t *testing.T) {
	src := `
def area(r):
    pi = 3.14159
    return pi * r * r
`
	tree := parseWith(t, NewPythonParser(), src, "area.py")

	first, err := tree.ToCanonical()
	require.NoError(t, err)
	back, err := ust.FromCanonical(first)
	require.NoError(t, err)
	second, err := back.ToCanonical()
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
}

func TestPython_DeterministicStructure(t *testing.T) {
	src := "def f(a, b):\n    return a + b"
	p := NewPythonParser()

	a := parseWith(t, p, src, "")
	b := parseWith(t, p, src, "")

	// Node ids are freshly generated per parse; everything else about the
	// two trees must be identical.
	assert.Equal(t, a.NodeCount(), b.NodeCount())
	assertSameShape(t, a.Root, b.Root)
}

// assertSameShape compares two trees ignoring node ids.
func assertSameShape(t *testing.T, a, b *ust.ASTNode) {
	t.Helper()
	assert.Equal(t, a.Type, b.Type)
	assert.Equal(t, a.Attributes, b.Attributes)
	assert.Equal(t, a.SourceRange, b.SourceRange)
	require.Equal(t, len(a.Children), len(b.Children))
	for i := range a.Children {
		assertSameShape(t, a.Children[i], b.Children[i])
	}
}

// ---------------------------------------------------------------------------
// TypeScript adapter
// ---------------------------------------------------------------------------

func TestTypeScript_Basics(t *testing.T) {
	src := `
const x: number = 5;
function greet(name: string): string { return name; }
interface Shape { area(): number; }
`
	tree := parseWith(t, NewTypeScriptParser(), src, "test.ts")

	vars := tree.GetNodesByType(ust.NodeVariableDeclaration)
	require.Len(t, vars, 1)
	assert.Equal(t, "const", vars[0].Attribute("kind", ""))
	assert.Equal(t, "x", vars[0].Attribute("name", ""))

	fns := tree.GetNodesByType(ust.NodeFunctionDeclaration)
	require.Len(t, fns, 1)
	assert.Equal(t, "greet", fns[0].Attribute("name", ""))
	assert.Equal(t, []string{"name"}, fns[0].Attribute("parameters", nil))

	ifaces := tree.GetNodesByType(ust.NodeInterfaceDeclaration)
	require.Len(t, ifaces, 1)
	assert.Equal(t, "Shape", ifaces[0].Attribute("name", ""))
}

func TestTypeScript_SyntaxError(t *testing.T) {
	_, err := NewTypeScriptParser().Parse([]byte("function {{{"), "bad.ts")
	var perr *ust.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "typescript", perr.Language)
	assert.GreaterOrEqual(t, perr.Line, 1)
}

// ---------------------------------------------------------------------------
// Go adapter
// ---------------------------------------------------------------------------

func TestGo_Basics(t *testing.T) {
	src := `package main

import "fmt"

func add(a, b int) int {
	return a + b
}
`
	tree := parseWith(t, NewGoParser(), src, "add.go")

	fns := tree.GetNodesByType(ust.NodeFunctionDeclaration)
	require.Len(t, fns, 1)
	assert.Equal(t, "add", fns[0].Attribute("name", ""))
	assert.Equal(t, []string{"a", "b"}, fns[0].Attribute("parameters", nil))

	imports := tree.GetNodesByType(ust.NodeImportDeclaration)
	require.Len(t, imports, 1)
	assert.Equal(t, []string{"fmt"}, imports[0].Attribute("names", nil))

	rets := tree.GetNodesByType(ust.NodeReturnStatement)
	assert.Len(t, rets, 1)
}

// ---------------------------------------------------------------------------
// Rust adapter
// ---------------------------------------------------------------------------

func TestRust_Basics(t *testing.T) {
	src := `
fn double(x: i32) -> i32 {
    x * 2
}

struct Point { x: i32, y: i32 }
`
	tree := parseWith(t, NewRustParser(), src, "lib.rs")

	fns := tree.GetNodesByType(ust.NodeFunctionDeclaration)
	require.Len(t, fns, 1)
	assert.Equal(t, "double", fns[0].Attribute("name", ""))
	assert.Equal(t, []string{"x"}, fns[0].Attribute("parameters", nil))

	structs := tree.GetNodesByType(ust.NodeClassDeclaration)
	require.Len(t, structs, 1)
	assert.Equal(t, "Point", structs[0].Attribute("name", ""))
}
