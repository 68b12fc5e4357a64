package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lea-labs/ustree/internal/ust"
)

// ---------------------------------------------------------------------------
// Registry
// ---------------------------------------------------------------------------

func TestRegistry_DefaultLanguages(t *testing.T) {
	reg := NewDefaultRegistry()
	assert.Equal(t, []string{"go", "javascript", "python", "rust", "typescript"}, reg.Languages())
}

func TestRegistry_GetIsCaseInsensitive(t *testing.T) {
	reg := NewDefaultRegistry()
	assert.NotNil(t, reg.Get("python"))
	assert.NotNil(t, reg.Get("Python"))
	assert.Nil(t, reg.Get("cobol"))
}

func TestRegistry_GetByExtension(t *testing.T) {
	reg := NewDefaultRegistry()

	cases := map[string]string{
		".py":  "python",
		".PY":  "python",
		".js":  "javascript",
		".mjs": "javascript",
		".ts":  "typescript",
		".tsx": "typescript",
		".go":  "go",
		".rs":  "rust",
	}
	for ext, want := range cases {
		p := reg.GetByExtension(ext)
		require.NotNil(t, p, "extension %s", ext)
		assert.Equal(t, want, p.Info().Name, "extension %s", ext)
	}

	assert.Nil(t, reg.GetByExtension(".xyz"))
}

func TestRegistry_LaterRegistrationWins(t *testing.T) {
	reg := NewRegistry()
	reg.Register(NewJavaScriptParser())
	reg.Register(NewTypeScriptParser())

	// Both register distinct extensions; re-registering JavaScript replaces
	// the earlier parser entry but leaves TypeScript's claims alone.
	reg.Register(NewJavaScriptParser())
	assert.Equal(t, "javascript", reg.GetByExtension(".js").Info().Name)
	assert.Equal(t, "typescript", reg.GetByExtension(".ts").Info().Name)
}

// ---------------------------------------------------------------------------
// ParseCode resolution
// ---------------------------------------------------------------------------

func TestParseCode_ExplicitLanguage(t *testing.T) {
	reg := NewDefaultRegistry()
	tree, err := ParseCode(reg, []byte("x = 1"), "python", "")
	require.NoError(t, err)
	assert.Equal(t, "python", tree.Metadata["language"])
}

func TestParseCode_ExtensionFallback(t *testing.T) {
	reg := NewDefaultRegistry()
	tree, err := ParseCode(reg, []byte("const x = 1;"), "", "src/app.js")
	require.NoError(t, err)
	assert.Equal(t, "javascript", tree.Metadata["language"])
}

func TestParseCode_LanguageBeatsExtension(t *testing.T) {
	// An explicit language wins even when the extension says otherwise.
	reg := NewDefaultRegistry()
	tree, err := ParseCode(reg, []byte("x = 1"), "python", "misnamed.js")
	require.NoError(t, err)
	assert.Equal(t, "python", tree.Metadata["language"])
}

func TestParseCode_UnsupportedLanguage(t *testing.T) {
	reg := NewDefaultRegistry()

	_, err := ParseCode(reg, []byte("mystery"), "", "file.xyz")
	var uerr *ust.UnsupportedLanguageError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "file.xyz", uerr.FilePath)

	_, err = ParseCode(reg, []byte("mystery"), "brainfuck", "")
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "brainfuck", uerr.Language)
}

// ---------------------------------------------------------------------------
// Language detection
// ---------------------------------------------------------------------------

func TestDetectLanguage_ExtensionFirst(t *testing.T) {
	reg := NewDefaultRegistry()
	// Content looks like Python, but the extension is authoritative.
	assert.Equal(t, "javascript", DetectLanguage(reg, []byte("def looks_like_python():"), "app.js"))
}

func TestDetectLanguage_KeywordRules(t *testing.T) {
	reg := NewDefaultRegistry()

	cases := []struct {
		source string
		want   string
	}{
		{"def main():\n    pass", "python"},
		{"if __name__ == '__main__':", "python"},
		{"const greeting = () => console.log('hi');", "javascript"},
		{"public static void main(String[] args) {}", "java"},
		{"#include <stdio.h>\nint main() { printf(\"hi\"); }", "c"},
		{"#include <iostream>\nint main() { std::cout << 1; }", "cpp"},
		{"hello world", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DetectLanguage(reg, []byte(tc.source), ""), "source %q", tc.source)
	}
}

func TestDetectLanguage_UnknownExtensionFallsThrough(t *testing.T) {
	reg := NewDefaultRegistry()
	// Unknown extension: content rules still apply.
	assert.Equal(t, "python", DetectLanguage(reg, []byte("import os"), "notes.txt"))
}
