package parser

import (
	"path/filepath"
	"strings"
)

// detectRule is one keyword-presence heuristic: if any keyword occurs in the
// lower-cased source, the rule's language is selected.
type detectRule struct {
	language string
	keywords []string
}

// detectRules are tried in order; the first match wins. Declaration-style
// keywords come first so that, e.g., Python wins over the C-family rule for
// sources containing both.
var detectRules = []detectRule{
	{"python", []string{"def ", "import ", "from ", "class ", "if __name__"}},
	{"javascript", []string{"function ", "const ", "let ", "var ", "=>", "console.log"}},
	{"java", []string{"public class", "public static void main", "import java"}},
	{"c", []string{"#include", "int main(", "printf(", "cout <<"}},
}

// DetectLanguage guesses the language of source. It first tries an exact,
// case-insensitive extension lookup against the registry, then the ordered
// keyword rules over the lower-cased, trimmed source. This is a best-effort
// classifier, not a parser: it returns "" when nothing matches and never
// fails.
func DetectLanguage(reg *Registry, source []byte, filePath string) string {
	if filePath != "" {
		if lang, ok := reg.LanguageForExtension(filepath.Ext(filePath)); ok {
			return lang
		}
	}

	lower := strings.ToLower(strings.TrimSpace(string(source)))
	for _, rule := range detectRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				if rule.language == "c" && strings.Contains(lower, "cout") {
					return "cpp"
				}
				return rule.language
			}
		}
	}
	return ""
}
