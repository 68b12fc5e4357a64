package parser

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"

	"github.com/lea-labs/ustree/internal/ust"
)

// NewGoParser returns the tree-sitter adapter for Go.
func NewGoParser() Parser {
	return &treeSitterParser{
		info: LanguageInfo{
			Name:       "go",
			Extensions: []string{".go"},
			Version:    "1.0",
		},
		language:   tree_sitter.NewLanguage(tree_sitter_go.Language()),
		kinds:      goKinds,
		extractors: goExtractors,
	}
}

var goKinds = map[string]ust.NodeType{
	"source_file": ust.NodeProgram,

	"function_declaration": ust.NodeFunctionDeclaration,
	"method_declaration":   ust.NodeFunctionDeclaration,
	"func_literal":         ust.NodeFunctionDeclaration,
	"type_declaration":     ust.NodeClassDeclaration,
	"import_declaration":   ust.NodeImportDeclaration,

	"const_declaration":     ust.NodeVariableDeclaration,
	"var_declaration":       ust.NodeVariableDeclaration,
	"short_var_declaration": ust.NodeVariableDeclaration,

	"block":                ust.NodeBlockStatement,
	"if_statement":         ust.NodeIfStatement,
	"for_statement":        ust.NodeForStatement,
	"return_statement":     ust.NodeReturnStatement,
	"break_statement":      ust.NodeBreakStatement,
	"continue_statement":   ust.NodeContinueStatement,
	"expression_statement": ust.NodeExpressionStatement,

	"binary_expression":    ust.NodeBinaryExpression,
	"unary_expression":     ust.NodeUnaryExpression,
	"call_expression":      ust.NodeCallExpression,
	"selector_expression":  ust.NodeMemberExpression,
	"index_expression":     ust.NodeMemberExpression,
	"assignment_statement": ust.NodeAssignmentExpression,

	"identifier":         ust.NodeIdentifier,
	"field_identifier":   ust.NodeIdentifier,
	"type_identifier":    ust.NodeIdentifier,
	"package_identifier": ust.NodeIdentifier,

	"interpreted_string_literal": ust.NodeLiteral,
	"raw_string_literal":         ust.NodeLiteral,
	"int_literal":                ust.NodeLiteral,
	"float_literal":              ust.NodeLiteral,
	"rune_literal":               ust.NodeLiteral,
	"composite_literal":          ust.NodeLiteral,
	"true":                       ust.NodeLiteral,
	"false":                      ust.NodeLiteral,
	"nil":                        ust.NodeLiteral,

	"comment": ust.NodeComment,

	"struct_type":    ust.NodeObjectType,
	"interface_type": ust.NodeInterfaceDeclaration,
	"array_type":     ust.NodeArrayType,
	"slice_type":     ust.NodeArrayType,
	"map_type":       ust.NodeObjectType,
	"function_type":  ust.NodeFunctionType,
}

var goExtractors = map[string]attrExtractor{
	"function_declaration": goExtractFunction,
	"method_declaration":   goExtractFunction,
	"type_declaration":     goExtractType,
	"identifier":           goExtractIdentifier,
	"field_identifier":     goExtractIdentifier,
	"type_identifier":      goExtractIdentifier,
	"package_identifier":   goExtractIdentifier,
	"binary_expression":    goExtractOperator,
	"unary_expression":     goExtractOperator,
	"call_expression":      goExtractCall,
	"selector_expression":  goExtractSelector,
	"import_declaration":   goExtractImport,
}

func goExtractFunction(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	out.SetAttribute("name", fieldText(n, "name", source))
	if params := n.ChildByFieldName("parameters"); params != nil {
		out.SetAttribute("parameters", collectIdentifiers(params, source, "identifier"))
	}
}

func goExtractType(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	if spec := n.NamedChild(0); spec != nil && spec.Kind() == "type_spec" {
		out.SetAttribute("name", fieldText(spec, "name", source))
	}
}

func goExtractIdentifier(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	out.SetAttribute("name", n.Utf8Text(source))
}

func goExtractOperator(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	if op := fieldText(n, "operator", source); op != "" {
		out.SetAttribute("operator", op)
	}
}

func goExtractCall(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	fn := n.ChildByFieldName("function")
	if fn == nil {
		return
	}
	switch fn.Kind() {
	case "identifier":
		out.SetAttribute("function_name", fn.Utf8Text(source))
	case "selector_expression":
		out.SetAttribute("function_name", fieldText(fn, "field", source))
	}
}

func goExtractSelector(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	out.SetAttribute("attribute", fieldText(n, "field", source))
}

func goExtractImport(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	specs := collectIdentifiers(n, source, "interpreted_string_literal")
	names := make([]string, 0, len(specs))
	for _, s := range specs {
		if len(s) >= 2 {
			s = s[1 : len(s)-1]
		}
		names = append(names, s)
	}
	out.SetAttribute("names", names)
}
