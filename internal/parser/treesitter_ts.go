package parser

import (
	"strconv"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/lea-labs/ustree/internal/ust"
)

// NewTypeScriptParser returns the tree-sitter adapter for TypeScript. Plain
// JavaScript files go to the hand-written parser instead; this adapter only
// claims the TypeScript extensions.
func NewTypeScriptParser() Parser {
	return &treeSitterParser{
		info: LanguageInfo{
			Name:       "typescript",
			Extensions: []string{".ts", ".tsx"},
			Version:    "1.0",
		},
		language:   tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
		kinds:      tsKinds,
		extractors: tsExtractors,
	}
}

var tsKinds = map[string]ust.NodeType{
	"program": ust.NodeProgram,

	"function_declaration":           ust.NodeFunctionDeclaration,
	"generator_function_declaration": ust.NodeFunctionDeclaration,
	"arrow_function":                 ust.NodeFunctionDeclaration,
	"method_definition":              ust.NodeFunctionDeclaration,
	"class_declaration":              ust.NodeClassDeclaration,
	"interface_declaration":          ust.NodeInterfaceDeclaration,

	"import_statement": ust.NodeImportDeclaration,
	"export_statement": ust.NodeImportDeclaration,

	"lexical_declaration":  ust.NodeVariableDeclaration,
	"variable_declaration": ust.NodeVariableDeclaration,

	"statement_block":      ust.NodeBlockStatement,
	"if_statement":         ust.NodeIfStatement,
	"for_statement":        ust.NodeForStatement,
	"for_in_statement":     ust.NodeForStatement,
	"while_statement":      ust.NodeWhileStatement,
	"do_statement":         ust.NodeWhileStatement,
	"return_statement":     ust.NodeReturnStatement,
	"break_statement":      ust.NodeBreakStatement,
	"continue_statement":   ust.NodeContinueStatement,
	"expression_statement": ust.NodeExpressionStatement,

	"binary_expression":               ust.NodeBinaryExpression,
	"unary_expression":                ust.NodeUnaryExpression,
	"call_expression":                 ust.NodeCallExpression,
	"member_expression":               ust.NodeMemberExpression,
	"assignment_expression":           ust.NodeAssignmentExpression,
	"augmented_assignment_expression": ust.NodeAssignmentExpression,

	"identifier":          ust.NodeIdentifier,
	"property_identifier": ust.NodeIdentifier,
	"type_identifier":     ust.NodeIdentifier,

	"string":          ust.NodeLiteral,
	"template_string": ust.NodeLiteral,
	"number":          ust.NodeLiteral,
	"true":            ust.NodeLiteral,
	"false":           ust.NodeLiteral,
	"null":            ust.NodeLiteral,
	"undefined":       ust.NodeLiteral,
	"array":           ust.NodeLiteral,
	"object":          ust.NodeLiteral,

	"comment":   ust.NodeComment,
	"decorator": ust.NodeAnnotation,

	"predefined_type": ust.NodePrimitiveType,
	"array_type":      ust.NodeArrayType,
	"object_type":     ust.NodeObjectType,
	"function_type":   ust.NodeFunctionType,
}

var tsExtractors = map[string]attrExtractor{
	"function_declaration":  tsExtractFunction,
	"method_definition":     tsExtractFunction,
	"arrow_function":        tsExtractFunction,
	"class_declaration":     tsExtractNamed,
	"interface_declaration": tsExtractNamed,
	"lexical_declaration":   tsExtractVariable,
	"variable_declaration":  tsExtractVariable,
	"identifier":            tsExtractIdentifier,
	"property_identifier":   tsExtractIdentifier,
	"type_identifier":       tsExtractIdentifier,
	"binary_expression":     tsExtractOperator,
	"unary_expression":      tsExtractOperator,
	"call_expression":       tsExtractCall,
	"member_expression":     tsExtractMember,
	"string":                tsExtractString,
	"number":                tsExtractNumber,
	"true":                  tsExtractBool,
	"false":                 tsExtractBool,
	"null":                  tsExtractNull,
	"undefined":             tsExtractUndefined,
	"import_statement":      tsExtractImport,
}

func tsExtractFunction(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	if name := fieldText(n, "name", source); name != "" {
		out.SetAttribute("name", name)
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		out.SetAttribute("parameters", collectIdentifiers(params, source, "identifier"))
	}
}

func tsExtractNamed(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	out.SetAttribute("name", fieldText(n, "name", source))
}

func tsExtractVariable(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	// The binding keyword (const/let/var) is the first anonymous child.
	if first := n.Child(0); first != nil {
		out.SetAttribute("kind", first.Kind())
	}
	if decl := n.NamedChild(0); decl != nil && decl.Kind() == "variable_declarator" {
		out.SetAttribute("name", fieldText(decl, "name", source))
	}
}

func tsExtractIdentifier(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	out.SetAttribute("name", n.Utf8Text(source))
}

func tsExtractOperator(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	if op := fieldText(n, "operator", source); op != "" {
		out.SetAttribute("operator", op)
	}
}

func tsExtractCall(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	fn := n.ChildByFieldName("function")
	if fn == nil {
		return
	}
	switch fn.Kind() {
	case "identifier":
		out.SetAttribute("function_name", fn.Utf8Text(source))
	case "member_expression":
		out.SetAttribute("function_name", fieldText(fn, "property", source))
	}
}

func tsExtractMember(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	out.SetAttribute("attribute", fieldText(n, "property", source))
}

func tsExtractString(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	text := n.Utf8Text(source)
	if len(text) >= 2 {
		text = text[1 : len(text)-1]
	}
	out.SetAttribute("value", text)
	out.SetAttribute("data_type", string(ust.DataString))
}

func tsExtractNumber(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	text := n.Utf8Text(source)
	if strings.Contains(text, ".") {
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			out.SetAttribute("value", v)
			out.SetAttribute("data_type", string(ust.DataFloat))
			return
		}
	}
	if v, err := strconv.Atoi(text); err == nil {
		out.SetAttribute("value", v)
		out.SetAttribute("data_type", string(ust.DataInteger))
		return
	}
	out.SetAttribute("value", text)
	out.SetAttribute("data_type", string(ust.DataNumber))
}

func tsExtractBool(n *tree_sitter.Node, _ []byte, out *ust.ASTNode) {
	out.SetAttribute("value", n.Kind() == "true")
	out.SetAttribute("data_type", string(ust.DataBoolean))
}

func tsExtractNull(_ *tree_sitter.Node, _ []byte, out *ust.ASTNode) {
	out.SetAttribute("value", nil)
	out.SetAttribute("data_type", string(ust.DataNull))
}

func tsExtractUndefined(_ *tree_sitter.Node, _ []byte, out *ust.ASTNode) {
	out.SetAttribute("value", nil)
	out.SetAttribute("data_type", string(ust.DataUndefined))
}

func tsExtractImport(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	if src := fieldText(n, "source", source); src != "" {
		out.SetAttribute("module", strings.Trim(src, `"'`))
	}
	names := collectIdentifiers(n, source, "identifier")
	if len(names) > 0 {
		out.SetAttribute("names", names)
	}
}
