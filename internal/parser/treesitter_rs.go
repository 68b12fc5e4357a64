package parser

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"

	"github.com/lea-labs/ustree/internal/ust"
)

// NewRustParser returns the tree-sitter adapter for Rust.
func NewRustParser() Parser {
	return &treeSitterParser{
		info: LanguageInfo{
			Name:       "rust",
			Extensions: []string{".rs"},
			Version:    "1.0",
		},
		language:   tree_sitter.NewLanguage(tree_sitter_rust.Language()),
		kinds:      rsKinds,
		extractors: rsExtractors,
	}
}

var rsKinds = map[string]ust.NodeType{
	"source_file": ust.NodeProgram,

	"function_item":      ust.NodeFunctionDeclaration,
	"closure_expression": ust.NodeFunctionDeclaration,
	"struct_item":        ust.NodeClassDeclaration,
	"enum_item":          ust.NodeClassDeclaration,
	"trait_item":         ust.NodeInterfaceDeclaration,
	"impl_item":          ust.NodeBlockStatement,
	"use_declaration":    ust.NodeImportDeclaration,
	"mod_item":           ust.NodeModule,

	"let_declaration": ust.NodeVariableDeclaration,
	"const_item":      ust.NodeVariableDeclaration,
	"static_item":     ust.NodeVariableDeclaration,

	"block":                ust.NodeBlockStatement,
	"if_expression":        ust.NodeIfStatement,
	"while_expression":     ust.NodeWhileStatement,
	"loop_expression":      ust.NodeWhileStatement,
	"for_expression":       ust.NodeForStatement,
	"return_expression":    ust.NodeReturnStatement,
	"break_expression":     ust.NodeBreakStatement,
	"continue_expression":  ust.NodeContinueStatement,
	"expression_statement": ust.NodeExpressionStatement,

	"binary_expression":     ust.NodeBinaryExpression,
	"unary_expression":      ust.NodeUnaryExpression,
	"call_expression":       ust.NodeCallExpression,
	"macro_invocation":      ust.NodeCallExpression,
	"field_expression":      ust.NodeMemberExpression,
	"index_expression":      ust.NodeMemberExpression,
	"assignment_expression": ust.NodeAssignmentExpression,

	"identifier":       ust.NodeIdentifier,
	"field_identifier": ust.NodeIdentifier,
	"type_identifier":  ust.NodeIdentifier,

	"string_literal":   ust.NodeLiteral,
	"integer_literal":  ust.NodeLiteral,
	"float_literal":    ust.NodeLiteral,
	"boolean_literal":  ust.NodeLiteral,
	"char_literal":     ust.NodeLiteral,
	"array_expression": ust.NodeLiteral,

	"line_comment":   ust.NodeComment,
	"block_comment":  ust.NodeComment,
	"attribute_item": ust.NodeAnnotation,

	"primitive_type": ust.NodePrimitiveType,
	"array_type":     ust.NodeArrayType,
	"function_type":  ust.NodeFunctionType,
}

var rsExtractors = map[string]attrExtractor{
	"function_item":     rsExtractFunction,
	"struct_item":       rsExtractNamed,
	"enum_item":         rsExtractNamed,
	"trait_item":        rsExtractNamed,
	"mod_item":          rsExtractNamed,
	"let_declaration":   rsExtractLet,
	"identifier":        rsExtractIdentifier,
	"field_identifier":  rsExtractIdentifier,
	"type_identifier":   rsExtractIdentifier,
	"binary_expression": rsExtractOperator,
	"unary_expression":  rsExtractOperator,
	"call_expression":   rsExtractCall,
	"field_expression":  rsExtractField,
	"use_declaration":   rsExtractUse,
}

func rsExtractFunction(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	out.SetAttribute("name", fieldText(n, "name", source))
	if params := n.ChildByFieldName("parameters"); params != nil {
		out.SetAttribute("parameters", collectIdentifiers(params, source, "identifier"))
	}
}

func rsExtractNamed(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	out.SetAttribute("name", fieldText(n, "name", source))
}

func rsExtractLet(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	if ids := collectIdentifiers(n.ChildByFieldName("pattern"), source, "identifier"); len(ids) > 0 {
		out.SetAttribute("name", ids[0])
	}
}

func rsExtractIdentifier(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	out.SetAttribute("name", n.Utf8Text(source))
}

func rsExtractOperator(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	if op := fieldText(n, "operator", source); op != "" {
		out.SetAttribute("operator", op)
	}
}

func rsExtractCall(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	fn := n.ChildByFieldName("function")
	if fn == nil {
		return
	}
	switch fn.Kind() {
	case "identifier":
		out.SetAttribute("function_name", fn.Utf8Text(source))
	case "field_expression":
		out.SetAttribute("function_name", fieldText(fn, "field", source))
	case "scoped_identifier":
		out.SetAttribute("function_name", fieldText(fn, "name", source))
	}
}

func rsExtractField(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	out.SetAttribute("attribute", fieldText(n, "field", source))
}

func rsExtractUse(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	if arg := n.ChildByFieldName("argument"); arg != nil {
		out.SetAttribute("module", arg.Utf8Text(source))
	}
}
