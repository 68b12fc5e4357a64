package parser

import (
	"strconv"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/lea-labs/ustree/internal/ust"
)

// NewPythonParser returns the tree-sitter adapter for Python.
func NewPythonParser() Parser {
	return &treeSitterParser{
		info: LanguageInfo{
			Name:       "python",
			Extensions: []string{".py", ".pyw", ".pyi"},
			Version:    "1.0",
		},
		language:   tree_sitter.NewLanguage(tree_sitter_python.Language()),
		kinds:      pyKinds,
		extractors: pyExtractors,
	}
}

// pyKinds maps tree-sitter-python node kinds onto the universal taxonomy.
// Kinds absent from the table default to expression_statement.
var pyKinds = map[string]ust.NodeType{
	"module": ust.NodeProgram,

	"function_definition": ust.NodeFunctionDeclaration,
	"lambda":              ust.NodeFunctionDeclaration,
	"class_definition":    ust.NodeClassDeclaration,

	"import_statement":        ust.NodeImportDeclaration,
	"import_from_statement":   ust.NodeImportDeclaration,
	"future_import_statement": ust.NodeImportDeclaration,

	"return_statement":   ust.NodeReturnStatement,
	"break_statement":    ust.NodeBreakStatement,
	"continue_statement": ust.NodeContinueStatement,

	"if_statement":           ust.NodeIfStatement,
	"conditional_expression": ust.NodeIfStatement,
	"for_statement":          ust.NodeForStatement,
	"while_statement":        ust.NodeWhileStatement,

	"block":          ust.NodeBlockStatement,
	"try_statement":  ust.NodeBlockStatement,
	"with_statement": ust.NodeBlockStatement,

	"expression_statement": ust.NodeExpressionStatement,

	"assignment":           ust.NodeAssignmentExpression,
	"augmented_assignment": ust.NodeAssignmentExpression,

	"binary_operator":     ust.NodeBinaryExpression,
	"boolean_operator":    ust.NodeBinaryExpression,
	"comparison_operator": ust.NodeBinaryExpression,
	"not_operator":        ust.NodeUnaryExpression,
	"unary_operator":      ust.NodeUnaryExpression,

	"call":      ust.NodeCallExpression,
	"attribute": ust.NodeMemberExpression,
	"subscript": ust.NodeMemberExpression,

	"identifier": ust.NodeIdentifier,

	"string":     ust.NodeLiteral,
	"integer":    ust.NodeLiteral,
	"float":      ust.NodeLiteral,
	"true":       ust.NodeLiteral,
	"false":      ust.NodeLiteral,
	"none":       ust.NodeLiteral,
	"list":       ust.NodeLiteral,
	"dictionary": ust.NodeLiteral,
	"set":        ust.NodeLiteral,
	"tuple":      ust.NodeLiteral,

	"comment":   ust.NodeComment,
	"decorator": ust.NodeAnnotation,
	"type":      ust.NodePrimitiveType,
}

// pyExtractors holds the per-kind attribute extraction dispatch table.
var pyExtractors = map[string]attrExtractor{
	"function_definition":   pyExtractFunction,
	"class_definition":      pyExtractClass,
	"identifier":            pyExtractIdentifier,
	"binary_operator":       pyExtractOperator,
	"boolean_operator":      pyExtractOperator,
	"unary_operator":        pyExtractOperator,
	"not_operator":          pyExtractNot,
	"call":                  pyExtractCall,
	"attribute":             pyExtractAttribute,
	"string":                pyExtractString,
	"integer":               pyExtractInteger,
	"float":                 pyExtractFloat,
	"true":                  pyExtractBool,
	"false":                 pyExtractBool,
	"none":                  pyExtractNone,
	"import_statement":      pyExtractImport,
	"import_from_statement": pyExtractFromImport,
	"decorator":             pyExtractDecorator,
}

func pyExtractNot(_ *tree_sitter.Node, _ []byte, out *ust.ASTNode) {
	out.SetAttribute("operator", "not")
}

func pyExtractFunction(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	out.SetAttribute("name", fieldText(n, "name", source))
	out.SetAttribute("parameters", pyParameterNames(n, source))

	// "async def" carries the async keyword as the first anonymous child.
	if first := n.Child(0); first != nil && first.Kind() == "async" {
		out.SetAttribute("is_async", true)
	}
	if decorators := pyDecoratorNames(n, source); len(decorators) > 0 {
		out.SetAttribute("decorators", decorators)
	}
}

func pyExtractClass(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	out.SetAttribute("name", fieldText(n, "name", source))
	if sup := n.ChildByFieldName("superclasses"); sup != nil {
		out.SetAttribute("base_classes", collectIdentifiers(sup, source, "identifier", "attribute"))
	}
	if decorators := pyDecoratorNames(n, source); len(decorators) > 0 {
		out.SetAttribute("decorators", decorators)
	}
}

func pyExtractIdentifier(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	out.SetAttribute("name", n.Utf8Text(source))
}

func pyExtractOperator(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	if op := fieldText(n, "operator", source); op != "" {
		out.SetAttribute("operator", op)
	}
}

func pyExtractCall(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	fn := n.ChildByFieldName("function")
	if fn == nil {
		return
	}
	switch fn.Kind() {
	case "identifier":
		out.SetAttribute("function_name", fn.Utf8Text(source))
	case "attribute":
		out.SetAttribute("function_name", fieldText(fn, "attribute", source))
	}
}

func pyExtractAttribute(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	out.SetAttribute("attribute", fieldText(n, "attribute", source))
}

func pyExtractString(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	text := n.Utf8Text(source)
	// Strip the surrounding quote pair; prefixes and triple quotes stay as
	// written, which is close enough for attribute purposes.
	if len(text) >= 2 {
		text = text[1 : len(text)-1]
	}
	out.SetAttribute("value", text)
	out.SetAttribute("data_type", string(ust.DataString))
}

func pyExtractInteger(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	text := n.Utf8Text(source)
	if v, err := strconv.Atoi(text); err == nil {
		out.SetAttribute("value", v)
	} else {
		out.SetAttribute("value", text)
	}
	out.SetAttribute("data_type", string(ust.DataInteger))
}

func pyExtractFloat(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	text := n.Utf8Text(source)
	if v, err := strconv.ParseFloat(text, 64); err == nil {
		out.SetAttribute("value", v)
	} else {
		out.SetAttribute("value", text)
	}
	out.SetAttribute("data_type", string(ust.DataFloat))
}

func pyExtractBool(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	out.SetAttribute("value", n.Kind() == "true")
	out.SetAttribute("data_type", string(ust.DataBoolean))
}

func pyExtractNone(_ *tree_sitter.Node, _ []byte, out *ust.ASTNode) {
	out.SetAttribute("value", nil)
	out.SetAttribute("data_type", string(ust.DataNull))
}

func pyExtractImport(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	out.SetAttribute("names", pyImportNames(n, source))
}

func pyExtractFromImport(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	out.SetAttribute("module", fieldText(n, "module_name", source))
	out.SetAttribute("names", pyImportNames(n, source))
}

func pyExtractDecorator(n *tree_sitter.Node, source []byte, out *ust.ASTNode) {
	names := collectIdentifiers(n, source, "identifier")
	if len(names) > 0 {
		out.SetAttribute("name", names[len(names)-1])
	}
}

// pyParameterNames pulls the identifier of every parameter, including typed
// and defaulted ones.
func pyParameterNames(fn *tree_sitter.Node, source []byte) []string {
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return []string{}
	}
	names := []string{}
	for i := uint(0); i < params.NamedChildCount(); i++ {
		p := params.NamedChild(i)
		if p == nil {
			continue
		}
		switch p.Kind() {
		case "identifier":
			names = append(names, p.Utf8Text(source))
		default:
			// typed_parameter, default_parameter, list_splat_pattern, etc.
			// hold their identifier as a descendant.
			if ids := collectIdentifiers(p, source, "identifier"); len(ids) > 0 {
				names = append(names, ids[0])
			}
		}
	}
	return names
}

// pyDecoratorNames collects decorator names when the definition sits inside
// a decorated_definition wrapper.
func pyDecoratorNames(def *tree_sitter.Node, source []byte) []string {
	parent := def.Parent()
	if parent == nil || parent.Kind() != "decorated_definition" {
		return nil
	}
	var names []string
	for i := uint(0); i < parent.NamedChildCount(); i++ {
		child := parent.NamedChild(i)
		if child == nil || child.Kind() != "decorator" {
			continue
		}
		ids := collectIdentifiers(child, source, "identifier")
		if len(ids) > 0 {
			names = append(names, ids[len(ids)-1])
		}
	}
	return names
}

// pyImportNames builds the {name, alias} list for import statements.
func pyImportNames(n *tree_sitter.Node, source []byte) []map[string]string {
	names := []map[string]string{}
	var visit func(node *tree_sitter.Node)
	visit = func(node *tree_sitter.Node) {
		switch node.Kind() {
		case "dotted_name", "relative_import":
			names = append(names, map[string]string{"name": node.Utf8Text(source)})
			return
		case "aliased_import":
			entry := map[string]string{"name": fieldText(node, "name", source)}
			if alias := fieldText(node, "alias", source); alias != "" {
				entry["alias"] = alias
			}
			names = append(names, entry)
			return
		case "wildcard_import":
			names = append(names, map[string]string{"name": "*"})
			return
		}
		for i := uint(0); i < node.NamedChildCount(); i++ {
			if child := node.NamedChild(i); child != nil {
				visit(child)
			}
		}
	}
	// Skip the module_name field of from-imports; only the imported names
	// belong in the list.
	moduleField := n.ChildByFieldName("module_name")
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child == nil {
			continue
		}
		if moduleField != nil && child.StartByte() == moduleField.StartByte() {
			continue
		}
		visit(child)
	}
	return names
}
