package ust

// Node constructors for the shapes every parser produces. Parsers may still
// assemble nodes by hand; these only cover the common cases.

// NewProgramNode creates the root node for a parse of the given language.
func NewProgramNode(language string) *ASTNode {
	n := NewNode(NodeProgram)
	n.OriginalLanguage = language
	n.SetAttribute("language", language)
	return n
}

// NewFunctionNode creates a function declaration node with its name and
// parameter list attached. returnType is optional; pass "" to omit it.
func NewFunctionNode(name string, parameters []string, returnType string) *ASTNode {
	n := NewNode(NodeFunctionDeclaration)
	n.SetAttribute("name", name)
	n.SetAttribute("parameters", parameters)
	if returnType != "" {
		n.SetAttribute("return_type", returnType)
	}
	return n
}

// NewVariableNode creates a variable declaration node. varType and value are
// optional; pass "" / nil to omit them.
func NewVariableNode(name, varType string, value any) *ASTNode {
	n := NewNode(NodeVariableDeclaration)
	n.SetAttribute("name", name)
	if varType != "" {
		n.SetAttribute("type", varType)
	}
	if value != nil {
		n.SetAttribute("value", value)
	}
	return n
}

// NewLiteralNode creates a literal node carrying its value and data type.
func NewLiteralNode(value any, dataType DataType) *ASTNode {
	n := NewNode(NodeLiteral)
	n.SetAttribute("value", value)
	n.SetAttribute("data_type", string(dataType))
	return n
}

// NewIdentifierNode creates an identifier node for the given name.
func NewIdentifierNode(name string) *ASTNode {
	n := NewNode(NodeIdentifier)
	n.SetAttribute("name", name)
	return n
}
