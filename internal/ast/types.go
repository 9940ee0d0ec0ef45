package ast

// NodeType identifies the kind of a node. String returns the solc "nodeType" spelling.
type NodeType int

const (
	ILLEGAL NodeType = iota

	// Directives and top level
	SOURCE_UNIT
	PRAGMA_DIRECTIVE
	IMPORT_DIRECTIVE
	USING_FOR_DIRECTIVE
	STRUCTURED_DOCUMENTATION
	IDENTIFIER_PATH

	// Declarations
	CONTRACT_DEFINITION
	INHERITANCE_SPECIFIER
	STRUCT_DEFINITION
	ENUM_DEFINITION
	ENUM_VALUE
	EVENT_DEFINITION
	ERROR_DEFINITION
	USER_DEFINED_VALUE_TYPE_DEFINITION
	FUNCTION_DEFINITION
	MODIFIER_DEFINITION
	MODIFIER_INVOCATION
	OVERRIDE_SPECIFIER
	PARAMETER_LIST
	VARIABLE_DECLARATION

	// Type names
	ELEMENTARY_TYPE_NAME
	USER_DEFINED_TYPE_NAME
	FUNCTION_TYPE_NAME
	ARRAY_TYPE_NAME
	MAPPING

	// Statements
	BLOCK
	UNCHECKED_BLOCK
	PLACEHOLDER_STATEMENT
	IF_STATEMENT
	FOR_STATEMENT
	WHILE_STATEMENT
	DO_WHILE_STATEMENT
	CONTINUE
	BREAK
	RETURN
	REVERT_STATEMENT
	EMIT_STATEMENT
	TRY_STATEMENT
	TRY_CATCH_CLAUSE
	VARIABLE_DECLARATION_STATEMENT
	EXPRESSION_STATEMENT
	INLINE_ASSEMBLY

	// Expressions
	LITERAL
	IDENTIFIER
	UNARY_OPERATION
	BINARY_OPERATION
	CONDITIONAL
	ASSIGNMENT
	FUNCTION_CALL
	FUNCTION_CALL_OPTIONS
	INDEX_ACCESS
	INDEX_RANGE_ACCESS
	MEMBER_ACCESS
	ELEMENTARY_TYPE_NAME_EXPRESSION
	TUPLE_EXPRESSION
	NEW_EXPRESSION
	UNHANDLED_EXPRESSION
)

var nodeTypeNames = [...]string{
	ILLEGAL:                            "Illegal",
	SOURCE_UNIT:                        "SourceUnit",
	PRAGMA_DIRECTIVE:                   "PragmaDirective",
	IMPORT_DIRECTIVE:                   "ImportDirective",
	USING_FOR_DIRECTIVE:                "UsingForDirective",
	STRUCTURED_DOCUMENTATION:           "StructuredDocumentation",
	IDENTIFIER_PATH:                    "IdentifierPath",
	CONTRACT_DEFINITION:                "ContractDefinition",
	INHERITANCE_SPECIFIER:              "InheritanceSpecifier",
	STRUCT_DEFINITION:                  "StructDefinition",
	ENUM_DEFINITION:                    "EnumDefinition",
	ENUM_VALUE:                         "EnumValue",
	EVENT_DEFINITION:                   "EventDefinition",
	ERROR_DEFINITION:                   "ErrorDefinition",
	USER_DEFINED_VALUE_TYPE_DEFINITION: "UserDefinedValueTypeDefinition",
	FUNCTION_DEFINITION:                "FunctionDefinition",
	MODIFIER_DEFINITION:                "ModifierDefinition",
	MODIFIER_INVOCATION:                "ModifierInvocation",
	OVERRIDE_SPECIFIER:                 "OverrideSpecifier",
	PARAMETER_LIST:                     "ParameterList",
	VARIABLE_DECLARATION:               "VariableDeclaration",
	ELEMENTARY_TYPE_NAME:               "ElementaryTypeName",
	USER_DEFINED_TYPE_NAME:             "UserDefinedTypeName",
	FUNCTION_TYPE_NAME:                 "FunctionTypeName",
	ARRAY_TYPE_NAME:                    "ArrayTypeName",
	MAPPING:                            "Mapping",
	BLOCK:                              "Block",
	UNCHECKED_BLOCK:                    "UncheckedBlock",
	PLACEHOLDER_STATEMENT:              "PlaceholderStatement",
	IF_STATEMENT:                       "IfStatement",
	FOR_STATEMENT:                      "ForStatement",
	WHILE_STATEMENT:                    "WhileStatement",
	DO_WHILE_STATEMENT:                 "DoWhileStatement",
	CONTINUE:                           "Continue",
	BREAK:                              "Break",
	RETURN:                             "Return",
	REVERT_STATEMENT:                   "RevertStatement",
	EMIT_STATEMENT:                     "EmitStatement",
	TRY_STATEMENT:                      "TryStatement",
	TRY_CATCH_CLAUSE:                   "TryCatchClause",
	VARIABLE_DECLARATION_STATEMENT:     "VariableDeclarationStatement",
	EXPRESSION_STATEMENT:               "ExpressionStatement",
	INLINE_ASSEMBLY:                    "InlineAssembly",
	LITERAL:                            "Literal",
	IDENTIFIER:                         "Identifier",
	UNARY_OPERATION:                    "UnaryOperation",
	BINARY_OPERATION:                   "BinaryOperation",
	CONDITIONAL:                        "Conditional",
	ASSIGNMENT:                         "Assignment",
	FUNCTION_CALL:                      "FunctionCall",
	FUNCTION_CALL_OPTIONS:              "FunctionCallOptions",
	INDEX_ACCESS:                       "IndexAccess",
	INDEX_RANGE_ACCESS:                 "IndexRangeAccess",
	MEMBER_ACCESS:                      "MemberAccess",
	ELEMENTARY_TYPE_NAME_EXPRESSION:    "ElementaryTypeNameExpression",
	TUPLE_EXPRESSION:                   "TupleExpression",
	NEW_EXPRESSION:                     "NewExpression",
	UNHANDLED_EXPRESSION:               "UnhandledExpression",
}

var nodeTypesByName = func() map[string]NodeType {
	m := make(map[string]NodeType, len(nodeTypeNames))
	for i, name := range nodeTypeNames {
		m[name] = NodeType(i)
	}
	return m
}()

func (t NodeType) String() string {
	if t < 0 || int(t) >= len(nodeTypeNames) {
		return nodeTypeNames[ILLEGAL]
	}
	return nodeTypeNames[t]
}

// ParseNodeType maps a solc nodeType name to its NodeType.
func ParseNodeType(name string) (NodeType, bool) {
	t, ok := nodeTypesByName[name]
	if !ok || t == ILLEGAL {
		return ILLEGAL, false
	}
	return t, true
}

// IsExpression reports whether nodes of this type implement Expression.
func (t NodeType) IsExpression() bool {
	return t >= LITERAL && t <= UNHANDLED_EXPRESSION
}

// IsStatement reports whether nodes of this type implement Statement.
func (t NodeType) IsStatement() bool {
	return t >= BLOCK && t <= INLINE_ASSEMBLY && t != TRY_CATCH_CLAUSE
}

// Enumerations shared by several declarations. Values are the solc spellings.

type ContractKind string

const (
	ContractKindContract  ContractKind = "contract"
	ContractKindInterface ContractKind = "interface"
	ContractKindLibrary   ContractKind = "library"
)

type FunctionKind string

const (
	FunctionKindFunction    FunctionKind = "function"
	FunctionKindConstructor FunctionKind = "constructor"
	FunctionKindFallback    FunctionKind = "fallback"
	FunctionKindReceive     FunctionKind = "receive"
	FunctionKindFreeFunc    FunctionKind = "freeFunction"
)

type StateMutability string

const (
	Pure       StateMutability = "pure"
	View       StateMutability = "view"
	NonPayable StateMutability = "nonpayable"
	Payable    StateMutability = "payable"
)

type Visibility string

const (
	Public   Visibility = "public"
	Private  Visibility = "private"
	Internal Visibility = "internal"
	External Visibility = "external"
)

type StorageLocation string

const (
	LocationDefault   StorageLocation = "default"
	LocationMemory    StorageLocation = "memory"
	LocationCalldata  StorageLocation = "calldata"
	LocationStorage   StorageLocation = "storage"
	LocationTransient StorageLocation = "transient"
)

type Mutability string

const (
	Mutable   Mutability = "mutable"
	Immutable Mutability = "immutable"
	Constant  Mutability = "constant"
)

type LiteralKind string

const (
	LiteralBool          LiteralKind = "bool"
	LiteralNumber        LiteralKind = "number"
	LiteralString        LiteralKind = "string"
	LiteralHexString     LiteralKind = "hexString"
	LiteralUnicodeString LiteralKind = "unicodeString"
)

type FunctionCallKind string

const (
	FunctionCallKindFunctionCall      FunctionCallKind = "functionCall"
	FunctionCallKindTypeConversion    FunctionCallKind = "typeConversion"
	FunctionCallKindStructConstructor FunctionCallKind = "structConstructorCall"
)
