package ast

// Node is implemented by every AST node. GetNodeID reports false for nodes
// that carry no compiler ID; such nodes cannot be indexed or referenced.
type Node interface {
	NodeType() NodeType
	GetNodeID() (NodeID, bool)
	GetSrc() string
}

func (*SourceUnit) NodeType() NodeType                     { return SOURCE_UNIT }
func (*PragmaDirective) NodeType() NodeType                { return PRAGMA_DIRECTIVE }
func (*ImportDirective) NodeType() NodeType                { return IMPORT_DIRECTIVE }
func (*UsingForDirective) NodeType() NodeType              { return USING_FOR_DIRECTIVE }
func (*StructuredDocumentation) NodeType() NodeType        { return STRUCTURED_DOCUMENTATION }
func (*IdentifierPath) NodeType() NodeType                 { return IDENTIFIER_PATH }
func (*ContractDefinition) NodeType() NodeType             { return CONTRACT_DEFINITION }
func (*InheritanceSpecifier) NodeType() NodeType           { return INHERITANCE_SPECIFIER }
func (*StructDefinition) NodeType() NodeType               { return STRUCT_DEFINITION }
func (*EnumDefinition) NodeType() NodeType                 { return ENUM_DEFINITION }
func (*EnumValue) NodeType() NodeType                      { return ENUM_VALUE }
func (*EventDefinition) NodeType() NodeType                { return EVENT_DEFINITION }
func (*ErrorDefinition) NodeType() NodeType                { return ERROR_DEFINITION }
func (*UserDefinedValueTypeDefinition) NodeType() NodeType { return USER_DEFINED_VALUE_TYPE_DEFINITION }
func (*FunctionDefinition) NodeType() NodeType             { return FUNCTION_DEFINITION }
func (*ModifierDefinition) NodeType() NodeType             { return MODIFIER_DEFINITION }
func (*ModifierInvocation) NodeType() NodeType             { return MODIFIER_INVOCATION }
func (*OverrideSpecifier) NodeType() NodeType              { return OVERRIDE_SPECIFIER }
func (*ParameterList) NodeType() NodeType                  { return PARAMETER_LIST }
func (*VariableDeclaration) NodeType() NodeType            { return VARIABLE_DECLARATION }

func (*ElementaryTypeName) NodeType() NodeType  { return ELEMENTARY_TYPE_NAME }
func (*UserDefinedTypeName) NodeType() NodeType { return USER_DEFINED_TYPE_NAME }
func (*FunctionTypeName) NodeType() NodeType    { return FUNCTION_TYPE_NAME }
func (*ArrayTypeName) NodeType() NodeType       { return ARRAY_TYPE_NAME }
func (*Mapping) NodeType() NodeType             { return MAPPING }

func (*Block) NodeType() NodeType                        { return BLOCK }
func (*UncheckedBlock) NodeType() NodeType               { return UNCHECKED_BLOCK }
func (*PlaceholderStatement) NodeType() NodeType         { return PLACEHOLDER_STATEMENT }
func (*IfStatement) NodeType() NodeType                  { return IF_STATEMENT }
func (*ForStatement) NodeType() NodeType                 { return FOR_STATEMENT }
func (*WhileStatement) NodeType() NodeType               { return WHILE_STATEMENT }
func (*DoWhileStatement) NodeType() NodeType             { return DO_WHILE_STATEMENT }
func (*Continue) NodeType() NodeType                     { return CONTINUE }
func (*Break) NodeType() NodeType                        { return BREAK }
func (*Return) NodeType() NodeType                       { return RETURN }
func (*RevertStatement) NodeType() NodeType              { return REVERT_STATEMENT }
func (*EmitStatement) NodeType() NodeType                { return EMIT_STATEMENT }
func (*TryStatement) NodeType() NodeType                 { return TRY_STATEMENT }
func (*TryCatchClause) NodeType() NodeType               { return TRY_CATCH_CLAUSE }
func (*VariableDeclarationStatement) NodeType() NodeType { return VARIABLE_DECLARATION_STATEMENT }
func (*ExpressionStatement) NodeType() NodeType          { return EXPRESSION_STATEMENT }
func (*InlineAssembly) NodeType() NodeType               { return INLINE_ASSEMBLY }

func (*Literal) NodeType() NodeType                      { return LITERAL }
func (*Identifier) NodeType() NodeType                   { return IDENTIFIER }
func (*UnaryOperation) NodeType() NodeType               { return UNARY_OPERATION }
func (*BinaryOperation) NodeType() NodeType              { return BINARY_OPERATION }
func (*Conditional) NodeType() NodeType                  { return CONDITIONAL }
func (*Assignment) NodeType() NodeType                   { return ASSIGNMENT }
func (*FunctionCall) NodeType() NodeType                 { return FUNCTION_CALL }
func (*FunctionCallOptions) NodeType() NodeType          { return FUNCTION_CALL_OPTIONS }
func (*IndexAccess) NodeType() NodeType                  { return INDEX_ACCESS }
func (*IndexRangeAccess) NodeType() NodeType             { return INDEX_RANGE_ACCESS }
func (*MemberAccess) NodeType() NodeType                 { return MEMBER_ACCESS }
func (*ElementaryTypeNameExpression) NodeType() NodeType { return ELEMENTARY_TYPE_NAME_EXPRESSION }
func (*TupleExpression) NodeType() NodeType              { return TUPLE_EXPRESSION }
func (*NewExpression) NodeType() NodeType                { return NEW_EXPRESSION }
func (*UnhandledExpression) NodeType() NodeType          { return UNHANDLED_EXPRESSION }
