package ast

type Statement interface {
	Node
	isStmt()
}

type Block struct {
	NodeInfo
	Statements []Statement
}

type UncheckedBlock struct {
	NodeInfo
	Statements []Statement
}

// PlaceholderStatement is the `_;` inside a modifier body.
type PlaceholderStatement struct {
	NodeInfo
}

type IfStatement struct {
	NodeInfo
	Condition Expression
	TrueBody  Statement
	FalseBody Statement
}

type ForStatement struct {
	NodeInfo
	InitializationExpression Statement
	Condition                Expression
	LoopExpression           *ExpressionStatement
	Body                     Statement
}

type WhileStatement struct {
	NodeInfo
	Condition Expression
	Body      Statement
}

type DoWhileStatement struct {
	NodeInfo
	Condition Expression
	Body      Statement
}

type Continue struct {
	NodeInfo
}

type Break struct {
	NodeInfo
}

type Return struct {
	NodeInfo
	Expression               Expression
	FunctionReturnParameters NodeID
}

type RevertStatement struct {
	NodeInfo
	ErrorCall *FunctionCall
}

type EmitStatement struct {
	NodeInfo
	EventCall *FunctionCall
}

type TryStatement struct {
	NodeInfo
	ExternalCall *FunctionCall
	Clauses      []*TryCatchClause
}

// TryCatchClause is not a Statement; it only appears inside TryStatement.
type TryCatchClause struct {
	NodeInfo
	ErrorName  string
	Parameters *ParameterList
	Block      *Block
}

// VariableDeclarationStatement declarations may be nil, as in `(, uint b) = f()`.
type VariableDeclarationStatement struct {
	NodeInfo
	Assignments  []NodeID
	Declarations []*VariableDeclaration
	InitialValue Expression
}

type ExpressionStatement struct {
	NodeInfo
	Expression Expression
}

// InlineAssembly keeps the Yul body opaque. Only the references from Yul
// identifiers to Solidity declarations are modelled.
type InlineAssembly struct {
	NodeInfo
	EVMVersion         string
	Flags              []string
	ExternalReferences []ExternalReference
}

type ExternalReference struct {
	Declaration NodeID
	IsOffset    bool
	IsSlot      bool
	Src         string
	Suffix      string
	ValueSize   int
}

func (*Block) isStmt()                        {}
func (*UncheckedBlock) isStmt()               {}
func (*PlaceholderStatement) isStmt()         {}
func (*IfStatement) isStmt()                  {}
func (*ForStatement) isStmt()                 {}
func (*WhileStatement) isStmt()               {}
func (*DoWhileStatement) isStmt()             {}
func (*Continue) isStmt()                     {}
func (*Break) isStmt()                        {}
func (*Return) isStmt()                       {}
func (*RevertStatement) isStmt()              {}
func (*EmitStatement) isStmt()                {}
func (*TryStatement) isStmt()                 {}
func (*VariableDeclarationStatement) isStmt() {}
func (*ExpressionStatement) isStmt()          {}
func (*InlineAssembly) isStmt()               {}
