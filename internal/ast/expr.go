package ast

type Expression interface {
	Node
	GetTypeDescriptions() TypeDescriptions
	isExpr()
}

// ExprInfo holds the annotations solc attaches to every expression.
type ExprInfo struct {
	TypeDescriptions TypeDescriptions
	ArgumentTypes    []TypeDescriptions
	IsConstant       bool
	IsLValue         bool
	IsPure           bool
	LValueRequested  bool
}

func (ei ExprInfo) GetTypeDescriptions() TypeDescriptions { return ei.TypeDescriptions }

type Literal struct {
	NodeInfo
	ExprInfo
	Kind            LiteralKind
	Value           string
	HexValue        string
	Subdenomination string
}

type Identifier struct {
	NodeInfo
	ExprInfo
	Name                   string
	ReferencedDeclaration  *NodeID
	OverloadedDeclarations []NodeID
}

type UnaryOperation struct {
	NodeInfo
	ExprInfo
	Operator      string
	Prefix        bool
	SubExpression Expression
}

type BinaryOperation struct {
	NodeInfo
	ExprInfo
	Operator        string
	LeftExpression  Expression
	RightExpression Expression
	CommonType      TypeDescriptions
}

type Conditional struct {
	NodeInfo
	ExprInfo
	Condition       Expression
	TrueExpression  Expression
	FalseExpression Expression
}

type Assignment struct {
	NodeInfo
	ExprInfo
	Operator      string
	LeftHandSide  Expression
	RightHandSide Expression
}

type FunctionCall struct {
	NodeInfo
	ExprInfo
	Kind       FunctionCallKind
	Expression Expression
	Arguments  []Expression
	Names      []string
	TryCall    bool
}

type FunctionCallOptions struct {
	NodeInfo
	ExprInfo
	Expression Expression
	Names      []string
	Options    []Expression
}

type IndexAccess struct {
	NodeInfo
	ExprInfo
	BaseExpression  Expression
	IndexExpression Expression // nil for `T[]` type expressions
}

type IndexRangeAccess struct {
	NodeInfo
	ExprInfo
	BaseExpression  Expression
	StartExpression Expression
	EndExpression   Expression
}

type MemberAccess struct {
	NodeInfo
	ExprInfo
	Expression            Expression
	MemberName            string
	MemberLocation        string
	ReferencedDeclaration *NodeID
}

type ElementaryTypeNameExpression struct {
	NodeInfo
	ExprInfo
	TypeName *ElementaryTypeName
}

// TupleExpression components may be nil, as in `(a, , c)`.
type TupleExpression struct {
	NodeInfo
	ExprInfo
	Components    []Expression
	IsInlineArray bool
}

type NewExpression struct {
	NodeInfo
	ExprInfo
	TypeName TypeName
}

// UnhandledExpression stands in for an expression kind the loader does not
// model. It may carry no ID, in which case it is never indexed.
type UnhandledExpression struct {
	ExprInfo
	ID       *NodeID
	Src      string
	TypeName string // solc nodeType of the original construct
}

func (ue *UnhandledExpression) GetNodeID() (NodeID, bool) {
	if ue.ID == nil {
		return 0, false
	}
	return *ue.ID, true
}

func (ue *UnhandledExpression) GetSrc() string { return ue.Src }

func (*Literal) isExpr()                      {}
func (*Identifier) isExpr()                   {}
func (*UnaryOperation) isExpr()               {}
func (*BinaryOperation) isExpr()              {}
func (*Conditional) isExpr()                  {}
func (*Assignment) isExpr()                   {}
func (*FunctionCall) isExpr()                 {}
func (*FunctionCallOptions) isExpr()          {}
func (*IndexAccess) isExpr()                  {}
func (*IndexRangeAccess) isExpr()             {}
func (*MemberAccess) isExpr()                 {}
func (*ElementaryTypeNameExpression) isExpr() {}
func (*TupleExpression) isExpr()              {}
func (*NewExpression) isExpr()                {}
func (*UnhandledExpression) isExpr()          {}
