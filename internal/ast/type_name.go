package ast

type TypeName interface {
	Node
	GetTypeDescriptions() TypeDescriptions
	isTypeName()
}

type ElementaryTypeName struct {
	NodeInfo
	Name             string
	StateMutability  StateMutability
	TypeDescriptions TypeDescriptions
}

type UserDefinedTypeName struct {
	NodeInfo
	Name                  string
	PathNode              *IdentifierPath
	ReferencedDeclaration NodeID
	TypeDescriptions      TypeDescriptions
}

type FunctionTypeName struct {
	NodeInfo
	ParameterTypes       *ParameterList
	ReturnParameterTypes *ParameterList
	StateMutability      StateMutability
	Visibility           Visibility
	TypeDescriptions     TypeDescriptions
}

type ArrayTypeName struct {
	NodeInfo
	BaseType         TypeName
	Length           Expression
	TypeDescriptions TypeDescriptions
}

type Mapping struct {
	NodeInfo
	KeyType          TypeName
	KeyName          string
	ValueType        TypeName
	ValueName        string
	TypeDescriptions TypeDescriptions
}

func (t *ElementaryTypeName) GetTypeDescriptions() TypeDescriptions  { return t.TypeDescriptions }
func (t *UserDefinedTypeName) GetTypeDescriptions() TypeDescriptions { return t.TypeDescriptions }
func (t *FunctionTypeName) GetTypeDescriptions() TypeDescriptions    { return t.TypeDescriptions }
func (t *ArrayTypeName) GetTypeDescriptions() TypeDescriptions       { return t.TypeDescriptions }
func (t *Mapping) GetTypeDescriptions() TypeDescriptions             { return t.TypeDescriptions }

func (*ElementaryTypeName) isTypeName()  {}
func (*UserDefinedTypeName) isTypeName() {}
func (*FunctionTypeName) isTypeName()    {}
func (*ArrayTypeName) isTypeName()       {}
func (*Mapping) isTypeName()             {}
