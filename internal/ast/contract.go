package ast

import "strings"

// SourceUnit is the root of one file's AST. Source holds the file text when
// the loader could find it, and is empty otherwise.
type SourceUnit struct {
	NodeInfo
	AbsolutePath    string
	License         string
	ExportedSymbols map[string][]NodeID
	Nodes           []Node
	Source          string
}

type PragmaDirective struct {
	NodeInfo
	Literals []string
}

type SymbolAlias struct {
	Foreign      *Identifier
	Local        string
	NameLocation string
}

type ImportDirective struct {
	NodeInfo
	File          string
	AbsolutePath  string
	SourceUnit    NodeID
	Scope         NodeID
	UnitAlias     string
	SymbolAliases []SymbolAlias
}

type UsingForDirective struct {
	NodeInfo
	LibraryName  *IdentifierPath
	FunctionList []*IdentifierPath
	TypeName     TypeName
	Global       bool
}

type StructuredDocumentation struct {
	NodeInfo
	Text string
}

type IdentifierPath struct {
	NodeInfo
	Name                  string
	NameLocations         []string
	ReferencedDeclaration NodeID
}

type ContractDefinition struct {
	NodeInfo
	Name                    string
	NameLocation            string
	Documentation           *StructuredDocumentation
	Kind                    ContractKind
	Abstract                bool
	FullyImplemented        bool
	BaseContracts           []*InheritanceSpecifier
	LinearizedBaseContracts []NodeID
	ContractDependencies    []NodeID
	UsedErrors              []NodeID
	UsedEvents              []NodeID
	Nodes                   []Node
	Scope                   NodeID
}

type InheritanceSpecifier struct {
	NodeInfo
	BaseName  *IdentifierPath
	Arguments []Expression
}

type StructDefinition struct {
	NodeInfo
	Name          string
	NameLocation  string
	CanonicalName string
	Members       []*VariableDeclaration
	Visibility    Visibility
	Scope         NodeID
}

type EnumDefinition struct {
	NodeInfo
	Name          string
	NameLocation  string
	CanonicalName string
	Members       []*EnumValue
}

type EnumValue struct {
	NodeInfo
	Name         string
	NameLocation string
}

type EventDefinition struct {
	NodeInfo
	Name          string
	NameLocation  string
	Documentation *StructuredDocumentation
	Anonymous     bool
	Parameters    *ParameterList
	EventSelector string
}

type ErrorDefinition struct {
	NodeInfo
	Name          string
	NameLocation  string
	Documentation *StructuredDocumentation
	Parameters    *ParameterList
	ErrorSelector string
}

type UserDefinedValueTypeDefinition struct {
	NodeInfo
	Name           string
	NameLocation   string
	CanonicalName  string
	UnderlyingType TypeName
}

type FunctionDefinition struct {
	NodeInfo
	Name             string
	NameLocation     string
	Documentation    *StructuredDocumentation
	Kind             FunctionKind
	StateMutability  StateMutability
	Visibility       Visibility
	Virtual          bool
	Implemented      bool
	Overrides        *OverrideSpecifier
	Parameters       *ParameterList
	ReturnParameters *ParameterList
	Modifiers        []*ModifierInvocation
	Body             *Block
	FunctionSelector string
	BaseFunctions    []NodeID
	Scope            NodeID
}

// ReturnsValues reports whether the function declares at least one return parameter.
func (fd *FunctionDefinition) ReturnsValues() bool {
	return fd.ReturnParameters != nil && len(fd.ReturnParameters.Parameters) > 0
}

// IsCallableFromOutside reports whether the function is part of the contract ABI.
func (fd *FunctionDefinition) IsCallableFromOutside() bool {
	return fd.Visibility == Public || fd.Visibility == External
}

type ModifierDefinition struct {
	NodeInfo
	Name          string
	NameLocation  string
	Documentation *StructuredDocumentation
	Visibility    Visibility
	Virtual       bool
	Overrides     *OverrideSpecifier
	Parameters    *ParameterList
	Body          *Block
	BaseModifiers []NodeID
}

// ModifierInvocation also models base constructor calls on constructors,
// in which case ModifierName references a contract.
type ModifierInvocation struct {
	NodeInfo
	ModifierName *IdentifierPath
	Arguments    []Expression
	Kind         string
}

type OverrideSpecifier struct {
	NodeInfo
	Overrides []*IdentifierPath
}

type ParameterList struct {
	NodeInfo
	Parameters []*VariableDeclaration
}

type VariableDeclaration struct {
	NodeInfo
	Name             string
	NameLocation     string
	Documentation    *StructuredDocumentation
	Constant         bool
	Mutability       Mutability
	StateVariable    bool
	StorageLocation  StorageLocation
	Visibility       Visibility
	Indexed          bool
	TypeName         TypeName
	Value            Expression
	Overrides        *OverrideSpecifier
	FunctionSelector string
	TypeDescriptions TypeDescriptions
	Scope            NodeID
}

// IsImmutable reports whether the variable is declared `immutable`.
func (vd *VariableDeclaration) IsImmutable() bool {
	return vd.Mutability == Immutable
}

// IsStoragePointer reports whether the variable is a local alias of storage.
func (vd *VariableDeclaration) IsStoragePointer() bool {
	return !vd.StateVariable && vd.StorageLocation == LocationStorage
}

// IsValueType reports whether the declared type is copied by value, judging
// by the type string solc emitted.
func (vd *VariableDeclaration) IsValueType() bool {
	ts := vd.TypeDescriptions.TypeString
	if ts == "" {
		return false
	}
	if ts == "string" || ts == "bytes" {
		return false
	}
	for _, prefix := range []string{"mapping(", "struct ", "string ", "bytes "} {
		if strings.HasPrefix(ts, prefix) {
			return false
		}
	}
	return !strings.Contains(ts, "[")
}
