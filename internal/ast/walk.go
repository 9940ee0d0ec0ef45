package ast

// MaxDepth bounds every recursive descent in this package. Walk visits a node
// at this depth but does not descend into its children.
const MaxDepth = 4096

// Visitor is driven by Walk. Visit decides whether the node's children are
// walked; EndVisit runs for every visited node whatever Visit returned, so it
// can pop state pushed in Visit. VisitImmediateChildren reports the IDs of a
// node's direct children, once per node that has an ID and identified children.
type Visitor interface {
	Visit(node Node) bool
	EndVisit(node Node)
	VisitImmediateChildren(parent NodeID, children []NodeID)
}

// BaseVisitor walks everything and records nothing. Embed it to override only
// the hooks a visitor needs.
type BaseVisitor struct{}

func (BaseVisitor) Visit(Node) bool                         { return true }
func (BaseVisitor) EndVisit(Node)                           {}
func (BaseVisitor) VisitImmediateChildren(NodeID, []NodeID) {}

// Walk traverses node depth-first in source order.
func Walk(v Visitor, node Node) {
	walk(v, node, 0)
}

func walk(v Visitor, node Node, depth int) {
	if node == nil {
		return
	}

	children := Children(node)
	if v.Visit(node) && depth < MaxDepth {
		for _, child := range children {
			walk(v, child, depth+1)
		}
	}

	if parentID, ok := node.GetNodeID(); ok {
		ids := make([]NodeID, 0, len(children))
		for _, child := range children {
			if id, ok := child.GetNodeID(); ok {
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			v.VisitImmediateChildren(parentID, ids)
		}
	}

	v.EndVisit(node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) bool                  { return f(node) }
func (inspector) EndVisit(Node)                           {}
func (inspector) VisitImmediateChildren(NodeID, []NodeID) {}

// Inspect calls f for node and every descendant in pre-order. Returning false
// skips the children of the current node.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

// Children returns the immediate children of node in source order. Absent
// optional children are left out.
func Children(node Node) []Node {
	var out []Node

	switch n := node.(type) {
	// Directives and top level
	case *SourceUnit:
		out = appendNodes(out, n.Nodes)
	case *PragmaDirective, *StructuredDocumentation, *IdentifierPath:
	case *ImportDirective:
		for _, alias := range n.SymbolAliases {
			out = appendPtr(out, alias.Foreign)
		}
	case *UsingForDirective:
		out = appendPtr(out, n.LibraryName)
		out = appendPtrs(out, n.FunctionList)
		out = appendNode(out, n.TypeName)

	// Declarations
	case *ContractDefinition:
		out = appendPtr(out, n.Documentation)
		out = appendPtrs(out, n.BaseContracts)
		out = appendNodes(out, n.Nodes)
	case *InheritanceSpecifier:
		out = appendPtr(out, n.BaseName)
		out = appendExprs(out, n.Arguments)
	case *StructDefinition:
		out = appendPtrs(out, n.Members)
	case *EnumDefinition:
		out = appendPtrs(out, n.Members)
	case *EnumValue:
	case *EventDefinition:
		out = appendPtr(out, n.Documentation)
		out = appendPtr(out, n.Parameters)
	case *ErrorDefinition:
		out = appendPtr(out, n.Documentation)
		out = appendPtr(out, n.Parameters)
	case *UserDefinedValueTypeDefinition:
		out = appendNode(out, n.UnderlyingType)
	case *FunctionDefinition:
		out = appendPtr(out, n.Documentation)
		out = appendPtr(out, n.Parameters)
		out = appendPtr(out, n.Overrides)
		out = appendPtrs(out, n.Modifiers)
		out = appendPtr(out, n.ReturnParameters)
		out = appendPtr(out, n.Body)
	case *ModifierDefinition:
		out = appendPtr(out, n.Documentation)
		out = appendPtr(out, n.Parameters)
		out = appendPtr(out, n.Overrides)
		out = appendPtr(out, n.Body)
	case *ModifierInvocation:
		out = appendPtr(out, n.ModifierName)
		out = appendExprs(out, n.Arguments)
	case *OverrideSpecifier:
		out = appendPtrs(out, n.Overrides)
	case *ParameterList:
		out = appendPtrs(out, n.Parameters)
	case *VariableDeclaration:
		out = appendPtr(out, n.Documentation)
		out = appendNode(out, n.TypeName)
		out = appendPtr(out, n.Overrides)
		out = appendNode(out, n.Value)

	// Type names
	case *ElementaryTypeName:
	case *UserDefinedTypeName:
		out = appendPtr(out, n.PathNode)
	case *FunctionTypeName:
		out = appendPtr(out, n.ParameterTypes)
		out = appendPtr(out, n.ReturnParameterTypes)
	case *ArrayTypeName:
		out = appendNode(out, n.BaseType)
		out = appendNode(out, n.Length)
	case *Mapping:
		out = appendNode(out, n.KeyType)
		out = appendNode(out, n.ValueType)

	// Statements
	case *Block:
		out = appendStmts(out, n.Statements)
	case *UncheckedBlock:
		out = appendStmts(out, n.Statements)
	case *PlaceholderStatement, *Continue, *Break, *InlineAssembly:
	case *IfStatement:
		out = appendNode(out, n.Condition)
		out = appendNode(out, n.TrueBody)
		out = appendNode(out, n.FalseBody)
	case *ForStatement:
		out = appendNode(out, n.InitializationExpression)
		out = appendNode(out, n.Condition)
		out = appendPtr(out, n.LoopExpression)
		out = appendNode(out, n.Body)
	case *WhileStatement:
		out = appendNode(out, n.Condition)
		out = appendNode(out, n.Body)
	case *DoWhileStatement:
		out = appendNode(out, n.Body)
		out = appendNode(out, n.Condition)
	case *Return:
		out = appendNode(out, n.Expression)
	case *RevertStatement:
		out = appendPtr(out, n.ErrorCall)
	case *EmitStatement:
		out = appendPtr(out, n.EventCall)
	case *TryStatement:
		out = appendPtr(out, n.ExternalCall)
		out = appendPtrs(out, n.Clauses)
	case *TryCatchClause:
		out = appendPtr(out, n.Parameters)
		out = appendPtr(out, n.Block)
	case *VariableDeclarationStatement:
		out = appendPtrs(out, n.Declarations)
		out = appendNode(out, n.InitialValue)
	case *ExpressionStatement:
		out = appendNode(out, n.Expression)

	// Expressions
	case *Literal, *Identifier, *UnhandledExpression:
	case *UnaryOperation:
		out = appendNode(out, n.SubExpression)
	case *BinaryOperation:
		out = appendNode(out, n.LeftExpression)
		out = appendNode(out, n.RightExpression)
	case *Conditional:
		out = appendNode(out, n.Condition)
		out = appendNode(out, n.TrueExpression)
		out = appendNode(out, n.FalseExpression)
	case *Assignment:
		out = appendNode(out, n.LeftHandSide)
		out = appendNode(out, n.RightHandSide)
	case *FunctionCall:
		out = appendNode(out, n.Expression)
		out = appendExprs(out, n.Arguments)
	case *FunctionCallOptions:
		out = appendNode(out, n.Expression)
		out = appendExprs(out, n.Options)
	case *IndexAccess:
		out = appendNode(out, n.BaseExpression)
		out = appendNode(out, n.IndexExpression)
	case *IndexRangeAccess:
		out = appendNode(out, n.BaseExpression)
		out = appendNode(out, n.StartExpression)
		out = appendNode(out, n.EndExpression)
	case *MemberAccess:
		out = appendNode(out, n.Expression)
	case *ElementaryTypeNameExpression:
		out = appendPtr(out, n.TypeName)
	case *TupleExpression:
		out = appendExprs(out, n.Components)
	case *NewExpression:
		out = appendNode(out, n.TypeName)
	}

	return out
}

func appendNode(out []Node, n Node) []Node {
	if n == nil {
		return out
	}
	return append(out, n)
}

func appendPtr[T any, PT interface {
	*T
	Node
}](out []Node, n PT) []Node {
	if n == nil {
		return out
	}
	return append(out, n)
}

func appendPtrs[T any, PT interface {
	*T
	Node
}](out []Node, ns []PT) []Node {
	for _, n := range ns {
		out = appendPtr[T, PT](out, n)
	}
	return out
}

func appendNodes(out []Node, ns []Node) []Node {
	for _, n := range ns {
		out = appendNode(out, n)
	}
	return out
}

func appendExprs(out []Node, ns []Expression) []Node {
	for _, n := range ns {
		out = appendNode(out, n)
	}
	return out
}

func appendStmts(out []Node, ns []Statement) []Node {
	for _, n := range ns {
		out = appendNode(out, n)
	}
	return out
}
