// Package asttest builds small, well-formed ASTs for tests. IDs are assigned
// in creation order starting at 1, and each node's src offset equals its ID.
package asttest

import (
	"fmt"

	"github.com/Cyfrin/aderyn-sub000/internal/ast"
)

type Builder struct {
	next ast.NodeID
}

func New() *Builder {
	return &Builder{}
}

// NextID returns the ID the next node will receive.
func (b *Builder) NextID() ast.NodeID {
	return b.next + 1
}

func (b *Builder) info() ast.NodeInfo {
	b.next++
	return ast.NodeInfo{ID: b.next, Src: fmt.Sprintf("%d:1:0", b.next)}
}

func typed(ts string) ast.ExprInfo {
	return ast.ExprInfo{TypeDescriptions: ast.TypeDescriptions{TypeString: ts}}
}

func (b *Builder) SourceUnit(path string, nodes ...ast.Node) *ast.SourceUnit {
	return &ast.SourceUnit{NodeInfo: b.info(), AbsolutePath: path, Nodes: nodes}
}

func (b *Builder) Pragma(literals ...string) *ast.PragmaDirective {
	return &ast.PragmaDirective{NodeInfo: b.info(), Literals: literals}
}

func (b *Builder) Contract(name string, nodes ...ast.Node) *ast.ContractDefinition {
	return &ast.ContractDefinition{
		NodeInfo:     b.info(),
		Name:         name,
		Kind:         ast.ContractKindContract,
		Nodes:        nodes,
		NameLocation: "-1:-1:-1",
	}
}

func (b *Builder) Struct(name string, members ...*ast.VariableDeclaration) *ast.StructDefinition {
	return &ast.StructDefinition{NodeInfo: b.info(), Name: name, Members: members}
}

func (b *Builder) StateVar(name, typeString string) *ast.VariableDeclaration {
	return &ast.VariableDeclaration{
		NodeInfo:         b.info(),
		Name:             name,
		StateVariable:    true,
		Mutability:       ast.Mutable,
		StorageLocation:  ast.LocationDefault,
		Visibility:       ast.Internal,
		TypeDescriptions: ast.TypeDescriptions{TypeString: typeString},
	}
}

func (b *Builder) LocalVar(name, typeString string, location ast.StorageLocation) *ast.VariableDeclaration {
	return &ast.VariableDeclaration{
		NodeInfo:         b.info(),
		Name:             name,
		Mutability:       ast.Mutable,
		StorageLocation:  location,
		Visibility:       ast.Internal,
		TypeDescriptions: ast.TypeDescriptions{TypeString: typeString},
	}
}

func (b *Builder) Params(params ...*ast.VariableDeclaration) *ast.ParameterList {
	return &ast.ParameterList{NodeInfo: b.info(), Parameters: params}
}

func (b *Builder) Function(name string, stmts ...ast.Statement) *ast.FunctionDefinition {
	return &ast.FunctionDefinition{
		NodeInfo:         b.info(),
		Name:             name,
		Kind:             ast.FunctionKindFunction,
		StateMutability:  ast.NonPayable,
		Visibility:       ast.Public,
		Implemented:      true,
		Parameters:       b.Params(),
		ReturnParameters: b.Params(),
		Body:             b.Block(stmts...),
	}
}

func (b *Builder) Modifier(name string, stmts ...ast.Statement) *ast.ModifierDefinition {
	return &ast.ModifierDefinition{
		NodeInfo:   b.info(),
		Name:       name,
		Visibility: ast.Internal,
		Parameters: b.Params(),
		Body:       b.Block(stmts...),
	}
}

func (b *Builder) Invoke(modifier *ast.ModifierDefinition) *ast.ModifierInvocation {
	return &ast.ModifierInvocation{
		NodeInfo: b.info(),
		ModifierName: &ast.IdentifierPath{
			NodeInfo:              b.info(),
			Name:                  modifier.Name,
			ReferencedDeclaration: modifier.ID,
		},
		Kind: "modifierInvocation",
	}
}

func (b *Builder) Block(stmts ...ast.Statement) *ast.Block {
	return &ast.Block{NodeInfo: b.info(), Statements: stmts}
}

func (b *Builder) Placeholder() *ast.PlaceholderStatement {
	return &ast.PlaceholderStatement{NodeInfo: b.info()}
}

func (b *Builder) ExprStmt(expr ast.Expression) *ast.ExpressionStatement {
	return &ast.ExpressionStatement{NodeInfo: b.info(), Expression: expr}
}

func (b *Builder) Return(expr ast.Expression) *ast.Return {
	return &ast.Return{NodeInfo: b.info(), Expression: expr}
}

func (b *Builder) If(cond ast.Expression, then ast.Statement) *ast.IfStatement {
	return &ast.IfStatement{NodeInfo: b.info(), Condition: cond, TrueBody: then}
}

// DeclStmt declares decls (nil entries are allowed) initialised by init.
func (b *Builder) DeclStmt(init ast.Expression, decls ...*ast.VariableDeclaration) *ast.VariableDeclarationStatement {
	stmt := &ast.VariableDeclarationStatement{NodeInfo: b.info(), Declarations: decls, InitialValue: init}
	for _, decl := range decls {
		if decl == nil {
			stmt.Assignments = append(stmt.Assignments, ast.IrrelevantID)
			continue
		}
		stmt.Assignments = append(stmt.Assignments, decl.ID)
	}
	return stmt
}

// Ident references decl, copying its type string.
func (b *Builder) Ident(decl *ast.VariableDeclaration) *ast.Identifier {
	return &ast.Identifier{
		NodeInfo:              b.info(),
		ExprInfo:              typed(decl.TypeDescriptions.TypeString),
		Name:                  decl.Name,
		ReferencedDeclaration: ast.Ref(decl.ID),
	}
}

// IdentAs references decl with an explicit type string, e.g. the
// "storage pointer" spelling solc uses for assignment targets.
func (b *Builder) IdentAs(decl *ast.VariableDeclaration, typeString string) *ast.Identifier {
	id := b.Ident(decl)
	id.TypeDescriptions.TypeString = typeString
	return id
}

func (b *Builder) Name(name string, ref ast.NodeID, typeString string) *ast.Identifier {
	return &ast.Identifier{
		NodeInfo:              b.info(),
		ExprInfo:              typed(typeString),
		Name:                  name,
		ReferencedDeclaration: ast.Ref(ref),
	}
}

func (b *Builder) Number(value string) *ast.Literal {
	return &ast.Literal{
		NodeInfo: b.info(),
		ExprInfo: typed("int_const " + value),
		Kind:     ast.LiteralNumber,
		Value:    value,
	}
}

func (b *Builder) Index(base, index ast.Expression, typeString string) *ast.IndexAccess {
	return &ast.IndexAccess{NodeInfo: b.info(), ExprInfo: typed(typeString), BaseExpression: base, IndexExpression: index}
}

func (b *Builder) Member(expr ast.Expression, member, typeString string) *ast.MemberAccess {
	return &ast.MemberAccess{NodeInfo: b.info(), ExprInfo: typed(typeString), Expression: expr, MemberName: member}
}

func (b *Builder) Assign(lhs, rhs ast.Expression) *ast.Assignment {
	return b.AssignOp("=", lhs, rhs)
}

func (b *Builder) AssignOp(op string, lhs, rhs ast.Expression) *ast.Assignment {
	ts := ""
	if lhs != nil {
		ts = lhs.GetTypeDescriptions().TypeString
	}
	return &ast.Assignment{NodeInfo: b.info(), ExprInfo: typed(ts), Operator: op, LeftHandSide: lhs, RightHandSide: rhs}
}

func (b *Builder) Unary(op string, prefix bool, sub ast.Expression) *ast.UnaryOperation {
	ts := "tuple()"
	if sub != nil && op != "delete" {
		ts = sub.GetTypeDescriptions().TypeString
	}
	return &ast.UnaryOperation{NodeInfo: b.info(), ExprInfo: typed(ts), Operator: op, Prefix: prefix, SubExpression: sub}
}

func (b *Builder) Binary(op string, left, right ast.Expression, typeString string) *ast.BinaryOperation {
	return &ast.BinaryOperation{NodeInfo: b.info(), ExprInfo: typed(typeString), Operator: op, LeftExpression: left, RightExpression: right}
}

func (b *Builder) Tuple(components ...ast.Expression) *ast.TupleExpression {
	return &ast.TupleExpression{NodeInfo: b.info(), ExprInfo: typed("tuple()"), Components: components}
}

// Call calls callee; the call's type string is typeString.
func (b *Builder) Call(typeString string, callee ast.Expression, args ...ast.Expression) *ast.FunctionCall {
	return &ast.FunctionCall{
		NodeInfo:   b.info(),
		ExprInfo:   typed(typeString),
		Kind:       ast.FunctionCallKindFunctionCall,
		Expression: callee,
		Arguments:  args,
	}
}

// CallFunction builds a direct internal call of fn.
func (b *Builder) CallFunction(fn *ast.FunctionDefinition, args ...ast.Expression) *ast.FunctionCall {
	callee := &ast.Identifier{
		NodeInfo:              b.info(),
		ExprInfo:              typed("function ()"),
		Name:                  fn.Name,
		ReferencedDeclaration: ast.Ref(fn.ID),
	}
	ts := "tuple()"
	if fn.ReturnsValues() {
		ts = fn.ReturnParameters.Parameters[0].TypeDescriptions.TypeString
	}
	return b.Call(ts, callee, args...)
}
