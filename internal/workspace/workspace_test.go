package workspace_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyfrin/aderyn-sub000/internal/ast"
	"github.com/Cyfrin/aderyn-sub000/internal/ast/asttest"
	"github.com/Cyfrin/aderyn-sub000/internal/workspace"
)

type fixture struct {
	unit     *ast.SourceUnit
	contract *ast.ContractDefinition
	counter  *ast.VariableDeclaration
	bump     *ast.FunctionDefinition
	guard    *ast.ModifierDefinition
	free     *ast.FunctionDefinition
	inc      *ast.UnaryOperation
	freeRet  *ast.Return
}

func newFixture() *fixture {
	b := asttest.New()
	f := &fixture{}

	f.counter = b.StateVar("counter", "uint256")
	f.inc = b.Unary("++", false, b.Ident(f.counter))
	f.bump = b.Function("bump", b.ExprStmt(f.inc))
	f.guard = b.Modifier("guard", b.If(b.Binary(">", b.Ident(f.counter), b.Number("0"), "bool"), b.Placeholder()))
	f.bump.Modifiers = []*ast.ModifierInvocation{b.Invoke(f.guard)}
	f.contract = b.Contract("Counter", f.counter, f.guard, f.bump)

	f.freeRet = b.Return(b.Number("7"))
	f.free = b.Function("seven", f.freeRet)
	f.free.Kind = ast.FunctionKindFreeFunc

	f.unit = b.SourceUnit("src/Counter.sol", b.Pragma("solidity", "0.8", ".20"), f.contract, f.free)
	f.unit.Source = strings.Repeat("x\n", 200)
	return f
}

func TestBuildContexts(t *testing.T) {
	f := newFixture()
	ws := workspace.Build(f.unit)

	ctx, ok := ws.ContextOf(f.inc)
	require.True(t, ok)
	assert.Equal(t, f.unit.ID, ctx.SourceUnitID)
	assert.Equal(t, workspace.Some(f.contract.ID), ctx.ContractDefinitionID)
	assert.Equal(t, workspace.Some(f.bump.ID), ctx.FunctionDefinitionID)
	assert.False(t, ctx.ModifierDefinitionID.Valid)

	// A definition is recorded with the scope it appears in, not its own.
	ctx, ok = ws.ContextOf(f.contract)
	require.True(t, ok)
	assert.False(t, ctx.ContractDefinitionID.Valid)

	ctx, ok = ws.ContextOf(f.bump)
	require.True(t, ok)
	assert.Equal(t, workspace.Some(f.contract.ID), ctx.ContractDefinitionID)
	assert.False(t, ctx.FunctionDefinitionID.Valid)

	placeholder, ok := workspace.ClosestAncestorOf[*ast.ModifierDefinition](ws, workspace.Nodes[*ast.PlaceholderStatement](ws)[0])
	require.True(t, ok)
	assert.Same(t, f.guard, placeholder)

	ctx, ok = ws.ContextOf(f.freeRet)
	require.True(t, ok)
	assert.False(t, ctx.ContractDefinitionID.Valid)
	assert.Equal(t, workspace.Some(f.free.ID), ctx.FunctionDefinitionID)

	unit, ok := ws.SourceUnitOf(f.unit)
	require.True(t, ok)
	assert.Same(t, f.unit, unit)
}

func TestFunctionImpliesContractForMembers(t *testing.T) {
	f := newFixture()
	ws := workspace.Build(f.unit)

	for _, id := range ws.IDs() {
		node, _ := ws.NodeByID(id)
		ctx, ok := ws.ContextOf(node)
		require.True(t, ok)
		if !ctx.FunctionDefinitionID.Valid {
			continue
		}
		fn, ok := ws.FunctionDefinitionOf(node)
		require.True(t, ok)
		if fn.Kind == ast.FunctionKindFreeFunc {
			continue
		}
		assert.True(t, ctx.ContractDefinitionID.Valid, "node %d has a function but no contract", id)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	f := newFixture()
	first := workspace.Build(f.unit)
	second := workspace.Build(f.unit)

	require.Equal(t, first.IDs(), second.IDs())
	for _, id := range first.IDs() {
		node, _ := first.NodeByID(id)
		a, _ := first.ContextOf(node)
		b, _ := second.ContextOf(node)
		assert.Equal(t, a, b)
	}
	assert.Equal(t, first.NodesOfType(ast.IDENTIFIER), second.NodesOfType(ast.IDENTIFIER))
}

func TestNodesByKind(t *testing.T) {
	f := newFixture()
	ws := workspace.Build(f.unit)

	functions := workspace.Nodes[*ast.FunctionDefinition](ws)
	require.Len(t, functions, 2)
	assert.Same(t, f.bump, functions[0])
	assert.Same(t, f.free, functions[1])

	identifiers := workspace.Nodes[*ast.Identifier](ws)
	assert.Len(t, identifiers, 2)

	expressions := workspace.Nodes[ast.Expression](ws)
	require.NotEmpty(t, expressions)
	for i := 1; i < len(expressions); i++ {
		prev, _ := expressions[i-1].GetNodeID()
		cur, _ := expressions[i].GetNodeID()
		assert.Less(t, prev, cur)
	}

	assert.Empty(t, workspace.Nodes[*ast.EmitStatement](ws))
	assert.Equal(t, len(ws.IDs()), ws.Len())
}

func TestDanglingReferences(t *testing.T) {
	f := newFixture()
	ws := workspace.Build(f.unit)

	_, ok := ws.NodeByID(987654)
	assert.False(t, ok)

	_, ok = workspace.Lookup[*ast.VariableDeclaration](ws, f.bump.ID)
	assert.False(t, ok, "lookup of the wrong kind must miss")

	v, ok := workspace.Lookup[*ast.VariableDeclaration](ws, f.counter.ID)
	require.True(t, ok)
	assert.Same(t, f.counter, v)

	orphan := &ast.Identifier{NodeInfo: ast.NodeInfo{ID: 987655}}
	_, ok = ws.ContractDefinitionOf(orphan)
	assert.False(t, ok)
	_, ok = ws.SortKey(orphan)
	assert.False(t, ok)
	_, ok = ws.ContractDefinitionOf(nil)
	assert.False(t, ok)
}

func TestDuplicateIDsKeepFirst(t *testing.T) {
	first := &ast.SourceUnit{NodeInfo: ast.NodeInfo{ID: 1, Src: "0:10:0"}, AbsolutePath: "a.sol"}
	shadow := &ast.PragmaDirective{NodeInfo: ast.NodeInfo{ID: 1, Src: "0:5:1"}}
	second := &ast.SourceUnit{NodeInfo: ast.NodeInfo{ID: 2, Src: "0:10:1"}, AbsolutePath: "b.sol", Nodes: []ast.Node{shadow}}

	ws := workspace.Build(first, second, nil)
	node, ok := ws.NodeByID(1)
	require.True(t, ok)
	assert.Same(t, first, node)
	assert.Equal(t, 2, ws.Len())
	assert.Len(t, ws.SourceUnits(), 2)
}

func TestSortKey(t *testing.T) {
	f := newFixture()
	ws := workspace.Build(f.unit)

	key, ok := ws.SortKey(f.inc)
	require.True(t, ok)
	assert.Equal(t, "src/Counter.sol", key.Path)
	assert.Equal(t, int(f.inc.ID)/2+1, key.Line)
	assert.Equal(t, (ast.SourceLocation{Offset: int(f.inc.ID), Length: 1}).Chopped(), key.Location)

	// Name locations win over the full extent unless they are unknown.
	f.bump.NameLocation = "3:4:0"
	key, ok = ws.SortKey(f.bump)
	require.True(t, ok)
	assert.Equal(t, "3:4", key.Location)
	assert.Equal(t, 2, key.Line)

	key, ok = ws.SortKey(f.contract)
	require.True(t, ok)
	assert.Equal(t, (ast.SourceLocation{Offset: int(f.contract.ID), Length: 1}).Chopped(), key.Location)

	f.unit.Source = ""
	key, ok = ws.SortKey(f.inc)
	require.True(t, ok)
	assert.Zero(t, key.Line)

	a := workspace.SortKey{Path: "a.sol", Line: 9, Location: "1:1"}
	b := workspace.SortKey{Path: "b.sol", Line: 1, Location: "1:1"}
	c := workspace.SortKey{Path: "b.sol", Line: 1, Location: "2:1"}
	assert.True(t, a.Less(b))
	assert.True(t, b.Less(c))
	assert.False(t, c.Less(a))
}

func TestSortKeyComparesOffsetsNumerically(t *testing.T) {
	near := workspace.SortKey{Path: "a.sol", Line: 3, Location: "99:4"}
	far := workspace.SortKey{Path: "a.sol", Line: 3, Location: "100:4"}
	longer := workspace.SortKey{Path: "a.sol", Line: 3, Location: "100:12"}

	assert.True(t, near.Less(far))
	assert.False(t, far.Less(near))
	assert.True(t, far.Less(longer))
	assert.False(t, far.Less(far))
}

func TestAncestry(t *testing.T) {
	f := newFixture()
	ws := workspace.Build(f.unit)

	parent, ok := ws.Parent(f.inc)
	require.True(t, ok)
	assert.Equal(t, ast.EXPRESSION_STATEMENT, parent.NodeType())

	line := ws.AncestralLine(f.inc)
	require.NotEmpty(t, line)
	assert.Same(t, parent, line[0])
	assert.Same(t, f.unit, line[len(line)-1])

	fn, ok := ws.ClosestAncestor(f.inc, ast.FUNCTION_DEFINITION)
	require.True(t, ok)
	assert.Same(t, f.bump, fn)

	stmt, ok := workspace.ClosestAncestorOf[ast.Statement](ws, f.inc)
	require.True(t, ok)
	assert.Same(t, parent, stmt)

	_, ok = ws.ClosestAncestor(f.inc, ast.MODIFIER_DEFINITION)
	assert.False(t, ok)
	_, ok = ws.Parent(f.unit)
	assert.False(t, ok)

	children := ws.Children(f.contract)
	require.Len(t, children, 3)
	assert.Same(t, f.counter, children[0])
	assert.Same(t, f.bump, children[2])
}

func TestSourceCodeOf(t *testing.T) {
	b := asttest.New()
	x := b.StateVar("x", "uint256")
	x.Src = "13:10:0"
	unit := b.SourceUnit("X.sol", b.Contract("X", x))
	unit.Source = "contract X { uint256 x; }"

	ws := workspace.Build(unit)
	code, ok := ws.SourceCodeOf(x)
	require.True(t, ok)
	assert.Equal(t, "uint256 x;", code)

	x.Src = "20:100:0"
	_, ok = ws.SourceCodeOf(x)
	assert.False(t, ok)
}
