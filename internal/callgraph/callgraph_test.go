package callgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyfrin/aderyn-sub000/internal/ast"
	"github.com/Cyfrin/aderyn-sub000/internal/ast/asttest"
	"github.com/Cyfrin/aderyn-sub000/internal/callgraph"
	"github.com/Cyfrin/aderyn-sub000/internal/workspace"
)

type chain struct {
	ws            *workspace.Workspace
	a, b, c, d, e *ast.FunctionDefinition
	m             *ast.ModifierDefinition
	callInA       *ast.FunctionCall
	iface         *ast.FunctionDefinition
}

// a -> b -> c, b is guarded by m, m -> e, d is isolated, d calls an
// unimplemented function.
func newChain() *chain {
	bld := asttest.New()
	ch := &chain{}

	ch.e = bld.Function("e")
	ch.c = bld.Function("c")
	ch.m = bld.Modifier("m", bld.ExprStmt(bld.CallFunction(ch.e)), bld.Placeholder())
	ch.b = bld.Function("b", bld.ExprStmt(bld.CallFunction(ch.c)), bld.ExprStmt(bld.CallFunction(ch.c)))
	ch.b.Modifiers = []*ast.ModifierInvocation{bld.Invoke(ch.m)}
	ch.callInA = bld.CallFunction(ch.b)
	ch.a = bld.Function("a", bld.ExprStmt(ch.callInA))

	ch.iface = bld.Function("ext")
	ch.iface.Implemented = false
	ch.iface.Body = nil
	ch.d = bld.Function("d", bld.ExprStmt(bld.CallFunction(ch.iface)))

	unit := bld.SourceUnit("Chain.sol", bld.Contract("Chain", ch.a, ch.b, ch.c, ch.d, ch.e, ch.m, ch.iface))
	ch.ws = workspace.Build(unit)
	return ch
}

func TestInward(t *testing.T) {
	ch := newChain()

	g := callgraph.New(ch.ws, callgraph.Inward, ch.a)
	assert.Equal(t, []ast.NodeID{ch.a.ID, ch.b.ID, ch.m.ID, ch.e.ID, ch.c.ID}, g.IDs())
	assert.False(t, g.Contains(ch.d.ID))
	assert.Equal(t, callgraph.Inward, g.Direction())

	fromCall := callgraph.New(ch.ws, callgraph.Inward, ch.callInA)
	assert.Equal(t, []ast.NodeID{ch.b.ID, ch.m.ID, ch.e.ID, ch.c.ID}, fromCall.IDs())

	isolated := callgraph.New(ch.ws, callgraph.Inward, ch.d)
	assert.Equal(t, []ast.NodeID{ch.d.ID}, isolated.IDs())
}

func TestOutward(t *testing.T) {
	ch := newChain()

	g := callgraph.New(ch.ws, callgraph.Outward, ch.e)
	assert.Equal(t, []ast.NodeID{ch.e.ID, ch.m.ID, ch.b.ID, ch.a.ID}, g.IDs())

	fromCall := callgraph.New(ch.ws, callgraph.Outward, ch.callInA)
	assert.Equal(t, []ast.NodeID{ch.a.ID}, fromCall.IDs())

	none := callgraph.New(ch.ws, callgraph.Outward, ch.ws.SourceUnits()[0])
	assert.Empty(t, none.IDs())
}

func TestEdges(t *testing.T) {
	ch := newChain()
	edges := callgraph.BuildEdges(ch.ws)

	assert.Equal(t, []ast.NodeID{ch.m.ID, ch.c.ID}, edges.Callees(ch.b.ID))
	assert.Equal(t, []ast.NodeID{ch.b.ID}, edges.Callers(ch.c.ID))
	assert.Empty(t, edges.Callees(ch.d.ID), "unimplemented targets are not graph nodes")
}

func TestAccept(t *testing.T) {
	ch := newChain()
	g := callgraph.New(ch.ws, callgraph.Inward, ch.b)

	var names []string
	g.Accept(func(n ast.Node) {
		switch n := n.(type) {
		case *ast.FunctionDefinition:
			names = append(names, n.Name)
		case *ast.ModifierDefinition:
			names = append(names, "modifier "+n.Name)
		}
	})
	require.Len(t, names, 4)
	assert.Equal(t, []string{"b", "modifier m", "e", "c"}, names)
}
