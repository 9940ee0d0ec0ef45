// Package workspace indexes a forest of source units so that detectors can
// find nodes by kind, resolve weak references and ask which source unit,
// contract, function or modifier encloses a node without re-walking trees.
package workspace

import (
	"sort"

	"github.com/tliron/commonlog"

	"github.com/Cyfrin/aderyn-sub000/internal/ast"
)

var log = commonlog.GetLogger("aderyn.workspace")

// OptionalID is an ID that may be absent. The zero value is absent.
type OptionalID struct {
	ID    ast.NodeID
	Valid bool
}

func Some(id ast.NodeID) OptionalID {
	return OptionalID{ID: id, Valid: true}
}

// NodeContext records the constructs that lexically enclose a node.
// SourceUnitID is always set for indexed nodes.
type NodeContext struct {
	SourceUnitID         ast.NodeID
	ContractDefinitionID OptionalID
	FunctionDefinitionID OptionalID
	ModifierDefinitionID OptionalID
}

// Workspace is the index built by Build. It is never modified afterwards and
// may be shared between goroutines.
type Workspace struct {
	nodes       map[ast.NodeID]ast.Node
	contexts    map[ast.NodeID]NodeContext
	byType      map[ast.NodeType][]ast.NodeID
	parents     map[ast.NodeID]ast.NodeID
	children    map[ast.NodeID][]ast.NodeID
	sourceUnits []*ast.SourceUnit
}

func newWorkspace() *Workspace {
	return &Workspace{
		nodes:    make(map[ast.NodeID]ast.Node),
		contexts: make(map[ast.NodeID]NodeContext),
		byType:   make(map[ast.NodeType][]ast.NodeID),
		parents:  make(map[ast.NodeID]ast.NodeID),
		children: make(map[ast.NodeID][]ast.NodeID),
	}
}

// Len returns the number of indexed nodes.
func (ws *Workspace) Len() int {
	return len(ws.nodes)
}

// SourceUnits returns the indexed source units in the order they were given to Build.
func (ws *Workspace) SourceUnits() []*ast.SourceUnit {
	return ws.sourceUnits
}

// NodeByID resolves a weak reference. Dangling references report false.
func (ws *Workspace) NodeByID(id ast.NodeID) (ast.Node, bool) {
	node, ok := ws.nodes[id]
	return node, ok
}

// ContextOf returns the enclosing-construct record of an indexed node.
func (ws *Workspace) ContextOf(node ast.Node) (NodeContext, bool) {
	if node == nil {
		return NodeContext{}, false
	}
	id, ok := node.GetNodeID()
	if !ok {
		return NodeContext{}, false
	}
	ctx, ok := ws.contexts[id]
	return ctx, ok
}

// Lookup resolves id and checks that it names a node of type T.
func Lookup[T ast.Node](ws *Workspace, id ast.NodeID) (T, bool) {
	var zero T
	node, ok := ws.nodes[id]
	if !ok {
		return zero, false
	}
	typed, ok := node.(T)
	return typed, ok
}

// Nodes returns every indexed node of type T, e.g. Nodes[*ast.FunctionCall](ws).
// For a concrete node type the order is traversal order; for an interface such
// as ast.Expression it is ascending ID order.
func Nodes[T ast.Node](ws *Workspace) []T {
	var zero T
	if any(zero) == nil {
		var out []T
		for _, id := range ws.IDs() {
			if typed, ok := ws.nodes[id].(T); ok {
				out = append(out, typed)
			}
		}
		return out
	}

	ids := ws.byType[zero.NodeType()]
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if typed, ok := ws.nodes[id].(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

// NodesOfType is the untyped form of Nodes.
func (ws *Workspace) NodesOfType(t ast.NodeType) []ast.Node {
	ids := ws.byType[t]
	out := make([]ast.Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, ws.nodes[id])
	}
	return out
}

// IDs returns every indexed ID in ascending order.
func (ws *Workspace) IDs() []ast.NodeID {
	ids := make([]ast.NodeID, 0, len(ws.nodes))
	for id := range ws.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
