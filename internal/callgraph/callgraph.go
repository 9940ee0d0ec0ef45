// Package callgraph follows internal calls and modifier invocations between
// the functions and modifiers of a workspace.
package callgraph

import (
	"github.com/Cyfrin/aderyn-sub000/internal/ast"
	"github.com/Cyfrin/aderyn-sub000/internal/workspace"
)

// Direction selects which way a Graph is explored from its entry points.
type Direction int

const (
	// Inward follows calls from the entries into everything they may execute.
	Inward Direction = iota
	// Outward follows calls backwards to every function or modifier that can
	// reach the entries.
	Outward
)

func (d Direction) String() string {
	if d == Outward {
		return "outward"
	}
	return "inward"
}

// Edges is the workspace-wide call relation. Only implemented functions and
// modifiers appear as nodes.
type Edges struct {
	forward  map[ast.NodeID][]ast.NodeID
	backward map[ast.NodeID][]ast.NodeID
}

// BuildEdges scans every function and modifier body of ws once.
func BuildEdges(ws *workspace.Workspace) *Edges {
	e := &Edges{
		forward:  make(map[ast.NodeID][]ast.NodeID),
		backward: make(map[ast.NodeID][]ast.NodeID),
	}
	for _, fn := range workspace.Nodes[*ast.FunctionDefinition](ws) {
		if fn.Implemented {
			e.scan(ws, fn.ID, fn)
		}
	}
	for _, m := range workspace.Nodes[*ast.ModifierDefinition](ws) {
		e.scan(ws, m.ID, m)
	}
	return e
}

func (e *Edges) scan(ws *workspace.Workspace, from ast.NodeID, body ast.Node) {
	for _, to := range callees(ws, body) {
		if contains(e.forward[from], to) {
			continue
		}
		e.forward[from] = append(e.forward[from], to)
		e.backward[to] = append(e.backward[to], from)
	}
}

// Callees returns the functions and modifiers fn calls directly.
func (e *Edges) Callees(id ast.NodeID) []ast.NodeID {
	return e.forward[id]
}

// Callers returns the functions and modifiers that call id directly.
func (e *Edges) Callers(id ast.NodeID) []ast.NodeID {
	return e.backward[id]
}

// callees collects, in source order, the implemented functions and the
// modifiers referenced by calls and modifier invocations under node.
func callees(ws *workspace.Workspace, node ast.Node) []ast.NodeID {
	var out []ast.NodeID
	add := func(id ast.NodeID) {
		if isCallable(ws, id) && !contains(out, id) {
			out = append(out, id)
		}
	}

	ast.Inspect(node, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.FunctionCall:
			if id, ok := ast.ReferencedDeclarationOf(unwrapOptions(n.Expression)); ok {
				add(id)
			}
		case *ast.ModifierInvocation:
			if n.ModifierName != nil {
				add(n.ModifierName.ReferencedDeclaration)
			}
		}
		return true
	})
	return out
}

func unwrapOptions(expr ast.Expression) ast.Expression {
	if opts, ok := expr.(*ast.FunctionCallOptions); ok {
		return opts.Expression
	}
	return expr
}

func isCallable(ws *workspace.Workspace, id ast.NodeID) bool {
	node, ok := ws.NodeByID(id)
	if !ok {
		return false
	}
	switch n := node.(type) {
	case *ast.FunctionDefinition:
		return n.Implemented
	case *ast.ModifierDefinition:
		return true
	}
	return false
}

func contains(ids []ast.NodeID, id ast.NodeID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// Graph is the part of the call relation reachable from a set of entry
// points in one direction.
type Graph struct {
	ws        *workspace.Workspace
	direction Direction
	order     []ast.NodeID
	seen      map[ast.NodeID]bool
}

// New explores ws from entries. Entries may be functions, modifiers or any
// node inside them, such as a single call expression.
func New(ws *workspace.Workspace, direction Direction, entries ...ast.Node) *Graph {
	return BuildEdges(ws).Graph(ws, direction, entries...)
}

// Graph explores from entries reusing precomputed edges.
//
// Inward, the graph holds each function or modifier entry itself and every
// function or modifier the entries may transitively call. Outward, it holds
// the function or modifier enclosing each entry and every function or
// modifier that can transitively reach it.
func (e *Edges) Graph(ws *workspace.Workspace, direction Direction, entries ...ast.Node) *Graph {
	g := &Graph{ws: ws, direction: direction, seen: make(map[ast.NodeID]bool)}

	var next map[ast.NodeID][]ast.NodeID
	var surface []ast.NodeID
	switch direction {
	case Outward:
		next = e.backward
		for _, entry := range entries {
			if id, ok := enclosingCallable(ws, entry); ok {
				surface = append(surface, id)
			}
		}
	default:
		next = e.forward
		for _, entry := range entries {
			if entry == nil {
				continue
			}
			if id, ok := entry.GetNodeID(); ok && isDefinition(entry) && isCallable(ws, id) {
				surface = append(surface, id)
				continue
			}
			surface = append(surface, callees(ws, entry)...)
		}
	}

	for _, id := range surface {
		g.dfs(id, next, 0)
	}
	return g
}

func isDefinition(node ast.Node) bool {
	switch node.(type) {
	case *ast.FunctionDefinition, *ast.ModifierDefinition:
		return true
	}
	return false
}

func enclosingCallable(ws *workspace.Workspace, node ast.Node) (ast.NodeID, bool) {
	if node == nil {
		return 0, false
	}
	if isDefinition(node) {
		return node.GetNodeID()
	}
	if fn, ok := ws.FunctionDefinitionOf(node); ok {
		return fn.ID, true
	}
	if m, ok := ws.ModifierDefinitionOf(node); ok {
		return m.ID, true
	}
	return 0, false
}

func (g *Graph) dfs(id ast.NodeID, next map[ast.NodeID][]ast.NodeID, depth int) {
	if g.seen[id] || depth >= ast.MaxDepth {
		return
	}
	g.seen[id] = true
	g.order = append(g.order, id)
	for _, to := range next[id] {
		g.dfs(to, next, depth+1)
	}
}

func (g *Graph) Direction() Direction {
	return g.direction
}

// Contains reports whether id is part of the graph.
func (g *Graph) Contains(id ast.NodeID) bool {
	return g.seen[id]
}

// IDs returns the graph's functions and modifiers in discovery order.
func (g *Graph) IDs() []ast.NodeID {
	return g.order
}

// Nodes returns the graph's functions and modifiers in discovery order.
func (g *Graph) Nodes() []ast.Node {
	out := make([]ast.Node, 0, len(g.order))
	for _, id := range g.order {
		if node, ok := g.ws.NodeByID(id); ok {
			out = append(out, node)
		}
	}
	return out
}

// Accept calls visit for every node of the graph in discovery order.
func (g *Graph) Accept(visit func(ast.Node)) {
	for _, node := range g.Nodes() {
		visit(node)
	}
}
