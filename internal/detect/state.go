package detect

import (
	"github.com/Cyfrin/aderyn-sub000/internal/ast"
	"github.com/Cyfrin/aderyn-sub000/internal/callgraph"
	"github.com/Cyfrin/aderyn-sub000/internal/mutation"
	"github.com/Cyfrin/aderyn-sub000/internal/workspace"
)

// stateChanges merges the storage writes of entry and of everything it may
// call.
func stateChanges(ws *workspace.Workspace, edges *callgraph.Edges, entry ast.Node) *mutation.Finder {
	var finders []*mutation.Finder
	edges.Graph(ws, callgraph.Inward, entry).Accept(func(n ast.Node) {
		finders = append(finders, mutation.Find(ws, n))
	})
	return mutation.Merge(finders...)
}

// workspaceChanges merges the storage writes of every implemented function
// and every modifier of ws.
func workspaceChanges(ws *workspace.Workspace) *mutation.Finder {
	var finders []*mutation.Finder
	for _, fn := range workspace.Nodes[*ast.FunctionDefinition](ws) {
		if fn.Implemented {
			finders = append(finders, mutation.Find(ws, fn))
		}
	}
	for _, m := range workspace.Nodes[*ast.ModifierDefinition](ws) {
		finders = append(finders, mutation.Find(ws, m))
	}
	return mutation.Merge(finders...)
}

// implementedEntryPoints returns implemented public and external functions.
func implementedEntryPoints(ws *workspace.Workspace) []*ast.FunctionDefinition {
	var out []*ast.FunctionDefinition
	for _, fn := range workspace.Nodes[*ast.FunctionDefinition](ws) {
		if fn.Implemented && fn.IsCallableFromOutside() {
			out = append(out, fn)
		}
	}
	return out
}
