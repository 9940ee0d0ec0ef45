package detect

import (
	"github.com/Cyfrin/aderyn-sub000/internal/ast"
	"github.com/Cyfrin/aderyn-sub000/internal/callgraph"
	"github.com/Cyfrin/aderyn-sub000/internal/pragma"
	"github.com/Cyfrin/aderyn-sub000/internal/workspace"
)

// Compilers from 0.5.0 on reject state changes in view and pure functions.
var enforcedConstness = pragma.Version{Major: 0, Minor: 5, Patch: 0}

// constantFunctionChangesState flags view and pure functions that write
// storage themselves or through anything they call. Only source units whose
// pragma admits a compiler older than 0.5.0 are checked.
type constantFunctionChangesState struct{}

func (constantFunctionChangesState) Name() string       { return "constant-function-changes-state" }
func (constantFunctionChangesState) Title() string      { return "Constant functions changes state" }
func (constantFunctionChangesState) Severity() Severity { return High }
func (constantFunctionChangesState) Description() string {
	return "Function is declared constant/view but it changes state. " +
		"Ensure that the attributes of contract compiled prior to 0.5 are correct."
}

func (constantFunctionChangesState) Detect(ws *workspace.Workspace) ([]Instance, error) {
	c := newCollector(ws)
	var edges *callgraph.Edges

	for _, fn := range implementedEntryPoints(ws) {
		if fn.StateMutability != ast.View && fn.StateMutability != ast.Pure {
			continue
		}
		if !compilesBelow(ws, fn, enforcedConstness) {
			continue
		}
		if edges == nil {
			edges = callgraph.BuildEdges(ws)
		}
		if stateChanges(ws, edges, fn).HasAnyMutation() {
			c.capture(fn, fn.Name)
		}
	}

	return c.instances(), nil
}

// compilesBelow reports whether the source unit of node may be compiled by a
// compiler older than v. Units without a usable version pragma may be.
func compilesBelow(ws *workspace.Workspace, node ast.Node, v pragma.Version) bool {
	unit, ok := ws.SourceUnitOf(node)
	if !ok {
		return false
	}
	for _, n := range unit.Nodes {
		directive, ok := n.(*ast.PragmaDirective)
		if !ok {
			continue
		}
		constraint, err := pragma.FromLiterals(directive.Literals)
		if err != nil {
			continue
		}
		if !constraint.AllowsBelow(v) {
			return false
		}
	}
	return true
}
