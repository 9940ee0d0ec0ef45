package detect

import (
	"github.com/Cyfrin/aderyn-sub000/internal/ast"
	"github.com/Cyfrin/aderyn-sub000/internal/workspace"
)

// uncheckedReturn flags calls to functions that return values when the call
// is a statement of its own, so the returned values are dropped.
type uncheckedReturn struct{}

func (uncheckedReturn) Name() string       { return "unchecked-return" }
func (uncheckedReturn) Title() string      { return "Unchecked Return" }
func (uncheckedReturn) Severity() Severity { return Low }
func (uncheckedReturn) Description() string {
	return "Function returns a value but it is ignored. Consider checking the return value."
}

func (uncheckedReturn) Detect(ws *workspace.Workspace) ([]Instance, error) {
	c := newCollector(ws)

	for _, call := range workspace.Nodes[*ast.FunctionCall](ws) {
		if call.Kind != ast.FunctionCallKindFunctionCall {
			continue
		}
		id, ok := ast.ReferencedDeclarationOf(call.Expression)
		if !ok {
			continue
		}
		callee, ok := workspace.Lookup[*ast.FunctionDefinition](ws, id)
		if !ok || !callee.ReturnsValues() {
			continue
		}

		parent, ok := ws.Parent(call)
		if !ok || parent.NodeType() != ast.EXPRESSION_STATEMENT {
			continue
		}
		block, ok := ws.Parent(parent)
		if !ok {
			continue
		}
		if t := block.NodeType(); t == ast.BLOCK || t == ast.UNCHECKED_BLOCK {
			c.capture(call, callText(call, callee))
		}
	}

	return c.instances(), nil
}

// callText renders the dropped call, falling back to the callee's name.
func callText(call *ast.FunctionCall, callee *ast.FunctionDefinition) string {
	text, err := ast.Format(call)
	if err != nil || text == "" {
		log.Debugf("cannot render call to %s: %v", callee.Name, err)
		return callee.Name
	}
	return text
}
