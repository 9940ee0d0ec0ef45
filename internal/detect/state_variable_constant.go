package detect

import (
	"github.com/Cyfrin/aderyn-sub000/internal/ast"
	"github.com/Cyfrin/aderyn-sub000/internal/workspace"
)

// stateVariableCouldBeConstant flags state variables of value type that are
// initialised with a literal and provably never written afterwards. When a
// write through an unresolved storage pointer makes a variable's status
// unknown, nothing is reported for it.
type stateVariableCouldBeConstant struct{}

func (stateVariableCouldBeConstant) Name() string       { return "state-variable-could-be-constant" }
func (stateVariableCouldBeConstant) Title() string      { return "State variable could be declared constant" }
func (stateVariableCouldBeConstant) Severity() Severity { return Low }
func (stateVariableCouldBeConstant) Description() string {
	return "State variables that are not updated following deployment should be declared constant to save gas. " +
		"Add the `constant` attribute to state variables that never change."
}

func (stateVariableCouldBeConstant) Detect(ws *workspace.Workspace) ([]Instance, error) {
	c := newCollector(ws)
	changes := workspaceChanges(ws)

	for _, v := range workspace.Nodes[*ast.VariableDeclaration](ws) {
		if !v.StateVariable || v.Constant || v.IsImmutable() || !v.IsValueType() {
			continue
		}
		if !isLiteral(v.Value) {
			continue
		}
		if mutated, known := changes.MutationStatusOf(v); known && !mutated {
			c.capture(v, v.Name)
		}
	}

	return c.instances(), nil
}

// isLiteral accepts literals and negated literals.
func isLiteral(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.Literal:
		return true
	case *ast.UnaryOperation:
		return e.Operator == "-" && isLiteral(e.SubExpression)
	}
	return false
}
