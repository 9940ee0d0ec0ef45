package detect

import (
	"strings"

	"github.com/Cyfrin/aderyn-sub000/internal/ast"
	"github.com/Cyfrin/aderyn-sub000/internal/workspace"
)

// deleteNestedMapping flags `delete m[k]` where the mapping's values are
// structs that contain a mapping. Deleting the struct leaves the inner
// mapping's entries in place.
type deleteNestedMapping struct{}

func (deleteNestedMapping) Name() string       { return "delete-nested-mapping" }
func (deleteNestedMapping) Title() string      { return "Deletion from a nested mapping" }
func (deleteNestedMapping) Severity() Severity { return High }
func (deleteNestedMapping) Description() string {
	return "A deletion in a structure containing a mapping will not delete the mapping. " +
		"The remaining data may be used to compromise the contract."
}

func (deleteNestedMapping) Detect(ws *workspace.Workspace) ([]Instance, error) {
	c := newCollector(ws)

	// delete has no value, so it only appears inside expression statements.
	for _, stmt := range workspace.Nodes[*ast.ExpressionStatement](ws) {
		if !ast.ContainsOperation(stmt.Expression, "delete") {
			continue
		}
		ast.Inspect(stmt.Expression, func(n ast.Node) bool {
			if op, ok := n.(*ast.UnaryOperation); ok && op.Operator == "delete" {
				if s, ok := deletedNestedStruct(ws, op); ok {
					c.capture(op, s.Name)
				}
			}
			return true
		})
	}

	return c.instances(), nil
}

// deletedNestedStruct matches `delete m[k]` where m maps to a struct with a
// mapping member.
func deletedNestedStruct(ws *workspace.Workspace, op *ast.UnaryOperation) (*ast.StructDefinition, bool) {
	index, ok := op.SubExpression.(*ast.IndexAccess)
	if !ok {
		return nil, false
	}
	base, ok := index.BaseExpression.(*ast.Identifier)
	if !ok || base.ReferencedDeclaration == nil {
		return nil, false
	}
	if !strings.HasPrefix(base.TypeDescriptions.TypeString, "mapping") {
		return nil, false
	}
	s, ok := mappedStruct(ws, *base.ReferencedDeclaration)
	if !ok || !hasMappingMember(s) {
		return nil, false
	}
	return s, true
}

// mappedStruct resolves the struct a mapping variable maps to.
func mappedStruct(ws *workspace.Workspace, varID ast.NodeID) (*ast.StructDefinition, bool) {
	v, ok := workspace.Lookup[*ast.VariableDeclaration](ws, varID)
	if !ok {
		return nil, false
	}
	m, ok := v.TypeName.(*ast.Mapping)
	if !ok {
		return nil, false
	}
	value, ok := m.ValueType.(*ast.UserDefinedTypeName)
	if !ok {
		return nil, false
	}
	return workspace.Lookup[*ast.StructDefinition](ws, value.ReferencedDeclaration)
}

func hasMappingMember(s *ast.StructDefinition) bool {
	for _, member := range s.Members {
		if strings.HasPrefix(member.TypeDescriptions.TypeString, "mapping") {
			return true
		}
	}
	return false
}
