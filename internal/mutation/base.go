package mutation

import (
	"github.com/Cyfrin/aderyn-sub000/internal/ast"
	"github.com/Cyfrin/aderyn-sub000/internal/workspace"
)

// irrelevantType pairs with ast.IrrelevantID in FindBase results.
const irrelevantType = "irrelevant"

// AssigneeType classifies the declaration a write lands on.
type AssigneeType int

const (
	// StateVariable is a contract-level storage slot.
	StateVariable AssigneeType = iota
	// StorageLocationVariable is a local variable or parameter declared with
	// the storage location, i.e. an alias of some storage slot.
	StorageLocationVariable
)

func (t AssigneeType) String() string {
	switch t {
	case StateVariable:
		return "StateVariable"
	case StorageLocationVariable:
		return "StorageLocationVariable"
	default:
		return "AssigneeType(?)"
	}
}

// Classify reports whether id names a state variable or a storage pointer.
// Anything else, including transient storage variables and dangling IDs,
// reports false.
func Classify(ws *workspace.Workspace, id ast.NodeID) (AssigneeType, bool) {
	if ws == nil {
		return 0, false
	}
	v, ok := workspace.Lookup[*ast.VariableDeclaration](ws, id)
	if !ok || v.StorageLocation == ast.LocationTransient {
		return 0, false
	}
	switch {
	case v.StateVariable:
		return StateVariable, true
	case v.StorageLocation == ast.LocationStorage:
		return StorageLocationVariable, true
	}
	return 0, false
}

// FindBase resolves the declarations an expression ultimately writes through,
// together with the type string of the expression that reaches each of them.
// The two slices always have the same length; positions that resolve to
// nothing hold ast.IrrelevantID and "irrelevant".
//
//	people[i].age  -> [people]   ["uint256"]
//	(a, , b.c)     -> [a, -, b]  [typeof a, "irrelevant", typeof b.c]
func FindBase(expr ast.Expression) (ids []ast.NodeID, types []string) {
	return findBase(expr, 0)
}

func findBase(expr ast.Expression, depth int) ([]ast.NodeID, []string) {
	if depth >= ast.MaxDepth {
		return irrelevant()
	}

	switch e := expr.(type) {
	case *ast.Identifier:
		if e.ReferencedDeclaration != nil && e.TypeDescriptions.HasTypeString() {
			return []ast.NodeID{*e.ReferencedDeclaration}, []string{e.TypeDescriptions.TypeString}
		}
	case *ast.IndexAccess:
		if e.TypeDescriptions.HasTypeString() {
			return through(e.BaseExpression, e.TypeDescriptions.TypeString, depth)
		}
	case *ast.MemberAccess:
		if e.TypeDescriptions.HasTypeString() {
			return through(e.Expression, e.TypeDescriptions.TypeString, depth)
		}
	case *ast.UnaryOperation:
		if e.TypeDescriptions.HasTypeString() {
			return through(e.SubExpression, e.TypeDescriptions.TypeString, depth)
		}
	case *ast.TupleExpression:
		var ids []ast.NodeID
		var types []string
		for _, component := range e.Components {
			if component == nil {
				ids = append(ids, ast.IrrelevantID)
				types = append(types, irrelevantType)
				continue
			}
			componentIDs, componentTypes := findBase(component, depth+1)
			ids = append(ids, componentIDs...)
			types = append(types, componentTypes...)
		}
		return ids, types
	}

	return irrelevant()
}

// through resolves the bases of inner and pairs each with the accessing
// expression's own type string.
func through(inner ast.Expression, typeString string, depth int) ([]ast.NodeID, []string) {
	ids, _ := findBase(inner, depth+1)
	types := make([]string, len(ids))
	for i := range types {
		types[i] = typeString
	}
	return ids, types
}

func irrelevant() ([]ast.NodeID, []string) {
	return []ast.NodeID{ast.IrrelevantID}, []string{irrelevantType}
}
