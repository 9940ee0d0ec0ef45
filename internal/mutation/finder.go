// Package mutation approximates which state variables a piece of code writes,
// either directly or through local storage pointers that alias them.
//
// The analysis is a heuristic. It never reports a variable as mutated without
// having seen a write to it or to a pointer linked to it, but it can miss
// aliases that are established outside the analysed subtree, so
// MutationStatusOf is three valued. Reads are not tracked.
package mutation

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/Cyfrin/aderyn-sub000/internal/ast"
	"github.com/Cyfrin/aderyn-sub000/internal/workspace"
)

var log = commonlog.GetLogger("aderyn.mutation")

type idSet map[ast.NodeID]struct{}

func (s idSet) add(id ast.NodeID) { s[id] = struct{}{} }

func (s idSet) has(id ast.NodeID) bool {
	_, ok := s[id]
	return ok
}

func (s idSet) sorted() []ast.NodeID {
	return slices.Sorted(maps.Keys(s))
}

// Finder holds the writes found under one subtree. A Finder is plain data:
// it keeps no reference to the workspace it was computed from, and Union
// combines finders computed independently.
type Finder struct {
	directlyMutated idSet
	mutatedPointers idSet
	// state variable ID -> storage pointers heuristically known to alias it
	links map[ast.NodeID]idSet
}

func newFinder() *Finder {
	return &Finder{
		directlyMutated: make(idSet),
		mutatedPointers: make(idSet),
		links:           make(map[ast.NodeID]idSet),
	}
}

// Find analyses the subtree rooted at root, usually a function or modifier.
func Find(ws *workspace.Workspace, root ast.Node) *Finder {
	v := &visitor{ws: ws, found: newFinder()}
	ast.Walk(v, root)
	return v.found
}

// HasAnyMutation reports whether any state variable or storage pointer was written.
func (f *Finder) HasAnyMutation() bool {
	return f != nil && (len(f.directlyMutated) > 0 || len(f.mutatedPointers) > 0)
}

// HasNoMutation is the complement of HasAnyMutation.
func (f *Finder) HasNoMutation() bool {
	return !f.HasAnyMutation()
}

// MutationStatusOf reports whether v was written. known is false when some
// storage pointer was written that may or may not alias v: callers must not
// read that as "not mutated".
func (f *Finder) MutationStatusOf(v *ast.VariableDeclaration) (mutated, known bool) {
	if v == nil {
		return false, false
	}
	if f == nil {
		return false, true
	}
	if f.directlyMutated.has(v.ID) {
		return true, true
	}
	if len(f.mutatedPointers) == 0 {
		return false, true
	}
	for pointer := range f.links[v.ID] {
		if f.mutatedPointers.has(pointer) {
			return true, true
		}
	}
	return false, false
}

// PossiblyMutatedVariables returns the state variables known to be written,
// directly or through a linked pointer, in ID order. Variables whose aliases
// were never discovered are left out.
func (f *Finder) PossiblyMutatedVariables(ws *workspace.Workspace) []*ast.VariableDeclaration {
	if f == nil || ws == nil {
		return nil
	}

	ids := make(idSet, len(f.directlyMutated))
	for id := range f.directlyMutated {
		ids.add(id)
	}
	for stateVar, pointers := range f.links {
		for pointer := range pointers {
			if f.mutatedPointers.has(pointer) {
				ids.add(stateVar)
				break
			}
		}
	}

	var out []*ast.VariableDeclaration
	for _, id := range ids.sorted() {
		if v, ok := workspace.Lookup[*ast.VariableDeclaration](ws, id); ok && v.StateVariable {
			out = append(out, v)
		}
	}
	return out
}

func (f *Finder) DirectlyMutated() []ast.NodeID {
	if f == nil {
		return nil
	}
	return f.directlyMutated.sorted()
}

func (f *Finder) MutatedPointers() []ast.NodeID {
	if f == nil {
		return nil
	}
	return f.mutatedPointers.sorted()
}

// Links returns a copy of the state variable to storage pointer links, each
// pointer list in ID order.
func (f *Finder) Links() map[ast.NodeID][]ast.NodeID {
	if f == nil {
		return nil
	}
	out := make(map[ast.NodeID][]ast.NodeID, len(f.links))
	for stateVar, pointers := range f.links {
		out[stateVar] = pointers.sorted()
	}
	return out
}

// Union returns a new finder holding the writes of both a and b. Either may
// be nil. Union is associative and commutative.
func Union(a, b *Finder) *Finder {
	out := newFinder()
	out.absorb(a)
	out.absorb(b)
	return out
}

// Merge folds Union over finders.
func Merge(finders ...*Finder) *Finder {
	out := newFinder()
	for _, f := range finders {
		out.absorb(f)
	}
	return out
}

func (f *Finder) absorb(other *Finder) {
	if other == nil {
		return
	}
	for id := range other.directlyMutated {
		f.directlyMutated.add(id)
	}
	for id := range other.mutatedPointers {
		f.mutatedPointers.add(id)
	}
	for stateVar, pointers := range other.links {
		for pointer := range pointers {
			f.link(stateVar, pointer)
		}
	}
}

func (f *Finder) link(stateVar, pointer ast.NodeID) {
	set, ok := f.links[stateVar]
	if !ok {
		set = make(idSet)
		f.links[stateVar] = set
	}
	set.add(pointer)
}

func (f *Finder) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "directly mutated: %v\n", f.DirectlyMutated())
	fmt.Fprintf(&b, "mutated through pointers: %v\n", f.MutatedPointers())
	links := f.Links()
	for _, stateVar := range slices.Sorted(maps.Keys(links)) {
		fmt.Fprintf(&b, "link %d <> %v\n", stateVar, links[stateVar])
	}
	return b.String()
}

// visitor applies the write rules while walking one subtree.
type visitor struct {
	ast.BaseVisitor
	ws    *workspace.Workspace
	found *Finder
}

func (v *visitor) Visit(node ast.Node) bool {
	switch n := node.(type) {
	case *ast.UnaryOperation:
		v.visitUnaryOperation(n)
	case *ast.MemberAccess:
		v.visitMemberAccess(n)
	case *ast.Assignment:
		v.visitAssignment(n)
	case *ast.VariableDeclarationStatement:
		v.visitVariableDeclarationStatement(n)
	}
	return true
}

// record classifies id and files it as a direct or pointer mutation.
func (v *visitor) record(id ast.NodeID) {
	kind, ok := Classify(v.ws, id)
	if !ok {
		return
	}
	switch kind {
	case StateVariable:
		v.found.directlyMutated.add(id)
	case StorageLocationVariable:
		v.found.mutatedPointers.add(id)
	}
}

func (v *visitor) visitUnaryOperation(n *ast.UnaryOperation) {
	switch n.Operator {
	case "delete", "++", "--":
	default:
		return
	}
	ids, _ := FindBase(n.SubExpression)
	for _, id := range ids {
		v.record(id)
	}
}

func (v *visitor) visitMemberAccess(n *ast.MemberAccess) {
	if n.MemberName != "push" && n.MemberName != "pop" {
		return
	}
	if n.Expression == nil {
		return
	}
	receiver := n.Expression.GetTypeDescriptions().TypeString
	if !strings.HasSuffix(receiver, "[] storage ref") && !strings.HasSuffix(receiver, "[] storage pointer") {
		return
	}
	ids, _ := FindBase(n.Expression)
	for _, id := range ids {
		v.record(id)
	}
}

func (v *visitor) visitAssignment(n *ast.Assignment) {
	lhs, lhsTypes := FindBase(n.LeftHandSide)
	rhs, _ := FindBase(n.RightHandSide)

	for i, id := range lhs {
		// Re-pointing a storage pointer leaves storage untouched.
		if strings.HasSuffix(lhsTypes[i], "storage pointer") {
			continue
		}
		v.record(id)
	}

	v.linkPairs(lhs, rhs)
}

func (v *visitor) visitVariableDeclarationStatement(n *ast.VariableDeclarationStatement) {
	if n.InitialValue == nil {
		return
	}

	declared := make([]ast.NodeID, len(n.Declarations))
	for i, decl := range n.Declarations {
		if decl == nil {
			declared[i] = ast.IrrelevantID
			continue
		}
		declared[i] = decl.ID
	}
	bases, _ := FindBase(n.InitialValue)

	v.linkPairs(declared, bases)
}

// linkPairs records pointer/state-variable pairs when both sides line up one
// to one. Shapes that do not line up are ignored.
func (v *visitor) linkPairs(pointers, stateVars []ast.NodeID) {
	if len(pointers) != len(stateVars) {
		if len(pointers) > 0 && len(stateVars) > 0 {
			log.Debugf("not linking %d targets to %d sources", len(pointers), len(stateVars))
		}
		return
	}
	for i := range pointers {
		lhs, lhsOK := Classify(v.ws, pointers[i])
		rhs, rhsOK := Classify(v.ws, stateVars[i])
		if lhsOK && rhsOK && lhs == StorageLocationVariable && rhs == StateVariable {
			v.found.link(stateVars[i], pointers[i])
		}
	}
}
