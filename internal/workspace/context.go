package workspace

import (
	"fmt"
	"strings"

	"github.com/Cyfrin/aderyn-sub000/internal/ast"
)

// enclosing follows one field of node's context to the enclosing construct.
func enclosing[T ast.Node](ws *Workspace, node ast.Node, field func(NodeContext) OptionalID) (T, bool) {
	var zero T
	ctx, ok := ws.ContextOf(node)
	if !ok {
		return zero, false
	}
	ref := field(ctx)
	if !ref.Valid {
		return zero, false
	}
	return Lookup[T](ws, ref.ID)
}

// SourceUnitOf returns the source unit node belongs to. A source unit is its
// own source unit.
func (ws *Workspace) SourceUnitOf(node ast.Node) (*ast.SourceUnit, bool) {
	return enclosing[*ast.SourceUnit](ws, node, func(ctx NodeContext) OptionalID {
		return Some(ctx.SourceUnitID)
	})
}

// ContractDefinitionOf returns the contract that lexically encloses node.
// Free functions, file-level declarations and contracts themselves have none.
func (ws *Workspace) ContractDefinitionOf(node ast.Node) (*ast.ContractDefinition, bool) {
	return enclosing[*ast.ContractDefinition](ws, node, func(ctx NodeContext) OptionalID {
		return ctx.ContractDefinitionID
	})
}

func (ws *Workspace) FunctionDefinitionOf(node ast.Node) (*ast.FunctionDefinition, bool) {
	return enclosing[*ast.FunctionDefinition](ws, node, func(ctx NodeContext) OptionalID {
		return ctx.FunctionDefinitionID
	})
}

func (ws *Workspace) ModifierDefinitionOf(node ast.Node) (*ast.ModifierDefinition, bool) {
	return enclosing[*ast.ModifierDefinition](ws, node, func(ctx NodeContext) OptionalID {
		return ctx.ModifierDefinitionID
	})
}

// SortKey locates a node for reporting and ordering findings.
type SortKey struct {
	Path     string
	Line     int
	Location string
}

// Less orders by path, then line, then src offset and length.
func (k SortKey) Less(other SortKey) bool {
	if k.Path != other.Path {
		return k.Path < other.Path
	}
	if k.Line != other.Line {
		return k.Line < other.Line
	}
	a, errA := ast.ParseSrc(k.Location)
	b, errB := ast.ParseSrc(other.Location)
	if errA != nil || errB != nil {
		return k.Location < other.Location
	}
	if a.Offset != b.Offset {
		return a.Offset < b.Offset
	}
	return a.Length < b.Length
}

func (k SortKey) String() string {
	return fmt.Sprintf("%s:%d", k.Path, k.Line)
}

// SortKey computes the reporting position of node. Named declarations are
// located by their name rather than their whole extent when the compiler
// emitted a usable name location. Line is 0 when the source text of the
// enclosing unit is unknown.
func (ws *Workspace) SortKey(node ast.Node) (SortKey, bool) {
	unit, ok := ws.SourceUnitOf(node)
	if !ok {
		return SortKey{}, false
	}

	loc, err := ast.ParseSrc(reportedSrc(node))
	if err != nil {
		log.Debugf("no sort key for node: %s", err)
		return SortKey{}, false
	}

	key := SortKey{Path: unit.AbsolutePath, Location: loc.Chopped()}
	if unit.Source != "" {
		key.Line = ast.LineOf(unit.Source, loc.Offset)
	}
	return key, true
}

func reportedSrc(node ast.Node) string {
	var nameLocation string
	switch n := node.(type) {
	case *ast.ContractDefinition:
		nameLocation = n.NameLocation
	case *ast.FunctionDefinition:
		nameLocation = n.NameLocation
	case *ast.ModifierDefinition:
		nameLocation = n.NameLocation
	case *ast.VariableDeclaration:
		nameLocation = n.NameLocation
	}
	if nameLocation != "" && !strings.Contains(nameLocation, "-1") {
		return nameLocation
	}
	return node.GetSrc()
}

// Parent returns the node's immediate parent.
func (ws *Workspace) Parent(node ast.Node) (ast.Node, bool) {
	if node == nil {
		return nil, false
	}
	id, ok := node.GetNodeID()
	if !ok {
		return nil, false
	}
	parentID, ok := ws.parents[id]
	if !ok {
		return nil, false
	}
	return ws.NodeByID(parentID)
}

// AncestralLine returns node's ancestors, parent first, ending at its source unit.
func (ws *Workspace) AncestralLine(node ast.Node) []ast.Node {
	var line []ast.Node
	for current, ok := ws.Parent(node); ok && len(line) < ast.MaxDepth; current, ok = ws.Parent(current) {
		line = append(line, current)
	}
	return line
}

// ClosestAncestor returns the nearest ancestor of the given kind.
func (ws *Workspace) ClosestAncestor(node ast.Node, kind ast.NodeType) (ast.Node, bool) {
	for _, ancestor := range ws.AncestralLine(node) {
		if ancestor.NodeType() == kind {
			return ancestor, true
		}
	}
	return nil, false
}

// ClosestAncestorOf is the typed form of ClosestAncestor. T may also be an
// interface, e.g. ast.Statement for the enclosing statement of an expression.
func ClosestAncestorOf[T ast.Node](ws *Workspace, node ast.Node) (T, bool) {
	var zero T
	for _, ancestor := range ws.AncestralLine(node) {
		if typed, ok := ancestor.(T); ok {
			return typed, true
		}
	}
	return zero, false
}

// Children returns the indexed immediate children of node in source order.
func (ws *Workspace) Children(node ast.Node) []ast.Node {
	if node == nil {
		return nil
	}
	id, ok := node.GetNodeID()
	if !ok {
		return nil
	}
	var out []ast.Node
	for _, child := range ws.children[id] {
		if n, ok := ws.nodes[child]; ok {
			out = append(out, n)
		}
	}
	return out
}

// SourceCodeOf returns the source text covered by node's src, when the
// enclosing unit carries its source.
func (ws *Workspace) SourceCodeOf(node ast.Node) (string, bool) {
	unit, ok := ws.SourceUnitOf(node)
	if !ok || unit.Source == "" {
		return "", false
	}
	loc, err := ast.ParseSrc(node.GetSrc())
	if err != nil || !loc.Valid() || loc.End() > len(unit.Source) {
		return "", false
	}
	return unit.Source[loc.Offset:loc.End()], true
}
