package workspace

import (
	"github.com/Cyfrin/aderyn-sub000/internal/ast"
)

// Build indexes units in one traversal. It never fails: nodes without an ID
// are left out, and when two nodes share an ID the first one visited wins.
// Building twice from the same units yields equal indexes.
func Build(units ...*ast.SourceUnit) *Workspace {
	b := &builder{ws: newWorkspace()}

	for _, unit := range units {
		if unit == nil {
			continue
		}
		b.ws.sourceUnits = append(b.ws.sourceUnits, unit)
		ast.Walk(b, unit)
	}

	if b.duplicates > 0 {
		log.Warningf("%d nodes were dropped because their IDs were already indexed", b.duplicates)
	}
	log.Debugf("indexed %d nodes from %d source units", len(b.ws.nodes), len(b.ws.sourceUnits))

	return b.ws
}

// builder threads the enclosing-construct scope through the traversal. The
// scope is saved on entering a contract, function or modifier and restored
// when leaving it.
type builder struct {
	ws         *Workspace
	scope      NodeContext
	saved      []NodeContext
	duplicates int
}

func (b *builder) Visit(node ast.Node) bool {
	if unit, ok := node.(*ast.SourceUnit); ok {
		b.scope = NodeContext{SourceUnitID: unit.ID}
		b.saved = b.saved[:0]
		b.record(unit)
		return true
	}

	b.record(node)

	switch n := node.(type) {
	case *ast.ContractDefinition:
		b.enter().ContractDefinitionID = Some(n.ID)
	case *ast.FunctionDefinition:
		b.enter().FunctionDefinitionID = Some(n.ID)
	case *ast.ModifierDefinition:
		b.enter().ModifierDefinitionID = Some(n.ID)
	}
	return true
}

func (b *builder) EndVisit(node ast.Node) {
	switch node.(type) {
	case *ast.ContractDefinition, *ast.FunctionDefinition, *ast.ModifierDefinition:
		b.leave()
	}
}

func (b *builder) VisitImmediateChildren(parent ast.NodeID, children []ast.NodeID) {
	for _, child := range children {
		if _, seen := b.ws.parents[child]; seen {
			continue
		}
		b.ws.parents[child] = parent
		b.ws.children[parent] = append(b.ws.children[parent], child)
	}
}

func (b *builder) record(node ast.Node) {
	id, ok := node.GetNodeID()
	if !ok {
		return
	}
	if _, exists := b.ws.nodes[id]; exists {
		b.duplicates++
		return
	}

	b.ws.nodes[id] = node
	b.ws.contexts[id] = b.scope
	b.ws.byType[node.NodeType()] = append(b.ws.byType[node.NodeType()], id)
}

func (b *builder) enter() *NodeContext {
	b.saved = append(b.saved, b.scope)
	return &b.scope
}

func (b *builder) leave() {
	if len(b.saved) == 0 {
		return
	}
	b.scope = b.saved[len(b.saved)-1]
	b.saved = b.saved[:len(b.saved)-1]
}
