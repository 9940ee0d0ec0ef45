package detect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Cyfrin/aderyn-sub000/internal/ast"
	"github.com/Cyfrin/aderyn-sub000/internal/workspace"
)

type functionSelectorCollision struct{}

func (functionSelectorCollision) Name() string       { return "function-selector-collision" }
func (functionSelectorCollision) Title() string      { return "Function selector collides with other functions" }
func (functionSelectorCollision) Severity() Severity { return High }
func (functionSelectorCollision) Description() string {
	return "Function selector collides with other functions. This may cause the solidity function dispatcher " +
		"to invoke the wrong function if the functions happen to be included in the same contract through an " +
		"inheritance hierarchy later down the line. It is recommended to rename this function or change its parameters."
}

func (functionSelectorCollision) Detect(ws *workspace.Workspace) ([]Instance, error) {
	c := newCollector(ws)

	// selector -> function name -> functions
	selectors := make(map[string]map[string][]*ast.FunctionDefinition)
	for _, fn := range workspace.Nodes[*ast.FunctionDefinition](ws) {
		if fn.Kind != ast.FunctionKindFunction || !fn.IsCallableFromOutside() {
			continue
		}
		selector, ok := Selector(ws, fn)
		if !ok {
			log.Debugf("no selector for function %s", fn.Name)
			continue
		}
		if selectors[selector] == nil {
			selectors[selector] = make(map[string][]*ast.FunctionDefinition)
		}
		selectors[selector][fn.Name] = append(selectors[selector][fn.Name], fn)
	}

	for selector, byName := range selectors {
		if len(byName) < 2 {
			continue
		}
		names := make([]string, 0, len(byName))
		for name := range byName {
			names = append(names, name)
		}
		sort.Strings(names)
		hint := fmt.Sprintf("0x%s is shared by %s", selector, strings.Join(names, ", "))
		for _, name := range names {
			for _, fn := range byName[name] {
				c.capture(fn, hint)
			}
		}
	}

	return c.instances(), nil
}
