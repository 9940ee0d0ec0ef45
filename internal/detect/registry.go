package detect

import (
	"fmt"
	"sort"
)

var registry = []Detector{
	constantFunctionChangesState{},
	deleteNestedMapping{},
	functionSelectorCollision{},
	stateVariableCouldBeConstant{},
	uncheckedReturn{},
	unspecificSolidityPragma{},
}

// All returns every registered detector ordered by name.
func All() []Detector {
	out := make([]Detector, len(registry))
	copy(out, registry)
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Lookup finds a detector by name.
func Lookup(name string) (Detector, error) {
	for _, d := range registry {
		if d.Name() == name {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownDetector, name)
}

// Select returns the detectors named in include, or all of them when include
// is empty, minus those named in exclude. Unknown names in either list are
// an error.
func Select(include, exclude []string) ([]Detector, error) {
	selected := All()
	if len(include) > 0 {
		selected = selected[:0:0]
		for _, name := range include {
			d, err := Lookup(name)
			if err != nil {
				return nil, err
			}
			selected = append(selected, d)
		}
	}

	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		if _, err := Lookup(name); err != nil {
			return nil, err
		}
		skip[name] = true
	}

	out := selected[:0:0]
	seen := make(map[string]bool)
	for _, d := range selected {
		if skip[d.Name()] || seen[d.Name()] {
			continue
		}
		seen[d.Name()] = true
		out = append(out, d)
	}
	return out, nil
}
