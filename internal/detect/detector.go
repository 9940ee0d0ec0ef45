// Package detect runs issue detectors over an indexed workspace and collects
// their findings.
package detect

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/Cyfrin/aderyn-sub000/internal/ast"
	"github.com/Cyfrin/aderyn-sub000/internal/workspace"
)

var log = commonlog.GetLogger("aderyn.detect")

// ErrUnknownDetector is returned when a detector name is not registered.
var ErrUnknownDetector = errors.New("unknown detector")

// Severity ranks findings. Higher values are more severe.
type Severity int

const (
	Low Severity = iota + 1
	High
)

func (s Severity) String() string {
	switch s {
	case Low:
		return "low"
	case High:
		return "high"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ParseSeverity accepts "low" and "high" in any case.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return Low, nil
	case "high":
		return High, nil
	}
	return 0, fmt.Errorf("unknown severity %q", s)
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Detector finds one kind of issue. Implementations keep no state between
// calls, so a single value may run concurrently on different workspaces.
type Detector interface {
	Name() string
	Title() string
	Description() string
	Severity() Severity
	Detect(ws *workspace.Workspace) ([]Instance, error)
}

// Instance is one occurrence of an issue.
type Instance struct {
	Path     string     `json:"path"`
	Line     int        `json:"line"`
	Location string     `json:"src"`
	NodeID   ast.NodeID `json:"node_id"`
	Hint     string     `json:"hint,omitempty"`
}

func (i Instance) key() workspace.SortKey {
	return workspace.SortKey{Path: i.Path, Line: i.Line, Location: i.Location}
}

// Capture locates node for reporting. It fails for nodes outside the
// workspace or without a usable src.
func Capture(ws *workspace.Workspace, node ast.Node, hint string) (Instance, bool) {
	if node == nil {
		return Instance{}, false
	}
	key, ok := ws.SortKey(node)
	if !ok {
		return Instance{}, false
	}
	id, _ := node.GetNodeID()
	return Instance{Path: key.Path, Line: key.Line, Location: key.Location, NodeID: id, Hint: hint}, true
}

// collector gathers instances for one detector run, keeping the first
// instance captured at each position.
type collector struct {
	ws   *workspace.Workspace
	seen map[workspace.SortKey]bool
	out  []Instance
}

func newCollector(ws *workspace.Workspace) *collector {
	return &collector{ws: ws, seen: make(map[workspace.SortKey]bool)}
}

func (c *collector) capture(node ast.Node, hint string) {
	instance, ok := Capture(c.ws, node, hint)
	if !ok {
		log.Debugf("cannot locate node for capture")
		return
	}
	if c.seen[instance.key()] {
		return
	}
	c.seen[instance.key()] = true
	c.out = append(c.out, instance)
}

func (c *collector) instances() []Instance {
	sortInstances(c.out)
	return c.out
}

func sortInstances(instances []Instance) {
	sort.Slice(instances, func(i, j int) bool {
		return instances[i].key().Less(instances[j].key())
	})
}

// Issue is a detector together with everything it found.
type Issue struct {
	Name        string     `json:"name"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Severity    Severity   `json:"severity"`
	Instances   []Instance `json:"instances"`
}

func issueOf(d Detector, instances []Instance) Issue {
	return Issue{
		Name:        d.Name(),
		Title:       d.Title(),
		Description: d.Description(),
		Severity:    d.Severity(),
		Instances:   instances,
	}
}
