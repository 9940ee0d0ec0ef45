package detect

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Cyfrin/aderyn-sub000/internal/workspace"
)

// Report is the outcome of running a set of detectors over one workspace.
type Report struct {
	Issues    []Issue       `json:"issues"`
	Detectors []string      `json:"detectors"`
	Files     []string      `json:"files"`
	Duration  time.Duration `json:"-"`
}

// Count returns the number of instances of the given severity.
func (r *Report) Count(s Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			n += len(issue.Instances)
		}
	}
	return n
}

// HasHigh reports whether any high severity issue was found.
func (r *Report) HasHigh() bool {
	return r.Count(High) > 0
}

// AtLeast returns a copy of the report without issues below min.
func (r *Report) AtLeast(min Severity) *Report {
	out := *r
	out.Issues = nil
	for _, issue := range r.Issues {
		if issue.Severity >= min {
			out.Issues = append(out.Issues, issue)
		}
	}
	return &out
}

// Run executes detectors concurrently over ws. The workspace is only read,
// so detectors share it without locking. The first detector error cancels
// the remaining ones and is returned.
func Run(ctx context.Context, ws *workspace.Workspace, detectors []Detector) (*Report, error) {
	start := time.Now()
	results := make([][]Instance, len(detectors))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, d := range detectors {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			instances, err := d.Detect(ws)
			if err != nil {
				return fmt.Errorf("detector %s: %w", d.Name(), err)
			}
			results[i] = instances
			log.Debugf("detector %s found %d instances", d.Name(), len(instances))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Duration: time.Since(start)}
	for i, d := range detectors {
		report.Detectors = append(report.Detectors, d.Name())
		if len(results[i]) > 0 {
			report.Issues = append(report.Issues, issueOf(d, results[i]))
		}
	}
	for _, unit := range ws.SourceUnits() {
		report.Files = append(report.Files, unit.AbsolutePath)
	}
	sort.Strings(report.Files)
	sort.SliceStable(report.Issues, func(i, j int) bool {
		a, b := report.Issues[i], report.Issues[j]
		if a.Severity != b.Severity {
			return a.Severity > b.Severity
		}
		return a.Name < b.Name
	})

	log.Infof("ran %d detectors over %d files in %s", len(detectors), len(report.Files), report.Duration)
	return report, nil
}
