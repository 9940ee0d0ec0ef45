// Package report renders detector findings for the terminal or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/Cyfrin/aderyn-sub000/internal/ast"
	"github.com/Cyfrin/aderyn-sub000/internal/detect"
	"github.com/Cyfrin/aderyn-sub000/internal/workspace"
)

// Format selects a renderer.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
)

// Options control what is rendered.
type Options struct {
	Format      Format
	MinSeverity detect.Severity
}

// Write renders rep in the requested format, leaving out issues below the
// minimum severity.
func Write(w io.Writer, ws *workspace.Workspace, rep *detect.Report, opts Options) error {
	filtered := rep.AtLeast(opts.MinSeverity)
	switch opts.Format {
	case JSON:
		return WriteJSON(w, filtered)
	case Text, "":
		_, err := io.WriteString(w, New(ws).Format(filtered))
		return err
	}
	return fmt.Errorf("unknown report format %q", opts.Format)
}

// WriteJSON writes rep as indented JSON.
func WriteJSON(w io.Writer, rep *detect.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

type file struct {
	source string
	lines  []string
}

// Reporter formats findings with a snippet of the source around each one.
type Reporter struct {
	files map[string]file
}

// New creates a reporter over the source text of every unit in ws.
func New(ws *workspace.Workspace) *Reporter {
	r := &Reporter{files: make(map[string]file)}
	if ws == nil {
		return r
	}
	for _, unit := range ws.SourceUnits() {
		r.files[unit.AbsolutePath] = file{source: unit.Source, lines: strings.Split(unit.Source, "\n")}
	}
	return r
}

// Format renders every issue of rep followed by a summary line.
func (r *Reporter) Format(rep *detect.Report) string {
	var result strings.Builder
	for _, issue := range rep.Issues {
		for _, instance := range issue.Instances {
			result.WriteString(r.FormatInstance(issue, instance))
		}
	}
	result.WriteString(summary(rep))
	return result.String()
}

// FormatInstance renders one finding:
//
//	high[delete-nested-mapping]: Deletion from a nested mapping
//	   --> src/Vault.sol:12:9
//	    │
//	 12 │         delete accounts[who];
//	    │         ^^^^^^^^^^^^^^^^^^^^
func (r *Reporter) FormatInstance(issue detect.Issue, instance detect.Instance) string {
	var result strings.Builder

	levelColor := severityColor(issue.Severity)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	result.WriteString(fmt.Sprintf("%s[%s]: %s\n",
		levelColor(issue.Severity.String()), issue.Name, issue.Title))

	f := r.files[instance.Path]
	column, length := 0, 0
	if loc, err := ast.ParseSrc(instance.Location); err == nil {
		column = ast.ColumnOf(f.source, loc.Offset)
		length = loc.Length
	}

	width := lineNumberWidth(instance.Line)
	indent := strings.Repeat(" ", width)

	if column > 0 {
		result.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n", indent, dim("-->"), instance.Path, instance.Line, column))
	} else {
		result.WriteString(fmt.Sprintf("%s %s %s:%d\n", indent, dim("-->"), instance.Path, instance.Line))
	}

	if instance.Line > 0 && instance.Line <= len(f.lines) && f.source != "" {
		result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

		content := f.lines[instance.Line-1]
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			bold(fmt.Sprintf("%*d", width, instance.Line)),
			dim("│"),
			content))

		if column > 0 {
			// Findings spanning several lines are underlined up to the end
			// of their first line.
			length = min(length, len(content)-column+1)
			result.WriteString(fmt.Sprintf("%s %s %s\n",
				indent, dim("│"), marker(column, length, issue.Severity)))
		}
	}

	if instance.Hint != "" {
		noteColor := color.New(color.FgBlue).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n",
			indent, dim("│"), noteColor("note:"), instance.Hint))
	}

	result.WriteString("\n")
	return result.String()
}

func summary(rep *detect.Report) string {
	instances := rep.Count(detect.High) + rep.Count(detect.Low)
	if instances == 0 {
		return color.New(color.FgGreen, color.Bold).Sprintf("No issues found in %d files.\n", len(rep.Files))
	}
	return fmt.Sprintf("Found %d issues (%s high, %s low) in %d files.\n",
		instances,
		severityColor(detect.High)(rep.Count(detect.High)),
		severityColor(detect.Low)(rep.Count(detect.Low)),
		len(rep.Files))
}

func severityColor(s detect.Severity) func(...interface{}) string {
	switch s {
	case detect.High:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case detect.Low:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	default:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	}
}

func marker(column, length int, s detect.Severity) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", max(0, column-1))
	return spaces + severityColor(s)(strings.Repeat("^", length))
}

func lineNumberWidth(line int) int {
	return max(3, len(fmt.Sprintf("%d", line)))
}
