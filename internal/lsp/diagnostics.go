package lsp

import (
	"strings"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/Cyfrin/aderyn-sub000/internal/ast"
	"github.com/Cyfrin/aderyn-sub000/internal/detect"
	"github.com/Cyfrin/aderyn-sub000/internal/workspace"
)

const diagnosticSource = "aderyn"

// ConvertIssues turns the findings of rep into LSP diagnostics keyed by the
// source unit path they were found in. Ranges come from each instance's
// src; without source text they collapse to the start of the reported line.
func ConvertIssues(ws *workspace.Workspace, rep *detect.Report) map[string][]protocol.Diagnostic {
	sources := make(map[string]string)
	if ws != nil {
		for _, unit := range ws.SourceUnits() {
			sources[unit.AbsolutePath] = unit.Source
		}
	}

	diagnostics := make(map[string][]protocol.Diagnostic)
	for _, issue := range rep.Issues {
		for _, instance := range issue.Instances {
			message := issue.Title
			if instance.Hint != "" {
				message += ": " + instance.Hint
			}
			diagnostics[instance.Path] = append(diagnostics[instance.Path], protocol.Diagnostic{
				Range:    rangeOf(sources[instance.Path], instance),
				Severity: ptrSeverity(severityOf(issue.Severity)),
				Code:     &protocol.IntegerOrString{Value: issue.Name},
				Source:   ptrString(diagnosticSource),
				Message:  message,
			})
		}
	}
	return diagnostics
}

func rangeOf(source string, instance detect.Instance) protocol.Range {
	line := uint32(max(instance.Line-1, 0)) // Convert to 0-based indexing
	fallback := protocol.Range{
		Start: protocol.Position{Line: line},
		End:   protocol.Position{Line: line},
	}

	loc, err := ast.ParseSrc(instance.Location)
	if err != nil || source == "" || !loc.Valid() || loc.End() > len(source) {
		return fallback
	}
	return protocol.Range{
		Start: position(source, loc.Offset),
		End:   position(source, loc.End()),
	}
}

// position converts a byte offset into an LSP position, whose character is
// counted in UTF-16 code units.
func position(source string, offset int) protocol.Position {
	lineStart := strings.LastIndexByte(source[:offset], '\n') + 1
	character := 0
	for _, r := range source[lineStart:offset] {
		character += utf16.RuneLen(r)
	}
	return protocol.Position{
		Line:      uint32(ast.LineOf(source, offset) - 1),
		Character: uint32(character),
	}
}

func severityOf(s detect.Severity) protocol.DiagnosticSeverity {
	if s == detect.High {
		return protocol.DiagnosticSeverityError
	}
	return protocol.DiagnosticSeverityWarning
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
