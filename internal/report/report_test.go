package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyfrin/aderyn-sub000/internal/ast/asttest"
	"github.com/Cyfrin/aderyn-sub000/internal/detect"
	"github.com/Cyfrin/aderyn-sub000/internal/workspace"
)

const source = "pragma solidity ^0.8.0;\ncontract A {\n    uint x;\n}\n"

func fixture(t *testing.T) (*workspace.Workspace, *detect.Report) {
	t.Helper()
	color.NoColor = true

	b := asttest.New()
	unit := b.SourceUnit("A.sol")
	unit.Source = source
	ws := workspace.Build(unit)

	rep := &detect.Report{
		Detectors: []string{"state-variable-could-be-constant", "unspecific-solidity-pragma"},
		Files:     []string{"A.sol"},
		Issues: []detect.Issue{
			{
				Name:     "state-variable-could-be-constant",
				Title:    "State variable could be declared constant",
				Severity: detect.High,
				Instances: []detect.Instance{
					{Path: "A.sol", Line: 3, Location: "41:6", NodeID: 3, Hint: "x"},
				},
			},
			{
				Name:     "unspecific-solidity-pragma",
				Title:    "Solidity pragma should be specific, not wide",
				Severity: detect.Low,
				Instances: []detect.Instance{
					{Path: "A.sol", Line: 1, Location: "0:200", NodeID: 1},
				},
			},
		},
	}
	return ws, rep
}

func TestFormatInstance(t *testing.T) {
	ws, rep := fixture(t)
	out := New(ws).FormatInstance(rep.Issues[0], rep.Issues[0].Instances[0])

	assert.Contains(t, out, "high[state-variable-could-be-constant]: State variable could be declared constant\n")
	assert.Contains(t, out, "--> A.sol:3:5\n")
	assert.Contains(t, out, "  3 │     uint x;\n")
	assert.Contains(t, out, "    │     ^^^^^^\n")
	assert.Contains(t, out, "note: x")
}

func TestMarkerStopsAtEndOfLine(t *testing.T) {
	ws, rep := fixture(t)
	out := New(ws).FormatInstance(rep.Issues[1], rep.Issues[1].Instances[0])

	assert.Contains(t, out, "low[unspecific-solidity-pragma]")
	assert.Contains(t, out, "    │ "+repeat('^', len("pragma solidity ^0.8.0;"))+"\n")
	assert.NotContains(t, out, "note:")
}

func TestFormatWithoutSource(t *testing.T) {
	_, rep := fixture(t)
	out := New(nil).FormatInstance(rep.Issues[0], rep.Issues[0].Instances[0])

	assert.Contains(t, out, "--> A.sol:3\n")
	assert.NotContains(t, out, "^")
}

func TestWriteText(t *testing.T) {
	ws, rep := fixture(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, ws, rep, Options{Format: Text, MinSeverity: detect.Low}))
	assert.Contains(t, buf.String(), "Found 2 issues (1 high, 1 low) in 1 files.")

	buf.Reset()
	require.NoError(t, Write(&buf, ws, rep, Options{Format: Text, MinSeverity: detect.High}))
	assert.NotContains(t, buf.String(), "unspecific-solidity-pragma")
	assert.Contains(t, buf.String(), "Found 1 issues (1 high, 0 low)")

	buf.Reset()
	require.NoError(t, Write(&buf, ws, &detect.Report{Files: []string{"A.sol"}}, Options{}))
	assert.Equal(t, "No issues found in 1 files.\n", buf.String())

	assert.Error(t, Write(&buf, ws, rep, Options{Format: "xml"}))
}

func TestWriteJSON(t *testing.T) {
	ws, rep := fixture(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, ws, rep, Options{Format: JSON, MinSeverity: detect.Low}))

	var decoded struct {
		Issues []struct {
			Name      string `json:"name"`
			Severity  string `json:"severity"`
			Instances []struct {
				Path   string `json:"path"`
				Line   int    `json:"line"`
				Src    string `json:"src"`
				NodeID int64  `json:"node_id"`
				Hint   string `json:"hint"`
			} `json:"instances"`
		} `json:"issues"`
		Files []string `json:"files"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Issues, 2)
	assert.Equal(t, "high", decoded.Issues[0].Severity)
	assert.Equal(t, "41:6", decoded.Issues[0].Instances[0].Src)
	assert.Equal(t, "x", decoded.Issues[0].Instances[0].Hint)
	assert.Equal(t, []string{"A.sol"}, decoded.Files)
}

func repeat(c byte, n int) string {
	return string(bytes.Repeat([]byte{c}, n))
}
