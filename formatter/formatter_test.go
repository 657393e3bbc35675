package formatter

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/fileflow/analyze"
	tt "github.com/gnolang/fileflow/internal/types"
)

func init() {
	color.NoColor = true
}

func TestGenerateFormattedIssue(t *testing.T) {
	issues := []tt.Issue{
		{
			Rule:      "path-presence",
			Filename:  "cleanup.yaml",
			FlowPoint: 4,
			Text:      "rm out",
			Message:   "rm: out does not exist on every path",
			Note:      "create it on all branches before use",
			Severity:  tt.SeverityWarning,
		},
		{
			Rule:      "path-presence",
			FlowPoint: 2,
			Text:      "cat notes",
			Message:   "cat: notes is never created by the script",
			Severity:  tt.SeverityInfo,
		},
	}

	expected := `warning: path-presence
 --> cleanup.yaml:#4 (rm out)
  | rm: out does not exist on every path
  = note: create it on all branches before use

info: path-presence
 --> #2 (cat notes)
  | cat: notes is never created by the script

`
	assert.Equal(t, expected, GenerateFormattedIssue(issues))
}

func TestHeaderSeverity(t *testing.T) {
	assert.Equal(t, "error: rule\n", header("rule", "ERROR"))
	assert.Equal(t, "rule\n", header("rule", "UNKNOWN"))
}

func sampleReport() analyze.Report {
	return analyze.Report{
		File: "loop.yaml",
		Name: "loop",
		Domains: []analyze.DomainReport{
			{
				Domain:     "reachability",
				Iterations: 3,
				FlowPoints: 2,
				Rows: []analyze.Row{
					{FlowPoint: 0, Name: "a", Text: "mkdir tmp", Original: "true", Current: "true"},
					{FlowPoint: 1, Name: "dead", Text: "rm tmp"},
				},
			},
		},
		Issues: []tt.Issue{
			{Rule: "path-presence", FlowPoint: 1, Text: "rm tmp", Message: "rm: tmp does not exist on any path", Severity: tt.SeverityError},
		},
	}
}

func TestFormatReport(t *testing.T) {
	out := FormatReport(sampleReport())

	assert.Contains(t, out, "==> loop.yaml (loop)\n")
	assert.Contains(t, out, "reachability [3 iterations, 2 flow points]\n")
	assert.Regexp(t, `#0\s+a\s+mkdir tmp\s+true\s+=>\s+true`, out)
	assert.Regexp(t, `#1\s+dead\s+rm tmp\s+-\s+=>\s+-`, out)
	assert.Contains(t, out, "error: path-presence\n")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, []analyze.Report{sampleReport()}))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "loop", decoded[0]["name"])

	issues := decoded[0]["issues"].([]any)
	assert.Equal(t, "ERROR", issues[0].(map[string]any)["severity"])

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}
