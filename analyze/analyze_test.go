package analyze

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/fileflow/internal/analysis/dataflow"
	"github.com/gnolang/fileflow/internal/analysis/lattice"
	"github.com/gnolang/fileflow/internal/config"
	tt "github.com/gnolang/fileflow/internal/types"
)

const cleanupGraph = `
name: cleanup
entry: [start]
nodes:
  - name: start
    text: mkdir out
    next: [check]
  - name: check
    text: test -f out/lock
    next: [then, else]
  - name: then
    text: rm -r out
    next: [done]
  - name: else
    text: touch out/log
    next: [done]
  - name: done
    text: rm out
  - name: orphan
    text: echo never
`

const loopGraph = `
name: loop
nodes:
  - name: a
    text: mkdir tmp
    next: [b]
  - name: b
    text: rm tmp
    next: [a]
`

func writeGraph(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newAnalyzer(t *testing.T, conf config.Config) *Analyzer {
	t.Helper()
	a, err := New(nil, conf)
	require.NoError(t, err)
	a.SetProgressOutput(io.Discard)
	return a
}

func TestFile(t *testing.T) {
	path := writeGraph(t, t.TempDir(), "cleanup.yaml", cleanupGraph)
	a := newAnalyzer(t, config.Default())

	report, err := a.File(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, report.File)
	assert.Equal(t, "cleanup", report.Name)
	require.Len(t, report.Domains, 3)
	assert.Equal(t, config.KnownDomains, []string{
		report.Domains[0].Domain, report.Domains[1].Domain, report.Domains[2].Domain,
	})

	reach := report.Domains[0]
	assert.Equal(t, 5, reach.FlowPoints)
	require.Len(t, reach.Rows, 6)
	assert.Equal(t, Row{FlowPoint: 0, Name: "start", Text: "mkdir out", Original: "true", Current: "true"}, reach.Rows[0])
	assert.Equal(t, Row{FlowPoint: 5, Name: "orphan", Text: "echo never"}, reach.Rows[5])

	labels := report.Domains[1]
	assert.Equal(t, "{mkdir, rm, test, touch}", labels.Rows[4].Current)

	presence := report.Domains[2]
	assert.Equal(t, "{out: Maybe}", presence.Rows[4].Original)
	assert.Equal(t, "{out: Absent}", presence.Rows[4].Current)

	require.Len(t, report.Issues, 1)
	issue := report.Issues[0]
	assert.Equal(t, path, issue.Filename)
	assert.Equal(t, 4, issue.FlowPoint)
	assert.Equal(t, tt.SeverityWarning, issue.Severity)
}

func TestFileNolint(t *testing.T) {
	src := strings.Replace(cleanupGraph, "    text: rm out\n", "    text: rm out\n    nolint: \"//nolint:path-presence\"\n", 1)
	path := writeGraph(t, t.TempDir(), "cleanup.yaml", src)

	report, err := newAnalyzer(t, config.Default()).File(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, report.Domains, 3)
	assert.Empty(t, report.Issues)
}

func TestFileSelectedDomains(t *testing.T) {
	path := writeGraph(t, t.TempDir(), "cleanup.yaml", cleanupGraph)
	conf := config.Default()
	conf.Analysis.Domains = []string{config.DomainLabels}

	report, err := newAnalyzer(t, conf).File(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, report.Domains, 1)
	assert.Equal(t, config.DomainLabels, report.Domains[0].Domain)
	assert.Empty(t, report.Issues)
}

func TestFileLoop(t *testing.T) {
	path := writeGraph(t, t.TempDir(), "loop.yml", loopGraph)
	report, err := newAnalyzer(t, config.Default()).File(context.Background(), path)
	require.NoError(t, err)

	presence := report.Domains[2]
	assert.Equal(t, "{}", presence.Rows[0].Original, "entry joins the unknown initial state")
	assert.Equal(t, "{tmp: Present}", presence.Rows[1].Original)
	assert.Empty(t, report.Issues)
}

func TestFileIterationCap(t *testing.T) {
	path := writeGraph(t, t.TempDir(), "loop.yaml", loopGraph)
	conf := config.Default()
	conf.Analysis.MaxIterations = 1

	_, err := newAnalyzer(t, conf).File(context.Background(), path)
	assert.ErrorIs(t, err, dataflow.ErrNoFixedPoint)
}

func TestNewInvalidConfig(t *testing.T) {
	conf := config.Default()
	conf.Analysis.Domains = []string{"taint"}
	_, err := New(nil, conf)
	assert.Error(t, err)
}

func TestPaths(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))

	writeGraph(t, dir, "a.yaml", cleanupGraph)
	writeGraph(t, sub, "b.yml", loopGraph)
	writeGraph(t, dir, "notes.txt", "not a graph")

	reports, err := newAnalyzer(t, config.Default()).Paths(context.Background(), []string{dir})
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "cleanup", reports[0].Name)
	assert.Equal(t, "loop", reports[1].Name)
}

func TestPathsManyFiles(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		writeGraph(t, dir, fmt.Sprintf("g%02d.yaml", i), loopGraph)
	}
	reports, err := newAnalyzer(t, config.Default()).Paths(context.Background(), []string{dir})
	require.NoError(t, err)
	assert.Len(t, reports, 12)
	for i, r := range reports {
		assert.Equal(t, filepath.Join(dir, fmt.Sprintf("g%02d.yaml", i)), r.File)
	}
}

func TestPathsErrors(t *testing.T) {
	a := newAnalyzer(t, config.Default())

	_, err := a.Paths(context.Background(), []string{filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)

	dir := t.TempDir()
	writeGraph(t, dir, "good.yaml", loopGraph)
	writeGraph(t, dir, "bad.yaml", "nodes:\n  - name: a\n    next: [zzz]\n")
	_, err = a.Paths(context.Background(), []string{dir})
	assert.ErrorContains(t, err, "bad.yaml")

	reports, err := a.Paths(context.Background(), []string{t.TempDir()})
	assert.NoError(t, err)
	assert.Empty(t, reports)
}

func TestPathsCancelled(t *testing.T) {
	dir := t.TempDir()
	writeGraph(t, dir, "a.yaml", loopGraph)
	writeGraph(t, dir, "b.yaml", loopGraph)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newAnalyzer(t, config.Default()).Paths(ctx, []string{dir})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatState(t *testing.T) {
	assert.Equal(t, "{}", FormatState(lattice.State{}))
	assert.Equal(t, "{a: Present, b: Absent}", FormatState(lattice.State{"b": lattice.Absent, "a": lattice.Present}))
}
