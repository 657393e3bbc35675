package domains

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/fileflow/internal/analysis/cfg"
	"github.com/gnolang/fileflow/internal/analysis/dataflow"
	"github.com/gnolang/fileflow/internal/analysis/lattice"
	tt "github.com/gnolang/fileflow/internal/types"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text string
		want Command
	}{
		{"", Command{}},
		{"   ", Command{}},
		{"mkdir -p out/logs", Command{Name: "mkdir", Operands: []string{"out/logs"}}},
		{"cp -r a b c", Command{Name: "cp", Operands: []string{"a", "b", "c"}}},
		{"exit", Command{Name: "exit"}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCommand(tt.text))
		})
	}
}

func TestPresenceTransfer(t *testing.T) {
	g := cfg.NewGraph()
	d := Presence{}
	in := lattice.State{"a": lattice.Present, "b": lattice.Absent}

	tests := []struct {
		text string
		want lattice.State
	}{
		{"mkdir c", lattice.State{"a": lattice.Present, "b": lattice.Absent, "c": lattice.Present}},
		{"touch b", lattice.State{"a": lattice.Present, "b": lattice.Present}},
		{"rm -rf a", lattice.State{"a": lattice.Absent, "b": lattice.Absent}},
		{"cp a d", lattice.State{"a": lattice.Present, "b": lattice.Absent, "d": lattice.Present}},
		{"mv a b", lattice.State{"a": lattice.Absent, "b": lattice.Present}},
		{"cp a", in},
		{"echo hi", in},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			out := d.Transfer(g.NewFlowPoint(tt.text), in)
			assert.True(t, lattice.StateEqual(tt.want, out), "got %v", out)
			assert.Equal(t, lattice.Present, in["a"], "input must not be modified")
		})
	}
}

func TestReachability(t *testing.T) {
	g := cfg.NewGraph()
	a, b := g.NewFlowPoint("a"), g.NewFlowPoint("b")
	dead := g.NewFlowPoint("dead")
	a.AddFlowPoint(b)
	dead.AddFlowPoint(b)

	engine := dataflow.NewEngine(cfg.NewKey[lattice.Flag]("reachability"), Reachability{})
	_, err := engine.Run(context.Background(), a)
	require.NoError(t, err)

	v, ok := engine.Value(b)
	assert.True(t, ok)
	assert.Equal(t, lattice.Flag(true), v)
	_, ok = engine.Value(dead)
	assert.False(t, ok)
}

func TestLabels(t *testing.T) {
	g := cfg.NewGraph()
	start := g.NewFlowPoint("mkdir out")
	cond := g.NewFlowPoint("test -d out")
	then := g.NewFlowPoint("rm -r out")
	els := g.NewFlowPoint("touch out")
	join := g.NewFlowPoint("echo done")
	start.AddFlowPoint(cond)
	cond.AddFlowPoint(then).AddFlowPoint(join)
	cond.AddFlowPoint(els).AddFlowPoint(join)

	engine := dataflow.NewEngine(cfg.NewKey[lattice.Set[string]]("labels"), Labels{})
	_, err := engine.Run(context.Background(), start)
	require.NoError(t, err)

	v, _ := engine.Value(join)
	assert.Equal(t, []string{"echo", "mkdir", "rm", "test", "touch"}, v.Items())
}

func TestPresenceIssues(t *testing.T) {
	g := cfg.NewGraph()
	start := g.NewFlowPoint("mkdir out")
	cond := g.NewFlowPoint("test -f flag")
	then := g.NewFlowPoint("rm -r out")
	els := g.NewFlowPoint("touch out/log")
	join := g.NewFlowPoint("cd out")
	cleanup := g.NewFlowPoint("rm out")
	again := g.NewFlowPoint("rm out")
	missing := g.NewFlowPoint("cat notes")

	start.AddFlowPoint(cond)
	cond.AddFlowPoint(then).AddFlowPoint(join)
	cond.AddFlowPoint(els).AddFlowPoint(join)
	join.AddFlowPoint(cleanup).AddFlowPoint(again).AddFlowPoint(missing)

	key := cfg.NewKey[lattice.State]("presence")
	engine := dataflow.NewEngine(key, Presence{})
	_, err := engine.Run(context.Background(), start)
	require.NoError(t, err)

	issues := PresenceIssues(start.AllFlowPoints(), key)
	require.Len(t, issues, 4)

	byID := map[int]tt.Issue{}
	for _, is := range issues {
		assert.Equal(t, PresenceRule, is.Rule)
		byID[is.FlowPoint] = is
	}

	assert.Equal(t, tt.SeverityWarning, byID[join.ID()].Severity)
	assert.Equal(t, "cd: out does not exist on every path", byID[join.ID()].Message)
	assert.Equal(t, tt.SeverityWarning, byID[cleanup.ID()].Severity)
	assert.Equal(t, tt.SeverityError, byID[again.ID()].Severity)
	assert.Equal(t, tt.SeverityInfo, byID[missing.ID()].Severity)
	_, ok := byID[then.ID()]
	assert.False(t, ok, "rm right after mkdir is fine")
}

func TestPresenceIssuesSkipsUnanalyzed(t *testing.T) {
	g := cfg.NewGraph()
	fp := g.NewFlowPoint("rm out")
	assert.Empty(t, PresenceIssues([]*cfg.FlowPoint{fp}, cfg.NewKey[lattice.State]("presence")))
}

func TestPresenceLoopConverges(t *testing.T) {
	g := cfg.NewGraph()
	start := g.NewFlowPoint("mkdir work")
	loop := g.NewFlowPoint("while read f")
	body := g.NewFlowPoint("rm work")
	redo := g.NewFlowPoint("mkdir work")
	end := g.NewFlowPoint("rm work")
	start.AddFlowPoint(loop)
	loop.AddFlowPoint(body).AddFlowPoint(redo).AddFlowPoint(loop)
	loop.AddFlowPoint(end)

	key := cfg.NewKey[lattice.State]("presence")
	engine := dataflow.NewEngine(key, Presence{}, dataflow.WithMaxIterations(100))
	_, err := engine.Run(context.Background(), start)
	require.NoError(t, err)

	assert.Empty(t, PresenceIssues(start.AllFlowPoints(), key))
	endIn, _ := engine.Original(end)
	assert.Equal(t, lattice.Present, lattice.GetValue(endIn, "work"))
}
