package domains

import (
	"github.com/gnolang/fileflow/internal/analysis/cfg"
	"github.com/gnolang/fileflow/internal/analysis/lattice"
)

// Labels collects the commands executed on at least one path to a flow point.
type Labels struct{}

func (Labels) Initial() lattice.Set[string] { return lattice.NewSet[string]() }

func (Labels) Transfer(fp *cfg.FlowPoint, in lattice.Set[string]) lattice.Set[string] {
	cmd := ParseCommand(fp.Text())
	if cmd.Name == "" {
		return in
	}
	return in.With(cmd.Name)
}

func (Labels) Merge(a, b lattice.Set[string]) lattice.Set[string] { return a.Join(b) }

func (Labels) Equal(a, b lattice.Set[string]) bool { return a.Equal(b) }
