package domains

import (
	"github.com/gnolang/fileflow/internal/analysis/cfg"
	"github.com/gnolang/fileflow/internal/analysis/lattice"
)

// Reachability marks every flow point control can reach from an entry.
type Reachability struct{}

func (Reachability) Initial() lattice.Flag { return true }

func (Reachability) Transfer(_ *cfg.FlowPoint, in lattice.Flag) lattice.Flag { return in }

func (Reachability) Merge(a, b lattice.Flag) lattice.Flag { return a.Join(b) }

func (Reachability) Equal(a, b lattice.Flag) bool { return a == b }
