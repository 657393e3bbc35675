package dataflow

import "github.com/gnolang/fileflow/internal/analysis/cfg"

// Domain is the capability the engine needs from an analysis whose values
// have type T.
type Domain[T any] interface {
	// Initial returns the value seeded at the entry flow points.
	Initial() T
	// Transfer returns the effect of the construct at fp on the value in.
	Transfer(fp *cfg.FlowPoint, in T) T
	// Merge joins the values of two incoming edges.
	Merge(a, b T) T
	Equal(a, b T) bool
}

// Funcs adapts plain functions to a Domain.
type Funcs[T any] struct {
	InitialFunc  func() T
	TransferFunc func(fp *cfg.FlowPoint, in T) T
	MergeFunc    func(a, b T) T
	EqualFunc    func(a, b T) bool
}

func (f Funcs[T]) Initial() T { return f.InitialFunc() }

// Transfer applies TransferFunc, or returns in unchanged when it is nil.
func (f Funcs[T]) Transfer(fp *cfg.FlowPoint, in T) T {
	if f.TransferFunc == nil {
		return in
	}
	return f.TransferFunc(fp, in)
}

func (f Funcs[T]) Merge(a, b T) T { return f.MergeFunc(a, b) }

func (f Funcs[T]) Equal(a, b T) bool { return f.EqualFunc(a, b) }
