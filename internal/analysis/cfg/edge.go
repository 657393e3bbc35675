package cfg

import (
	"fmt"
	"iter"
)

// Edge is an immutable directed connection between two flow points.
type Edge struct {
	source *FlowPoint
	target *FlowPoint
}

func (e *Edge) Source() *FlowPoint { return e.source }
func (e *Edge) Target() *FlowPoint { return e.target }

func (e *Edge) String() string {
	return fmt.Sprintf("%s -> %s", e.source, e.target)
}

// EdgeList is an ordered, append-only list of edges. Iteration follows
// insertion order, so the first outgoing edge of a branch is its "then" edge.
// Duplicate edges are kept.
type EdgeList struct {
	edges []*Edge
}

func (l *EdgeList) Len() int { return len(l.edges) }

// At returns the i-th edge in insertion order.
func (l *EdgeList) At(i int) *Edge { return l.edges[i] }

// Edges returns a copy of the edges in insertion order.
func (l *EdgeList) Edges() []*Edge {
	out := make([]*Edge, len(l.edges))
	copy(out, l.edges)
	return out
}

// All iterates over the edges in insertion order.
func (l *EdgeList) All() iter.Seq2[int, *Edge] {
	return func(yield func(int, *Edge) bool) {
		for i, e := range l.edges {
			if !yield(i, e) {
				return
			}
		}
	}
}

func (l *EdgeList) add(e *Edge) {
	l.edges = append(l.edges, e)
}
