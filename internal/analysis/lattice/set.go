package lattice

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Set is an immutable powerset element ordered by inclusion. Operations
// return new sets; the receiver is never modified.
type Set[T cmp.Ordered] struct {
	items map[T]struct{}
}

func NewSet[T cmp.Ordered](items ...T) Set[T] {
	s := Set[T]{items: make(map[T]struct{}, len(items))}
	for _, it := range items {
		s.items[it] = struct{}{}
	}
	return s
}

func (s Set[T]) Len() int { return len(s.items) }

func (s Set[T]) Has(item T) bool {
	_, ok := s.items[item]
	return ok
}

// With returns s plus item.
func (s Set[T]) With(item T) Set[T] {
	if s.Has(item) {
		return s
	}
	out := s.clone(len(s.items) + 1)
	out.items[item] = struct{}{}
	return out
}

// Join returns the union of s and o.
func (s Set[T]) Join(o Set[T]) Set[T] {
	out := s.clone(len(s.items) + len(o.items))
	for it := range o.items {
		out.items[it] = struct{}{}
	}
	return out
}

// Meet returns the intersection of s and o.
func (s Set[T]) Meet(o Set[T]) Set[T] {
	out := NewSet[T]()
	for it := range s.items {
		if o.Has(it) {
			out.items[it] = struct{}{}
		}
	}
	return out
}

func (s Set[T]) Equal(o Set[T]) bool {
	if len(s.items) != len(o.items) {
		return false
	}
	for it := range s.items {
		if !o.Has(it) {
			return false
		}
	}
	return true
}

// Items returns the elements in ascending order.
func (s Set[T]) Items() []T {
	out := make([]T, 0, len(s.items))
	for it := range s.items {
		out = append(out, it)
	}
	slices.Sort(out)
	return out
}

func (s Set[T]) String() string {
	parts := make([]string, 0, len(s.items))
	for _, it := range s.Items() {
		parts = append(parts, fmt.Sprint(it))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (s Set[T]) clone(size int) Set[T] {
	out := Set[T]{items: make(map[T]struct{}, size)}
	for it := range s.items {
		out.items[it] = struct{}{}
	}
	return out
}
