package cfg

// Key identifies one analysis domain. Values stored under a key are typed by
// T, and two keys never share storage even when their names match.
type Key[T any] struct {
	name string
}

// NewKey creates a key for a domain whose values have type T.
func NewKey[T any](name string) *Key[T] {
	return &Key[T]{name: name}
}

func (k *Key[T]) Name() string { return k.name }

func (k *Key[T]) String() string { return k.name }

type slot struct {
	key      any
	original bool
}

func (fp *FlowPoint) store(s slot, v any) {
	if fp.domains == nil {
		fp.domains = make(map[slot]any)
	}
	fp.domains[s] = v
}

func load[T any](fp *FlowPoint, s slot) (T, bool) {
	v, ok := fp.domains[s]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// SetDomain stores the current value of domain k at fp.
func SetDomain[T any](fp *FlowPoint, k *Key[T], v T) {
	fp.store(slot{key: k}, v)
}

// Domain returns the current value of domain k at fp. ok is false when the
// domain was never set, for example before the analysis ran.
func Domain[T any](fp *FlowPoint, k *Key[T]) (v T, ok bool) {
	return load[T](fp, slot{key: k})
}

// SetOriginalDomain stores the entry value of domain k at fp, the value the
// flow point held right before its transfer function last ran.
func SetOriginalDomain[T any](fp *FlowPoint, k *Key[T], v T) {
	fp.store(slot{key: k, original: true}, v)
}

// OriginalDomain returns the entry value of domain k at fp.
func OriginalDomain[T any](fp *FlowPoint, k *Key[T]) (v T, ok bool) {
	return load[T](fp, slot{key: k, original: true})
}

// ClearDomain drops both values of domain k at fp.
func ClearDomain[T any](fp *FlowPoint, k *Key[T]) {
	delete(fp.domains, slot{key: k})
	delete(fp.domains, slot{key: k, original: true})
}
