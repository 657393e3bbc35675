// Package lattice provides finite-height lattices used as dataflow values.
package lattice

// Presence models whether a file system path exists at a program point.
type Presence int

const (
	Bottom Presence = iota // unreachable
	Absent
	Present
	Maybe
	Top
)

func (p Presence) String() string {
	switch p {
	case Bottom:
		return "Bottom"
	case Absent:
		return "Absent"
	case Present:
		return "Present"
	case Maybe:
		return "Maybe"
	case Top:
		return "Top"
	default:
		return "Unknown"
	}
}

// Join returns the least upper bound in the lattice.
func Join(a, b Presence) Presence {
	if a == Bottom {
		return b
	}
	if b == Bottom {
		return a
	}
	if a == Top || b == Top {
		return Top
	}
	if a == Maybe || b == Maybe {
		return Maybe
	}
	if a == b {
		return a
	}
	// Absent + Present.
	return Maybe
}

// Meet returns the greatest lower bound in the lattice.
func Meet(a, b Presence) Presence {
	if a == Bottom || b == Bottom {
		return Bottom
	}
	if a == Top {
		return b
	}
	if b == Top {
		return a
	}
	if a == b {
		return a
	}
	if a == Maybe && (b == Absent || b == Present) {
		return b
	}
	if b == Maybe && (a == Absent || a == Present) {
		return a
	}
	return Bottom
}

// State maps paths to their presence.
// Missing entries are interpreted as Top.
type State map[string]Presence

// GetValue returns the stored value or Top when absent.
// A nil state represents Bottom (unreachable).
func GetValue(state State, path string) Presence {
	if state == nil {
		return Bottom
	}
	if val, ok := state[path]; ok {
		return val
	}
	return Top
}

// SetValue sets the entry or removes it when value is Top.
func SetValue(state State, path string, value Presence) {
	if state == nil {
		return
	}
	if value == Top {
		delete(state, path)
		return
	}
	state[path] = value
}

// CloneState returns a shallow copy of the state.
func CloneState(state State) State {
	if state == nil {
		return nil
	}
	out := make(State, len(state))
	for k, v := range state {
		out[k] = v
	}
	return out
}

// JoinStates merges two states using Join on each path.
func JoinStates(a, b State) State {
	if a == nil {
		return CloneState(b)
	}
	if b == nil {
		return CloneState(a)
	}
	out := make(State)
	for path := range a {
		SetValue(out, path, Join(GetValue(a, path), GetValue(b, path)))
	}
	for path := range b {
		if _, ok := a[path]; ok {
			continue
		}
		SetValue(out, path, Join(GetValue(a, path), GetValue(b, path)))
	}
	return out
}

// StateEqual reports whether two states are identical.
func StateEqual(a, b State) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if w, ok := b[k]; !ok || w != v {
			return false
		}
	}
	return true
}
