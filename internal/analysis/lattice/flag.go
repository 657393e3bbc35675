package lattice

// Flag is the two-point lattice false < true.
type Flag bool

func (f Flag) Join(o Flag) Flag { return f || o }

func (f Flag) Meet(o Flag) Flag { return f && o }

func (f Flag) String() string {
	if f {
		return "true"
	}
	return "false"
}
