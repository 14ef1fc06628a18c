package game

// Source supplies uniform integers in [0, n).
type Source interface {
	IntN(n int) int
}

// XorShift is a small deterministic Source. The zero value is not usable;
// construct with NewXorShift.
type XorShift struct {
	state uint32
}

// NewXorShift seeds a generator. A zero seed is replaced, since xorshift
// never leaves the all-zero state.
func NewXorShift(seed uint32) *XorShift {
	if seed == 0 {
		seed = 0x12345678
	}
	return &XorShift{state: seed}
}

func (x *XorShift) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	x.state = xorshift32(x.state)
	return int(x.state % uint32(n))
}

func xorshift32(x uint32) uint32 {
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	return x
}

// between returns an integer in [lo, hi], both inclusive.
func between(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo+1)
}
