// Package mtrand implements a Mersenne Twister (MT19937) source whose seeding
// and derived draws reproduce CPython's random module bit for bit.
//
// Seeding a [Source] with an integer n yields the same stream as
// random.seed(n) in CPython 3, and [Source.Float64] and [Source.Intn] return
// the same values as random.random() and random.randrange(n).
package mtrand

import "math"

const (
	n         = 624
	m         = 397
	matrixA   = 0x9908b0df
	upperMask = 0x80000000
	lowerMask = 0x7fffffff
)

// Source is an MT19937 generator. The zero value is not usable; use New.
type Source struct {
	mt  [n]uint32
	mti int
}

// New returns a Source seeded with seed.
func New(seed int64) *Source {
	s := &Source{}
	s.Seed(seed)
	return s
}

// Seed resets the generator. The key is |seed| split into 32-bit words,
// least significant first, as CPython does for integer seeds.
func (s *Source) Seed(seed int64) {
	u := uint64(seed)
	if seed < 0 {
		u = uint64(-seed)
	}
	key := []uint32{uint32(u)}
	if hi := uint32(u >> 32); hi != 0 {
		key = append(key, hi)
	}
	s.seedArray(key)
}

func (s *Source) seedScalar(seed uint32) {
	s.mt[0] = seed
	for i := 1; i < n; i++ {
		prev := s.mt[i-1]
		s.mt[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	s.mti = n
}

func (s *Source) seedArray(key []uint32) {
	s.seedScalar(19650218)
	i, j := 1, 0
	k := n
	if len(key) > k {
		k = len(key)
	}
	for ; k > 0; k-- {
		prev := s.mt[i-1]
		s.mt[i] = (s.mt[i] ^ ((prev ^ (prev >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= n {
			s.mt[0] = s.mt[n-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k = n - 1; k > 0; k-- {
		prev := s.mt[i-1]
		s.mt[i] = (s.mt[i] ^ ((prev ^ (prev >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= n {
			s.mt[0] = s.mt[n-1]
			i = 1
		}
	}
	s.mt[0] = upperMask
}

func (s *Source) generate() {
	for k := 0; k < n; k++ {
		y := (s.mt[k] & upperMask) | (s.mt[(k+1)%n] & lowerMask)
		v := s.mt[(k+m)%n] ^ (y >> 1)
		if y&1 != 0 {
			v ^= matrixA
		}
		s.mt[k] = v
	}
	s.mti = 0
}

// Uint32 returns the next tempered 32-bit output.
func (s *Source) Uint32() uint32 {
	if s.mti >= n {
		s.generate()
	}
	y := s.mt[s.mti]
	s.mti++
	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// Uint64 combines two outputs, high word first.
func (s *Source) Uint64() uint64 {
	hi := uint64(s.Uint32())
	return hi<<32 | uint64(s.Uint32())
}

// Float64 returns a value in [0, 1) with 53 bits of precision.
func (s *Source) Float64() float64 {
	a := s.Uint32() >> 5
	b := s.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) * (1.0 / 9007199254740992.0)
}

// Bits returns k random bits, 0 <= k <= 32.
func (s *Source) Bits(k int) uint32 {
	if k <= 0 {
		return 0
	}
	return s.Uint32() >> (32 - k)
}

// Intn returns a value in [0, bound) by rejection sampling on
// bitLen(bound) bits. It panics if bound <= 0 or bound does not fit in 32 bits.
func (s *Source) Intn(bound int) int {
	if bound <= 0 {
		panic("mtrand: invalid argument to Intn")
	}
	if uint64(bound) > math.MaxUint32 {
		panic("mtrand: Intn argument exceeds 32 bits")
	}
	k := bitLen(uint64(bound))
	r := s.Bits(k)
	for uint64(r) >= uint64(bound) {
		r = s.Bits(k)
	}
	return int(r)
}

func bitLen(v uint64) int {
	l := 0
	for v != 0 {
		l++
		v >>= 1
	}
	return l
}
