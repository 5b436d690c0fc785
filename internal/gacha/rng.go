package gacha

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource abstracts the generator behind every draw.
// Float64 returns a value in [0, 1); IntN returns a value in [0, n).
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}

// crypto random : default generation method
type cryptoRNG struct{}

func (cryptoRNG) uint64() (uint64, bool) {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return 0, false
	}
	return binary.BigEndian.Uint64(buf[:]), true
}

func (c cryptoRNG) Float64() float64 {
	u, ok := c.uint64()
	if !ok {
		// back to math/rand/v2
		return rand.Float64()
	}
	// 53 bits => [0, 1)
	return float64(u>>11) / (1 << 53)
}

func (c cryptoRNG) IntN(n int) int {
	if n <= 0 {
		panic("gacha: IntN called with non-positive n")
	}
	u, ok := c.uint64()
	if !ok {
		return rand.IntN(n)
	}
	// rejection sampling keeps the result unbiased
	bound := uint64(n)
	limit := ^uint64(0) - (^uint64(0) % bound)
	for u >= limit {
		if u, ok = c.uint64(); !ok {
			return rand.IntN(n)
		}
	}
	return int(u % bound)
}

func DefaultRNG() RandomSource { return cryptoRNG{} }

// Replicable RNG (tests, simulations, PACKS_SEED)
type seededRNG struct{ r *rand.Rand }

func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

func (s *seededRNG) IntN(n int) int { return s.r.IntN(n) }
