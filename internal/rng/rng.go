package rng

import (
	"crypto/rand"
	"math/big"
	mathrand "math/rand"
)

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Crypto wraps the crypto/rand library
type Crypto struct{}

// Intn returns a random number in [0, n)
func (c Crypto) Intn(n int) int {
	b, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(b.Int64())
}

// Seeded is a deterministic generator for tests
type Seeded struct {
	rng *mathrand.Rand
}

// NewSeeded returns a deterministic generator using the provided seed
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: mathrand.New(mathrand.NewSource(seed))}
}

// Intn returns a random number in [0, n)
func (s *Seeded) Intn(n int) int {
	return s.rng.Intn(n)
}
