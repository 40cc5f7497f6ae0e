package rng

import "math/rand/v2"

// Source supplies the uniform draw behind the commission routing decision.
// Injected so routing tests can pin the draw to a deterministic value.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
}

type CryptoSeeded struct{}

func NewCryptoSeeded() Source {
	return &CryptoSeeded{}
}

func (s *CryptoSeeded) Float64() float64 {
	// math/rand/v2's global generator is seeded from the OS entropy pool.
	return rand.Float64()
}

// Fixed always returns the same draw.
type Fixed struct {
	Value float64
}

func NewFixed(v float64) *Fixed {
	return &Fixed{Value: v}
}

func (f *Fixed) Float64() float64 {
	return f.Value
}
