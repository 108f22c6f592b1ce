package mines

import (
	"hash/maphash"
	"math/rand/v2"
)

// Source yields floats in [0,1). Board generation consumes it in a fixed
// order, so a deterministic Source gives a reproducible board.
type Source interface {
	Float64() float64
}

const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
	lcgModulus    = 1 << 32
)

// LCG is the linear congruential generator daily puzzles are built from:
// state = (state*1664525 + 1013904223) mod 2^32, output state / 2^32.
type LCG struct {
	seed, state uint32
}

func NewLCG(seed uint32) *LCG {
	return &LCG{seed: seed, state: seed}
}

func (g *LCG) Next() uint32 {
	g.state = uint32((uint64(g.state)*lcgMultiplier + lcgIncrement) % lcgModulus)
	return g.state
}

// [LCG] implements [Source]
func (g *LCG) Float64() float64 {
	return float64(g.Next()) / lcgModulus
}

// Reset restarts the sequence from the original seed.
func (g *LCG) Reset() {
	g.state = g.seed
}

func (g *LCG) Seed() uint32 {
	return g.seed
}

// NewRandomSource returns a non-deterministic source for unseeded games.
func NewRandomSource() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// intn maps the next float onto [0, n) the same way for every Source.
func intn(src Source, n int) int {
	return int(src.Float64() * float64(n))
}
