package pricing

import (
	"math/rand/v2"
	"sync"
)

const (
	fallbackMinKM = 400
	fallbackMaxKM = 1600
)

// Fallback produces a distance when no source knows the route. It never fails.
type Fallback interface {
	Estimate(origin, destination string) int
}

// RandomFallback returns a placeholder distance drawn uniformly from [400, 1600] km.
// The result is not derived from the route; it only keeps quoting available.
type RandomFallback struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomFallback uses rnd when given, otherwise the global source.
func NewRandomFallback(rnd *rand.Rand) *RandomFallback {
	return &RandomFallback{rnd: rnd}
}

// NewSeededFallback returns a reproducible RandomFallback.
func NewSeededFallback(seed uint64) *RandomFallback {
	return NewRandomFallback(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func (f *RandomFallback) Estimate(_, _ string) int {
	span := fallbackMaxKM - fallbackMinKM + 1
	if f.rnd == nil {
		return fallbackMinKM + rand.IntN(span)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return fallbackMinKM + f.rnd.IntN(span)
}

// FixedFallback always returns the same distance.
type FixedFallback int

func (f FixedFallback) Estimate(_, _ string) int { return int(f) }
