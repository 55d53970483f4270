package recommender

import (
	"math/rand/v2"
	"sync"
)

// RandomSource picks uniformly in [0, n). Every "one of N" decision of the composer draws from it.
type RandomSource interface {
	Intn(n int) int
}

type seededSource struct {
	rng *rand.Rand
}

// NewSeededSource returns a deterministic source. It is not safe for concurrent use;
// wrap it with NewLockedSource when it is shared.
func NewSeededSource(seed uint64) RandomSource {
	return &seededSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seededSource) Intn(n int) int {
	return s.rng.IntN(n)
}

type lockedSource struct {
	mu  sync.Mutex
	src RandomSource
}

// NewLockedSource serializes access to src so several goroutines can share it.
func NewLockedSource(src RandomSource) RandomSource {
	return &lockedSource{src: src}
}

func (l *lockedSource) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Intn(n)
}
