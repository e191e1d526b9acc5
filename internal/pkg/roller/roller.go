// Package roller provides seeded dice.Roller implementations so that every
// environment instance owns an independent, reproducible random stream.
package roller

import (
	"math/rand"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/pickupworld/internal/errors"
)

// Seeded is a dice.Roller backed by its own math/rand source
type Seeded struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// Verify that Seeded implements dice.Roller
var _ dice.Roller = (*Seeded)(nil)

// NewSeeded returns a roller whose sequence is fully determined by seed
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewSource(seed))}
}

// Roll returns a value in [1, size]
func (s *Seeded) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("die size must be positive, got %d", size)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(size) + 1, nil
}

// RollN rolls count dice of the given size
func (s *Seeded) RollN(count, size int) ([]int, error) {
	if count < 0 {
		return nil, errors.InvalidArgumentf("dice count must not be negative, got %d", count)
	}
	if size <= 0 {
		return nil, errors.InvalidArgumentf("die size must be positive, got %d", size)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	results := make([]int, count)
	for i := range results {
		results[i] = s.rng.Intn(size) + 1
	}
	return results, nil
}

// Int63 draws a raw value, used to derive child seeds
func (s *Seeded) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Int63()
}
