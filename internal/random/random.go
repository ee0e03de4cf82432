package random

import (
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_source.go github.com/KirkDiggler/mexicano/internal/random Source

// Source is the randomness used for shuffles and picks
type Source interface {
	// Intn returns a number in [0, n)
	Intn(n int) int

	// Shuffle pseudo-randomizes the order of n elements using swap
	Shuffle(n int, swap func(i, j int))
}

// Config for the random source
type Config struct {
	// Optional seed for testing
	Seed int64
}

// Rand is a seedable Source backed by math/rand. It is safe for
// concurrent use.
type Rand struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new random source
func New(cfg *Config) *Rand {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)
	random := rand.New(source)

	return &Rand{
		random: random,
	}
}

// Intn returns a number in [0, n); n below 1 yields 0
func (r *Rand) Intn(n int) int {
	if n < 1 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(n)
}

// Shuffle pseudo-randomizes the order of n elements
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	if n < 2 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.random.Shuffle(n, swap)
}
