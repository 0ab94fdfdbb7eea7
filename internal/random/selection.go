package random

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"sync"
)

var ErrNotEnoughCandidates = errors.New("not enough candidates for selection")

// Source is a goroutine-safe pseudo-random source shared by concurrent requests.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSource(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // gameplay randomness
}

// NewCryptoSeededSource seeds a Source from crypto/rand.
func NewCryptoSeededSource() (*Source, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}

	return NewSource(seed), nil
}

// Intn returns an integer in [0, n). n must be positive.
func (that *Source) Intn(n int) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rng.Intn(n)
}

// PickUnique returns count distinct integers from [0, upper) that are not in exclude.
// The candidates are shuffled and sliced, so the call always terminates.
func (that *Source) PickUnique(count, upper int, exclude []int) ([]int, error) {
	if count < 0 || upper < 0 {
		return nil, fmt.Errorf("%w: count %d, upper %d", ErrNotEnoughCandidates, count, upper)
	}

	candidates := make([]int, 0, upper)
	for i := range upper {
		if !slices.Contains(exclude, i) {
			candidates = append(candidates, i)
		}
	}

	if len(candidates) < count {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrNotEnoughCandidates, count, len(candidates))
	}

	that.mu.Lock()
	that.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	that.mu.Unlock()

	picked := candidates[:count]
	slices.Sort(picked)

	return picked, nil
}
