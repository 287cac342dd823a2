package streak

import (
	"math/rand"
	"sync"
)

// DefaultExclamations is the fixed set of milestone display tokens.
var DefaultExclamations = []string{
	"Nice!",
	"Keep going!",
	"On fire!",
	"Unstoppable!",
	"Blazing fast!",
	"In the zone!",
}

// Sampler chooses uniformly from a fixed, non-empty token set.
type Sampler struct {
	mu     sync.Mutex
	tokens []string
	rng    *rand.Rand
}

// NewSampler creates a sampler over tokens using the given source.
// Passing a seeded source makes the choice deterministic.
func NewSampler(tokens []string, src rand.Source) *Sampler {
	return &Sampler{
		tokens: tokens,
		rng:    rand.New(src),
	}
}

// DefaultSampler samples the default exclamation set with the given seed.
func DefaultSampler(seed int64) *Sampler {
	return NewSampler(DefaultExclamations, rand.NewSource(seed))
}

// Sample returns one token chosen uniformly from the set.
func (s *Sampler) Sample() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[s.rng.Intn(len(s.tokens))]
}
