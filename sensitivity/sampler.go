package sensitivity

import (
	"fmt"
	"math/rand"
)

// maxDrawAttempts bounds the rejection loop in Draw. A legitimate weight
// vector with acceptance mean a fails all attempts with probability
// (1-a)^maxDrawAttempts, negligible for any a down to ~1e-6; vectors more
// skewed than that are treated as invalid input.
const maxDrawAttempts = 1 << 24

// WeightedSampler draws indices from {0,…,N−1} with probability proportional
// to the weight vector supplied at construction, using the O(1)-expected-time
// stochastic acceptance algorithm (Physica A 391, 2193 (2012)). The algorithm
// works well when the ratio of maximum weight to average weight is not large.
//
// The acceptance table is immutable after construction. The random source is
// owned by this instance and must not be shared across goroutines; use
// withSource to give each parallel worker its own source over the same
// acceptance table.
type WeightedSampler struct {
	acceptance []float64 // weight[i] / max(weight)
	rng        *rand.Rand
}

// NewWeightedSampler validates the weight vector and precomputes acceptance
// probabilities. The weights need not sum to 1; they are normalized by the
// maximum, not the sum. Rejects an empty vector, any negative weight, and an
// all-zero vector with an error matching ErrInvalidInput.
func NewWeightedSampler(weights []float64, rng *rand.Rand) (*WeightedSampler, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: empty weight vector", ErrInvalidInput)
	}
	wMax := 0.0
	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("%w: negative weight %g at index %d", ErrInvalidInput, w, i)
		}
		if w > wMax {
			wMax = w
		}
	}
	if wMax == 0 {
		return nil, fmt.Errorf("%w: all weights are zero", ErrInvalidInput)
	}
	acceptance := make([]float64, len(weights))
	for i, w := range weights {
		acceptance[i] = w / wMax
	}
	return &WeightedSampler{acceptance: acceptance, rng: rng}, nil
}

// withSource returns a sampler sharing this sampler's acceptance table but
// drawing from rng.
func (s *WeightedSampler) withSource(rng *rand.Rand) *WeightedSampler {
	return &WeightedSampler{acceptance: s.acceptance, rng: rng}
}

// N returns the number of indices the sampler draws from.
func (s *WeightedSampler) N() int {
	return len(s.acceptance)
}

// Draw returns one index: pick a candidate uniformly, accept it with
// probability acceptance[candidate], retry otherwise. Fails with an error
// matching ErrInvalidInput if no candidate is accepted within
// maxDrawAttempts.
func (s *WeightedSampler) Draw() (int, error) {
	for attempt := 0; attempt < maxDrawAttempts; attempt++ {
		i := s.rng.Intn(len(s.acceptance))
		if s.rng.Float64() < s.acceptance[i] {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: no draw accepted after %d attempts (max/average weight ratio too large)",
		ErrInvalidInput, maxDrawAttempts)
}
