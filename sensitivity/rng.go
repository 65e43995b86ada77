package sensitivity

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// === RunKey ===

// RunKey uniquely identifies a reproducible estimation run.
// Two runs with the same RunKey, identical configuration, and the same
// worker count MUST produce bit-for-bit identical results.
type RunKey int64

// NewRunKey creates a RunKey from a seed value.
func NewRunKey(seed int64) RunKey {
	return RunKey(seed)
}

// workerName returns the RNG stream name for sampling worker w.
func workerName(w int) string {
	return fmt.Sprintf("worker_%d", w)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per named
// stream. Each parallel sampling worker draws from its own stream so that
// draws on different workers are independent and no *rand.Rand is ever
// shared across goroutines.
//
// Derivation formula: masterSeed XOR fnv1a64(streamName).
//
// Thread-safety: NOT thread-safe. Derive all worker streams before starting
// worker goroutines.
type PartitionedRNG struct {
	key     RunKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a RunKey.
func NewPartitionedRNG(key RunKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:     key,
		streams: make(map[string]*rand.Rand),
	}
}

// ForWorker returns a deterministically-seeded RNG for sampling worker w.
// The same worker index always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForWorker(w int) *rand.Rand {
	return p.forStream(workerName(w))
}

func (p *PartitionedRNG) forStream(name string) *rand.Rand {
	if rng, ok := p.streams[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(int64(p.key) ^ fnv1a64(name)))
	p.streams[name] = rng
	return rng
}

// Key returns the RunKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() RunKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
