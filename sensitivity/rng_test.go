package sensitivity

import (
	"math"
	"testing"
)

func TestRunKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
		{"min int64", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewRunKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewRunKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// Same key + worker index produces the same sequence
	rng1 := NewPartitionedRNG(NewRunKey(42))
	rng2 := NewPartitionedRNG(NewRunKey(42))

	for i := 0; i < 3; i++ {
		v1 := rng1.ForWorker(1).Float64()
		v2 := rng2.ForWorker(1).Float64()
		if v1 != v2 {
			t.Errorf("Value %d: got %v and %v, want identical", i, v1, v2)
		}
	}
}

func TestPartitionedRNG_WorkerIsolation(t *testing.T) {
	// Drawing from worker 0's stream must not affect worker 1's stream
	rngA := NewPartitionedRNG(NewRunKey(42))
	for i := 0; i < 10; i++ {
		rngA.ForWorker(0).Float64()
	}
	aWorker1First := rngA.ForWorker(1).Float64()

	fresh := NewPartitionedRNG(NewRunKey(42))
	expectedFirst := fresh.ForWorker(1).Float64()

	if aWorker1First != expectedFirst {
		t.Errorf("worker 1 first value = %v, want %v (isolation broken)", aWorker1First, expectedFirst)
	}
}

func TestPartitionedRNG_DifferentWorkersDiffer(t *testing.T) {
	rng := NewPartitionedRNG(NewRunKey(42))
	v0 := rng.ForWorker(0).Float64()
	v1 := rng.ForWorker(1).Float64()
	if v0 == v1 {
		t.Error("workers 0 and 1 produced identical first values - streams not isolated")
	}
}

func TestPartitionedRNG_CachesInstance(t *testing.T) {
	rng := NewPartitionedRNG(NewRunKey(42))

	rng1 := rng.ForWorker(0)
	rng2 := rng.ForWorker(0)

	if rng1 != rng2 {
		t.Error("ForWorker returned different instances for same worker index")
	}
}

func TestPartitionedRNG_Key(t *testing.T) {
	seed := int64(12345)
	rng := NewPartitionedRNG(NewRunKey(seed))

	if rng.Key() != RunKey(seed) {
		t.Errorf("Key() = %v, want %v", rng.Key(), seed)
	}
}

func TestPartitionedRNG_ZeroSeed(t *testing.T) {
	rng := NewPartitionedRNG(NewRunKey(0))
	val := rng.ForWorker(0).Float64()
	if val < 0 || val >= 1 {
		t.Errorf("Float64() returned %v, want [0, 1)", val)
	}
}

func TestFnv1a64_Deterministic(t *testing.T) {
	input := "worker_3"
	if fnv1a64(input) != fnv1a64(input) {
		t.Errorf("fnv1a64(%q) not deterministic", input)
	}
}

func TestFnv1a64_Collision(t *testing.T) {
	// Different worker names should produce different hashes (spot check)
	names := []string{
		workerName(0),
		workerName(1),
		workerName(100),
		"",
	}

	hashes := make(map[int64]string)
	for _, name := range names {
		h := fnv1a64(name)
		if existing, ok := hashes[h]; ok {
			t.Errorf("Hash collision: %q and %q both hash to %d", name, existing, h)
		}
		hashes[h] = name
	}
}
