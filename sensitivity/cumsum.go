package sensitivity

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
)

// SampledSums holds Monte-Carlo samples of prefix sums of sampler draws in a
// flat row-major arena: row m holds sampleSize sums of m draws. Row 0 is
// always all zeros, and within one trial (one column) row m+1 equals row m
// plus one additional independent draw, so rows are coupled per trial, not
// resampled independently.
type SampledSums struct {
	rows       int
	sampleSize int
	sums       []int
}

// Rows returns the number of summand counts sampled (rows 0..Rows-1).
func (s *SampledSums) Rows() int {
	return s.rows
}

// SampleSize returns the number of trials per row.
func (s *SampledSums) SampleSize() int {
	return s.sampleSize
}

// Row returns the samples of sums of m draws. The slice aliases the arena:
// callers may reorder it in place but must not grow it.
func (s *SampledSums) Row(m int) []int {
	return s.sums[m*s.sampleSize : (m+1)*s.sampleSize]
}

// RowSlices returns all rows as slices aliasing the arena.
func (s *SampledSums) RowSlices() [][]int {
	rows := make([][]int, s.rows)
	for m := range rows {
		rows[m] = s.Row(m)
	}
	return rows
}

// CumulativeSumSampler produces Monte-Carlo samples of prefix sums of
// independent draws from a WeightedSampler. Trials are split across worker
// goroutines, each drawing from its own RNG stream derived from the
// PartitionedRNG, so results are reproducible for a fixed (seed, workers)
// pair.
type CumulativeSumSampler struct {
	sampler *WeightedSampler
	prng    *PartitionedRNG
	workers int
}

// NewCumulativeSumSampler creates a sampler over the given WeightedSampler.
// workers bounds the number of goroutines; 0 means runtime.NumCPU.
func NewCumulativeSumSampler(sampler *WeightedSampler, prng *PartitionedRNG, workers int) *CumulativeSumSampler {
	return &CumulativeSumSampler{sampler: sampler, prng: prng, workers: workers}
}

// Sample runs sampleSize independent trials. Each trial draws maxSummands
// values sequentially and records, for each prefix length m, the running sum
// *before* adding the m-th draw. Returns maxSummands rows of sampleSize raw
// integer sums. The context is checked once per trial; cancellation surfaces
// ctx.Err().
func (c *CumulativeSumSampler) Sample(ctx context.Context, maxSummands, sampleSize int) (*SampledSums, error) {
	if maxSummands < 1 {
		return nil, fmt.Errorf("%w: maxSummands must be positive, got %d", ErrInvalidInput, maxSummands)
	}
	if sampleSize < 1 {
		return nil, fmt.Errorf("%w: sampleSize must be positive, got %d", ErrInvalidInput, sampleSize)
	}

	out := &SampledSums{
		rows:       maxSummands,
		sampleSize: sampleSize,
		sums:       make([]int, maxSummands*sampleSize),
	}

	workers := clampWorkers(c.workers, sampleSize)
	// PartitionedRNG is not goroutine-safe: derive every worker stream
	// before any goroutine starts.
	sources := make([]*rand.Rand, workers)
	for w := range sources {
		sources[w] = c.prng.ForWorker(w)
	}

	perWorker := (sampleSize + workers - 1) / workers
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * perWorker
		end := min(start+perWorker, sampleSize)
		if start >= end {
			break
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			errs[w] = sampleTrials(ctx, out, start, end, c.sampler.withSource(sources[w]))
		}(w, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// sampleTrials fills trial columns [start, end) of the arena. Workers write
// disjoint column ranges, so no locking is needed.
func sampleTrials(ctx context.Context, out *SampledSums, start, end int, sampler *WeightedSampler) error {
	for trial := start; trial < end; trial++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		sum := 0
		for m := 0; m < out.rows; m++ {
			out.sums[m*out.sampleSize+trial] = sum
			d, err := sampler.Draw()
			if err != nil {
				return err
			}
			sum += d
		}
	}
	return nil
}

// clampWorkers resolves a worker-count setting against the number of
// independent tasks. 0 means one worker per CPU.
func clampWorkers(workers, tasks int) int {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > tasks {
		workers = tasks
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
