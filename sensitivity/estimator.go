package sensitivity

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Config holds the inputs to one sensitivity estimation run.
type Config struct {
	DepthDistribution   []float64 // P(depth = n), index = depth; used as supplied, never re-normalized
	QualityDistribution []float64 // relative likelihood of quality score q, index = q; normalized by max inside the sampler
	SampleSize          int       // Monte-Carlo trials per summand count (must be > 0)
	LogOddsThreshold    float64   // log10 likelihood ratio required to call a SNP (e.g. 5 for a 10^5 ratio)
	Seed                int64     // master seed for the partitioned RNG
	Workers             int       // parallel workers for sampling and merging (0 = NumCPU)
}

// Validate checks the distributions and parameters before any work starts.
// All failures match ErrInvalidInput.
func (c *Config) Validate() error {
	if len(c.DepthDistribution) == 0 {
		return fmt.Errorf("%w: empty depth distribution", ErrInvalidInput)
	}
	for n, p := range c.DepthDistribution {
		if p < 0 {
			return fmt.Errorf("%w: negative depth probability %g at depth %d", ErrInvalidInput, p, n)
		}
	}
	if len(c.QualityDistribution) == 0 {
		return fmt.Errorf("%w: empty quality distribution", ErrInvalidInput)
	}
	if c.SampleSize < 1 {
		return fmt.Errorf("%w: sample size must be positive, got %d", ErrInvalidInput, c.SampleSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative, got %d", ErrInvalidInput, c.Workers)
	}
	return nil
}

// QualitySumThresholds returns the per-depth quality-sum detection
// thresholds 10·(n·log10(2) + logOdds) for n = 0,…,size−1: the quality sum a
// variant's supporting reads must exceed, under a log-likelihood-ratio
// model, to be called. The n·log10(2) term accounts for the prior odds
// scaling with total depth, so the thresholds ascend in n.
func QualitySumThresholds(size int, logOdds float64) []float64 {
	thresholds := make([]float64, size)
	for n := range thresholds {
		thresholds[n] = 10 * (float64(n)*math.Log10(2) + logOdds)
	}
	return thresholds
}

// EstimateHetSNPSensitivity returns the probability in [0,1] that a true
// heterozygous SNP is detected, combining the depth distribution, the
// Monte-Carlo exceedance table of quality-score sums, and the exact binomial
// distribution of alt-read counts:
//
//	Σ_n depth[n] · Σ_{m≤n} Binom(n,m) · P(sum of m qualities > threshold[n])
//
// The computation is deterministic given cfg.Seed and cfg.Workers. The
// context is checked between Monte-Carlo trials and merge rows.
func EstimateHetSNPSensitivity(ctx context.Context, cfg Config) (float64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	size := len(cfg.DepthDistribution)
	prng := NewPartitionedRNG(NewRunKey(cfg.Seed))

	sampler, err := NewWeightedSampler(cfg.QualityDistribution, prng.ForWorker(0))
	if err != nil {
		return 0, err
	}

	logrus.Debugf("sampling %d cumulative quality-sum trials for %d summand counts", cfg.SampleSize, size)
	sums, err := NewCumulativeSumSampler(sampler, prng, cfg.Workers).Sample(ctx, size, cfg.SampleSize)
	if err != nil {
		return 0, err
	}

	thresholds := QualitySumThresholds(size, cfg.LogOddsThreshold)
	exceedance, err := ProportionsAboveThresholds(ctx, sums.RowSlices(), thresholds, cfg.Workers)
	if err != nil {
		return 0, err
	}

	altDepth, err := NewBinomialTable(size)
	if err != nil {
		return 0, err
	}

	result := 0.0
	for n := 0; n < size; n++ {
		for m := 0; m <= n; m++ {
			result += cfg.DepthDistribution[n] * altDepth.At(n, m) * exceedance.At(m, n)
		}
	}
	logrus.Debugf("het SNP sensitivity = %.6f", result)
	return result, nil
}
