// Package sensitivity estimates the probability that a heterozygous SNP is
// detected, given a sequencing experiment's empirical depth and base-quality
// distributions and a log-odds calling threshold.
//
// # Reading Guide
//
// Start with these three files to understand the estimation pipeline:
//   - sampler.go: WeightedSampler, stochastic-acceptance draws from a weighted
//     discrete distribution
//   - cumsum.go: Monte-Carlo sampling of cumulative sums of quality scores
//   - estimator.go: threshold computation and the final depth-weighted sum
//
// # Pipeline
//
// Data flows one way through the engine:
//
//	quality distribution → WeightedSampler → CumulativeSumSampler
//	    → ProportionsAboveThresholds → ExceedanceTable
//	    → EstimateHetSNPSensitivity (with the depth distribution
//	      and the exact BinomialTable) → scalar sensitivity in [0,1]
//
// The model: at a true het site with total depth n, the number of reads
// supporting the alternate allele is Binomial(n, 0.5). The variant is called
// when the supporting reads' quality-score sum exceeds a depth-scaled
// log-odds threshold. Sensitivity is the depth-weighted probability of that
// event, with the quality-sum exceedance probabilities estimated by
// Monte-Carlo sampling and the alt-read-count distribution computed exactly.
//
// All randomness is explicit: runs are reproducible for a fixed seed and
// worker count (see rng.go). All inputs are validated up front and rejected
// with errors matching ErrInvalidInput; no partial results are returned.
package sensitivity
