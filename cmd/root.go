package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vdanjean/picard/sensitivity"
)

var (
	// CLI flags for the estimation run
	seed             int64   // Master seed for the partitioned RNG
	sampleSize       int     // Monte-Carlo trials per summand count
	logOddsThreshold float64 // log10 likelihood ratio required to call a SNP
	workers          int     // Parallel workers (0 = NumCPU)
	logLevel         string  // Log verbosity level
	depthHistPath    string  // Path to the per-position coverage histogram
	qualityHistPath  string  // Path to the base-quality histogram
	maxQuality       int     // Cap applied to the quality histogram (0 = no cap)
	configPath       string  // Optional YAML run bundle; set fields override flags
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "picard-sensitivity",
	Short: "Theoretical sensitivity estimation for germline variant detection",
}

// estimateCmd estimates het-SNP sensitivity from depth and quality histograms
var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate het SNP detection sensitivity from depth and quality histograms",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if configPath != "" {
			bundle, err := LoadRunBundle(configPath)
			if err != nil {
				logrus.Fatalf("Unable to read run config: %v", err)
			}
			if err := bundle.Validate(); err != nil {
				logrus.Fatalf("Invalid run config: %v", err)
			}
			applyBundle(bundle)
		}

		if depthHistPath == "" || qualityHistPath == "" {
			logrus.Fatalf("Depth and quality histogram paths are required. Exiting.")
		}

		startTime := time.Now()
		result, err := runEstimate(context.Background())
		if err != nil {
			logrus.Fatalf("Estimation failed: %v", err)
		}
		logrus.Infof("Estimation took %v", time.Since(startTime))

		fmt.Fprintf(cmd.OutOrStdout(), "HET_SNP_SENSITIVITY\t%.6f\n", result)
	},
}

// applyBundle overrides flag values with the bundle's set fields.
func applyBundle(b *RunBundle) {
	if b.DepthHistogram != "" {
		depthHistPath = b.DepthHistogram
	}
	if b.QualityHistogram != "" {
		qualityHistPath = b.QualityHistogram
	}
	if b.SampleSize != nil {
		sampleSize = *b.SampleSize
	}
	if b.LogOddsThreshold != nil {
		logOddsThreshold = *b.LogOddsThreshold
	}
	if b.Seed != nil {
		seed = *b.Seed
	}
	if b.Workers != nil {
		workers = *b.Workers
	}
	if b.MaxQuality != nil {
		maxQuality = *b.MaxQuality
	}
}

// runEstimate loads both histograms and runs the estimator with the current
// flag values.
func runEstimate(ctx context.Context) (float64, error) {
	depthHist, err := sensitivity.ReadHistogram(depthHistPath)
	if err != nil {
		return 0, err
	}
	qualityHist, err := sensitivity.ReadHistogram(qualityHistPath)
	if err != nil {
		return 0, err
	}
	if maxQuality > 0 {
		qualityHist.Clamp(maxQuality)
	}

	ds := depthHist.Summarize()
	qs := qualityHist.Summarize()
	logrus.Infof("Depth histogram: %d bins, mean=%.2f, sd=%.2f, total=%.0f",
		len(depthHist.Counts), ds.Mean, ds.StdDev, ds.Total)
	logrus.Infof("Quality histogram: %d bins, mean=%.2f, sd=%.2f, total=%.0f",
		len(qualityHist.Counts), qs.Mean, qs.StdDev, qs.Total)

	depthDist, err := depthHist.Frequencies()
	if err != nil {
		return 0, err
	}

	return sensitivity.EstimateHetSNPSensitivity(ctx, sensitivity.Config{
		DepthDistribution:   depthDist,
		QualityDistribution: qualityHist.Counts,
		SampleSize:          sampleSize,
		LogOddsThreshold:    logOddsThreshold,
		Seed:                seed,
		Workers:             workers,
	})
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	estimateCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random quality-sum sampling")
	estimateCmd.Flags().IntVar(&sampleSize, "sample-size", 10000, "Monte-Carlo trials per summand count")
	estimateCmd.Flags().Float64Var(&logOddsThreshold, "log-odds-threshold", 3.0, "log10 likelihood ratio required to call a SNP")
	estimateCmd.Flags().IntVar(&workers, "workers", 0, "Parallel workers (0 = number of CPUs)")
	estimateCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	estimateCmd.Flags().StringVar(&depthHistPath, "depth-histogram", "", "Per-position coverage histogram file (value<TAB>count, may be gzipped)")
	estimateCmd.Flags().StringVar(&qualityHistPath, "quality-histogram", "", "Base-quality histogram file (value<TAB>count, may be gzipped)")
	estimateCmd.Flags().IntVar(&maxQuality, "max-quality", 0, "Fold quality scores above this value into it (0 = no cap)")
	estimateCmd.Flags().StringVar(&configPath, "config", "", "YAML run bundle; set fields override flags")

	rootCmd.AddCommand(estimateCmd)
}
