package sensitivity

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/shenwei356/xopen"
	"gonum.org/v1/gonum/stat"
)

// Histogram is an observed (value → count) histogram over contiguous
// non-negative integer values, Counts[v] being the count for value v.
// This is the input contract of the engine's callers: a per-position
// coverage histogram (index = depth) and a base-quality histogram
// (index = quality score).
type Histogram struct {
	Counts []float64
}

// ReadHistogram loads a two-column (value, count) histogram from a text
// file; gzipped files and "-" for stdin are handled transparently. Blank
// lines and lines starting with '#' are skipped; columns are separated by
// any run of tabs or spaces. Values must be non-negative integers, counts
// non-negative numbers; values missing from the file get count 0, repeated
// values accumulate.
func ReadHistogram(path string) (*Histogram, error) {
	r, err := xopen.Ropen(path)
	if err != nil {
		return nil, fmt.Errorf("open histogram %s: %w", path, err)
	}
	defer r.Close()

	h := &Histogram{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("histogram %s line %d: expected 2 columns, got %d", path, lineNo, len(fields))
		}
		value, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("histogram %s line %d: invalid value: %w", path, lineNo, err)
		}
		if value < 0 {
			return nil, fmt.Errorf("histogram %s line %d: negative value %d", path, lineNo, value)
		}
		count, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("histogram %s line %d: invalid count: %w", path, lineNo, err)
		}
		if count < 0 {
			return nil, fmt.Errorf("histogram %s line %d: negative count %g", path, lineNo, count)
		}
		for len(h.Counts) <= value {
			h.Counts = append(h.Counts, 0)
		}
		h.Counts[value] += count
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read histogram %s: %w", path, err)
	}
	if len(h.Counts) == 0 {
		return nil, fmt.Errorf("histogram %s: no data rows", path)
	}
	return h, nil
}

// Clamp folds all counts above maxValue into the maxValue bin. Sequencers
// cap reported quality scores; callers use this to apply the same cap to an
// observed histogram. No-op if the histogram already fits.
func (h *Histogram) Clamp(maxValue int) {
	if maxValue < 0 || len(h.Counts) <= maxValue+1 {
		return
	}
	for v := maxValue + 1; v < len(h.Counts); v++ {
		h.Counts[maxValue] += h.Counts[v]
	}
	h.Counts = h.Counts[:maxValue+1]
}

// Frequencies returns the counts normalized to sum to 1, suitable as a depth
// distribution for the estimator. Fails with an error matching
// ErrInvalidInput if the total count is zero.
func (h *Histogram) Frequencies() ([]float64, error) {
	total := 0.0
	for _, c := range h.Counts {
		total += c
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: histogram has zero total count", ErrInvalidInput)
	}
	freqs := make([]float64, len(h.Counts))
	for v, c := range h.Counts {
		freqs[v] = c / total
	}
	return freqs, nil
}

// Summary holds count-weighted moments of a histogram.
type Summary struct {
	Mean   float64
	StdDev float64
	Total  float64
}

// Summarize computes the count-weighted mean and standard deviation of the
// histogram's values.
func (h *Histogram) Summarize() Summary {
	values := make([]float64, len(h.Counts))
	total := 0.0
	for v := range values {
		values[v] = float64(v)
		total += h.Counts[v]
	}
	mean, std := stat.MeanStdDev(values, h.Counts)
	return Summary{Mean: mean, StdDev: std, Total: total}
}
