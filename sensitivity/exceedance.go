package sensitivity

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// ExceedanceTable holds empirical exceedance proportions in a flat row-major
// arena: At(m, n) is the proportion of row m's samples strictly greater than
// the n-th threshold. Immutable once built.
type ExceedanceTable struct {
	rows  int
	cols  int
	props []float64
}

// Rows returns the number of sample rows the table was built from.
func (t *ExceedanceTable) Rows() int {
	return t.rows
}

// Cols returns the number of thresholds the table was built against.
func (t *ExceedanceTable) Cols() int {
	return t.cols
}

// At returns the proportion of row m's samples strictly greater than
// thresholds[n].
func (t *ExceedanceTable) At(m, n int) float64 {
	return t.props[m*t.cols+n]
}

// Row returns row m of the table.
func (t *ExceedanceTable) Row(m int) []float64 {
	return t.props[m*t.cols : (m+1)*t.cols]
}

// ProportionsAboveThresholds computes, for every row of samples and every
// threshold, the empirical proportion of that row's samples strictly greater
// than the threshold. A sample exactly equal to a threshold does not count
// as exceeding it. A threshold below all samples yields proportion 1; one
// above all samples yields 0.
//
// Each row is sorted ascending in place (the caller's slices are reordered),
// then merged against the ascending thresholds with a single monotone
// pointer pass, O(S log S + N) per row. Rows are processed on up to workers
// parallel goroutines (0 = NumCPU); the context is checked once per row.
//
// Fails with an error matching ErrInvalidInput on an empty row set, an empty
// row, or a non-ascending threshold list.
func ProportionsAboveThresholds(ctx context.Context, rows [][]int, thresholds []float64, workers int) (*ExceedanceTable, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no sample rows", ErrInvalidInput)
	}
	if len(thresholds) == 0 {
		return nil, fmt.Errorf("%w: no thresholds", ErrInvalidInput)
	}
	for n := 1; n < len(thresholds); n++ {
		if thresholds[n] < thresholds[n-1] {
			return nil, fmt.Errorf("%w: thresholds not ascending at index %d (%g < %g)",
				ErrInvalidInput, n, thresholds[n], thresholds[n-1])
		}
	}
	for m, row := range rows {
		if len(row) == 0 {
			return nil, fmt.Errorf("%w: sample row %d is empty", ErrInvalidInput, m)
		}
	}

	out := &ExceedanceTable{
		rows:  len(rows),
		cols:  len(thresholds),
		props: make([]float64, len(rows)*len(thresholds)),
	}

	workers = clampWorkers(workers, len(rows))
	perWorker := (len(rows) + workers - 1) / workers
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * perWorker
		end := min(start+perWorker, len(rows))
		if start >= end {
			break
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			for m := start; m < end; m++ {
				if err := ctx.Err(); err != nil {
					errs[w] = err
					return
				}
				proportionsRow(rows[m], thresholds, out.Row(m))
			}
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

// proportionsRow sorts samples ascending and fills out[n] with the
// proportion of samples strictly greater than thresholds[n]. Because the
// thresholds ascend, the pointer past non-exceeding samples only ever moves
// forward.
func proportionsRow(samples []int, thresholds []float64, out []float64) {
	sort.Ints(samples)
	size := float64(len(samples))
	j := 0
	for n, th := range thresholds {
		for j < len(samples) && float64(samples[j]) <= th {
			j++
		}
		out[n] = float64(len(samples)-j) / size
	}
}
