package sensitivity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProportionsAboveThresholds(t *testing.T) {
	rows := [][]int{
		{0, 0, 0},
		{10, 10},
		{5, 11, -2, 4},
	}
	thresholds := []float64{-1, 1, 6}

	table, err := ProportionsAboveThresholds(context.Background(), rows, thresholds, 1)
	require.NoError(t, err)

	assert.Equal(t, 3, table.Rows())
	assert.Equal(t, 3, table.Cols())

	assert.Equal(t, []float64{1, 0, 0}, table.Row(0))
	assert.Equal(t, []float64{1, 1, 1}, table.Row(1))
	assert.Equal(t, []float64{0.75, 0.75, 0.25}, table.Row(2))
}

func TestProportionsAboveThresholds_StrictlyGreaterBoundary(t *testing.T) {
	// A sample exactly equal to a threshold does not count as exceeding it.
	rows := [][]int{{5, 5, 5, 8}}

	table, err := ProportionsAboveThresholds(context.Background(), rows, []float64{5}, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.25, table.At(0, 0), "samples equal to the threshold must not exceed it")

	table, err = ProportionsAboveThresholds(context.Background(), rows, []float64{4.999}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, table.At(0, 0))
}

func TestProportionsAboveThresholds_ExtremeThresholds(t *testing.T) {
	rows := [][]int{{1, 2, 3}}

	// Threshold below all samples: proportion 1. Above all: proportion 0.
	table, err := ProportionsAboveThresholds(context.Background(), rows, []float64{-100, 100}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, table.At(0, 0))
	assert.Equal(t, 0.0, table.At(0, 1))
}

func TestProportionsAboveThresholds_EqualThresholdsAllowed(t *testing.T) {
	// Non-decreasing, not strictly increasing, is the contract.
	rows := [][]int{{0, 10}}
	table, err := ProportionsAboveThresholds(context.Background(), rows, []float64{5, 5}, 1)
	require.NoError(t, err)
	assert.Equal(t, table.At(0, 0), table.At(0, 1))
}

func TestProportionsAboveThresholds_InvalidInput(t *testing.T) {
	ctx := context.Background()
	valid := [][]int{{1, 2}}

	tests := []struct {
		name       string
		rows       [][]int
		thresholds []float64
	}{
		{"no rows", nil, []float64{1}},
		{"empty row", [][]int{{1}, {}}, []float64{1}},
		{"no thresholds", valid, nil},
		{"descending thresholds", valid, []float64{3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ProportionsAboveThresholds(ctx, tt.rows, tt.thresholds, 1)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestProportionsAboveThresholds_ParallelMatchesSerial(t *testing.T) {
	rows := make([][]int, 16)
	for m := range rows {
		row := make([]int, 100)
		for i := range row {
			row[i] = (i*7 + m*13) % 50
		}
		rows[m] = row
	}
	thresholds := []float64{0, 10, 20, 30, 40, 50}

	serial, err := ProportionsAboveThresholds(context.Background(), rows, thresholds, 1)
	require.NoError(t, err)
	parallel, err := ProportionsAboveThresholds(context.Background(), rows, thresholds, 8)
	require.NoError(t, err)

	assert.Equal(t, serial.props, parallel.props)
}

func TestProportionsAboveThresholds_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ProportionsAboveThresholds(ctx, [][]int{{1, 2, 3}}, []float64{1}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
