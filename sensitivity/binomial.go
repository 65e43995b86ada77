package sensitivity

import "fmt"

// BinomialTable is the triangular table of fair-coin binomial probabilities
// At(n, m) = C(n,m)·0.5^n for 0 ≤ m ≤ n < N, stored in a flat row-major
// arena. In the het-SNP model this is the distribution of alt-allele read
// count m given total depth n. Immutable once built.
type BinomialTable struct {
	n     int
	probs []float64
}

// NewBinomialTable builds the table for n = 0,…,size−1. Each row is derived
// from the previous one via C(n,m) = C(n−1,m−1)·n/m, staying in floating
// point throughout: no factorial is ever evaluated, so large sizes cannot
// overflow, and each row costs O(n) to build. The boundary cells
// At(n,0) = At(n,n) = 0.5^n come from halving the previous row's boundary.
func NewBinomialTable(size int) (*BinomialTable, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: binomial table size must be positive, got %d", ErrInvalidInput, size)
	}
	t := &BinomialTable{n: size, probs: make([]float64, triOffset(size))}
	t.probs[0] = 1.0
	for n := 1; n < size; n++ {
		prev := t.probs[triOffset(n-1):triOffset(n)]
		row := t.probs[triOffset(n):triOffset(n+1)]
		row[0] = 0.5 * prev[0]
		for m := 1; m < n; m++ {
			row[m] = 0.5 * float64(n) * prev[m-1] / float64(m)
		}
		row[n] = row[0]
	}
	return t, nil
}

// triOffset returns the arena offset of row n in a triangular table.
func triOffset(n int) int {
	return n * (n + 1) / 2
}

// N returns the number of rows (table covers depths 0..N-1).
func (t *BinomialTable) N() int {
	return t.n
}

// At returns C(n,m)·0.5^n for 0 ≤ m ≤ n < N.
func (t *BinomialTable) At(n, m int) float64 {
	return t.probs[triOffset(n)+m]
}

// Row returns row n, the probabilities of m = 0..n heads in n fair flips.
func (t *BinomialTable) Row(n int) []float64 {
	return t.probs[triOffset(n):triOffset(n+1)]
}
