// Package correlation computes the labelled Pearson correlation matrix of a
// dataset's columns.
package correlation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/okian/smartwatch/internal/domain/dataset"
)

// Method names the coefficient. Only Pearson is implemented.
const Method = "pearson"

// minObservations is the fewest paired rows a coefficient is defined for.
const minObservations = 2

// Pearson returns the correlation matrix over every column of ds, in column
// order. Each cell uses the rows where both columns are present. A cell is
// NaN when fewer than two such rows exist or either side has zero variance
// over them; that is a result, not an error.
func Pearson(ds *dataset.Dataset) (*Matrix, error) {
	labels := ds.Columns()
	if len(labels) == 0 {
		return nil, ErrEmpty
	}

	cols := make([][]float64, len(labels))
	for i, name := range labels {
		col, err := ds.Column(name)
		if err != nil {
			return nil, fmt.Errorf("correlate %q: %w", name, err)
		}
		cols[i] = col
	}

	sym := mat.NewSymDense(len(labels), nil)
	for i := range cols {
		for j := i; j < len(cols); j++ {
			sym.SetSym(i, j, Coefficient(cols[i], cols[j]))
		}
	}
	// Diagonal cells are exactly one unless undefined.
	for i := range cols {
		if !math.IsNaN(sym.At(i, i)) {
			sym.SetSym(i, i, 1)
		}
	}
	return &Matrix{labels: labels, values: sym}, nil
}

// Coefficient is the sample Pearson coefficient of x and y over the rows
// where neither is NaN, clamped to [-1, 1].
func Coefficient(x, y []float64) float64 {
	xs, ys := complete(x, y)
	if len(xs) < minObservations || constant(xs) || constant(ys) {
		return math.NaN()
	}
	r := stat.Correlation(xs, ys, nil)
	return math.Max(-1, math.Min(1, r))
}

// complete drops every row where either series is missing.
func complete(x, y []float64) ([]float64, []float64) {
	n := min(len(x), len(y))
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}

// constant compares extremes instead of the computed variance, which
// rounding can leave slightly above zero for a constant column.
func constant(v []float64) bool {
	return floats.Max(v) == floats.Min(v)
}
