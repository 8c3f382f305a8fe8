package correlation

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a labelled, symmetric correlation matrix. It is never mutated
// after Pearson returns it.
type Matrix struct {
	labels []string
	values *mat.SymDense
}

// Size returns the number of rows (and columns).
func (m *Matrix) Size() int {
	return m.values.SymmetricDim()
}

// Labels returns the row and column labels.
func (m *Matrix) Labels() []string {
	out := make([]string, len(m.labels))
	copy(out, m.labels)
	return out
}

// At returns the coefficient at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.values.At(i, j)
}

// Get returns the coefficient at the labelled row and column.
func (m *Matrix) Get(row, col string) (float64, error) {
	i, ok := m.indexOf(row)
	if !ok {
		return math.NaN(), fmt.Errorf("%w: %q", ErrUnknownLabel, row)
	}
	j, ok := m.indexOf(col)
	if !ok {
		return math.NaN(), fmt.Errorf("%w: %q", ErrUnknownLabel, col)
	}
	return m.At(i, j), nil
}

// NaNCount returns how many cells are undefined.
func (m *Matrix) NaNCount() int {
	n := 0
	for i := 0; i < m.Size(); i++ {
		for j := 0; j < m.Size(); j++ {
			if math.IsNaN(m.At(i, j)) {
				n++
			}
		}
	}
	return n
}

// Rows returns the cells formatted with prec decimals, NaN as "NaN".
func (m *Matrix) Rows(prec int) [][]string {
	out := make([][]string, m.Size())
	for i := range out {
		out[i] = make([]string, m.Size())
		for j := range out[i] {
			out[i][j] = FormatValue(m.At(i, j), prec)
		}
	}
	return out
}

// String renders the matrix as a plain aligned table with six decimals.
func (m *Matrix) String() string {
	rows := m.Rows(6)
	labelWidth := 0
	for _, l := range m.labels {
		labelWidth = max(labelWidth, len(l))
	}
	widths := make([]int, m.Size())
	for j, l := range m.labels {
		widths[j] = len(l)
		for i := range rows {
			widths[j] = max(widths[j], len(rows[i][j]))
		}
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", labelWidth))
	for j, l := range m.labels {
		fmt.Fprintf(&b, "  %*s", widths[j], l)
	}
	for i, l := range m.labels {
		fmt.Fprintf(&b, "\n%-*s", labelWidth, l)
		for j := range m.labels {
			fmt.Fprintf(&b, "  %*s", widths[j], rows[i][j])
		}
	}
	return b.String()
}

func (m *Matrix) indexOf(label string) (int, bool) {
	for i, l := range m.labels {
		if l == label {
			return i, true
		}
	}
	return 0, false
}

// FormatValue formats a coefficient with prec decimals.
func FormatValue(v float64, prec int) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.*f", prec, v)
}
