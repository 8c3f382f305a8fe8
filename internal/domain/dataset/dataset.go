// Package dataset holds the survey table: named columns of observations
// loaded once from a workbook sheet.
package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// column is numeric when every non-empty cell parses as a number. Empty and
// unparsable cells are NaN.
type column struct {
	name    string
	values  []float64
	numeric bool
	// badRow and badCell locate the first non-numeric cell.
	badRow  int
	badCell string
}

// Dataset is an immutable in-memory table.
type Dataset struct {
	columns []column
	index   map[string]int
	rows    int
}

// New builds a Dataset from numeric columns. Every column must have the
// same length and names must be unique.
func New(names []string, values [][]float64) (*Dataset, error) {
	if len(names) != len(values) {
		return nil, fmt.Errorf("%w: %d names for %d columns", ErrDataLoad, len(names), len(values))
	}
	ds := &Dataset{index: make(map[string]int, len(names))}
	for i, name := range names {
		if i > 0 && len(values[i]) != len(values[0]) {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d", ErrDataLoad, name, len(values[i]), len(values[0]))
		}
		if _, dup := ds.index[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrDataLoad, name)
		}
		vals := make([]float64, len(values[i]))
		copy(vals, values[i])
		ds.index[name] = len(ds.columns)
		ds.columns = append(ds.columns, column{name: name, values: vals, numeric: true})
	}
	if len(values) > 0 {
		ds.rows = len(values[0])
	}
	return ds, nil
}

// fromRows builds a Dataset from a header and string records. Short
// records are padded with empty cells. sheetRows holds the 1-based sheet
// row of each record and is only used in error messages.
func fromRows(header []string, records [][]string, sheetRows []int) *Dataset {
	ds := &Dataset{index: make(map[string]int, len(header)), rows: len(records)}
	for c, h := range header {
		name := uniqueName(ds.index, columnName(h, c))
		col := column{name: name, values: make([]float64, len(records)), numeric: true}
		for r, rec := range records {
			cell := ""
			if c < len(rec) {
				cell = strings.TrimSpace(rec[c])
			}
			if cell == "" {
				col.values[r] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				if col.numeric {
					col.numeric = false
					col.badRow = sheetRows[r]
					col.badCell = cell
				}
				col.values[r] = math.NaN()
				continue
			}
			col.values[r] = v
		}
		ds.index[name] = len(ds.columns)
		ds.columns = append(ds.columns, col)
	}
	return ds
}

// columnName follows the spreadsheet convention of naming blank headers by
// position.
func columnName(header string, pos int) string {
	if h := strings.TrimSpace(header); h != "" {
		return h
	}
	return fmt.Sprintf("Unnamed: %d", pos)
}

// uniqueName suffixes repeated headers as "Name.1", "Name.2".
func uniqueName(seen map[string]int, name string) string {
	if _, ok := seen[name]; !ok {
		return name
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s.%d", name, n)
		if _, ok := seen[candidate]; !ok {
			return candidate
		}
	}
}

// Rows returns the number of observations.
func (d *Dataset) Rows() int { return d.rows }

// Columns returns the column names in sheet order.
func (d *Dataset) Columns() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.name
	}
	return names
}

// Has reports whether the named column exists.
func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Column returns a copy of the named numeric column. Missing values are NaN.
func (d *Dataset) Column(name string) ([]float64, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: column %q not found (have %s)", ErrSchema, name, strings.Join(d.Columns(), ", "))
	}
	c := d.columns[i]
	if !c.numeric {
		return nil, fmt.Errorf("%w: column %q is not numeric: row %d holds %q", ErrDataLoad, name, c.badRow, c.badCell)
	}
	out := make([]float64, len(c.values))
	copy(out, c.values)
	return out, nil
}

// Select returns a Dataset restricted to names, in the given order. Every
// name must exist and hold numeric data.
func (d *Dataset) Select(names ...string) (*Dataset, error) {
	var missing []string
	for _, n := range names {
		if !d.Has(n) {
			missing = append(missing, strconv.Quote(n))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing column(s) %s", ErrSchema, strings.Join(missing, ", "))
	}

	values := make([][]float64, len(names))
	for i, n := range names {
		col, err := d.Column(n)
		if err != nil {
			return nil, err
		}
		values[i] = col
	}
	return New(names, values)
}
