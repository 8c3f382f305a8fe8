package dataset

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Load reads sheet from the workbook at path. An empty sheet selects the
// first sheet of the workbook.
func Load(path, sheet string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: file not found", ErrDataLoad, path)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrDataLoad, path, err)
	}
	defer func() { _ = f.Close() }()

	ds, err := fromWorkbook(f, sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Open reads sheet from a workbook stream.
func Open(r io.Reader, sheet string) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataLoad, err)
	}
	defer func() { _ = f.Close() }()
	return fromWorkbook(f, sheet)
}

func fromWorkbook(f *excelize.File, sheet string) (*Dataset, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrDataLoad)
	}
	if sheet == "" {
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return nil, fmt.Errorf("%w: sheet %q not found (have %s)", ErrDataLoad, sheet, strings.Join(sheets, ", "))
	}

	// Raw values keep numbers free of the cell number format.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %w", ErrDataLoad, sheet, err)
	}

	headerAt := -1
	for i, row := range rows {
		if !blank(row) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrDataLoad, sheet)
	}

	records := make([][]string, 0, len(rows)-headerAt-1)
	sheetRows := make([]int, 0, len(rows)-headerAt-1)
	for i := headerAt + 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		records = append(records, rows[i])
		sheetRows = append(sheetRows, i+1)
	}
	return fromRows(rows[headerAt], records, sheetRows), nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
