package dataset_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/smartwatch/internal/domain/dataset"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves rows to Sheet1 of a new workbook in dir.
func writeWorkbook(t *testing.T, dir string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(dir, "survey.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	Convey("Given a survey workbook", t, func() {
		path := writeWorkbook(t, t.TempDir(), [][]interface{}{
			{"Respondent", "Wellness", "Athlete"},
			{"r1", 5, 5},
			{"r2", 3, 3.5},
			{"r3", nil, 4},
		})

		Convey("When it is loaded", func() {
			ds, err := dataset.Load(path, "")

			Convey("Then columns and rows come from the first sheet", func() {
				So(err, ShouldBeNil)
				So(ds.Columns(), ShouldResemble, []string{"Respondent", "Wellness", "Athlete"})
				So(ds.Rows(), ShouldEqual, 3)
			})

			Convey("Then numeric columns parse and blanks become NaN", func() {
				w, err := ds.Column("Wellness")
				So(err, ShouldBeNil)
				So(w[0], ShouldEqual, 5)
				So(w[1], ShouldEqual, 3)
				So(math.IsNaN(w[2]), ShouldBeTrue)

				a, err := ds.Column("Athlete")
				So(err, ShouldBeNil)
				So(a, ShouldResemble, []float64{5, 3.5, 4})
			})

			Convey("Then a text column is reported as malformed", func() {
				_, err := ds.Column("Respondent")
				So(errors.Is(err, dataset.ErrDataLoad), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, `row 2 holds "r1"`)
			})
		})

		Convey("When a named sheet is requested", func() {
			_, okErr := dataset.Load(path, "Sheet1")
			_, missingErr := dataset.Load(path, "Responses")

			Convey("Then only existing sheets load", func() {
				So(okErr, ShouldBeNil)
				So(errors.Is(missingErr, dataset.ErrDataLoad), ShouldBeTrue)
				So(missingErr.Error(), ShouldContainSubstring, `sheet "Responses" not found`)
			})
		})
	})

	Convey("Given files that are not usable workbooks", t, func() {
		dir := t.TempDir()

		Convey("When the file is missing", func() {
			_, err := dataset.Load(filepath.Join(dir, "SmartWatch Data File.xlsx"), "")

			Convey("Then a data load error names the file", func() {
				So(errors.Is(err, dataset.ErrDataLoad), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "file not found")
			})
		})

		Convey("When the file is not a spreadsheet", func() {
			path := filepath.Join(dir, "notes.xlsx")
			So(os.WriteFile(path, []byte("Wellness,Athlete\n5,5\n"), 0o600), ShouldBeNil)
			_, err := dataset.Load(path, "")

			Convey("Then a data load error is returned", func() {
				So(errors.Is(err, dataset.ErrDataLoad), ShouldBeTrue)
			})
		})

		Convey("When the sheet is empty", func() {
			path := writeWorkbook(t, dir, nil)
			_, err := dataset.Load(path, "")

			Convey("Then a data load error is returned", func() {
				So(errors.Is(err, dataset.ErrDataLoad), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "is empty")
			})
		})
	})
}

func TestOpen(t *testing.T) {
	Convey("Given a workbook stream with a title row gap and repeated headers", t, func() {
		f := excelize.NewFile()
		So(f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Wellness", "", "Wellness"}), ShouldBeNil)
		So(f.SetSheetRow("Sheet1", "A3", &[]interface{}{1, 2, 3}), ShouldBeNil)
		So(f.SetSheetRow("Sheet1", "A5", &[]interface{}{4, 5, 6}), ShouldBeNil)
		buf, err := f.WriteToBuffer()
		So(err, ShouldBeNil)
		_ = f.Close()

		ds, err := dataset.Open(buf, "")

		Convey("Then the first non-empty row is the header and blank rows are skipped", func() {
			So(err, ShouldBeNil)
			So(ds.Columns(), ShouldResemble, []string{"Wellness", "Unnamed: 1", "Wellness.1"})
			So(ds.Rows(), ShouldEqual, 2)
			col, err := ds.Column("Unnamed: 1")
			So(err, ShouldBeNil)
			So(col, ShouldResemble, []float64{2, 5})
		})
	})
}

func TestSelect(t *testing.T) {
	Convey("Given a dataset without an Athlete column", t, func() {
		ds, err := dataset.New([]string{"Wellness", "Value"}, [][]float64{{5, 3}, {1, 2}})
		So(err, ShouldBeNil)

		Convey("When selecting Wellness and Athlete", func() {
			_, err := ds.Select("Wellness", "Athlete")

			Convey("Then a schema error names the missing column", func() {
				So(errors.Is(err, dataset.ErrSchema), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, `"Athlete"`)
			})
		})

		Convey("When selecting existing columns in a new order", func() {
			sub, err := ds.Select("Value", "Wellness")

			Convey("Then the sub-table keeps that order", func() {
				So(err, ShouldBeNil)
				So(sub.Columns(), ShouldResemble, []string{"Value", "Wellness"})
				So(sub.Rows(), ShouldEqual, 2)
			})
		})
	})
}

func TestNew(t *testing.T) {
	Convey("Given inconsistent column input", t, func() {
		_, lenErr := dataset.New([]string{"a", "b"}, [][]float64{{1, 2}, {1}})
		_, countErr := dataset.New([]string{"a"}, [][]float64{{1}, {2}})
		_, dupErr := dataset.New([]string{"a", "a"}, [][]float64{{1}, {2}})

		Convey("Then construction fails", func() {
			So(errors.Is(lenErr, dataset.ErrDataLoad), ShouldBeTrue)
			So(errors.Is(countErr, dataset.ErrDataLoad), ShouldBeTrue)
			So(errors.Is(dupErr, dataset.ErrDataLoad), ShouldBeTrue)
		})
	})

	Convey("Given caller-owned slices", t, func() {
		src := []float64{1, 2}
		ds, err := dataset.New([]string{"a"}, [][]float64{src})
		So(err, ShouldBeNil)
		src[0] = 99

		Convey("Then the dataset is not affected by later mutation", func() {
			col, _ := ds.Column("a")
			So(col[0], ShouldEqual, 1)
			col[1] = 42
			again, _ := ds.Column("a")
			So(again[1], ShouldEqual, 2)
		})
	})
}
