package render

import (
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/smartwatch/internal/domain/correlation"
	"github.com/okian/smartwatch/internal/domain/dataset"
	"github.com/okian/smartwatch/internal/domain/radar"
	. "github.com/smartystreets/goconvey/convey"
	"gonum.org/v1/plot/vg"
)

func testMatrix(t *testing.T, x, y []float64) *correlation.Matrix {
	t.Helper()
	ds, err := dataset.New([]string{"Wellness", "Athlete"}, [][]float64{x, y})
	if err != nil {
		t.Fatal(err)
	}
	m, err := correlation.Pearson(ds)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func imageSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	return cfg.Width, cfg.Height
}

func TestHeatmapPlot(t *testing.T) {
	Convey("Given a perfectly correlated 2x2 matrix", t, func() {
		m := testMatrix(t, []float64{5, 3}, []float64{5, 3})

		p, ann, err := heatmapPlot(m, HeatmapTitle)

		Convey("Then every cell is annotated with two decimals", func() {
			So(err, ShouldBeNil)
			So(ann.Labels, ShouldResemble, []string{"1.00", "1.00", "1.00", "1.00"})
			So(p.Title.Text, ShouldEqual, HeatmapTitle)
		})

		Convey("Then the axes span exactly the cells", func() {
			So(p.X.Min, ShouldEqual, 0)
			So(p.X.Max, ShouldEqual, 2)
			So(p.Y.Min, ShouldEqual, 0)
			So(p.Y.Max, ShouldEqual, 2)
		})
	})

	Convey("Given a matrix with a zero-variance column", t, func() {
		m := testMatrix(t, []float64{1, 2, 3}, []float64{4, 4, 4})

		_, ann, err := heatmapPlot(m, HeatmapTitle)

		Convey("Then undefined cells are annotated NaN", func() {
			So(err, ShouldBeNil)
			So(ann.Labels, ShouldResemble, []string{"1.00", "NaN", "NaN", "NaN"})
		})
	})

	Convey("Given the grid adapter", t, func() {
		m := testMatrix(t, []float64{1, 2, 3}, []float64{3, 2, 1})
		g := matrixGrid{m: m}

		Convey("Then the first matrix row is the top grid row", func() {
			c, r := g.Dims()
			So(c, ShouldEqual, 2)
			So(r, ShouldEqual, 2)
			So(g.Z(1, 1), ShouldEqual, m.At(0, 1))
			So(g.Z(0, 0), ShouldEqual, m.At(1, 0))
			So(g.X(0), ShouldEqual, 0.5)
			So(g.Y(1), ShouldEqual, 1.5)
		})
	})

	Convey("The palette is centered on zero", t, func() {
		cmap := coolWarm()
		So(cmap.Min(), ShouldEqual, -1)
		So(cmap.Max(), ShouldEqual, 1)
		lo, err := cmap.At(-1)
		So(err, ShouldBeNil)
		mid, err := cmap.At(0)
		So(err, ShouldBeNil)
		hi, err := cmap.At(1)
		So(err, ShouldBeNil)
		So(lo, ShouldNotResemble, mid)
		So(hi, ShouldNotResemble, mid)
		So(lo, ShouldNotResemble, hi)
	})
}

func TestRadarPlot(t *testing.T) {
	Convey("Given the default segmentation chart", t, func() {
		chart := radar.DefaultChart()

		p, layers, err := radarPlot(chart)

		Convey("Then four closed polygons of five vertices are drawn", func() {
			So(err, ShouldBeNil)
			So(layers.fills, ShouldHaveLength, 4)
			So(layers.outlines, ShouldHaveLength, 4)
			for i := range layers.fills {
				So(layers.fills[i].XYs, ShouldHaveLength, 1)
				ring := layers.fills[i].XYs[0]
				So(ring, ShouldHaveLength, 5)
				So(ring[4], ShouldResemble, ring[0])
				So(layers.outlines[i].XYs, ShouldHaveLength, 5)
				So(layers.outlines[i].XYs[4], ShouldResemble, layers.outlines[i].XYs[0])
			}
		})

		Convey("Then polygons are distinct and translucent", func() {
			So(layers.fills[0].XYs[0], ShouldNotResemble, layers.fills[1].XYs[0])
			So(layers.outlines[0].Color, ShouldNotResemble, layers.outlines[1].Color)
			_, _, _, a := layers.fills[0].Color.RGBA()
			So(a, ShouldEqual, uint32(fillAlpha)*0x101)
		})

		Convey("Then the first vertex lies on the positive X axis", func() {
			first := layers.outlines[0].XYs[0]
			So(first.X, ShouldAlmostEqual, 4.8, 1e-12)
			So(first.Y, ShouldAlmostEqual, 0, 1e-12)
		})

		Convey("Then the view is symmetric around the center", func() {
			So(p.Title.Text, ShouldEqual, radar.DefaultTitle)
			So(p.X.Min, ShouldEqual, -p.X.Max)
			So(p.Y.Min, ShouldEqual, -p.Y.Max)
			So(p.X.Max, ShouldEqual, p.Y.Max)
		})
	})

	Convey("Given a segment with three scores", t, func() {
		chart := radar.DefaultChart()
		chart.Segments[0].Scores = chart.Segments[0].Scores[:3]

		_, _, err := radarPlot(chart)

		Convey("Then nothing is drawn and validation fails", func() {
			So(errors.Is(err, radar.ErrValidation), ShouldBeTrue)
		})
	})

	Convey("ringRadius rounds the top score up", t, func() {
		So(ringRadius(radar.DefaultChart()), ShouldEqual, 5)
		So(ringRadius(radar.Chart{}), ShouldEqual, 1)
	})

	Convey("toXY places a quarter turn on the positive Y axis", t, func() {
		xy := toXY(radar.Point{Angle: math.Pi / 2, Value: 2})
		So(xy.X, ShouldAlmostEqual, 0, 1e-12)
		So(xy.Y, ShouldAlmostEqual, 2, 1e-12)
	})
}

func TestRendererWritesImages(t *testing.T) {
	Convey("Given a renderer with a small figure", t, func() {
		dir := t.TempDir()
		r := New(WithDPI(50), WithHeatmapSize(6*vg.Inch, 5*vg.Inch), WithRadarSize(8*vg.Inch, 5*vg.Inch))

		Convey("When rendering the heatmap", func() {
			path := filepath.Join(dir, "nested", "heatmap.png")
			err := r.Heatmap(testMatrix(t, []float64{1, 2, 3, 4}, []float64{2, 1, 4, 3}), path)

			Convey("Then a PNG of the figure size is written", func() {
				So(err, ShouldBeNil)
				w, h := imageSize(t, path)
				So(w, ShouldEqual, 300)
				So(h, ShouldEqual, 250)
			})
		})

		Convey("When rendering the radar chart", func() {
			path := filepath.Join(dir, "radar.png")
			err := r.Radar(radar.DefaultChart(), path)

			Convey("Then a PNG of the figure size is written", func() {
				So(err, ShouldBeNil)
				w, h := imageSize(t, path)
				So(w, ShouldEqual, 400)
				So(h, ShouldEqual, 250)
			})
		})

		Convey("When the chart is invalid", func() {
			chart := radar.DefaultChart()
			chart.Labels = chart.Labels[:3]
			path := filepath.Join(dir, "bad.png")
			err := r.Radar(chart, path)

			Convey("Then a render error wraps the validation error and no file is left", func() {
				So(errors.Is(err, ErrRender), ShouldBeTrue)
				So(errors.Is(err, radar.ErrValidation), ShouldBeTrue)
				_, statErr := os.Stat(path)
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})
		})

		Convey("When the output directory cannot be created", func() {
			blocker := filepath.Join(dir, "file")
			So(os.WriteFile(blocker, []byte("x"), 0o600), ShouldBeNil)
			err := r.Radar(radar.DefaultChart(), filepath.Join(blocker, "radar.png"))

			Convey("Then a render error is returned", func() {
				So(errors.Is(err, ErrRender), ShouldBeTrue)
			})
		})
	})

	Convey("Given default options", t, func() {
		r := New(WithDPI(0), WithHeatmapSize(0, 1), WithRadarSize(1, -1))

		Convey("Then invalid values are ignored", func() {
			So(r.dpi, ShouldEqual, defaultDPI)
			So(r.heatmapW, ShouldEqual, defaultHeatmapWidth)
			So(r.radarH, ShouldEqual, defaultRadarHeight)
		})
	})
}
