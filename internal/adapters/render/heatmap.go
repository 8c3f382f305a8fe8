package render

import (
	"errors"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/okian/smartwatch/internal/domain/correlation"
)

// HeatmapTitle is drawn above the correlation heatmap.
const HeatmapTitle = "Wellness vs. Athlete Feature Correlation Heatmap"

const (
	paletteColors    = 255
	annotationDigits = 2
	colorBarWidth    = 0.9 * vg.Inch
	// annotations switch to white text beyond this magnitude.
	darkCellThreshold = 0.6
)

var nanCellColor = color.Gray{Y: 0xd0} //nolint:gochecknoglobals // read-only color

// matrixGrid adapts a correlation matrix to plotter.GridXYZ with the first
// matrix row drawn at the top, one unit per cell.
type matrixGrid struct {
	m *correlation.Matrix
}

func (g matrixGrid) Dims() (c, r int) { return g.m.Size(), g.m.Size() }
func (g matrixGrid) Z(c, r int) float64 {
	return g.m.At(g.m.Size()-1-r, c)
}
func (g matrixGrid) X(c int) float64 { return float64(c) + 0.5 }
func (g matrixGrid) Y(r int) float64 { return float64(r) + 0.5 }

// coolWarm returns the diverging blue-white-red map fixed to [-1, 1], so 0
// is always the neutral midpoint.
func coolWarm() palette.DivergingColorMap {
	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(-1)
	cmap.SetMax(1)
	return cmap
}

// heatmapPlot builds the annotated heatmap of m. The annotation layer is
// returned for inspection.
func heatmapPlot(m *correlation.Matrix, title string) (*plot.Plot, *plotter.Labels, error) {
	n := m.Size()
	if n == 0 {
		return nil, nil, errors.New("empty correlation matrix")
	}
	labels := m.Labels()

	p := plot.New()
	boldTitle(p, title, vg.Points(14))

	hm := plotter.NewHeatMap(matrixGrid{m: m}, coolWarm().Palette(paletteColors))
	hm.Min, hm.Max = -1, 1
	hm.NaN = nanCellColor
	p.Add(hm)

	// Black separators around and between cells.
	for k := 0; k <= n; k++ {
		at := float64(k)
		for _, pts := range []plotter.XYs{
			{{X: at, Y: 0}, {X: at, Y: float64(n)}},
			{{X: 0, Y: at}, {X: float64(n), Y: at}},
		} {
			line, err := plotter.NewLine(pts)
			if err != nil {
				return nil, nil, err
			}
			line.Color = color.Black
			line.Width = vg.Points(1)
			p.Add(line)
		}
	}

	ann, err := annotations(m)
	if err != nil {
		return nil, nil, err
	}
	p.Add(ann)

	xTicks := make([]plot.Tick, n)
	yTicks := make([]plot.Tick, n)
	for i, l := range labels {
		xTicks[i] = plot.Tick{Value: float64(i) + 0.5, Label: l}
		yTicks[i] = plot.Tick{Value: float64(n-1-i) + 0.5, Label: l}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)
	p.X.Tick.Length, p.Y.Tick.Length = 0, 0
	p.X.Padding, p.Y.Padding = 0, 0
	p.X.Min, p.X.Max = 0, float64(n)
	p.Y.Min, p.Y.Max = 0, float64(n)

	return p, ann, nil
}

// annotations writes every cell value, two decimals, centered in its cell.
func annotations(m *correlation.Matrix) (*plotter.Labels, error) {
	n := m.Size()
	xys := make(plotter.XYs, 0, n*n)
	texts := make([]string, 0, n*n)
	values := make([]float64, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := m.At(i, j)
			xys = append(xys, plotter.XY{X: float64(j) + 0.5, Y: float64(n-1-i) + 0.5})
			texts = append(texts, correlation.FormatValue(v, annotationDigits))
			values = append(values, v)
		}
	}

	ann, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, err
	}
	for i := range ann.TextStyle {
		ann.TextStyle[i].Font.Size = vg.Points(12)
		ann.TextStyle[i].XAlign = draw.XCenter
		ann.TextStyle[i].YAlign = draw.YCenter
		ann.TextStyle[i].Color = color.Black
		if !math.IsNaN(values[i]) && math.Abs(values[i]) > darkCellThreshold {
			ann.TextStyle[i].Color = color.White
		}
	}
	return ann, nil
}

// colorBarPlot is the vertical scale drawn right of the heatmap.
func colorBarPlot() *plot.Plot {
	cb := plot.New()
	cb.HideX()
	cb.Add(&plotter.ColorBar{ColorMap: coolWarm(), Vertical: true, Colors: paletteColors})
	cb.Y.Min, cb.Y.Max = -1, 1
	cb.Y.Padding = 0
	return cb
}

// Heatmap renders m as an annotated heatmap PNG at path.
func (r *Renderer) Heatmap(m *correlation.Matrix, path string) error {
	return r.HeatmapWithTitle(m, HeatmapTitle, path)
}

// HeatmapWithTitle is Heatmap with a caller supplied title.
func (r *Renderer) HeatmapWithTitle(m *correlation.Matrix, title, path string) error {
	return withFigure(path, r.heatmapW, r.heatmapH, r.dpi, func(dc draw.Canvas) error {
		p, _, err := heatmapPlot(m, title)
		if err != nil {
			return err
		}
		main := draw.Crop(dc, 0, -colorBarWidth, 0, 0)
		p.Draw(squareData(p, main))

		// Align the bar with the cell area: skip the title band.
		bar := draw.Crop(dc, dc.Max.X-dc.Min.X-colorBarWidth, 0, 0, -(main.Max.Y - p.DataCanvas(main).Max.Y))
		colorBarPlot().Draw(bar)
		return nil
	})
}
