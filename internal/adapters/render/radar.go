package render

import (
	"image/color"
	"math"

	"golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/okian/smartwatch/internal/domain/radar"
)

const (
	circleSegments = 120
	fillAlpha      = 0x33 // 0.2 of full opacity
	outlineWidth   = 2
	// labelRadius and viewRadius are multiples of the outer ring radius.
	labelRadius = 1.12
	viewRadius  = 1.35
	legendWidth = 3 * vg.Inch
)

var gridColor = color.Gray{Y: 0xc8} //nolint:gochecknoglobals // read-only color

// radarLayers keeps the per-segment drawables so tests can inspect them.
type radarLayers struct {
	outlines []*plotter.Line
	fills    []*plotter.Polygon
	legend   plot.Legend
}

// toXY maps a polar point onto the plane: angle 0 points right and angles
// grow counter-clockwise.
func toXY(pt radar.Point) plotter.XY {
	return plotter.XY{X: pt.Value * math.Cos(pt.Angle), Y: pt.Value * math.Sin(pt.Angle)}
}

// ringRadius is the outer grid radius: the top score rounded up to a whole
// unit, at least 1.
func ringRadius(chart radar.Chart) float64 {
	return math.Max(1, math.Ceil(chart.MaxScore()))
}

// radarPlot builds the polar chart of every segment on one set of axes.
func radarPlot(chart radar.Chart) (*plot.Plot, *radarLayers, error) {
	polys, err := chart.Polygons()
	if err != nil {
		return nil, nil, err
	}
	outer := ringRadius(chart)
	angles := radar.Angles(len(chart.Labels))

	p := plot.New()
	boldTitle(p, chart.Title, vg.Points(12))
	p.HideAxes()
	p.X.Min, p.X.Max = -outer*viewRadius, outer*viewRadius
	p.Y.Min, p.Y.Max = -outer*viewRadius, outer*viewRadius

	if err := addPolarGrid(p, angles, outer); err != nil {
		return nil, nil, err
	}

	layers := &radarLayers{legend: plot.NewLegend()}
	layers.legend.TextStyle.Font.Size = vg.Points(10)
	for i, pts := range polys {
		xys := make(plotter.XYs, len(pts))
		for k, pt := range pts {
			xys[k] = toXY(pt)
		}
		c := color.NRGBAModel.Convert(plotutil.Color(i)).(color.NRGBA)

		fill, err := plotter.NewPolygon(xys)
		if err != nil {
			return nil, nil, err
		}
		fill.Color = color.NRGBA{R: c.R, G: c.G, B: c.B, A: fillAlpha}
		fill.LineStyle.Width = 0

		outline, err := plotter.NewLine(xys)
		if err != nil {
			return nil, nil, err
		}
		outline.Color = c
		outline.Width = vg.Points(outlineWidth)
		outline.Dashes = nil

		p.Add(fill, outline)
		layers.fills = append(layers.fills, fill)
		layers.outlines = append(layers.outlines, outline)
		layers.legend.Add(chart.Segments[i].Name, outline, fill)
	}

	attr, err := attributeLabels(chart.Labels, angles, outer*labelRadius)
	if err != nil {
		return nil, nil, err
	}
	p.Add(attr)
	return p, layers, nil
}

// addPolarGrid draws one ring per whole score unit and a spoke per
// attribute. Rings carry no value labels.
func addPolarGrid(p *plot.Plot, angles []float64, outer float64) error {
	for r := 1.0; r <= outer; r++ {
		ring := make(plotter.XYs, circleSegments+1)
		for k := range ring {
			a := 2 * math.Pi * float64(k) / circleSegments
			ring[k] = plotter.XY{X: r * math.Cos(a), Y: r * math.Sin(a)}
		}
		line, err := plotter.NewLine(ring)
		if err != nil {
			return err
		}
		line.Color = gridColor
		line.Width = vg.Points(0.8)
		p.Add(line)
	}
	for _, a := range angles {
		spoke, err := plotter.NewLine(plotter.XYs{{}, toXY(radar.Point{Angle: a, Value: outer})})
		if err != nil {
			return err
		}
		spoke.Color = gridColor
		spoke.Width = vg.Points(0.8)
		p.Add(spoke)
	}
	return nil
}

// attributeLabels places each label just outside the outer ring, aligned
// away from the center.
func attributeLabels(labels []string, angles []float64, radius float64) (*plotter.Labels, error) {
	xys := make(plotter.XYs, len(angles))
	for i, a := range angles {
		xys[i] = toXY(radar.Point{Angle: a, Value: radius})
	}
	ls, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, err
	}
	for i, a := range angles {
		ls.TextStyle[i].Font.Size = vg.Points(10)
		ls.TextStyle[i].Font.Weight = font.WeightBold
		ls.TextStyle[i].XAlign = draw.XCenter
		ls.TextStyle[i].YAlign = draw.YCenter
		switch cos := math.Cos(a); {
		case cos > 0.1:
			ls.TextStyle[i].XAlign = draw.XLeft
		case cos < -0.1:
			ls.TextStyle[i].XAlign = draw.XRight
		}
	}
	return ls, nil
}

// Radar renders chart as a polar PNG at path with the legend right of the
// circle.
func (r *Renderer) Radar(chart radar.Chart, path string) error {
	return withFigure(path, r.radarW, r.radarH, r.dpi, func(dc draw.Canvas) error {
		p, layers, err := radarPlot(chart)
		if err != nil {
			return err
		}
		area := draw.Crop(dc, 0, -legendWidth, 0, 0)
		p.Draw(squareData(p, area))

		legend := draw.Crop(dc, dc.Max.X-dc.Min.X-legendWidth, 0, 0, 0)
		layers.legend.Left = true
		layers.legend.Top = false
		layers.legend.Draw(legend)
		return nil
	})
}
