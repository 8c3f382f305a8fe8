// Package render draws the survey charts with gonum/plot and writes them as
// PNG images.
package render

import (
	"gonum.org/v1/plot/vg"
)

// Default figure geometry.
const (
	defaultDPI           = 96
	defaultHeatmapWidth  = 6 * vg.Inch
	defaultHeatmapHeight = 5 * vg.Inch
	defaultRadarWidth    = 8 * vg.Inch
	defaultRadarHeight   = 5 * vg.Inch
)

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithDPI sets the raster resolution.
func WithDPI(dpi int) Option {
	return func(r *Renderer) {
		if dpi > 0 {
			r.dpi = dpi
		}
	}
}

// WithHeatmapSize sets the heatmap figure size.
func WithHeatmapSize(w, h vg.Length) Option {
	return func(r *Renderer) {
		if w > 0 && h > 0 {
			r.heatmapW, r.heatmapH = w, h
		}
	}
}

// WithRadarSize sets the radar figure size.
func WithRadarSize(w, h vg.Length) Option {
	return func(r *Renderer) {
		if w > 0 && h > 0 {
			r.radarW, r.radarH = w, h
		}
	}
}

// Renderer writes chart images. It holds no drawing state between calls;
// every chart gets its own figure.
type Renderer struct {
	dpi      int
	heatmapW vg.Length
	heatmapH vg.Length
	radarW   vg.Length
	radarH   vg.Length
}

// New creates a Renderer with configuration options.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		dpi:      defaultDPI,
		heatmapW: defaultHeatmapWidth,
		heatmapH: defaultHeatmapHeight,
		radarW:   defaultRadarWidth,
		radarH:   defaultRadarHeight,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
