package render

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// figure is the drawing surface of one chart. It is acquired by
// withFigure and released when the chart has been written or has failed.
type figure struct {
	img *vgimg.Canvas
	dc  draw.Canvas
}

func newFigure(w, h vg.Length, dpi int) *figure {
	img := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))
	return &figure{img: img, dc: draw.New(img)}
}

// save writes the figure as PNG to path. The image is written to a temporary
// file next to path and renamed so a failed run never leaves half an image.
func (f *figure) save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := (vgimg.PngCanvas{Canvas: f.img}).WriteTo(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (f *figure) release() {
	f.img = nil
	f.dc = draw.Canvas{}
}

// withFigure acquires a figure, lets paint draw on it and saves it to path.
// Panics raised by the plotting library while drawing become ErrRender.
func withFigure(path string, w, h vg.Length, dpi int, paint func(dc draw.Canvas) error) (err error) {
	fig := newFigure(w, h, dpi)
	defer fig.release()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrRender, path, r)
		}
	}()

	if err := paint(fig.dc); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRender, path, err)
	}
	if err := fig.save(path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRender, path, err)
	}
	return nil
}

// squareData shrinks c so that p's data area comes out square when p is
// drawn on the result.
func squareData(p *plot.Plot, c draw.Canvas) draw.Canvas {
	da := p.DataCanvas(c)
	w := da.Max.X - da.Min.X
	h := da.Max.Y - da.Min.Y
	switch {
	case w > h:
		d := (w - h) / 2
		return draw.Crop(c, d, -d, 0, 0)
	case h > w:
		d := (h - w) / 2
		return draw.Crop(c, 0, 0, d, -d)
	}
	return c
}

// boldTitle sets the plot title in bold at size points.
func boldTitle(p *plot.Plot, title string, size vg.Length) {
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = size
	p.Title.TextStyle.Font.Weight = font.WeightBold
	p.Title.Padding = vg.Points(8)
}
