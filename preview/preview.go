// Package preview draws outline results for review: PNG previews of a
// single glyph and PDF proof sheets of many.
//
// Previews fill the outlined result and draw the source contours on top,
// the way an editor shows an expand-stroke preview before committing it.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/outliner"
)

// Options configures a PNG preview.
type Options struct {
	// Size is the edge of the square image in pixels.
	Size int
	// Fill paints the outlined result.
	Fill bool
	// Stroke draws the source contours over the result.
	Stroke bool
	// Color is the result fill.
	Color color.Color
	// SourceColor and SourceWidth style the source overlay.
	SourceColor color.Color
	SourceWidth float64
	Background  color.Color
	// Margin is the blank border as a fraction of Size.
	Margin float64
}

// DefaultOptions returns a 512 pixel preview with fill and overlay.
func DefaultOptions() Options {
	return Options{
		Size:        512,
		Fill:        true,
		Stroke:      true,
		Color:       color.RGBA{R: 0x1f, G: 0x3a, B: 0x93, A: 0xff},
		SourceColor: color.RGBA{R: 0xe0, G: 0x40, B: 0x40, A: 0xff},
		SourceWidth: 1.5,
		Background:  color.White,
		Margin:      0.05,
	}
}

// ParseColor parses a hex color such as "#1f3a93".
func ParseColor(s string) (color.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("preview: color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// frame maps font units into image pixels, y flipped.
type frame struct {
	scale  float64
	center outliner.Point
	half   float64
}

func newFrame(bounds outliner.Rect, size int, margin float64) frame {
	f := frame{scale: 1, center: bounds.Center(), half: float64(size) / 2}
	if span := max(bounds.Width(), bounds.Height()); span > 0 {
		f.scale = float64(size) * (1 - 2*margin) / span
	}
	return f
}

func (f frame) apply(p outliner.Point) (float64, float64) {
	return (p.X-f.center.X)*f.scale + f.half, f.half - (p.Y-f.center.Y)*f.scale
}

// Render draws result and source into a new image. Either path may be nil.
// The view fits the union of both.
func Render(result, source *outliner.Path, opts Options) *image.RGBA {
	size := max(opts.Size, 1)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	bg := opts.Background
	if bg == nil {
		bg = color.Transparent
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	bounds, ok := union(result, source)
	if !ok {
		return img
	}
	f := newFrame(bounds, size, opts.Margin)

	if opts.Fill && result != nil {
		fill(img, result, f, colorOr(opts.Color, color.Black))
	}
	if opts.Stroke && source != nil {
		stroke(img, source, f, colorOr(opts.SourceColor, color.Black), max(opts.SourceWidth, 0.5))
	}
	return img
}

// WritePNG renders a preview and encodes it as PNG.
func WritePNG(w io.Writer, result, source *outliner.Path, opts Options) error {
	if err := png.Encode(w, Render(result, source, opts)); err != nil {
		return fmt.Errorf("preview: encode png: %w", err)
	}
	return nil
}

func union(paths ...*outliner.Path) (outliner.Rect, bool) {
	var (
		out   outliner.Rect
		found bool
	)
	for _, p := range paths {
		if p == nil {
			continue
		}
		b, ok := p.Bounds()
		if !ok {
			continue
		}
		if !found {
			out, found = b, true
			continue
		}
		out = out.Union(b)
	}
	return out, found
}

func colorOr(c, fallback color.Color) color.Color {
	if c == nil {
		return fallback
	}
	return c
}

// fill paints p with nonzero winding, so counters drawn in the opposite
// direction stay empty.
func fill(img *image.RGBA, p *outliner.Path, f frame, c color.Color) {
	b := img.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	pt := func(p outliner.Point) (float32, float32) {
		x, y := f.apply(p)
		return float32(x), float32(y)
	}
	for _, contour := range p.Contours {
		r.MoveTo(pt(contour.Start))
		for _, seg := range contour.Segments {
			switch s := seg.(type) {
			case outliner.LineTo:
				r.LineTo(pt(s.Point))
			case outliner.CubicTo:
				x1, y1 := pt(s.Control1)
				x2, y2 := pt(s.Control2)
				x3, y3 := pt(s.Point)
				r.CubeTo(x1, y1, x2, y2, x3, y3)
			}
		}
		r.ClosePath()
	}
	r.Draw(img, b, image.NewUniform(c), image.Point{})
}

// stroke draws the contours of p as lines of the given pixel width.
func stroke(img *image.RGBA, p *outliner.Path, f frame, c color.Color, width float64) {
	b := img.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), img, b)
	d := rasterx.NewDasher(b.Dx(), b.Dy(), scanner)
	d.SetStroke(fixed.Int26_6(width*64), 0, rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.Round, nil, 0)
	d.SetColor(c)

	pt := func(p outliner.Point) fixed.Point26_6 {
		return rasterx.ToFixedP(f.apply(p))
	}
	for _, contour := range p.Contours {
		d.Start(pt(contour.Start))
		for _, seg := range contour.Segments {
			switch s := seg.(type) {
			case outliner.LineTo:
				d.Line(pt(s.Point))
			case outliner.CubicTo:
				d.CubeBezier(pt(s.Control1), pt(s.Control2), pt(s.Point))
			}
		}
		d.Stop(contour.Closed)
	}
	d.Draw()
}
