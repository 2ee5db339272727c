package preview

import (
	"fmt"
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/gogpu/outliner"
)

// ProofGlyph is one cell of a proof sheet.
type ProofGlyph struct {
	Name   string
	Source *outliner.Path
	Result *outliner.Path
}

// ProofOptions configures a proof sheet.
type ProofOptions struct {
	Title   string
	Columns int
	// UnitsPerEm sets the em box drawn in each cell; 0 means 1000.
	UnitsPerEm float64
	Color      color.Color
	// Stroke draws the source contours as hairlines over the result.
	Stroke bool
}

// A4 portrait, millimetres.
const (
	pageW       = 210.0
	pageH       = 297.0
	pageMargin  = 15.0
	headerH     = 12.0
	labelH      = 5.0
	labelPt     = 7.0
	titlePt     = 11.0
	hairline    = 0.1
	emFill      = 0.8
	baselinePos = 0.75
)

// WriteProof lays glyphs out in a grid, several pages if needed, and writes
// the PDF to w.
func WriteProof(w io.Writer, glyphs []ProofGlyph, opts ProofOptions) error {
	pdf := newProof(glyphs, opts)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("preview: write proof: %w", err)
	}
	return nil
}

func newProof(glyphs []ProofGlyph, opts ProofOptions) *gofpdf.Fpdf {
	cols := max(opts.Columns, 1)
	upem := opts.UnitsPerEm
	if upem <= 0 {
		upem = 1000
	}
	cellW := (pageW - 2*pageMargin) / float64(cols)
	cellH := cellW + labelH
	rows := max(int((pageH-2*pageMargin-headerH)/cellH), 1)
	scale := cellW * emFill / upem

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(opts.Title, true)
	pdf.SetCreator("outliner", true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)

	fill := color.RGBAModel.Convert(colorOr(opts.Color, color.Black)).(color.RGBA)
	perPage := rows * cols
	for i, g := range glyphs {
		if i%perPage == 0 {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "B", titlePt)
			pdf.Text(pageMargin, pageMargin+titlePt*0.35, opts.Title)
		}
		slot := i % perPage
		x := pageMargin + float64(slot%cols)*cellW
		y := pageMargin + headerH + float64(slot/cols)*cellH

		pdf.SetDrawColor(200, 200, 200)
		pdf.SetLineWidth(hairline)
		pdf.Rect(x, y, cellW, cellH, "D")

		// Glyph origin: centered horizontally on the em, baseline near the
		// bottom of the drawing area.
		ox := x + (cellW-upem*scale)/2
		oy := y + cellW*baselinePos
		place := func(p outliner.Point) (float64, float64) {
			return ox + p.X*scale, oy - p.Y*scale
		}

		if g.Result != nil {
			pdf.SetFillColor(int(fill.R), int(fill.G), int(fill.B))
			if tracePath(pdf, g.Result, place) {
				pdf.DrawPath("F")
			}
		}
		if opts.Stroke && g.Source != nil {
			pdf.SetDrawColor(224, 64, 64)
			if tracePath(pdf, g.Source, place) {
				pdf.DrawPath("D")
			}
		}

		pdf.SetFont("Helvetica", "", labelPt)
		pdf.Text(x+1, y+cellH-1.5, g.Name)
	}
	if len(glyphs) == 0 {
		pdf.AddPage()
	}
	return pdf
}

// tracePath adds p to the current PDF path and reports whether anything
// was added.
func tracePath(pdf *gofpdf.Fpdf, p *outliner.Path, place func(outliner.Point) (float64, float64)) bool {
	for _, c := range p.Contours {
		pdf.MoveTo(place(c.Start))
		for _, seg := range c.Segments {
			switch s := seg.(type) {
			case outliner.LineTo:
				pdf.LineTo(place(s.Point))
			case outliner.CubicTo:
				x1, y1 := place(s.Control1)
				x2, y2 := place(s.Control2)
				x3, y3 := place(s.Point)
				pdf.CurveBezierCubicTo(x1, y1, x2, y2, x3, y3)
			}
		}
		if c.Closed {
			pdf.ClosePath()
		}
	}
	return len(p.Contours) > 0
}
