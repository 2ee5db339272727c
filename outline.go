package outliner

// ComputeOutline strokes src with opts and returns the resulting outline.
// It is the single-call form of an Engine without a glyph source:
// component references are decomposed only if they can be resolved, which
// without a source means they are dropped.
//
// A non-positive thickness returns a copy of src unchanged.
func ComputeOutline(src *Path, opts Options) *Path {
	return NewEngine(opts, nil).Outline(src)
}

// layers holds the three independently selectable outputs for a set of
// contours, each in source order.
type layers struct {
	originals []Contour
	inners    []Contour
	outers    []Contour
}

func (l *layers) appendTo(p *Path) {
	for _, group := range [][]Contour{l.originals, l.inners, l.outers} {
		for _, c := range group {
			p.AddContour(c)
		}
	}
}

// stroker turns source contours into offset contours for one Options.
type stroker struct {
	opts Options
	pen  Pen
}

func newStroker(opts Options) stroker {
	opts = opts.normalized()
	return stroker{opts: opts, pen: NewPen(opts)}
}

// assemble strokes every contour and groups the results by layer.
func (s stroker) assemble(contours []Contour) layers {
	var out layers
	for _, c := range contours {
		if len(c.Segments) == 0 {
			continue
		}
		if s.opts.AddOriginal {
			out.originals = append(out.originals, c.Clone())
		}
		if !s.opts.AddInner && !s.opts.AddOuter {
			continue
		}
		inner, outer, joined := s.strokeContour(c)
		switch {
		case joined != nil:
			out.outers = append(out.outers, s.finish(*joined))
		default:
			if inner != nil {
				out.inners = append(out.inners, s.finish(*inner))
			}
			if outer != nil {
				out.outers = append(out.outers, s.finish(*outer))
			}
		}
	}
	return out
}

// outwardSide returns the multiplier of the left normal that points away
// from the region the contour encloses.
func outwardSide(c Contour) float64 {
	if c.SignedArea() < 0 {
		return 1
	}
	return -1
}

// strokeContour offsets one contour. Closed contours yield separate inner
// and outer contours. Open contours with both sides enabled yield a single
// capped contour in joined.
func (s stroker) strokeContour(c Contour) (inner, outer, joined *Contour) {
	out := outwardSide(c)

	var outerRuns, innerRuns []*run
	if s.opts.AddOuter {
		o := offsetter{pen: s.pen, side: out, optimize: s.opts.OptimizeCurve}
		outerRuns = o.runs(c)
	}
	if s.opts.AddInner {
		o := offsetter{pen: s.pen, side: -out, optimize: s.opts.OptimizeCurve}
		innerRuns = o.runs(c)
	}
	if len(outerRuns) == 0 && len(innerRuns) == 0 {
		// Every segment had zero length.
		return nil, nil, nil
	}

	if !c.Closed && len(outerRuns) > 0 && len(innerRuns) > 0 {
		j := s.joined(c, outerRuns, innerRuns, out)
		return nil, nil, &j
	}

	if len(outerRuns) > 0 {
		o := newJoiner(s.opts, out).contour(outerRuns, c.Closed)
		outer = &o
	}
	if len(innerRuns) > 0 {
		i := newJoiner(s.opts, -out).contour(innerRuns, c.Closed).Reversed()
		inner = &i
	}
	return inner, outer, nil
}

// joined wraps an open contour: outer side forward, end cap, inner side
// backward, start cap.
func (s stroker) joined(c Contour, outerRuns, innerRuns []*run, out float64) Contour {
	outerSide := newJoiner(s.opts, out).contour(outerRuns, false)
	innerSide := newJoiner(s.opts, -out).contour(innerRuns, false)
	back := innerSide.Reversed()

	first, last := outerRuns[0], outerRuns[len(outerRuns)-1]
	caps := newJoiner(s.opts, out)

	result := Contour{Start: outerSide.Start, Closed: true}
	result.Segments = append(result.Segments, outerSide.Segments...)
	result.Segments = append(result.Segments, caps.capEnd(outerSide.End(), back.Start, last.vertex, last.tanOut)...)
	result.Segments = append(result.Segments, back.Segments...)
	result.Segments = append(result.Segments, caps.capEnd(back.End(), outerSide.Start, c.Start, first.tanIn.Neg())...)
	return result
}

// finish applies the per-contour clean-up passes.
func (s stroker) finish(c Contour) Contour {
	if s.opts.OptimizeCurve {
		c = mergeCollinear(c)
	}
	if s.opts.FilterDoubles {
		c = filterDoubles(c, doublesEpsilon)
	}
	return c
}
