package layout

import (
	"math"

	"imstyle/pkg/css"
	"imstyle/pkg/dom"
	"imstyle/pkg/geom"
)

// size runs the sizing pass on the tree under root, re-running it while
// text measured against the grown widths disagrees with the first
// measurement, up to the configured number of extra passes.
func (e *Engine) size(root dom.Node, viewport geom.Size) (passes int, stable bool) {
	for {
		passes++
		e.measure(root)
		e.growRoot(root, viewport)
		e.grow(root)
		if e.settle(root) {
			return passes, true
		}
		if passes > e.cfg.MaxStabilizationPasses {
			e.logger.Warn("text sizes did not stabilise",
				"passes", passes,
				"root", root.ElementID())
			return passes, false
		}
	}
}

// participates reports whether a child takes part in its parent's
// aggregation and growth. Children that can grow count even before they
// have any size.
func participates(c dom.Node) bool {
	l := c.Style().Layout
	if !l.Visible {
		return false
	}
	return !paddingSize(c).Empty() || l.Grows(geom.Horizontal) || l.Grows(geom.Vertical)
}

func paddingSize(n dom.Node) geom.Size {
	l := n.Style().Layout
	c := n.Layout().Content
	return geom.Size{
		Width:  c.Width + l.Padding.Horizontal(),
		Height: c.Height + l.Padding.Vertical(),
	}
}

// outerSize is the margin-box size.
func outerSize(n dom.Node) geom.Size {
	l := n.Style().Layout
	p := paddingSize(n)
	return geom.Size{
		Width:  p.Width + l.Margin.Horizontal(),
		Height: p.Height + l.Margin.Vertical(),
	}
}

// measure is the bottom-up fixed/fit phase.
func (e *Engine) measure(n dom.Node) {
	l := n.Style().Layout
	ls := n.Layout()

	children := n.Children()
	for _, c := range children {
		if c.Style().Layout.Visible {
			e.measure(c)
		}
	}

	var agg geom.Size
	for _, g := range groupChildren(l, children, participates) {
		s := g.extent(l.Flow, l.Gap)
		agg.Width = math.Max(agg.Width, s.Width)
		agg.Height = math.Max(agg.Height, s.Height)
	}

	text := e.measureText(n, l, e.wrapWidth(l, ls))
	ls.Measured = text

	var content geom.Size
	for _, a := range [...]geom.Axis{geom.Horizontal, geom.Vertical} {
		if d := l.DeclaredSize(a); d > 0 {
			content.SetAxis(a, d-l.Padding.Axis(a))
		} else {
			content.SetAxis(a, math.Max(agg.Axis(a), text.Axis(a)))
		}
	}
	ls.Content = content.Clamp()
}

// wrapWidth is the width text is measured against during the fixed/fit
// phase: the declared content width, the width growth assigned on the
// previous pass, or unbounded.
func (e *Engine) wrapWidth(l css.LayoutProps, ls *dom.LayoutState) float64 {
	if !l.MeasuresText() {
		return 0
	}
	if l.Width > 0 {
		return math.Max(0, l.Width-l.Padding.Horizontal())
	}
	if l.Grows(geom.Horizontal) {
		return ls.WrapWidth
	}
	return 0
}

func (e *Engine) measureText(n dom.Node, l css.LayoutProps, maxWidth float64) geom.Size {
	text := n.Text()
	if text == "" {
		return geom.Size{}
	}
	req := MeasureRequest{
		Text:     text,
		Font:     l.Font,
		FontSize: l.FontSize,
		WordWrap: l.WordWrap,
		Overflow: l.TextOverflow,
		MaxWidth: maxWidth,
	}
	ls := n.Layout()
	key := dom.MeasureKey(req)
	if s, ok := ls.CachedMeasure(key); ok {
		return s
	}
	s := e.measurer.Measure(req).Clamp()
	ls.StoreMeasure(key, s)
	return s
}

// growRoot lets a growing root fill the viewport.
func (e *Engine) growRoot(root dom.Node, viewport geom.Size) {
	l := root.Style().Layout
	ls := root.Layout()
	for _, a := range [...]geom.Axis{geom.Horizontal, geom.Vertical} {
		if l.Grows(a) && viewport.Axis(a) > 0 {
			ls.Content.SetAxis(a, math.Max(0, viewport.Axis(a)-l.Margin.Axis(a)-l.Padding.Axis(a)))
		}
	}
}

// grow is the top-down growth phase: each anchor group shares the space
// its fixed members leave free among its growable members on the flow
// axis, and growable members on the cross axis stretch to the parent.
func (e *Engine) grow(n dom.Node) {
	l := n.Style().Layout
	main, cross := l.Flow, l.Flow.Cross()
	content := n.Layout().Content
	children := n.Children()

	for _, g := range groupChildren(l, children, participates) {
		var growable []dom.Node
		used := l.Gap * float64(len(g.members)-1)
		for _, c := range g.members {
			if c.Style().Layout.Grows(main) {
				growable = append(growable, c)
			} else {
				used += outerSize(c).Axis(main)
			}
		}
		if len(growable) == 0 {
			continue
		}

		avail := int(math.Floor(math.Max(0, content.Axis(main)-used)))
		base, rem := avail/len(growable), avail%len(growable)
		for i, c := range growable {
			outer := base
			if i < rem {
				outer++
			}
			setOuter(c, main, float64(outer))
		}
	}

	for _, c := range children {
		if !participates(c) {
			continue
		}
		if c.Style().Layout.Grows(cross) {
			setOuter(c, cross, content.Axis(cross))
		}
	}

	for _, c := range children {
		if c.Style().Layout.Visible {
			e.grow(c)
		}
	}
}

// setOuter gives n the content size that makes its margin box outer long
// on axis a.
func setOuter(n dom.Node, a geom.Axis, outer float64) {
	l := n.Style().Layout
	ls := n.Layout()
	ls.Content.SetAxis(a, math.Max(0, outer-l.Margin.Axis(a)-l.Padding.Axis(a)))
}

// settle re-measures text whose size depends on the final width and
// reports whether every such measurement matches the one the fixed/fit
// phase used.
func (e *Engine) settle(n dom.Node) bool {
	l := n.Style().Layout
	if !l.Visible {
		return true
	}
	stable := true
	if l.MeasuresText() && n.Text() != "" {
		ls := n.Layout()
		w := ls.Content.Width
		if e.measureText(n, l, w) != ls.Measured {
			stable = false
		}
		ls.WrapWidth = w
	}
	for _, c := range n.Children() {
		if !e.settle(c) {
			stable = false
		}
	}
	return stable
}
