package layout

import (
	"math"

	"imstyle/pkg/css"
	"imstyle/pkg/dom"
	"imstyle/pkg/geom"
)

// group is the set of children sharing one anchor point.
type group struct {
	anchor  css.Anchor
	align   css.Anchor
	members []dom.Node
}

// groupChildren partitions the children accepted by include by their own
// anchor, in order of first appearance. Children without an anchor share
// one group aligned by the parent's align.
func groupChildren(parent css.LayoutProps, children []dom.Node, include func(dom.Node) bool) []group {
	var groups []group
	for _, c := range children {
		if !include(c) {
			continue
		}
		key := c.Style().Layout.Anchor
		idx := -1
		for i := range groups {
			if groups[i].anchor == key {
				idx = i
				break
			}
		}
		if idx < 0 {
			align := key
			if key == css.AnchorNone {
				align = parent.Align
			}
			groups = append(groups, group{anchor: key, align: align})
			idx = len(groups) - 1
		}
		groups[idx].members = append(groups[idx].members, c)
	}
	return groups
}

// extent is the group's aggregate outer size: the members laid end to end
// with gaps on the flow axis, the largest member on the cross axis.
func (g group) extent(flow geom.Axis, gap float64) geom.Size {
	var s geom.Size
	cross := flow.Cross()
	for i, c := range g.members {
		o := outerSize(c)
		main := s.Axis(flow) + o.Axis(flow)
		if i > 0 {
			main += gap
		}
		s.SetAxis(flow, main)
		s.SetAxis(cross, math.Max(s.Axis(cross), o.Axis(cross)))
	}
	return s
}

// rendered reports whether a child is drawn and takes part in positioning.
func rendered(c dom.Node) bool {
	return c.Style().Layout.Visible && !paddingSize(c).Empty()
}

// placeRoot puts the root's margin box at origin and positions the tree.
func (e *Engine) placeRoot(root dom.Node, origin geom.Point) {
	if !root.Style().Layout.Visible {
		collapse(root, origin)
		return
	}
	e.place(root, geom.Point{X: math.Round(origin.X), Y: math.Round(origin.Y)})
}

// place assigns n's rects with its margin box at p, then positions its
// children group by group.
func (e *Engine) place(n dom.Node, p geom.Point) {
	l := n.Style().Layout
	margin := geom.RectAt(p, outerSize(n))
	padding := margin.Inset(l.Margin)
	content := padding.Inset(l.Padding)
	n.SetBounds(geom.Bounds{Content: content, Padding: padding, Margin: margin})

	children := n.Children()
	for _, c := range children {
		if !rendered(c) {
			collapse(c, content.Origin())
		}
	}

	main, cross := l.Flow, l.Flow.Cross()
	for _, g := range groupChildren(l, children, rendered) {
		members := g.members
		if l.FlowOrder == css.OrderReverse {
			members = reversed(members)
		}
		total := g.extent(main, l.Gap).Axis(main)

		pos := alignOffset(g.align, main, content, total)
		for _, c := range members {
			outer := outerSize(c)
			var at geom.Point
			setPointAxis(&at, main, math.Round(pos))
			setPointAxis(&at, cross, math.Round(alignOffset(g.align, cross, content, outer.Axis(cross))))
			e.place(c, at)
			pos += outer.Axis(main) + l.Gap
		}
	}
}

// alignOffset returns where a run of the given length starts on axis a
// inside r for the anchor's alignment on that axis.
func alignOffset(anchor css.Anchor, a geom.Axis, r geom.Rect, length float64) float64 {
	start, extent := r.X, r.Width
	var frac float64
	if a == geom.Horizontal {
		switch anchor.H() {
		case css.AlignCenter:
			frac = 0.5
		case css.AlignRight:
			frac = 1
		}
	} else {
		start, extent = r.Y, r.Height
		switch anchor.V() {
		case css.AlignMiddle:
			frac = 0.5
		case css.AlignBottom:
			frac = 1
		}
	}
	return start + (extent-length)*frac
}

func setPointAxis(p *geom.Point, a geom.Axis, v float64) {
	if a == geom.Horizontal {
		p.X = v
	} else {
		p.Y = v
	}
}

func reversed(nodes []dom.Node) []dom.Node {
	out := make([]dom.Node, len(nodes))
	for i, n := range nodes {
		out[len(nodes)-1-i] = n
	}
	return out
}

// collapse gives n and its subtree empty rects at p.
func collapse(n dom.Node, p geom.Point) {
	r := geom.RectAt(p, geom.Size{})
	n.SetBounds(geom.Bounds{Content: r, Padding: r, Margin: r})
	for _, c := range n.Children() {
		collapse(c, p)
	}
}
