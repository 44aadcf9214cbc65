package dom

import (
	"imstyle/pkg/css"
	"imstyle/pkg/geom"
)

// MeasureKey identifies one text measurement of a node.
type MeasureKey struct {
	Text     string
	Font     string
	FontSize float64
	WordWrap bool
	Overflow bool
	MaxWidth float64
}

// LayoutState is the per-node scratch space of the sizing pass.
type LayoutState struct {
	// Content is the content size computed by the last sizing pass.
	Content geom.Size
	// Measured is the text size Content was derived from.
	Measured geom.Size
	// WrapWidth is the width text was last laid out against after growth.
	WrapWidth float64

	measureKey MeasureKey
	measureVal geom.Size
	hasMeasure bool
}

// CachedMeasure returns the last measurement if it was taken for k.
func (l *LayoutState) CachedMeasure(k MeasureKey) (geom.Size, bool) {
	if l.hasMeasure && l.measureKey == k {
		return l.measureVal, true
	}
	return geom.Size{}, false
}

// StoreMeasure remembers a measurement for k.
func (l *LayoutState) StoreMeasure(k MeasureKey, v geom.Size) {
	l.measureKey, l.measureVal, l.hasMeasure = k, v, true
}

// Style returns the computed style of the last cascade pass, or the
// default style before the first one.
func (n Node) Style() css.ComputedStyle {
	if s := n.slot(); s != nil {
		return s.style
	}
	return css.DefaultStyle()
}

// StyleHash returns the change hash recorded with the computed style.
func (n Node) StyleHash() uint64 {
	if s := n.slot(); s != nil {
		return s.styleHash
	}
	return 0
}

// StyleChanged reports whether the last cascade pass changed the node's
// style inputs or its resolved layout or paint fields.
func (n Node) StyleChanged() bool {
	if s := n.slot(); s != nil {
		return s.styleChanged
	}
	return false
}

// SetComputedStyle records a cascade result and reports whether it differs
// from the previous one. The first result for a node always counts as a
// change. Callers must hold the tree lock.
func (n Node) SetComputedStyle(hash uint64, style css.ComputedStyle) bool {
	s := n.slot()
	if s == nil {
		return false
	}
	changed := !s.styled ||
		s.styleHash != hash ||
		s.style.LayoutSnapshot() != style.LayoutSnapshot() ||
		s.style.PaintSnapshot() != style.PaintSnapshot()
	s.style, s.styleHash, s.styled, s.styleChanged = style, hash, true, changed
	return changed
}

// Bounds returns the rects assigned by the last positioning pass.
func (n Node) Bounds() geom.Bounds {
	if s := n.slot(); s != nil {
		return s.bounds
	}
	return geom.Bounds{}
}

// SetBounds records the node's rects. Callers must hold the tree lock.
func (n Node) SetBounds(b geom.Bounds) {
	if s := n.slot(); s != nil {
		s.bounds = b
	}
}

// Layout returns the node's sizing scratch state, or nil for a stale
// handle. Callers must hold the tree lock.
func (n Node) Layout() *LayoutState {
	if s := n.slot(); s != nil {
		return &s.layout
	}
	return nil
}
