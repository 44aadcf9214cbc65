package css

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"imstyle/pkg/geom"
)

// LayoutFragment holds the optional fields that affect geometry.
type LayoutFragment struct {
	Visible       Opt[bool]
	Width         Opt[float64]
	Height        Opt[float64]
	WidthMode     Opt[AutoSize]
	HeightMode    Opt[AutoSize]
	PaddingTop    Opt[float64]
	PaddingRight  Opt[float64]
	PaddingBottom Opt[float64]
	PaddingLeft   Opt[float64]
	MarginTop     Opt[float64]
	MarginRight   Opt[float64]
	MarginBottom  Opt[float64]
	MarginLeft    Opt[float64]
	Gap           Opt[float64]
	Flow          Opt[geom.Axis]
	FlowOrder     Opt[FlowOrder]
	Anchor        Opt[Anchor]
	Align         Opt[Anchor]
	Font          Opt[string]
	FontSize      Opt[float64]
	WordWrap      Opt[bool]
	TextOverflow  Opt[bool]
}

// PaintFragment holds the optional fields that only affect painting.
type PaintFragment struct {
	Color         Opt[Color]
	Background    Opt[Color]
	BorderColor   Opt[Color]
	BorderWidth   Opt[float64]
	BorderRadius  Opt[float64]
	Opacity       Opt[float64]
	TextAlign     Opt[TextAlign]
	ShadowColor   Opt[Color]
	ShadowOffsetX Opt[float64]
	ShadowOffsetY Opt[float64]
	Cursor        Opt[string]
}

// Fragment is a sparse set of style values. It is used both as a node's
// inline style and as the body of a stylesheet rule.
type Fragment struct {
	Layout LayoutFragment
	Paint  PaintFragment
}

// IsZero reports whether no field is set.
func (f Fragment) IsZero() bool {
	return f == Fragment{}
}

// SetPadding sets all four padding sides.
func (f *Fragment) SetPadding(e geom.Edges) {
	f.Layout.PaddingTop.Set(e.Top)
	f.Layout.PaddingRight.Set(e.Right)
	f.Layout.PaddingBottom.Set(e.Bottom)
	f.Layout.PaddingLeft.Set(e.Left)
}

// SetMargin sets all four margin sides.
func (f *Fragment) SetMargin(e geom.Edges) {
	f.Layout.MarginTop.Set(e.Top)
	f.Layout.MarginRight.Set(e.Right)
	f.Layout.MarginBottom.Set(e.Bottom)
	f.Layout.MarginLeft.Set(e.Left)
}

// Merge overlays the set fields of o onto f.
func (f *Fragment) Merge(o Fragment) {
	l, ol := &f.Layout, o.Layout
	overlay(&l.Visible, ol.Visible)
	overlay(&l.Width, ol.Width)
	overlay(&l.Height, ol.Height)
	overlay(&l.WidthMode, ol.WidthMode)
	overlay(&l.HeightMode, ol.HeightMode)
	overlay(&l.PaddingTop, ol.PaddingTop)
	overlay(&l.PaddingRight, ol.PaddingRight)
	overlay(&l.PaddingBottom, ol.PaddingBottom)
	overlay(&l.PaddingLeft, ol.PaddingLeft)
	overlay(&l.MarginTop, ol.MarginTop)
	overlay(&l.MarginRight, ol.MarginRight)
	overlay(&l.MarginBottom, ol.MarginBottom)
	overlay(&l.MarginLeft, ol.MarginLeft)
	overlay(&l.Gap, ol.Gap)
	overlay(&l.Flow, ol.Flow)
	overlay(&l.FlowOrder, ol.FlowOrder)
	overlay(&l.Anchor, ol.Anchor)
	overlay(&l.Align, ol.Align)
	overlay(&l.Font, ol.Font)
	overlay(&l.FontSize, ol.FontSize)
	overlay(&l.WordWrap, ol.WordWrap)
	overlay(&l.TextOverflow, ol.TextOverflow)

	p, op := &f.Paint, o.Paint
	overlay(&p.Color, op.Color)
	overlay(&p.Background, op.Background)
	overlay(&p.BorderColor, op.BorderColor)
	overlay(&p.BorderWidth, op.BorderWidth)
	overlay(&p.BorderRadius, op.BorderRadius)
	overlay(&p.Opacity, op.Opacity)
	overlay(&p.TextAlign, op.TextAlign)
	overlay(&p.ShadowColor, op.ShadowColor)
	overlay(&p.ShadowOffsetX, op.ShadowOffsetX)
	overlay(&p.ShadowOffsetY, op.ShadowOffsetY)
	overlay(&p.Cursor, op.Cursor)
}

func overlay[T comparable](dst *Opt[T], src Opt[T]) {
	if src.ok {
		*dst = src
	}
}

// fragmentHasher writes the set fields of a fragment into a digest. Every
// field is tagged with its position so that two fragments setting different
// fields to the same value hash differently.
type fragmentHasher struct {
	d   *xxhash.Digest
	buf [9]byte
	tag byte
}

func (h *fragmentHasher) num(o Opt[float64]) {
	h.tag++
	if v, ok := o.Get(); ok {
		h.buf[0] = h.tag
		binary.LittleEndian.PutUint64(h.buf[1:], math.Float64bits(v))
		_, _ = h.d.Write(h.buf[:])
	}
}

func (h *fragmentHasher) flag(o Opt[bool]) {
	h.tag++
	if v, ok := o.Get(); ok {
		b := byte(0)
		if v {
			b = 1
		}
		_, _ = h.d.Write([]byte{h.tag, b})
	}
}

func (h *fragmentHasher) small(set bool, v uint8) {
	h.tag++
	if set {
		_, _ = h.d.Write([]byte{h.tag, v})
	}
}

func (h *fragmentHasher) str(o Opt[string]) {
	h.tag++
	if v, ok := o.Get(); ok {
		_, _ = h.d.Write([]byte{h.tag})
		_, _ = h.d.WriteString(v)
		_, _ = h.d.Write([]byte{0})
	}
}

func (h *fragmentHasher) color(o Opt[Color]) {
	h.tag++
	if c, ok := o.Get(); ok {
		_, _ = h.d.Write([]byte{h.tag, c.R, c.G, c.B, c.A})
	}
}

func enumOpt[T ~uint8](o Opt[T]) (bool, uint8) {
	v, ok := o.Get()
	return ok, uint8(v)
}

func axisOpt(o Opt[geom.Axis]) (bool, uint8) {
	v, ok := o.Get()
	return ok, uint8(v)
}

// hashInto writes a deterministic encoding of f into d.
func (f *Fragment) hashInto(d *xxhash.Digest) {
	h := fragmentHasher{d: d}
	l := &f.Layout
	h.flag(l.Visible)
	h.num(l.Width)
	h.num(l.Height)
	h.small(enumOpt(l.WidthMode))
	h.small(enumOpt(l.HeightMode))
	h.num(l.PaddingTop)
	h.num(l.PaddingRight)
	h.num(l.PaddingBottom)
	h.num(l.PaddingLeft)
	h.num(l.MarginTop)
	h.num(l.MarginRight)
	h.num(l.MarginBottom)
	h.num(l.MarginLeft)
	h.num(l.Gap)
	h.small(axisOpt(l.Flow))
	h.small(enumOpt(l.FlowOrder))
	h.small(enumOpt(l.Anchor))
	h.small(enumOpt(l.Align))
	h.str(l.Font)
	h.num(l.FontSize)
	h.flag(l.WordWrap)
	h.flag(l.TextOverflow)

	p := &f.Paint
	h.color(p.Color)
	h.color(p.Background)
	h.color(p.BorderColor)
	h.num(p.BorderWidth)
	h.num(p.BorderRadius)
	h.num(p.Opacity)
	h.small(enumOpt(p.TextAlign))
	h.color(p.ShadowColor)
	h.num(p.ShadowOffsetX)
	h.num(p.ShadowOffsetY)
	h.str(p.Cursor)
}

// Hash returns a digest of the set fields of f.
func (f Fragment) Hash() uint64 {
	d := xxhash.New()
	f.hashInto(d)
	return d.Sum64()
}
