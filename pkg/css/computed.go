package css

import (
	"math"

	"imstyle/pkg/geom"
)

// Default values used when no rule or inline style sets a field.
const (
	DefaultFontSize = 13.0
	DefaultOpacity  = 1.0
)

// LayoutProps are the resolved fields that affect geometry. The struct is
// comparable, so a copy doubles as the layout snapshot for change detection.
type LayoutProps struct {
	Visible      bool
	Width        float64 // declared padding-box width, <= 0 means auto
	Height       float64 // declared padding-box height, <= 0 means auto
	WidthMode    AutoSize
	HeightMode   AutoSize
	Padding      geom.Edges
	Margin       geom.Edges
	Gap          float64
	Flow         geom.Axis
	FlowOrder    FlowOrder
	Anchor       Anchor
	Align        Anchor
	Font         string
	FontSize     float64
	WordWrap     bool
	TextOverflow bool
}

// PaintProps are the resolved fields that only affect painting.
type PaintProps struct {
	Color         Color
	Background    Color
	BorderColor   Color
	BorderWidth   float64
	BorderRadius  float64
	Opacity       float64
	TextAlign     TextAlign
	ShadowColor   Color
	ShadowOffsetX float64
	ShadowOffsetY float64
	Cursor        string
}

// ComputedStyle is the dense, fully resolved style of a node.
type ComputedStyle struct {
	Layout LayoutProps
	Paint  PaintProps
}

// DefaultStyle returns the style every cascade starts from.
func DefaultStyle() ComputedStyle {
	return ComputedStyle{
		Layout: LayoutProps{
			Visible:      true,
			WidthMode:    SizeFit,
			HeightMode:   SizeFit,
			Flow:         geom.Vertical,
			FlowOrder:    OrderNormal,
			Anchor:       AnchorNone,
			Align:        AnchorTopLeft,
			FontSize:     DefaultFontSize,
			TextOverflow: true,
		},
		Paint: PaintProps{
			Color:     Color{0, 0, 0, 255},
			Opacity:   DefaultOpacity,
			TextAlign: TextAlignLeft,
			Cursor:    "default",
		},
	}
}

// LayoutSnapshot returns the geometry-affecting part of the style.
func (c ComputedStyle) LayoutSnapshot() LayoutProps { return c.Layout }

// PaintSnapshot returns the paint-only part of the style.
func (c ComputedStyle) PaintSnapshot() PaintProps { return c.Paint }

// Apply overwrites every field that f sets.
func (c *ComputedStyle) Apply(f *Fragment) {
	mergeLayout(&c.Layout, &f.Layout)
	mergePaint(&c.Paint, &f.Paint)
}

func mergeLayout(dst *LayoutProps, f *LayoutFragment) {
	f.Visible.apply(&dst.Visible)
	f.Width.apply(&dst.Width)
	f.Height.apply(&dst.Height)
	f.WidthMode.apply(&dst.WidthMode)
	f.HeightMode.apply(&dst.HeightMode)
	f.PaddingTop.apply(&dst.Padding.Top)
	f.PaddingRight.apply(&dst.Padding.Right)
	f.PaddingBottom.apply(&dst.Padding.Bottom)
	f.PaddingLeft.apply(&dst.Padding.Left)
	f.MarginTop.apply(&dst.Margin.Top)
	f.MarginRight.apply(&dst.Margin.Right)
	f.MarginBottom.apply(&dst.Margin.Bottom)
	f.MarginLeft.apply(&dst.Margin.Left)
	f.Gap.apply(&dst.Gap)
	f.Flow.apply(&dst.Flow)
	f.FlowOrder.apply(&dst.FlowOrder)
	f.Anchor.apply(&dst.Anchor)
	f.Align.apply(&dst.Align)
	f.Font.apply(&dst.Font)
	f.FontSize.apply(&dst.FontSize)
	f.WordWrap.apply(&dst.WordWrap)
	f.TextOverflow.apply(&dst.TextOverflow)
}

func mergePaint(dst *PaintProps, f *PaintFragment) {
	f.Color.apply(&dst.Color)
	f.Background.apply(&dst.Background)
	f.BorderColor.apply(&dst.BorderColor)
	f.BorderWidth.apply(&dst.BorderWidth)
	f.BorderRadius.apply(&dst.BorderRadius)
	f.Opacity.apply(&dst.Opacity)
	f.TextAlign.apply(&dst.TextAlign)
	f.ShadowColor.apply(&dst.ShadowColor)
	f.ShadowOffsetX.apply(&dst.ShadowOffsetX)
	f.ShadowOffsetY.apply(&dst.ShadowOffsetY)
	f.Cursor.apply(&dst.Cursor)
}

// Scale multiplies every length-valued field by s.
func (c *ComputedStyle) Scale(s float64) {
	if s == 1 {
		return
	}
	l := &c.Layout
	l.Width *= s
	l.Height *= s
	l.Padding = l.Padding.Scale(s)
	l.Margin = l.Margin.Scale(s)
	l.Gap *= s
	l.FontSize *= s

	p := &c.Paint
	p.BorderWidth *= s
	p.BorderRadius *= s
	p.ShadowOffsetX *= s
	p.ShadowOffsetY *= s
}

// normalize clamps values that would break the box model. Edges are
// rounded so every rect origin lands on a whole pixel.
func (c *ComputedStyle) normalize() {
	l := &c.Layout
	l.Padding = l.Padding.Clamp().Round()
	l.Margin = l.Margin.Clamp().Round()
	l.Gap = math.Max(0, l.Gap)
	l.FontSize = math.Max(0, l.FontSize)
	c.Paint.Opacity = math.Min(1, math.Max(0, c.Paint.Opacity))
	c.Paint.BorderWidth = math.Max(0, c.Paint.BorderWidth)
}

// DeclaredSize returns the declared size on an axis; <= 0 means unset.
func (l LayoutProps) DeclaredSize(a geom.Axis) float64 {
	if a == geom.Horizontal {
		return l.Width
	}
	return l.Height
}

// Mode returns the auto-size mode on an axis.
func (l LayoutProps) Mode(a geom.Axis) AutoSize {
	if a == geom.Horizontal {
		return l.WidthMode
	}
	return l.HeightMode
}

// Grows reports whether the node expands to fill its parent on axis a.
func (l LayoutProps) Grows(a geom.Axis) bool {
	return l.Mode(a) == SizeGrow && l.DeclaredSize(a) <= 0
}

// MeasuresText reports whether the text size depends on the final width.
func (l LayoutProps) MeasuresText() bool {
	return l.WordWrap || !l.TextOverflow
}
