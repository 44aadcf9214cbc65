// Package geom holds the small value types shared by the style and layout
// packages: points, sizes, rectangles and four-sided edges.
package geom

import "math"

// Point is a 2D coordinate in pixels.
type Point struct {
	X float64
	Y float64
}

// Size represents dimensions (width and height).
type Size struct {
	Width  float64
	Height float64
}

// Axis returns the size along the given axis.
func (s Size) Axis(a Axis) float64 {
	if a == Horizontal {
		return s.Width
	}
	return s.Height
}

// SetAxis sets the size along the given axis.
func (s *Size) SetAxis(a Axis, v float64) {
	if a == Horizontal {
		s.Width = v
	} else {
		s.Height = v
	}
}

// Empty reports whether the size is zero on both axes. A size with extent
// on only one axis, such as a spacer, is not empty.
func (s Size) Empty() bool {
	return s.Width <= 0 && s.Height <= 0
}

// Clamp returns the size with negative components replaced by zero.
func (s Size) Clamp() Size {
	return Size{Width: math.Max(0, s.Width), Height: math.Max(0, s.Height)}
}

// Axis selects one of the two layout directions.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// Cross returns the other axis.
func (a Axis) Cross() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Rect represents a rectangular region.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// RectAt builds a rect from an origin and a size.
func RectAt(p Point, s Size) Rect {
	return Rect{X: p.X, Y: p.Y, Width: s.Width, Height: s.Height}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rect dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether o lies fully inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// ContainsPoint reports whether p lies inside r.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X < r.Right() && p.Y < r.Bottom()
}

// Inset shrinks the rect by the given edges. Width and height never go negative.
func (r Rect) Inset(e Edges) Rect {
	return Rect{
		X:      r.X + e.Left,
		Y:      r.Y + e.Top,
		Width:  math.Max(0, r.Width-e.Horizontal()),
		Height: math.Max(0, r.Height-e.Vertical()),
	}
}

// Edges represents the four sides of a box (top, right, bottom, left).
type Edges struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Uniform returns edges with the same value on every side.
func Uniform(v float64) Edges {
	return Edges{Top: v, Right: v, Bottom: v, Left: v}
}

// Horizontal returns left + right.
func (e Edges) Horizontal() float64 { return e.Left + e.Right }

// Vertical returns top + bottom.
func (e Edges) Vertical() float64 { return e.Top + e.Bottom }

// Axis returns the summed edges along an axis.
func (e Edges) Axis(a Axis) float64 {
	if a == Horizontal {
		return e.Horizontal()
	}
	return e.Vertical()
}

// Size returns the total extra size contributed by the edges.
func (e Edges) Size() Size {
	return Size{Width: e.Horizontal(), Height: e.Vertical()}
}

// Scale multiplies every side by f.
func (e Edges) Scale(f float64) Edges {
	return Edges{Top: e.Top * f, Right: e.Right * f, Bottom: e.Bottom * f, Left: e.Left * f}
}

// Clamp replaces negative sides by zero.
func (e Edges) Clamp() Edges {
	return Edges{
		Top:    math.Max(0, e.Top),
		Right:  math.Max(0, e.Right),
		Bottom: math.Max(0, e.Bottom),
		Left:   math.Max(0, e.Left),
	}
}

// Round rounds every side to the nearest whole pixel.
func (e Edges) Round() Edges {
	return Edges{
		Top:    math.Round(e.Top),
		Right:  math.Round(e.Right),
		Bottom: math.Round(e.Bottom),
		Left:   math.Round(e.Left),
	}
}

// Bounds is the resolved geometry of a node: three nested rects plus their sizes.
// Content is inside Padding, which is inside Margin.
type Bounds struct {
	Content Rect
	Padding Rect
	Margin  Rect
}

// ContentSize returns the size of the content rect.
func (b Bounds) ContentSize() Size { return b.Content.Size() }

// PaddingSize returns the size of the padding rect.
func (b Bounds) PaddingSize() Size { return b.Padding.Size() }

// MarginSize returns the size of the margin rect.
func (b Bounds) MarginSize() Size { return b.Margin.Size() }
