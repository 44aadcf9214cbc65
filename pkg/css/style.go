package css

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"imstyle/pkg/geom"
)

// Opt is an optional style value. The zero Opt is unset, which is distinct
// from a set zero value.
type Opt[T comparable] struct {
	v  T
	ok bool
}

// Some returns a set Opt holding v.
func Some[T comparable](v T) Opt[T] {
	return Opt[T]{v: v, ok: true}
}

// Get returns the value and whether it is set.
func (o Opt[T]) Get() (T, bool) { return o.v, o.ok }

// IsSet reports whether the value is present.
func (o Opt[T]) IsSet() bool { return o.ok }

// Or returns the value if set, otherwise d.
func (o Opt[T]) Or(d T) T {
	if o.ok {
		return o.v
	}
	return d
}

// Set stores v.
func (o *Opt[T]) Set(v T) {
	o.v = v
	o.ok = true
}

// Clear unsets the value.
func (o *Opt[T]) Clear() {
	var zero T
	o.v = zero
	o.ok = false
}

// apply overwrites *dst when the value is set.
func (o Opt[T]) apply(dst *T) {
	if o.ok {
		*dst = o.v
	}
}

// AutoSize is the per-axis sizing mode used when no explicit size is declared.
type AutoSize uint8

const (
	SizeFit AutoSize = iota
	SizeGrow
)

func (a AutoSize) String() string {
	if a == SizeGrow {
		return "grow"
	}
	return "fit"
}

// FlowOrder controls the traversal order of siblings during positioning.
type FlowOrder uint8

const (
	OrderNormal FlowOrder = iota
	OrderReverse
)

func (o FlowOrder) String() string {
	if o == OrderReverse {
		return "reverse"
	}
	return "normal"
}

// HAlign is the horizontal component of an anchor.
type HAlign uint8

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign is the vertical component of an anchor.
type VAlign uint8

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

// Anchor is one of nine reference points inside a parent's content area,
// or AnchorNone.
type Anchor uint8

const (
	AnchorNone Anchor = iota
	AnchorTopLeft
	AnchorTopCenter
	AnchorTopRight
	AnchorMiddleLeft
	AnchorMiddleCenter
	AnchorMiddleRight
	AnchorBottomLeft
	AnchorBottomCenter
	AnchorBottomRight
)

var anchorNames = [...]string{
	"none",
	"top-left", "top-center", "top-right",
	"middle-left", "middle-center", "middle-right",
	"bottom-left", "bottom-center", "bottom-right",
}

func (a Anchor) String() string {
	if int(a) < len(anchorNames) {
		return anchorNames[a]
	}
	return fmt.Sprintf("anchor(%d)", uint8(a))
}

// ParseAnchor parses an anchor keyword. "center" is accepted as middle-center.
func ParseAnchor(s string) (Anchor, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "center" {
		return AnchorMiddleCenter, true
	}
	for i, name := range anchorNames {
		if name == s {
			return Anchor(i), true
		}
	}
	return AnchorNone, false
}

// H returns the horizontal alignment. AnchorNone behaves like top-left.
func (a Anchor) H() HAlign {
	if a == AnchorNone {
		return AlignLeft
	}
	return HAlign((a - 1) % 3)
}

// V returns the vertical alignment. AnchorNone behaves like top-left.
func (a Anchor) V() VAlign {
	if a == AnchorNone {
		return AlignTop
	}
	return VAlign((a - 1) / 3)
}

// TextAlign is the horizontal alignment of text inside the content rect.
type TextAlign uint8

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

func (t TextAlign) String() string {
	switch t {
	case TextAlignCenter:
		return "center"
	case TextAlignRight:
		return "right"
	}
	return "left"
}

// Color is an RGBA color with 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

// Transparent is the zero color.
var Transparent = Color{}

// Floats returns the channels as floats in [0,1].
func (c Color) Floats() (r, g, b, a float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

var namedColors = map[string]Color{
	"transparent": {0, 0, 0, 0},
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"blue":        {0, 0, 255, 255},
	"yellow":      {255, 255, 0, 255},
	"cyan":        {0, 255, 255, 255},
	"magenta":     {255, 0, 255, 255},
	"white":       {255, 255, 255, 255},
	"black":       {0, 0, 0, 255},
	"gray":        {128, 128, 128, 255},
	"orange":      {255, 165, 0, 255},
	"purple":      {128, 0, 128, 255},
	"navy":        {0, 0, 128, 255},
	"teal":        {0, 128, 128, 255},
	"silver":      {192, 192, 192, 255},
}

// ParseColor parses #rgb, #rrggbb, #rrggbbaa or a named color.
func ParseColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	if !strings.HasPrefix(s, "#") {
		return Color{}, false
	}
	hex := s[1:]
	switch len(hex) {
	case 3:
		v, err := strconv.ParseUint(hex, 16, 16)
		if err != nil {
			return Color{}, false
		}
		r, g, b := uint8(v>>8&0xf), uint8(v>>4&0xf), uint8(v&0xf)
		return Color{r * 17, g * 17, b * 17, 255}, true
	case 6, 8:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, false
		}
		if len(hex) == 6 {
			v = v<<8 | 0xff
		}
		return Color{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, true
	}
	return Color{}, false
}

// ParseLength parses a length value (e.g., "100px" or "100"). NaN and
// infinities are rejected.
func ParseLength(val string) (float64, bool) {
	val = strings.TrimSpace(val)
	val = strings.TrimSuffix(val, "px")
	num, err := strconv.ParseFloat(val, 64)
	if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
		return 0, false
	}
	return num, true
}

// ParseAxis parses a flow direction keyword.
func ParseAxis(s string) (geom.Axis, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "row":
		return geom.Horizontal, true
	case "vertical", "column":
		return geom.Vertical, true
	}
	return geom.Vertical, false
}
