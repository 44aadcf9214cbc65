package css

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Styleable is an element that carries its own style inputs.
type Styleable interface {
	Element
	// InlineStyle returns the node's inline fragment.
	InlineStyle() Fragment
	// EffectiveStylesheet returns the node's stylesheet or the nearest
	// ancestor's, or nil.
	EffectiveStylesheet() *Stylesheet
}

// Resolver computes the final style for a node by applying the cascade.
type Resolver struct {
	scale float64
}

// NewResolver returns a resolver that multiplies every length by scale.
// A non-positive scale is treated as 1.
func NewResolver(scale float64) *Resolver {
	if !(scale > 0) || math.IsInf(scale, 0) {
		scale = 1
	}
	return &Resolver{scale: scale}
}

// Scale returns the presentation scale factor.
func (r *Resolver) Scale() float64 { return r.scale }

// Resolve returns a hash of the node's effective style inputs (matched
// rules and inline style) and the computed style.
//
// Rules apply in increasing priority: lower specificity first, then
// declaration order, then the inline style. Scaling happens last and does
// not take part in priority.
func (r *Resolver) Resolve(n Styleable) (uint64, ComputedStyle) {
	style := DefaultStyle()
	d := xxhash.New()

	var buf [16]byte
	if sheet := n.EffectiveStylesheet(); sheet != nil {
		for _, rule := range sheet.MatchingRules(n) {
			style.Apply(&rule.Fragment)

			binary.LittleEndian.PutUint64(buf[:8], sheet.Serial())
			binary.LittleEndian.PutUint64(buf[8:], uint64(rule.Order))
			_, _ = d.Write(buf[:])
		}
	}

	inline := n.InlineStyle()
	style.Apply(&inline)
	_, _ = d.Write([]byte{0xff})
	inline.hashInto(d)

	style.Scale(r.scale)
	style.normalize()
	return d.Sum64(), style
}

// ComputeStyle resolves a node with a resolver at scale 1.
func ComputeStyle(n Styleable) ComputedStyle {
	_, style := NewResolver(1).Resolve(n)
	return style
}
