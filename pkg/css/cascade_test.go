package css

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imstyle/pkg/geom"
)

var (
	red  = Color{255, 0, 0, 255}
	blue = Color{0, 0, 255, 255}
)

func TestResolve_HigherSpecificityWinsRegardlessOfOrder(t *testing.T) {
	root := newTestNode(nil, "x", "a")
	root.sheet = MustParseStylesheet(`
		.a { color: red }
		#x { color: blue }
	`)
	assert.Equal(t, blue, ComputeStyle(root).Paint.Color)

	root.sheet = MustParseStylesheet(`
		#x { color: blue }
		.a { color: red }
	`)
	root.bump()
	assert.Equal(t, blue, ComputeStyle(root).Paint.Color)
}

func TestResolve_LaterRuleWinsOnEqualSpecificity(t *testing.T) {
	n := newTestNode(nil, "", "a", "b")
	n.sheet = MustParseStylesheet(`
		.a { color: red; width: 10 }
		.b { color: blue }
	`)
	style := ComputeStyle(n)
	assert.Equal(t, blue, style.Paint.Color)
	// fields the later rule does not set are kept
	assert.Equal(t, 10.0, style.Layout.Width)
}

func TestResolve_InlineOverridesRules(t *testing.T) {
	n := newTestNode(nil, "x")
	n.sheet = MustParseStylesheet(`#x { color: red; gap: 4 }`)
	n.inline.Paint.Color.Set(blue)

	style := ComputeStyle(n)
	assert.Equal(t, blue, style.Paint.Color)
	assert.Equal(t, 4.0, style.Layout.Gap)
}

func TestResolve_InheritsAncestorStylesheet(t *testing.T) {
	root := newTestNode(nil, "root")
	root.sheet = MustParseStylesheet(`#root .item { width: 30 }`)
	mid := newTestNode(root, "")
	leaf := newTestNode(mid, "", "item")

	assert.Equal(t, 30.0, ComputeStyle(leaf).Layout.Width)

	// a nearer stylesheet replaces the inherited one
	mid.sheet = MustParseStylesheet(`.other { width: 1 }`)
	assert.Equal(t, 0.0, ComputeStyle(leaf).Layout.Width)
}

func TestResolve_NoStylesheet(t *testing.T) {
	n := newTestNode(nil, "")
	n.inline.Layout.Width.Set(12)

	hash, style := NewResolver(1).Resolve(n)
	assert.NotZero(t, hash)
	want := DefaultStyle()
	want.Layout.Width = 12
	assert.Equal(t, want, style)
}

func TestResolve_HashIsStable(t *testing.T) {
	n := newTestNode(nil, "x", "a")
	n.sheet = MustParseStylesheet(`.a { width: 1 } #x { height: 2 }`)
	r := NewResolver(1)

	h1, s1 := r.Resolve(n)
	h2, s2 := r.Resolve(n)
	assert.Equal(t, h1, h2)
	assert.Equal(t, s1, s2)
}

func TestResolve_HashTracksInputs(t *testing.T) {
	n := newTestNode(nil, "", "a")
	n.sheet = MustParseStylesheet(`.a { width: 1 } .b { width: 1 }`)
	r := NewResolver(1)

	base, _ := r.Resolve(n)

	n.classes["b"] = true
	n.bump()
	withB, style := r.Resolve(n)
	assert.NotEqual(t, base, withB, "a new matching rule changes the hash")
	assert.Equal(t, 1.0, style.Layout.Width, "even when the computed style is the same")

	n.inline.Paint.Opacity.Set(0.5)
	withInline, _ := r.Resolve(n)
	assert.NotEqual(t, withB, withInline)

	n.inline.Paint.Opacity.Clear()
	cleared, _ := r.Resolve(n)
	assert.Equal(t, withB, cleared)
}

func TestResolve_ScaleAppliesToLengths(t *testing.T) {
	n := newTestNode(nil, "")
	n.sheet = MustParseStylesheet(`* { width: 10; padding: 1 2; gap: 3; font-size: 10; border-width: 1; opacity: 0.5 }`)

	_, style := NewResolver(2).Resolve(n)
	l := style.Layout
	assert.Equal(t, 20.0, l.Width)
	assert.Equal(t, geom.Edges{Top: 2, Right: 4, Bottom: 2, Left: 4}, l.Padding)
	assert.Equal(t, 6.0, l.Gap)
	assert.Equal(t, 20.0, l.FontSize)
	assert.Equal(t, 2.0, style.Paint.BorderWidth)
	assert.Equal(t, 0.5, style.Paint.Opacity, "opacity is not a length")

	assert.Equal(t, 1.0, NewResolver(0).Scale())
	assert.Equal(t, 1.0, NewResolver(-3).Scale())
	assert.Equal(t, 1.0, NewResolver(math.NaN()).Scale())
	assert.Equal(t, 1.0, NewResolver(math.Inf(1)).Scale())
}

func TestResolve_ScaledEdgesAreWholePixels(t *testing.T) {
	n := newTestNode(nil, "")
	n.sheet = MustParseStylesheet(`* { padding: 1; margin: 3 1 }`)

	_, style := NewResolver(1.5).Resolve(n)
	assert.Equal(t, geom.Uniform(2), style.Layout.Padding)
	assert.Equal(t, geom.Edges{Top: 5, Right: 2, Bottom: 5, Left: 2}, style.Layout.Margin)
}

func TestResolve_NormalizesOutOfRangeValues(t *testing.T) {
	n := newTestNode(nil, "")
	f, err := ParseInline("padding: -4; margin-left: -1; gap: -2; opacity: 3; border-width: -1")
	require.NoError(t, err)
	n.inline = f

	style := ComputeStyle(n)
	assert.Equal(t, geom.Edges{}, style.Layout.Padding)
	assert.Equal(t, geom.Edges{}, style.Layout.Margin)
	assert.Zero(t, style.Layout.Gap)
	assert.Equal(t, 1.0, style.Paint.Opacity)
	assert.Zero(t, style.Paint.BorderWidth)
}

func TestComputedStyle_Snapshots(t *testing.T) {
	a := DefaultStyle()
	b := DefaultStyle()
	b.Paint.Color = red
	assert.Equal(t, a.LayoutSnapshot(), b.LayoutSnapshot())
	assert.NotEqual(t, a.PaintSnapshot(), b.PaintSnapshot())

	b.Layout.Gap = 1
	assert.NotEqual(t, a.LayoutSnapshot(), b.LayoutSnapshot())
}

func TestLayoutProps_Grows(t *testing.T) {
	l := DefaultStyle().Layout
	assert.False(t, l.Grows(geom.Horizontal))

	l.WidthMode = SizeGrow
	assert.True(t, l.Grows(geom.Horizontal))
	assert.False(t, l.Grows(geom.Vertical))

	// a declared size wins over grow
	l.Width = 40
	assert.False(t, l.Grows(geom.Horizontal))
}
