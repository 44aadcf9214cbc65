package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imstyle/pkg/config"
	"imstyle/pkg/dom"
	"imstyle/pkg/geom"
)

func TestPosition_VerticalFlowWithGap(t *testing.T) {
	tree, root := newScene(t, "", "padding: 3; gap: 4")
	a := addChild(t, root, "a", "width: 10; height: 10")
	b := addChild(t, root, "b", "width: 20; height: 5; margin: 1")

	reflow(t, quietEngine(config.Default(), nil), tree, 0, 0)

	assert.Equal(t, rect(3, 3, 10, 10), a.Bounds().Margin)
	assert.Equal(t, rect(3, 17, 22, 7), b.Bounds().Margin)
	assert.Equal(t, rect(4, 18, 20, 5), b.Bounds().Padding)
}

func TestPosition_ViewportOrigin(t *testing.T) {
	tree, root := newScene(t, "", "width: 10; height: 10")
	_, err := quietEngine(config.Default(), nil).Reflow(tree, geom.Rect{X: 20.4, Y: 7.6})
	require.NoError(t, err)
	assert.Equal(t, rect(20, 8, 10, 10), root.Bounds().Margin)
}

func TestPosition_CenteredGroupAlignsCrossAxisPerChild(t *testing.T) {
	tree, root := newScene(t, "", "width: 100; height: 50; flow: horizontal; gap: 10; align: center")
	a := addChild(t, root, "a", "width: 20; height: 10")
	b := addChild(t, root, "b", "width: 20; height: 20")

	reflow(t, quietEngine(config.Default(), nil), tree, 0, 0)

	assert.Equal(t, rect(25, 20, 20, 10), a.Bounds().Margin)
	assert.Equal(t, rect(55, 15, 20, 20), b.Bounds().Margin)
}

func TestPosition_BottomRightVerticalFlow(t *testing.T) {
	tree, root := newScene(t, "", "width: 100; height: 100; align: bottom-right")
	a := addChild(t, root, "a", "width: 10; height: 10")
	b := addChild(t, root, "b", "width: 30; height: 20")

	reflow(t, quietEngine(config.Default(), nil), tree, 0, 0)

	assert.Equal(t, rect(90, 70, 10, 10), a.Bounds().Margin)
	assert.Equal(t, rect(70, 80, 30, 20), b.Bounds().Margin)
}

func TestPosition_AnchorGroupsAreIndependent(t *testing.T) {
	tree, root := newScene(t, "", "width: 100; height: 100; flow: horizontal")
	a := addChild(t, root, "a", "anchor: top-left; width: 10; height: 10")
	b := addChild(t, root, "b", "anchor: top-left; width: 20; height: 10")
	c := addChild(t, root, "c", "anchor: bottom-right; width: 30; height: 30")
	e := quietEngine(config.Default(), nil)

	reflow(t, e, tree, 0, 0)
	assert.Equal(t, rect(0, 0, 10, 10), a.Bounds().Margin)
	assert.Equal(t, rect(10, 0, 20, 10), b.Bounds().Margin)
	assert.Equal(t, rect(70, 70, 30, 30), c.Bounds().Margin)

	addChild(t, root, "d", "anchor: top-left; width: 40; height: 40")
	reflow(t, e, tree, 0, 0)
	assert.Equal(t, rect(70, 70, 30, 30), c.Bounds().Margin)
}

func TestPosition_AnchoredChildOverridesParentAlign(t *testing.T) {
	tree, root := newScene(t, "", "width: 100; height: 100; align: bottom-center")
	plain := addChild(t, root, "plain", "width: 10; height: 10")
	pinned := addChild(t, root, "pinned", "anchor: top-left; width: 10; height: 10")

	reflow(t, quietEngine(config.Default(), nil), tree, 0, 0)

	assert.Equal(t, rect(45, 90, 10, 10), plain.Bounds().Margin)
	assert.Equal(t, rect(0, 0, 10, 10), pinned.Bounds().Margin)
}

func TestPosition_ReverseOrder(t *testing.T) {
	tree, root := newScene(t, "", "flow: horizontal; flow-order: reverse; gap: 1")
	a := addChild(t, root, "a", "width: 10; height: 10")
	b := addChild(t, root, "b", "width: 20; height: 10")

	reflow(t, quietEngine(config.Default(), nil), tree, 0, 0)

	assert.Equal(t, 0.0, b.Bounds().Margin.X)
	assert.Equal(t, 21.0, a.Bounds().Margin.X)
}

func TestPosition_RoundsToWholePixels(t *testing.T) {
	tree, root := newScene(t, "", "width: 101; height: 11; flow: horizontal; align: center")
	a := addChild(t, root, "a", "width: 10; height: 10")

	reflow(t, quietEngine(config.Default(), nil), tree, 0, 0)

	// (101-10)/2 = 45.5 and (11-10)/2 = 0.5
	assert.Equal(t, geom.Point{X: 46, Y: 1}, a.Bounds().Margin.Origin())
}

func TestPosition_SkipsNodesThatAreNotRendered(t *testing.T) {
	tree, root := newScene(t, "", "flow: horizontal; gap: 5")
	a := addChild(t, root, "a", "width: 10; height: 10")
	empty := addChild(t, root, "empty", "")
	hidden := addChild(t, root, "hidden", "visible: false; width: 50; height: 50")
	inner := addChild(t, hidden, "inner", "width: 5; height: 5")
	b := addChild(t, root, "b", "width: 10; height: 10")

	reflow(t, quietEngine(config.Default(), nil), tree, 0, 0)

	assert.Equal(t, 25.0, root.Bounds().Content.Width)
	assert.Equal(t, 0.0, a.Bounds().Margin.X)
	assert.Equal(t, 15.0, b.Bounds().Margin.X)
	for _, n := range []dom.Node{empty, hidden, inner} {
		assert.True(t, n.Bounds().Margin.Size().Empty(), n.ElementID())
	}
}

func TestPosition_SpacerSizedOnOneAxis(t *testing.T) {
	tree, root := newScene(t, "", "flow: horizontal; gap: 5")
	a := addChild(t, root, "a", "width: 10; height: 10")
	spacer := addChild(t, root, "spacer", "width: 20")
	b := addChild(t, root, "b", "width: 10; height: 10")

	reflow(t, quietEngine(config.Default(), nil), tree, 0, 0)

	assert.Equal(t, geom.Size{Width: 50, Height: 10}, root.Bounds().ContentSize())
	assert.Equal(t, 0.0, a.Bounds().Margin.X)
	assert.Equal(t, geom.Rect{X: 15, Y: 0, Width: 20, Height: 0}, spacer.Bounds().Margin)
	assert.Equal(t, 40.0, b.Bounds().Margin.X)
}

func TestPosition_FractionalScaleKeepsWholePixelOrigins(t *testing.T) {
	tree, root := newScene(t, "", "padding: 1; gap: 1")
	a := addChild(t, root, "a", "width: 10; height: 10; margin: 1; padding: 1")
	addChild(t, root, "b", "width: 7; height: 3; margin: 1; padding: 1")

	cfg := config.Default()
	cfg.Scale = 1.5
	reflow(t, quietEngine(cfg, nil), tree, 0, 0)

	assert.Equal(t, geom.Point{X: 2, Y: 2}, a.Bounds().Margin.Origin())
	assert.Equal(t, geom.Point{X: 4, Y: 4}, a.Bounds().Padding.Origin())
	assert.Equal(t, geom.Point{X: 6, Y: 6}, a.Bounds().Content.Origin())
	tree.Walk(func(n dom.Node) bool {
		b := n.Bounds()
		for _, r := range []geom.Rect{b.Margin, b.Padding, b.Content} {
			assert.Equal(t, math.Round(r.X), r.X, "%v", b)
			assert.Equal(t, math.Round(r.Y), r.Y, "%v", b)
		}
		return true
	})
}

func TestPosition_RectContainment(t *testing.T) {
	tree, root := newScene(t, `
		.box { padding: 3 1 2 4; margin: 2 5 }
		.row { flow: horizontal; gap: 3; align: middle-center }
		.grow { width-mode: grow; height-mode: grow }
	`, "width: 300; height: 200; padding: 6")

	row := addChild(t, root, "row", "")
	require.NoError(t, row.AddClass("row", "box", "grow"))
	for i := 0; i < 4; i++ {
		c := addChild(t, row, "", "width: 17; height: 13")
		require.NoError(t, c.AddClass("box"))
		inner := addChild(t, c, "", "width-mode: grow; height: 3")
		require.NoError(t, inner.AddClass("box"))
	}
	label := addChild(t, root, "label", "word-wrap: true; width-mode: grow")
	require.NoError(t, label.SetText("some words that wrap around"))
	require.NoError(t, label.AddClass("box"))

	reflow(t, quietEngine(config.Default(), &gridMeasurer{}), tree, 0, 0)

	tree.Walk(func(n dom.Node) bool {
		b := n.Bounds()
		assert.True(t, b.Margin.Contains(b.Padding), "margin ⊇ padding for %v", b)
		assert.True(t, b.Padding.Contains(b.Content), "padding ⊇ content for %v", b)
		assert.GreaterOrEqual(t, b.Content.Width, 0.0)
		assert.GreaterOrEqual(t, b.Content.Height, 0.0)
		return true
	})
}
