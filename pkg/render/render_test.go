package render

import (
	"bytes"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imstyle/pkg/config"
	"imstyle/pkg/dom"
	"imstyle/pkg/geom"
	"imstyle/pkg/layout"
	"imstyle/pkg/text"
)

func layoutTree(t *testing.T, rootStyle string, children ...string) (*dom.Tree, *text.Measurer) {
	t.Helper()
	logger := log.New(io.Discard)
	m := text.NewMeasurer(text.FontConfig{}, logger)

	tree := dom.NewTree()
	root := tree.Root()
	require.NoError(t, root.SetInlineText(rootStyle))
	for _, style := range children {
		c := tree.NewNode("")
		require.NoError(t, c.SetInlineText(style))
		require.NoError(t, root.AppendChild(c))
	}

	e := layout.NewEngine(config.Default(), m, layout.WithLogger(logger))
	_, err := e.Reflow(tree, geom.Rect{Width: 200, Height: 100})
	require.NoError(t, err)
	return tree, m
}

func assertColor(t *testing.T, r *Renderer, x, y int, want color.RGBA) {
	t.Helper()
	got := color.RGBAModel.Convert(r.At(x, y)).(color.RGBA)
	assert.InDelta(t, want.R, got.R, 2, "red at %d,%d", x, y)
	assert.InDelta(t, want.G, got.G, 2, "green at %d,%d", x, y)
	assert.InDelta(t, want.B, got.B, 2, "blue at %d,%d", x, y)
}

var (
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
)

func TestRender_Background(t *testing.T) {
	tree, m := layoutTree(t, "width: 100; height: 60; background: red")
	r := NewRenderer(200, 100, m, config.Debug{})
	r.Render(tree)

	assertColor(t, r, 50, 30, red)
	assertColor(t, r, 150, 30, white)
	assertColor(t, r, 50, 80, white)
}

func TestRender_ChildrenPaintOverParent(t *testing.T) {
	tree, m := layoutTree(t, "width: 100; height: 60; background: red",
		"width: 20; height: 20; background: blue")
	r := NewRenderer(200, 100, m, config.Debug{})
	r.Render(tree)

	child := tree.Root().Children()[0].Bounds().Padding
	assertColor(t, r, int(child.X)+10, int(child.Y)+10, blue)
	assertColor(t, r, int(child.Right())+10, int(child.Y)+10, red)
}

func TestRender_HiddenSubtreeNotPainted(t *testing.T) {
	tree, m := layoutTree(t, "width: 100; height: 60; background: red; visible: false")
	r := NewRenderer(200, 100, m, config.Debug{})
	r.Render(tree)

	assertColor(t, r, 50, 30, white)
}

func TestRender_Opacity(t *testing.T) {
	tree, m := layoutTree(t, "width: 100; height: 60; background: #000000; opacity: 0.5")
	r := NewRenderer(200, 100, m, config.Debug{})
	r.Render(tree)

	got := color.RGBAModel.Convert(r.At(50, 30)).(color.RGBA)
	assert.InDelta(t, 128, got.R, 3)
}

func TestRender_Shadow(t *testing.T) {
	tree, m := layoutTree(t, "width: 50; height: 50; background: red; shadow-color: blue; shadow-offset: 10 10")
	r := NewRenderer(200, 100, m, config.Debug{})
	r.Render(tree)

	assertColor(t, r, 25, 25, red)
	assertColor(t, r, 55, 55, blue)
	assertColor(t, r, 5, 55, white)
}

func TestRender_Border(t *testing.T) {
	tree, m := layoutTree(t, "width: 60; height: 60; background: red; border-width: 4; border-color: blue")
	r := NewRenderer(200, 100, m, config.Debug{})
	r.Render(tree)

	assertColor(t, r, 1, 30, blue)
	assertColor(t, r, 30, 30, red)
	assertColor(t, r, 61, 30, white)
}

func TestRender_Text(t *testing.T) {
	tree, m := layoutTree(t, "")
	root := tree.Root()
	require.NoError(t, root.SetText("HELLO"))
	e := layout.NewEngine(config.Default(), m, layout.WithLogger(log.New(io.Discard)))
	_, err := e.Reflow(tree, geom.Rect{Width: 200, Height: 100})
	require.NoError(t, err)

	r := NewRenderer(200, 100, m, config.Debug{})
	r.Render(tree)

	content := root.Bounds().Content
	assert.Equal(t, geom.Size{Width: 35, Height: 13}, content.Size())
	dark := 0
	for y := 0; y < 13; y++ {
		for x := 0; x < 35; x++ {
			c := color.GrayModel.Convert(r.At(x, y)).(color.Gray)
			if c.Y < 128 {
				dark++
			}
		}
	}
	assert.Positive(t, dark)
	assertColor(t, r, 100, 50, white)
}

func TestRender_DebugRects(t *testing.T) {
	tree, m := layoutTree(t, "width: 100; height: 60; margin: 5; padding: 10")
	r := NewRenderer(200, 100, m, config.Debug{PaddingRects: true})
	r.Render(tree)

	assertColor(t, r, 5, 30, color.RGBA{paddingOverlay.R, paddingOverlay.G, paddingOverlay.B, 255})
	assertColor(t, r, 30, 30, white)
	assertColor(t, r, 2, 30, white)
}

func TestRender_EncodePNG(t *testing.T) {
	tree, m := layoutTree(t, "width: 10; height: 10; background: red")
	r := NewRenderer(20, 20, m, config.Debug{})
	r.Render(tree)

	var buf bytes.Buffer
	require.NoError(t, r.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)

	res, err := CompareImages(img, r.Image(), CompareOptions{})
	require.NoError(t, err)
	assert.True(t, res.Match)
}
