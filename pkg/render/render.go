// Package render paints a laid-out node tree onto a gg context.
package render

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"imstyle/pkg/config"
	"imstyle/pkg/css"
	"imstyle/pkg/dom"
	"imstyle/pkg/geom"
	"imstyle/pkg/layout"
	"imstyle/pkg/text"
)

// Debug overlay colors.
var (
	marginOverlay  = css.Color{R: 255, G: 153, A: 255}
	paddingOverlay = css.Color{G: 170, B: 85, A: 255}
	contentOverlay = css.Color{G: 102, B: 255, A: 255}
)

type Renderer struct {
	context *gg.Context
	text    *text.Measurer
	debug   config.Debug
}

// NewRenderer returns a renderer with a width x height canvas. Text is
// shaped with m so it wraps exactly like the layout measured it.
func NewRenderer(width, height int, m *text.Measurer, debug config.Debug) *Renderer {
	return &Renderer{context: gg.NewContext(width, height), text: m, debug: debug}
}

// Render clears the canvas and paints every rendered node of t in tree
// order, parents below children.
func (r *Renderer) Render(t *dom.Tree) {
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()

	t.Lock()
	defer t.Unlock()
	r.drawNode(t.Root())
}

func (r *Renderer) drawNode(n dom.Node) {
	style := n.Style()
	b := n.Bounds()
	if !style.Layout.Visible || b.Padding.Size().Empty() {
		return
	}

	p := style.Paint
	r.drawShadow(b.Padding, p)
	if p.Background.A > 0 {
		r.setColor(p.Background, p.Opacity)
		r.drawRect(b.Padding, p.BorderRadius)
		r.context.Fill()
	}
	r.drawBorder(b.Padding, p)
	r.drawText(n, style, b.Content)
	if r.debug.Any() {
		r.drawDebug(b)
	}

	for _, c := range n.Children() {
		r.drawNode(c)
	}
}

func (r *Renderer) setColor(c css.Color, opacity float64) {
	cr, cg, cb, ca := c.Floats()
	r.context.SetRGBA(cr, cg, cb, ca*opacity)
}

func (r *Renderer) drawRect(rect geom.Rect, radius float64) {
	if radius > 0 {
		r.context.DrawRoundedRectangle(rect.X, rect.Y, rect.Width, rect.Height, radius)
	} else {
		r.context.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
	}
}

func (r *Renderer) drawShadow(rect geom.Rect, p css.PaintProps) {
	if p.ShadowColor.A == 0 {
		return
	}
	rect.X += p.ShadowOffsetX
	rect.Y += p.ShadowOffsetY
	r.setColor(p.ShadowColor, p.Opacity)
	r.drawRect(rect, p.BorderRadius)
	r.context.Fill()
}

// drawBorder strokes inside the padding rect so the border never spills
// into the margin.
func (r *Renderer) drawBorder(rect geom.Rect, p css.PaintProps) {
	bw := p.BorderWidth
	if bw <= 0 || p.BorderColor.A == 0 {
		return
	}
	inner := rect.Inset(geom.Uniform(bw / 2))
	r.setColor(p.BorderColor, p.Opacity)
	r.context.SetLineWidth(bw)
	r.drawRect(inner, max(0, p.BorderRadius-bw/2))
	r.context.Stroke()
}

func (r *Renderer) drawText(n dom.Node, style css.ComputedStyle, content geom.Rect) {
	s := n.Text()
	if s == "" || r.text == nil {
		return
	}
	l, p := style.Layout, style.Paint
	req := layout.MeasureRequest{
		Text:     s,
		Font:     l.Font,
		FontSize: l.FontSize,
		WordWrap: l.WordWrap,
		Overflow: l.TextOverflow,
	}
	if l.MeasuresText() {
		req.MaxWidth = content.Width
	}

	face := r.text.Face(l.Font, l.FontSize)
	r.context.Push()
	defer r.context.Pop()
	if !l.TextOverflow {
		r.context.DrawRectangle(content.X, content.Y, content.Width, content.Height)
		r.context.Clip()
	}
	r.context.SetFontFace(face)
	r.setColor(p.Color, p.Opacity)

	ascent := float64(face.Metrics().Ascent.Round())
	lineHeight := r.context.FontHeight()
	for i, line := range r.text.Lines(req) {
		w, _ := r.context.MeasureString(line)
		x := content.X
		switch p.TextAlign {
		case css.TextAlignCenter:
			x += (content.Width - w) / 2
		case css.TextAlignRight:
			x += content.Width - w
		}
		r.context.DrawString(line, x, content.Y+ascent+float64(i)*lineHeight)
	}
}

func (r *Renderer) drawDebug(b geom.Bounds) {
	r.context.SetLineWidth(1)
	for _, o := range []struct {
		on    bool
		rect  geom.Rect
		color css.Color
	}{
		{r.debug.MarginRects, b.Margin, marginOverlay},
		{r.debug.PaddingRects, b.Padding, paddingOverlay},
		{r.debug.ContentRects, b.Content, contentOverlay},
	} {
		if !o.on || o.rect.Size().Empty() {
			continue
		}
		r.setColor(o.color, 1)
		r.context.DrawRectangle(o.rect.X+0.5, o.rect.Y+0.5, o.rect.Width-1, o.rect.Height-1)
		r.context.Stroke()
	}
}

// Image returns the canvas.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

// At returns the canvas color at x, y.
func (r *Renderer) At(x, y int) color.Color {
	return r.context.Image().At(x, y)
}

func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}

// EncodePNG writes the canvas as PNG to w.
func (r *Renderer) EncodePNG(w io.Writer) error {
	return r.context.EncodePNG(w)
}
