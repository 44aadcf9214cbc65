package text

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"golang.org/x/image/font/basicfont"

	"imstyle/pkg/geom"
	"imstyle/pkg/layout"
)

// The bitmap face advances 7px per glyph and is 13px tall.
func bitmapMeasurer() *Measurer {
	return NewMeasurer(FontConfig{}, log.New(io.Discard))
}

func TestMeasure_SingleLine(t *testing.T) {
	m := bitmapMeasurer()
	got := m.Measure(layout.MeasureRequest{Text: "hello", FontSize: 13, Overflow: true})
	assert.Equal(t, geom.Size{Width: 35, Height: 13}, got)
}

func TestMeasure_Empty(t *testing.T) {
	assert.Equal(t, geom.Size{}, bitmapMeasurer().Measure(layout.MeasureRequest{FontSize: 13}))
}

func TestMeasure_ExplicitNewlines(t *testing.T) {
	m := bitmapMeasurer()
	got := m.Measure(layout.MeasureRequest{Text: "ab\nabcd", FontSize: 13, Overflow: true})
	assert.Equal(t, geom.Size{Width: 28, Height: 26}, got)
}

func TestMeasure_WordWrap(t *testing.T) {
	m := bitmapMeasurer()
	req := layout.MeasureRequest{Text: "aaaa bbbb cccc", FontSize: 13, WordWrap: true, Overflow: true, MaxWidth: 50}

	got := m.Measure(req)
	assert.Equal(t, []string{"aaaa", "bbbb", "cccc"}, m.Lines(req))
	assert.Equal(t, geom.Size{Width: 28, Height: 39}, got)

	req.MaxWidth = 70
	assert.Equal(t, []string{"aaaa bbbb", "cccc"}, m.Lines(req))
	assert.Equal(t, geom.Size{Width: 63, Height: 26}, m.Measure(req))

	// unbounded wrap width keeps a single line
	req.MaxWidth = 0
	assert.Equal(t, geom.Size{Width: 98, Height: 13}, m.Measure(req))

	// a width that fits the whole text keeps it on one line
	req.MaxWidth = 98
	assert.Equal(t, geom.Size{Width: 98, Height: 13}, m.Measure(req))
}

func TestMeasure_ClipClampsWidth(t *testing.T) {
	m := bitmapMeasurer()
	got := m.Measure(layout.MeasureRequest{Text: "abcdefghij", FontSize: 13, MaxWidth: 30})
	assert.Equal(t, geom.Size{Width: 30, Height: 13}, got)
}

func TestFace_FallsBackToBitmap(t *testing.T) {
	m := NewMeasurer(FontConfig{Regular: filepath.Join(t.TempDir(), "missing.ttf")}, log.New(io.Discard))
	assert.Equal(t, basicfont.Face7x13, m.Face("", 20))
	// the failure is cached
	assert.Equal(t, basicfont.Face7x13, m.Face("regular", 20))
}

func TestFontConfig_FontPath(t *testing.T) {
	fc := FontConfig{Regular: "r.ttf", Bold: "b.ttf", Monospace: "m.ttf"}
	assert.Equal(t, "r.ttf", fc.FontPath(""))
	assert.Equal(t, "b.ttf", fc.FontPath("Bold"))
	assert.Equal(t, "m.ttf", fc.FontPath("monospace"))
	assert.Equal(t, "/fonts/x.TTF", fc.FontPath("/fonts/x.TTF"))
	assert.Equal(t, "r.ttf", fc.FontPath("fantasy"))
}
