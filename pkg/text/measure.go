// Package text measures and wraps node text with gg font faces.
package text

import (
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"imstyle/pkg/geom"
	"imstyle/pkg/layout"
)

// FontConfig maps font names to font files.
type FontConfig struct {
	Regular   string
	Bold      string
	Monospace string
}

// FontPath returns the file for a font name. Names ending in .ttf are
// taken as paths. An empty result selects the built-in bitmap face.
func (fc FontConfig) FontPath(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasSuffix(strings.ToLower(name), ".ttf") {
		return name
	}
	switch strings.ToLower(name) {
	case "bold":
		return fc.Bold
	case "mono", "monospace":
		return fc.Monospace
	}
	return fc.Regular
}

type faceKey struct {
	path string
	size float64
}

// Measurer implements layout.ContentMeasurer. Faces are loaded once per
// (file, size) and shared with the painter. It is safe for concurrent use.
type Measurer struct {
	fonts  FontConfig
	logger *log.Logger

	mu    sync.Mutex
	faces map[faceKey]font.Face
	dc    *gg.Context
}

var _ layout.ContentMeasurer = (*Measurer)(nil)

// NewMeasurer returns a measurer for fonts. A nil logger uses the default.
func NewMeasurer(fonts FontConfig, logger *log.Logger) *Measurer {
	if logger == nil {
		logger = log.Default().WithPrefix("text")
	}
	return &Measurer{
		fonts:  fonts,
		logger: logger,
		faces:  make(map[faceKey]font.Face),
		dc:     gg.NewContext(1, 1),
	}
}

// Face returns the face for a font name and size. Fonts that fail to load
// fall back to the 7x13 bitmap face, which ignores the size.
func (m *Measurer) Face(name string, size float64) font.Face {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.face(name, size)
}

func (m *Measurer) face(name string, size float64) font.Face {
	path := m.fonts.FontPath(name)
	if path == "" || size <= 0 {
		return basicfont.Face7x13
	}
	key := faceKey{path: path, size: size}
	if f, ok := m.faces[key]; ok {
		return f
	}
	f, err := gg.LoadFontFace(path, size)
	if err != nil {
		m.logger.Warn("font load failed, using bitmap face", "path", path, "err", err)
		f = basicfont.Face7x13
	}
	m.faces[key] = f
	return f
}

// Lines splits the text of req into the lines it is drawn as.
func (m *Measurer) Lines(req layout.MeasureRequest) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dc.SetFontFace(m.face(req.Font, req.FontSize))
	return m.lines(req)
}

func (m *Measurer) lines(req layout.MeasureRequest) []string {
	if req.WordWrap && req.MaxWidth > 0 {
		if w, _ := m.dc.MeasureString(req.Text); w <= req.MaxWidth && !strings.Contains(req.Text, "\n") {
			return []string{req.Text}
		}
		return m.dc.WordWrap(req.Text, req.MaxWidth)
	}
	return strings.Split(req.Text, "\n")
}

// Measure returns the size of the text of req: the widest line by the
// number of lines times the line height. Without overflow the width is
// clamped to MaxWidth.
func (m *Measurer) Measure(req layout.MeasureRequest) geom.Size {
	if req.Text == "" {
		return geom.Size{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dc.SetFontFace(m.face(req.Font, req.FontSize))

	lines := m.lines(req)
	var width float64
	for _, line := range lines {
		w, _ := m.dc.MeasureString(line)
		width = math.Max(width, w)
	}
	if !req.Overflow && req.MaxWidth > 0 {
		width = math.Min(width, req.MaxWidth)
	}
	return geom.Size{
		Width:  math.Ceil(width),
		Height: math.Ceil(m.dc.FontHeight() * float64(len(lines))),
	}
}
