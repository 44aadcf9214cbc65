package layout

import (
	"io"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"imstyle/pkg/config"
	"imstyle/pkg/css"
	"imstyle/pkg/dom"
	"imstyle/pkg/geom"
)

const cell = 10.0

// gridMeasurer lays text out on 10x10 cells, wrapping at spaces.
type gridMeasurer struct {
	calls int
}

func (m *gridMeasurer) Measure(req MeasureRequest) geom.Size {
	m.calls++
	if !req.WordWrap || req.MaxWidth <= 0 {
		w := float64(len(req.Text)) * cell
		if !req.Overflow && req.MaxWidth > 0 {
			w = math.Min(w, req.MaxWidth)
		}
		return geom.Size{Width: w, Height: cell}
	}
	lines, lineW, maxW := 1, 0.0, 0.0
	for _, word := range strings.Fields(req.Text) {
		ww := float64(len(word)) * cell
		switch {
		case lineW == 0:
			lineW = ww
		case lineW+cell+ww <= req.MaxWidth:
			lineW += cell + ww
		default:
			lines++
			lineW = ww
		}
		maxW = math.Max(maxW, lineW)
	}
	return geom.Size{Width: maxW, Height: float64(lines) * cell}
}

func quietEngine(cfg config.Config, m ContentMeasurer) *Engine {
	return NewEngine(cfg, m, WithLogger(log.New(io.Discard)))
}

func newScene(t *testing.T, sheet, rootStyle string) (*dom.Tree, dom.Node) {
	t.Helper()
	tree := dom.NewTree()
	root := tree.Root()
	require.NoError(t, root.SetElementID("root"))
	if sheet != "" {
		require.NoError(t, root.SetStylesheet(css.MustParseStylesheet(sheet)))
	}
	require.NoError(t, root.SetInlineText(rootStyle))
	return tree, root
}

func addChild(t *testing.T, parent dom.Node, id, style string) dom.Node {
	t.Helper()
	n := parent.Tree().NewNode(id)
	require.NoError(t, n.SetInlineText(style))
	require.NoError(t, parent.AppendChild(n))
	return n
}

func reflow(t *testing.T, e *Engine, tree *dom.Tree, w, h float64) Report {
	t.Helper()
	rep, err := e.Reflow(tree, geom.Rect{Width: w, Height: h})
	require.NoError(t, err)
	return rep
}

func rect(x, y, w, h float64) geom.Rect {
	return geom.Rect{X: x, Y: y, Width: w, Height: h}
}
