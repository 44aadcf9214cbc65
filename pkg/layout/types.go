package layout

import (
	"time"

	"imstyle/pkg/dom"
	"imstyle/pkg/geom"
)

// MeasureRequest describes the text of one node to measure.
type MeasureRequest struct {
	Text     string
	Font     string
	FontSize float64
	WordWrap bool
	// Overflow allows the text to extend past MaxWidth.
	Overflow bool
	// MaxWidth is the width available to the text; 0 means unbounded.
	MaxWidth float64
}

// ContentMeasurer supplies measured content sizes. The sizing pass treats
// the result as an opaque leaf input.
type ContentMeasurer interface {
	Measure(req MeasureRequest) geom.Size
}

// MeasureFunc adapts a function to ContentMeasurer.
type MeasureFunc func(req MeasureRequest) geom.Size

func (f MeasureFunc) Measure(req MeasureRequest) geom.Size { return f(req) }

// Report summarises one reflow.
type Report struct {
	// Changed lists the nodes whose style inputs or resolved style changed,
	// in tree order.
	Changed []dom.Node
	// Resolved is the number of nodes the cascade visited.
	Resolved int
	// SizingPasses counts sizing passes, including stabilisation re-runs.
	SizingPasses int
	// Stabilized is false when text sizes still disagreed after the last
	// allowed pass.
	Stabilized bool
	Elapsed    time.Duration
}
