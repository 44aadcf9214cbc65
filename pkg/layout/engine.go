// Package layout turns a styled node tree into concrete boxes. A reflow
// runs the cascade, a bottom-up sizing pass with growth distribution and
// text stabilisation, and a top-down flow positioning pass.
package layout

import (
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"imstyle/pkg/config"
	"imstyle/pkg/css"
	"imstyle/pkg/dom"
	"imstyle/pkg/geom"
)

// Engine runs reflows with a fixed configuration. It holds no per-tree
// state and may be shared between trees.
type Engine struct {
	cfg      config.Config
	measurer ContentMeasurer
	resolver *css.Resolver
	logger   *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine returns an engine using cfg and m. A nil measurer reports zero
// size for every text.
func NewEngine(cfg config.Config, m ContentMeasurer, opts ...Option) *Engine {
	if m == nil {
		m = MeasureFunc(func(MeasureRequest) geom.Size { return geom.Size{} })
	}
	e := &Engine{
		cfg:      cfg,
		measurer: m,
		resolver: css.NewResolver(cfg.Scale),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.Default().WithPrefix("layout")
		e.logger.SetLevel(cfg.Level())
	}
	return e
}

// Config returns the engine's configuration.
func (e *Engine) Config() config.Config { return e.cfg }

// Reflow resolves styles and lays out t inside viewport. The root's margin
// box starts at the viewport origin; a root that grows on an axis fills the
// viewport on that axis.
//
// The tree lock is held for the whole reflow, so node mutators called from
// other goroutines wait until it finishes.
func (e *Engine) Reflow(t *dom.Tree, viewport geom.Rect) (Report, error) {
	start := time.Now()
	t.Lock()
	defer t.Unlock()

	root := t.Root()
	if !root.Valid() {
		return Report{}, dom.ErrStaleNode
	}

	var rep Report
	var err error
	if e.cfg.ThreadedCascade {
		rep.Changed, rep.Resolved, err = e.cascadeThreaded(root)
		if err != nil {
			return Report{}, err
		}
	} else {
		rep.Changed, rep.Resolved = e.cascade(root, nil)
	}

	rep.SizingPasses, rep.Stabilized = e.size(root, viewport.Size())
	e.placeRoot(root, viewport.Origin())

	rep.Elapsed = time.Since(start)
	e.logger.Debug("reflow",
		"nodes", rep.Resolved,
		"changed", len(rep.Changed),
		"passes", rep.SizingPasses,
		"elapsed", rep.Elapsed)
	return rep, nil
}

// cascade resolves n and its subtree in pre-order, appending changed nodes
// to changed.
func (e *Engine) cascade(n dom.Node, changed []dom.Node) ([]dom.Node, int) {
	hash, style := e.resolver.Resolve(n)
	if n.SetComputedStyle(hash, style) {
		changed = append(changed, n)
	}
	count := 1
	for _, c := range n.Children() {
		var k int
		changed, k = e.cascade(c, changed)
		count += k
	}
	return changed, count
}

// cascadeThreaded resolves the root on the calling goroutine and each of
// its child subtrees on a worker. Results are merged in tree order.
func (e *Engine) cascadeThreaded(root dom.Node) ([]dom.Node, int, error) {
	hash, style := e.resolver.Resolve(root)
	var changed []dom.Node
	if root.SetComputedStyle(hash, style) {
		changed = append(changed, root)
	}

	children := root.Children()
	parts := make([][]dom.Node, len(children))
	counts := make([]int, len(children))

	var g errgroup.Group
	g.SetLimit(max(1, e.cfg.CascadeWorkers))
	for i, c := range children {
		g.Go(func() error {
			parts[i], counts[i] = e.cascade(c, nil)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	total := 1
	for i := range parts {
		changed = append(changed, parts[i]...)
		total += counts[i]
	}
	return changed, total, nil
}
