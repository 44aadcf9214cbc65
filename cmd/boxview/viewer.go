package main

import (
	"fmt"
	"image"
	"math"

	"github.com/charmbracelet/log"

	"imstyle/pkg/config"
	"imstyle/pkg/layout"
	"imstyle/pkg/render"
	"imstyle/pkg/scene"
	"imstyle/pkg/script"
	"imstyle/pkg/text"
)

// viewer owns one scene and repaints it after every script.
type viewer struct {
	scene    *scene.Scene
	runtime  *script.Runtime
	engine   *layout.Engine
	measurer *text.Measurer
	debug    config.Debug
	logger   *log.Logger
	runs     int
}

func newViewer(s *scene.Scene, cfg config.Config, fonts text.FontConfig, logger *log.Logger) *viewer {
	m := text.NewMeasurer(fonts, logger)
	return &viewer{
		scene:    s,
		runtime:  script.New(s.Tree, logger),
		engine:   layout.NewEngine(cfg, m, layout.WithLogger(logger.WithPrefix("layout"))),
		measurer: m,
		debug:    cfg.Debug,
		logger:   logger,
	}
}

// exec runs src against the tree.
func (v *viewer) exec(src string) error {
	v.runs++
	return v.runtime.Run(fmt.Sprintf("input#%d", v.runs), src)
}

// frame reflows the tree and paints it.
func (v *viewer) frame() (image.Image, layout.Report, error) {
	rep, err := v.engine.Reflow(v.scene.Tree, v.scene.Viewport)
	if err != nil {
		return nil, rep, err
	}
	vp := v.scene.Viewport
	r := render.NewRenderer(int(math.Ceil(vp.Width)), int(math.Ceil(vp.Height)), v.measurer, v.debug)
	r.Render(v.scene.Tree)
	return r.Image(), rep, nil
}

func (v *viewer) toggleDebug() {
	on := !v.debug.Any()
	v.debug = config.Debug{MarginRects: on, PaddingRects: on, ContentRects: on}
}
