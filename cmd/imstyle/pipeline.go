package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"imstyle/pkg/config"
	"imstyle/pkg/layout"
	"imstyle/pkg/scene"
	"imstyle/pkg/script"
	"imstyle/pkg/text"
)

// sceneOptions are the flags shared by commands that lay out a scene.
type sceneOptions struct {
	configPath string
	width      float64
	height     float64
	fonts      text.FontConfig
	noScripts  bool
}

func (o *sceneOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.configPath, "config", "", "TOML config file")
	f.Float64Var(&o.width, "width", 0, "viewport width (default from scene)")
	f.Float64Var(&o.height, "height", 0, "viewport height (default from scene)")
	f.StringVar(&o.fonts.Regular, "font", "", "regular TTF font (default built-in bitmap font)")
	f.StringVar(&o.fonts.Bold, "font-bold", "", "bold TTF font")
	f.StringVar(&o.fonts.Monospace, "font-mono", "", "monospace TTF font")
	f.BoolVar(&o.noScripts, "no-scripts", false, "skip the scene's scripts")
}

func (o *sceneOptions) config() (config.Config, error) {
	if o.configPath == "" {
		return config.Global(), nil
	}
	return config.Load(o.configPath)
}

// laidOut is a scene after scripts and one reflow.
type laidOut struct {
	scene    *scene.Scene
	cfg      config.Config
	measurer *text.Measurer
	report   layout.Report
}

// layoutScene loads the scene at path, runs its scripts and reflows it.
func layoutScene(logger *log.Logger, path string, o *sceneOptions) (*laidOut, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	if o.configPath != "" {
		logger.Debug("config loaded", "path", o.configPath, "scale", cfg.Scale, "threaded", cfg.ThreadedCascade)
	}

	s, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	if o.width > 0 {
		s.Viewport.Width = o.width
	}
	if o.height > 0 {
		s.Viewport.Height = o.height
	}

	if !o.noScripts && len(s.Scripts) > 0 {
		rt := script.New(s.Tree, logger)
		for i, src := range s.Scripts {
			if err := rt.Run(fmt.Sprintf("%s#%d", path, i), src); err != nil {
				return nil, err
			}
		}
	}

	m := text.NewMeasurer(o.fonts, logger)
	e := layout.NewEngine(cfg, m, layout.WithLogger(logger.WithPrefix("layout")))
	rep, err := e.Reflow(s.Tree, s.Viewport)
	if err != nil {
		return nil, fmt.Errorf("reflow: %w", err)
	}
	return &laidOut{scene: s, cfg: cfg, measurer: m, report: rep}, nil
}
