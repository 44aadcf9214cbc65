package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"imstyle/pkg/render"
)

type renderOptions struct {
	sceneOptions
	output     string
	debugRects bool
}

func newRenderCmd() *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <scene.yaml>",
		Short: "Lay out a scene and paint it to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], &opts)
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PNG (default <scene>.png)")
	cmd.Flags().BoolVar(&opts.debugRects, "debug-rects", false, "outline margin, padding and content rects")
	return cmd
}

func runRender(cmd *cobra.Command, path string, opts *renderOptions) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	l, err := layoutScene(logger, path, &opts.sceneOptions)
	if err != nil {
		return err
	}

	debug := l.cfg.Debug
	if opts.debugRects {
		debug.MarginRects, debug.PaddingRects, debug.ContentRects = true, true, true
	}
	vp := l.scene.Viewport
	r := render.NewRenderer(int(math.Ceil(vp.Width)), int(math.Ceil(vp.Height)), l.measurer, debug)
	r.Render(l.scene.Tree)

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := r.SavePNG(out); err != nil {
		return fmt.Errorf("save %s: %w", out, err)
	}
	prog.done(fmt.Sprintf("Rendered %d nodes to %s", l.report.Resolved, out))
	return nil
}
