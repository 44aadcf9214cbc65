// Command boxview shows a scene in a window and re-renders it after each
// script typed into the input bar.
package main

import (
	"flag"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"imstyle/pkg/config"
	"imstyle/pkg/scene"
	"imstyle/pkg/text"
)

func main() {
	configPath := flag.String("config", "", "TOML config file")
	font := flag.String("font", "", "regular TTF font")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: boxview [flags] <scene.yaml>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, TimeFormat: "15:04:05.00"})
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			logger.Fatal("config", "err", err)
		}
	}
	logger.SetLevel(cfg.Level())

	s, err := scene.Load(flag.Arg(0))
	if err != nil {
		logger.Fatal("scene", "err", err)
	}
	v := newViewer(s, cfg, text.FontConfig{Regular: *font}, logger)
	for i, src := range s.Scripts {
		if err := v.exec(src); err != nil {
			logger.Error("scene script", "index", i, "err", err)
		}
	}

	a := app.New()
	w := a.NewWindow("boxview " + flag.Arg(0))
	w.Resize(fyne.NewSize(float32(s.Viewport.Width), float32(s.Viewport.Height)+80))

	img, _, err := v.frame()
	if err != nil {
		logger.Fatal("reflow", "err", err)
	}
	canvasImg := canvas.NewImageFromImage(img)
	canvasImg.FillMode = canvas.ImageFillOriginal

	status := widget.NewLabel("Enter a script, e.g. tree.byId(\"ok\").classList.toggle(\"pressed\")")

	repaint := func() {
		img, rep, err := v.frame()
		if err != nil {
			status.SetText("Reflow error: " + err.Error())
			return
		}
		canvasImg.Image = img
		canvasImg.Refresh()
		status.SetText(fmt.Sprintf("%d nodes, %d changed, %d passes, %s",
			rep.Resolved, len(rep.Changed), rep.SizingPasses, rep.Elapsed))
	}

	input := widget.NewEntry()
	input.SetPlaceHolder("script")
	input.OnSubmitted = func(src string) {
		if err := v.exec(src); err != nil {
			status.SetText("Script error: " + err.Error())
			return
		}
		repaint()
	}

	debugToggle := widget.NewCheck("rects", func(bool) {
		v.toggleDebug()
		repaint()
	})

	topBar := container.NewBorder(nil, nil, nil, debugToggle, input)
	content := container.NewBorder(topBar, status, nil, nil, canvasImg)
	w.SetContent(content)

	// Keep focus on the input so Tab has somewhere to go
	w.Canvas().Focus(input)

	w.ShowAndRun()
}
