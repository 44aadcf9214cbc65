package main

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imstyle/pkg/render"
)

const testScene = `
width: 120
height: 80
stylesheet: |
  .box { width: 40; height: 20; background: red }
  #main > .box:wide { width: 80 }
scripts:
  - tree.byId("b").tags.add("wide")
root:
  id: main
  style: "padding: 5; gap: 5"
  children:
    - {id: a, class: [box]}
    - {id: b, class: [box]}
    - {id: c, style: "visible: false", text: hidden}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRender(t *testing.T) {
	scene := writeFile(t, "scene.yaml", testScene)
	out := filepath.Join(t.TempDir(), "nested", "out.png")

	_, err := execute(t, "render", scene, "-o", out)
	require.NoError(t, err)

	img, err := render.LoadPNG(out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 120, 80), img.Bounds())

	// a at 5,5 40x20; b below it at 5,30 80x20 after the script tagged it.
	assertRed(t, img, 20, 15)
	assertRed(t, img, 70, 40)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, color.RGBAModel.Convert(img.At(70, 15)))
}

func assertRed(t *testing.T, img image.Image, x, y int) {
	t.Helper()
	c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, c, "pixel %d,%d", x, y)
}

func TestRender_NoScripts(t *testing.T) {
	scene := writeFile(t, "scene.yaml", testScene)
	out := filepath.Join(t.TempDir(), "out.png")

	_, err := execute(t, "render", scene, "-o", out, "--no-scripts")
	require.NoError(t, err)

	img, err := render.LoadPNG(out)
	require.NoError(t, err)
	c := color.RGBAModel.Convert(img.At(70, 40)).(color.RGBA)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, c)
}

func TestRender_BadConfig(t *testing.T) {
	scene := writeFile(t, "scene.yaml", testScene)
	cfg := writeFile(t, "cfg.toml", "scale = -1\n")
	_, err := execute(t, "render", scene, "--config", cfg, "-o", filepath.Join(t.TempDir(), "x.png"))
	assert.Error(t, err)
}

func TestDump(t *testing.T) {
	scene := writeFile(t, "scene.yaml", testScene)
	out, err := execute(t, "dump", scene)
	require.NoError(t, err)

	assert.Contains(t, out, "#main")
	assert.Contains(t, out, "#a.box")
	assert.Contains(t, out, "#b.box:wide")
	assert.Contains(t, out, "5,5 40x20")
	assert.Contains(t, out, "5,30 80x20")
	assert.Contains(t, out, "(not rendered)")
}

func TestDump_YAML(t *testing.T) {
	scene := writeFile(t, "scene.yaml", testScene)
	out, err := execute(t, "dump", scene, "--yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "id: main")
	assert.Contains(t, out, "- wide")
}

func TestCheck(t *testing.T) {
	good := writeFile(t, "good.css", ".a { width: 1 } #b, .c { height: 2 }")
	out, err := execute(t, "check", good)
	require.NoError(t, err)
	assert.Contains(t, out, "3 rules")

	bad := writeFile(t, "bad.css", ".a { width: wide }")
	_, err = execute(t, "check", good, bad)
	assert.ErrorContains(t, err, "bad.css")
}

func TestDiff(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png")
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	require.NoError(t, render.WritePNG(img, a))
	img.SetRGBA(1, 1, color.RGBA{10, 0, 0, 255})
	require.NoError(t, render.WritePNG(img, b))

	_, err := execute(t, "diff", a, b)
	assert.ErrorContains(t, err, "images differ")

	out, err := execute(t, "diff", a, b, "--tolerance", "255")
	require.NoError(t, err)
	assert.Contains(t, out, "match")

	diffOut := filepath.Join(dir, "diff.png")
	_, err = execute(t, "diff", a, b, "--diff-out", diffOut)
	assert.Error(t, err)
	assert.FileExists(t, diffOut)
}
