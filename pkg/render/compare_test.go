package render

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestCompareImages_Identical(t *testing.T) {
	a := solid(4, 4, color.RGBA{10, 20, 30, 255})
	res, err := CompareImages(a, a, CompareOptions{})
	require.NoError(t, err)
	assert.True(t, res.Match)
	assert.Equal(t, 16, res.TotalPixels)
	assert.Zero(t, res.DifferentPixels)
	assert.Nil(t, res.Diff)
}

func TestCompareImages_Tolerance(t *testing.T) {
	a := solid(4, 4, color.RGBA{100, 100, 100, 255})
	b := solid(4, 4, color.RGBA{103, 100, 100, 255})

	res, err := CompareImages(a, b, CompareOptions{Tolerance: 2})
	require.NoError(t, err)
	assert.False(t, res.Match)
	assert.Equal(t, 16, res.DifferentPixels)
	assert.Equal(t, 3, res.MaxDifference)

	res, err = CompareImages(a, b, CompareOptions{Tolerance: 3})
	require.NoError(t, err)
	assert.True(t, res.Match)
}

func TestCompareImages_SizeMismatch(t *testing.T) {
	_, err := CompareImages(solid(2, 2, color.RGBA{}), solid(3, 2, color.RGBA{}), DefaultOptions())
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

func TestCompareImages_FuzzyRadius(t *testing.T) {
	a := solid(5, 5, color.RGBA{255, 255, 255, 255})
	b := solid(5, 5, color.RGBA{255, 255, 255, 255})
	a.SetRGBA(2, 2, color.RGBA{0, 0, 0, 255})
	b.SetRGBA(3, 2, color.RGBA{0, 0, 0, 255})

	res, err := CompareImages(a, b, CompareOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.DifferentPixels)

	res, err = CompareImages(a, b, CompareOptions{FuzzyRadius: 1})
	require.NoError(t, err)
	assert.True(t, res.Match)
}

func TestCompareImages_MaxDifferentPercent(t *testing.T) {
	a := solid(10, 10, color.RGBA{255, 255, 255, 255})
	b := solid(10, 10, color.RGBA{255, 255, 255, 255})
	b.SetRGBA(0, 0, color.RGBA{0, 0, 0, 255})

	res, err := CompareImages(a, b, CompareOptions{MaxDifferentPercent: 1, Diff: true})
	require.NoError(t, err)
	assert.True(t, res.Match)
	assert.Equal(t, 1, res.DifferentPixels)
	require.NotNil(t, res.Diff)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, res.Diff.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, res.Diff.RGBAAt(5, 5))
}

func TestCompareFiles(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png")
	require.NoError(t, WritePNG(solid(3, 3, color.RGBA{1, 2, 3, 255}), a))
	require.NoError(t, WritePNG(solid(3, 3, color.RGBA{1, 2, 3, 255}), b))

	res, err := CompareFiles(a, b, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Match)

	_, err = CompareFiles(filepath.Join(dir, "missing.png"), b, DefaultOptions())
	assert.Error(t, err)
}
