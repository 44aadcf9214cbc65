package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// ErrSizeMismatch is returned when two compared images differ in bounds.
var ErrSizeMismatch = errors.New("image dimensions differ")

// CompareResult contains the results of an image comparison.
type CompareResult struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int // largest 8-bit channel difference seen

	// Diff marks differing pixels in red over a grayscale copy of the
	// actual image. Set only when CompareOptions.Diff is true.
	Diff *image.RGBA
}

// CompareOptions configures the image comparison.
type CompareOptions struct {
	// Tolerance is the largest per-channel difference (0-255) still counted as equal.
	Tolerance int

	// FuzzyRadius lets a pixel match any expected pixel within this many
	// pixels of its position.
	FuzzyRadius int

	// MaxDifferentPercent passes the comparison when at most this share of
	// pixels differ.
	MaxDifferentPercent float64

	Diff bool
}

// DefaultOptions allows small antialiasing differences.
func DefaultOptions() CompareOptions {
	return CompareOptions{Tolerance: 2}
}

// CompareImages compares two images pixel by pixel.
func CompareImages(actual, expected image.Image, opts CompareOptions) (*CompareResult, error) {
	bounds := actual.Bounds()
	if bounds != expected.Bounds() {
		return &CompareResult{}, fmt.Errorf("%w: actual=%v, expected=%v", ErrSizeMismatch, bounds, expected.Bounds())
	}

	result := &CompareResult{
		Match:       true,
		TotalPixels: bounds.Dx() * bounds.Dy(),
	}
	if opts.Diff {
		result.Diff = image.NewRGBA(bounds)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			a := rgba8(actual.At(x, y))
			diff := channelDiff(a, rgba8(expected.At(x, y)))
			result.MaxDifference = max(result.MaxDifference, diff)

			same := diff <= opts.Tolerance ||
				(opts.FuzzyRadius > 0 && fuzzyMatch(a, expected, x, y, opts.FuzzyRadius, opts.Tolerance))
			if !same {
				result.Match = false
				result.DifferentPixels++
			}
			if result.Diff != nil {
				if same {
					result.Diff.Set(x, y, color.RGBA{a[0], a[0], a[0], 255})
				} else {
					result.Diff.Set(x, y, color.RGBA{255, 0, 0, 255})
				}
			}
		}
	}

	if !result.Match && opts.MaxDifferentPercent > 0 && result.TotalPixels > 0 {
		pct := float64(result.DifferentPixels) / float64(result.TotalPixels) * 100
		result.Match = pct <= opts.MaxDifferentPercent
	}
	return result, nil
}

// CompareFiles loads two PNG files and compares them.
func CompareFiles(actualPath, expectedPath string, opts CompareOptions) (*CompareResult, error) {
	actual, err := LoadPNG(actualPath)
	if err != nil {
		return nil, err
	}
	expected, err := LoadPNG(expectedPath)
	if err != nil {
		return nil, err
	}
	return CompareImages(actual, expected, opts)
}

// LoadPNG decodes the PNG file at path.
func LoadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// WritePNG encodes img to path.
func WritePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func rgba8(c color.Color) [4]uint8 {
	r, g, b, a := c.RGBA()
	return [4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func channelDiff(a, b [4]uint8) int {
	d := 0
	for i := range a {
		d = max(d, absInt(int(a[i])-int(b[i])))
	}
	return d
}

// fuzzyMatch reports whether a matches any expected pixel within radius of x, y.
func fuzzyMatch(a [4]uint8, expected image.Image, x, y, radius, tolerance int) bool {
	bounds := expected.Bounds()
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			p := image.Pt(x+dx, y+dy)
			if !p.In(bounds) {
				continue
			}
			if channelDiff(a, rgba8(expected.At(p.X, p.Y))) <= tolerance {
				return true
			}
		}
	}
	return false
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
