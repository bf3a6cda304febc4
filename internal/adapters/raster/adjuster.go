package raster

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/kamal-hamza/px-cli/internal/core/domain"
)

// Adjuster applies lighting corrections to single images
type Adjuster struct{}

// NewAdjuster creates an adjuster
func NewAdjuster() *Adjuster {
	return &Adjuster{}
}

// Adjust reads src, applies brightness, contrast and saturation in that
// order, and writes the result to dst in the format named by dst's extension.
// Each factor interpolates between a reference image and the input:
// 0 gives the reference, 1.0 leaves the image unchanged, larger values
// extrapolate past it.
func (a *Adjuster) Adjust(ctx context.Context, src, dst string, adj domain.Adjustment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	format := domain.FormatFromExt(filepath.Ext(dst))
	if !format.IsRaster() {
		return fmt.Errorf("%s: %w", dst, domain.ErrUnsupportedFormat)
	}

	img, err := decodeFile(src)
	if err != nil {
		return err
	}

	if HasTransparency(img) {
		img = flatten(img)
	}

	out := enhanceBrightness(img, adj.Brightness)
	out = enhanceContrast(out, adj.Contrast)
	out = enhanceColor(out, adj.Saturation)

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return &domain.IOError{Op: "mkdir", Path: filepath.Dir(dst), Err: err}
	}

	_, err = writeAtomic(ctx, dst, fileMode(src), func(w io.Writer) error {
		return encodeImage(w, out, format, adj.Quality, adj.Quality)
	})
	if err != nil {
		return &domain.IOError{Op: "write", Path: dst, Err: err}
	}
	return nil
}

// enhanceBrightness scales every channel, so black stays black
func enhanceBrightness(img image.Image, factor float64) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		c.R = blend(0, c.R, factor)
		c.G = blend(0, c.G, factor)
		c.B = blend(0, c.B, factor)
		return c
	})
}

// enhanceContrast stretches channels away from the mean luminance of the image
func enhanceContrast(img *image.NRGBA, factor float64) *image.NRGBA {
	mean := meanLuma(img)
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		c.R = blend(mean, c.R, factor)
		c.G = blend(mean, c.G, factor)
		c.B = blend(mean, c.B, factor)
		return c
	})
}

// enhanceColor moves each pixel away from its own grey value
func enhanceColor(img *image.NRGBA, factor float64) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		grey := luma(c)
		c.R = blend(grey, c.R, factor)
		c.G = blend(grey, c.G, factor)
		c.B = blend(grey, c.B, factor)
		return c
	})
}

// blend returns base + factor*(v-base), clamped to a channel
func blend(base, v uint8, factor float64) uint8 {
	out := math.Round(float64(base) + factor*(float64(v)-float64(base)))
	switch {
	case out < 0:
		return 0
	case out > 255:
		return 255
	}
	return uint8(out)
}

// luma is the ITU-R 601 grey value of c
func luma(c color.NRGBA) uint8 {
	return uint8(math.Round(0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)))
}

func meanLuma(img *image.NRGBA) uint8 {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return 0
	}
	var sum float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			sum += float64(luma(img.NRGBAAt(x, y)))
		}
	}
	return uint8(math.Round(sum / float64(n)))
}
