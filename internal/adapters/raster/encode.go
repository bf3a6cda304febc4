package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/kamal-hamza/px-cli/internal/core/domain"

	// Registers the WebP decoder with image.Decode / image.DecodeConfig
	_ "golang.org/x/image/webp"
)

// decodeFile opens and fully decodes an image
func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, &domain.DecodeError{Path: path, Err: err}
	}
	return img, nil
}

// encodeImage writes img in format f
func encodeImage(w io.Writer, img image.Image, f domain.Format, jpegQuality, webpQuality int) error {
	switch f {
	case domain.FormatJPEG:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	case domain.FormatPNG:
		return imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
	case domain.FormatWEBP:
		return webp.Encode(w, img, &webp.Options{Quality: float32(webpQuality)})
	}
	return fmt.Errorf("encode %q: %w", f, domain.ErrUnsupportedFormat)
}

// flatten composites img over an opaque white canvas of the same size
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// fileMode returns the permission bits of path, or 0644 when it is missing
func fileMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0644
}
