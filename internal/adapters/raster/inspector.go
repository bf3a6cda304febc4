package raster

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/kamal-hamza/px-cli/internal/core/domain"
)

// Inspector reads image headers under an asset root
type Inspector struct {
	root string
}

// NewInspector creates an inspector for files under root
func NewInspector(root string) *Inspector {
	return &Inspector{root: root}
}

// Inspect reports size, dimensions and declared format without decoding pixels.
// The declared format comes from the decoder, not the file extension.
func (i *Inspector) Inspect(ctx context.Context, path string) (domain.AssetRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.AssetRecord{}, err
	}

	rec, err := domain.NewAssetRecord(i.root, path)
	if err != nil {
		return domain.AssetRecord{}, fmt.Errorf("%s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return rec, &domain.IOError{Op: "stat", Path: path, Err: err}
	}
	rec.Size = info.Size()

	// SVG is text; no raster decoder will ever accept it
	if rec.Format == domain.FormatSVG {
		return rec, fmt.Errorf("%s: %w", rec.RelPath, domain.ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return rec, &domain.IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	cfg, name, err := image.DecodeConfig(f)
	if err != nil {
		return rec, &domain.DecodeError{Path: path, Err: err}
	}

	rec.Width = cfg.Width
	rec.Height = cfg.Height
	rec.Format = domain.FormatFromExt(name)

	if !rec.Format.IsRaster() {
		return rec, fmt.Errorf("%s (%s): %w", rec.RelPath, name, domain.ErrUnsupportedFormat)
	}

	return rec, nil
}

// Transparency fully decodes the file and checks every pixel's alpha
func (i *Inspector) Transparency(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	img, err := decodeFile(path)
	if err != nil {
		return false, err
	}
	return HasTransparency(img), nil
}
