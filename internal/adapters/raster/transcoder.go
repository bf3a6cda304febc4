package raster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/kamal-hamza/px-cli/internal/core/domain"
)

// Transcoder resizes and re-encodes assets according to a decision
type Transcoder struct {
	policy domain.Policy
}

// NewTranscoder creates a transcoder bound to the encoder settings of policy
func NewTranscoder(policy domain.Policy) *Transcoder {
	return &Transcoder{policy: policy}
}

// Transcode applies decision to the asset described by rec.
//
// Resizing fits the longest edge to the policy ceiling with Lanczos.
// Conversion flattens onto white, writes <base><target ext> and deletes the
// original. Everything else re-encodes in place. Every write is atomic, so
// the original survives any failure before the final rename.
func (t *Transcoder) Transcode(ctx context.Context, rec domain.AssetRecord, decision domain.OptimizationDecision) (domain.TranscodeResult, error) {
	result := domain.TranscodeResult{
		OutputPath:    rec.AbsPath,
		OutputRelPath: rec.RelPath,
		Width:         rec.Width,
		Height:        rec.Height,
		BytesWritten:  rec.Size,
	}

	if decision.IsNoop() {
		return result, nil
	}
	if !rec.Format.IsRaster() {
		return result, fmt.Errorf("%s: %w", rec.RelPath, domain.ErrUnsupportedFormat)
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	// 1. Work out where the output goes
	target := rec.Format
	dest := rec.AbsPath
	if decision.NeedsConversion && decision.TargetFormat != rec.Format {
		target = decision.TargetFormat
		dest = swapExt(rec.AbsPath, target)
		if dest != rec.AbsPath {
			if _, err := os.Stat(dest); err == nil {
				return result, fmt.Errorf("%s: %w", dest, domain.ErrTargetExists)
			} else if !errors.Is(err, os.ErrNotExist) {
				return result, &domain.IOError{Op: "stat", Path: dest, Err: err}
			}
		}
	}

	// 2. Decode
	img, err := decodeFile(rec.AbsPath)
	if err != nil {
		return result, err
	}

	// 3. Resize (never upscales)
	if decision.NeedsResize {
		b := img.Bounds()
		if w, h := fitSize(b.Dx(), b.Dy(), t.policy.MaxDimension); w != b.Dx() || h != b.Dy() {
			img = imaging.Resize(img, w, h, imaging.Lanczos)
		}
	}

	// 4. JPEG has no alpha channel
	if target == domain.FormatJPEG && rec.Format != domain.FormatJPEG {
		img = flatten(img)
	}

	// 5. Encode and swap in
	n, err := writeAtomic(ctx, dest, fileMode(rec.AbsPath), func(w io.Writer) error {
		return encodeImage(w, img, target, t.policy.JPEGQuality, t.policy.WebPQuality)
	})
	if err != nil {
		return result, &domain.IOError{Op: "write", Path: dest, Err: err}
	}

	bounds := img.Bounds()
	result.Width = bounds.Dx()
	result.Height = bounds.Dy()
	result.BytesWritten = n

	if dest == rec.AbsPath {
		return result, nil
	}

	// 6. Drop the original; on failure undo the new file so the tree keeps one copy
	if err := os.Remove(rec.AbsPath); err != nil {
		_ = os.Remove(dest)
		return result, &domain.IOError{Op: "remove", Path: rec.AbsPath, Err: err}
	}

	result.OutputPath = dest
	result.OutputRelPath = domain.WithFormat(rec.RelPath, target)
	result.Removed = true
	return result, nil
}

// swapExt replaces the extension of an OS path with the canonical one for f
// fitSize scales w x h so the longest edge is at most limit, rounding the
// short edge to the nearest pixel. Sizes already within the limit are returned as is.
func fitSize(w, h, limit int) (int, int) {
	if limit <= 0 || (w <= limit && h <= limit) {
		return w, h
	}
	if w >= h {
		return limit, max(1, int(math.Round(float64(h)*float64(limit)/float64(w))))
	}
	return max(1, int(math.Round(float64(w)*float64(limit)/float64(h)))), limit
}

func swapExt(path string, f domain.Format) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + f.Ext()
}
