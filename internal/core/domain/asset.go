package domain

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Format is the declared container format of an image asset
type Format string

const (
	FormatJPEG    Format = "jpeg"
	FormatPNG     Format = "png"
	FormatWEBP    Format = "webp"
	FormatGIF     Format = "gif"
	FormatSVG     Format = "svg"
	FormatUnknown Format = ""
)

// IsRaster reports whether the optimizer can decode and re-encode the format.
// GIF and SVG are recognized but never transcoded.
func (f Format) IsRaster() bool {
	switch f {
	case FormatJPEG, FormatPNG, FormatWEBP:
		return true
	}
	return false
}

// Ext returns the canonical file extension for the format
func (f Format) Ext() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatPNG:
		return ".png"
	case FormatWEBP:
		return ".webp"
	case FormatGIF:
		return ".gif"
	case FormatSVG:
		return ".svg"
	}
	return ""
}

// FormatFromExt maps a file extension (with or without the dot) to a Format.
// Matching is case-insensitive: ".JPG" and "jpeg" both map to FormatJPEG.
func FormatFromExt(ext string) Format {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "jpg", "jpeg":
		return FormatJPEG
	case "png":
		return FormatPNG
	case "webp":
		return FormatWEBP
	case "gif":
		return FormatGIF
	case "svg":
		return FormatSVG
	}
	return FormatUnknown
}

// OptimizableExtensions are the extensions the optimizer and analyzer walk
var OptimizableExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// ImageExtensions are every extension counted as an image asset
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif", ".svg"}

// SourceExtensions are the source files scanned for references
var SourceExtensions = []string{".ts", ".tsx", ".js", ".jsx"}

// AssetRecord describes one image file under the asset root.
// It lives for a single pass and has no identity beyond its path.
type AssetRecord struct {
	AbsPath         string `json:"abs_path"`
	RelPath         string `json:"rel_path"` // slash separated, relative to the asset root
	Size            int64  `json:"size"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	Format          Format `json:"format"`
	HasTransparency bool   `json:"has_transparency"`
}

// NewAssetRecord builds a record for absPath, which must lie under root
func NewAssetRecord(root, absPath string) (AssetRecord, error) {
	rel, err := RelativeTo(root, absPath)
	if err != nil {
		return AssetRecord{}, err
	}
	return AssetRecord{
		AbsPath: absPath,
		RelPath: rel,
		Format:  FormatFromExt(filepath.Ext(absPath)),
	}, nil
}

// RelativeTo strips root from absPath and returns a slash separated path.
// Paths outside root fail with ErrOutsideRoot.
func RelativeTo(root, absPath string) (string, error) {
	rel, err := filepath.Rel(root, absPath)
	if err != nil {
		return "", ErrOutsideRoot
	}
	if rel == "." || rel == ".." || filepath.IsAbs(rel) ||
		strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}
	return filepath.ToSlash(rel), nil
}

// WebPath returns the path as referenced from source code ("/images/a.png")
func (r AssetRecord) WebPath() string {
	return "/" + r.RelPath
}

// Dimensions returns "WIDTHxHEIGHT"
func (r AssetRecord) Dimensions() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// WithFormat returns the relative path with its extension swapped for the
// canonical extension of f ("a/b.png" -> "a/b.jpg")
func WithFormat(rel string, f Format) string {
	return strings.TrimSuffix(rel, path.Ext(rel)) + f.Ext()
}
