package ports

import (
	"context"

	"github.com/kamal-hamza/px-cli/internal/core/domain"
)

// AssetRepository defines the port for walking an image tree
type AssetRepository interface {
	// Root returns the absolute path the repository is rooted at
	Root() string

	// List returns absolute paths of files whose extension is one of exts
	// (case-insensitive), in lexical walk order
	List(ctx context.Context, exts []string) ([]string, error)

	// Exists checks whether a slash separated path relative to the root exists
	Exists(ctx context.Context, relPath string) bool
}

// SourceRepository defines the port for the source tree holding asset references
type SourceRepository interface {
	// Root returns the absolute path of the source tree
	Root() string

	// List returns absolute paths of every source file
	List(ctx context.Context) ([]string, error)

	// Read returns the UTF-8 content of a source file
	Read(ctx context.Context, path string) (string, error)

	// Write replaces the content of a source file
	Write(ctx context.Context, path string, content string) error
}

// Inspector defines the port for reading image metadata
type Inspector interface {
	// Inspect reports size, dimensions and declared format of the file
	Inspect(ctx context.Context, path string) (domain.AssetRecord, error)

	// Transparency decodes the file and reports whether any pixel is transparent
	Transparency(ctx context.Context, path string) (bool, error)
}

// Transcoder defines the port for resizing and re-encoding an asset
type Transcoder interface {
	// Transcode applies the decision to the asset and writes the result
	Transcode(ctx context.Context, rec domain.AssetRecord, decision domain.OptimizationDecision) (domain.TranscodeResult, error)
}

// Adjuster defines the port for brightness/contrast/saturation grading
type Adjuster interface {
	// Adjust reads src, applies adj and writes the result to dst
	Adjust(ctx context.Context, src, dst string, adj domain.Adjustment) error
}

// Reporter receives per-file progress from long running services
type Reporter interface {
	Info(msg string)
	Success(msg string)
	Warn(msg string)
	Fail(path string, err error)
}
