package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrOutsideRoot is returned for a path that does not lie under the asset root
	ErrOutsideRoot = errors.New("path is outside the asset root")

	// ErrUnsupportedFormat marks files that are recognized but not raster-decodable (GIF, SVG)
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrTargetExists prevents a conversion from clobbering an unrelated file
	ErrTargetExists = errors.New("conversion target already exists")

	// ErrRootMissing is the one unrecoverable condition: a tree to scan is absent
	ErrRootMissing = errors.New("directory does not exist")
)

// DecodeError reports a file that could not be parsed as an image
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IOError reports a read, write or permission failure on a single file
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// IsDecodeError reports whether err wraps a *DecodeError
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// IsIOError reports whether err wraps an *IOError
func IsIOError(err error) bool {
	var ioe *IOError
	return errors.As(err, &ioe)
}
