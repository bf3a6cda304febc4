package repository

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/kamal-hamza/px-cli/internal/core/ports"
)

// FileAssetRepository walks the image tree on disk
type FileAssetRepository struct {
	root   string
	walker walker
}

// NewFileAssetRepository creates a repository rooted at the asset directory
func NewFileAssetRepository(root string, exclude []string, opts ...Option) *FileAssetRepository {
	return &FileAssetRepository{
		root:   root,
		walker: newWalker(root, exclude, opts...),
	}
}

// Ensure it implements the interface
var _ ports.AssetRepository = (*FileAssetRepository)(nil)

func (r *FileAssetRepository) Root() string {
	return r.root
}

// List returns every asset whose extension is one of exts
func (r *FileAssetRepository) List(ctx context.Context, exts []string) ([]string, error) {
	return r.walker.walk(ctx, exts)
}

// Exists checks a web-style path ("images/a.png" or "/images/a.png") against the tree.
// Paths that climb out of the root never exist.
func (r *FileAssetRepository) Exists(ctx context.Context, relPath string) bool {
	clean := path.Clean(strings.TrimPrefix(relPath, "/"))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return false
	}
	info, err := os.Stat(filepath.Join(r.root, filepath.FromSlash(clean)))
	if err != nil {
		return false
	}
	return !info.IsDir()
}
