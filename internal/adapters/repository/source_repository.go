package repository

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/kamal-hamza/px-cli/internal/core/domain"
	"github.com/kamal-hamza/px-cli/internal/core/ports"
)

// FileSourceRepository reads and rewrites the source files that reference assets
type FileSourceRepository struct {
	root   string
	walker walker
	mu     sync.Mutex
}

// NewFileSourceRepository creates a repository over the source tree
func NewFileSourceRepository(root string, exclude []string, opts ...Option) *FileSourceRepository {
	return &FileSourceRepository{
		root:   root,
		walker: newWalker(root, exclude, opts...),
	}
}

// Ensure it implements the interface
var _ ports.SourceRepository = (*FileSourceRepository)(nil)

func (r *FileSourceRepository) Root() string {
	return r.root
}

// List returns every .ts/.tsx/.js/.jsx file in the tree
func (r *FileSourceRepository) List(ctx context.Context) ([]string, error) {
	return r.walker.walk(ctx, domain.SourceExtensions)
}

// Read returns the file content as a string
func (r *FileSourceRepository) Read(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &domain.IOError{Op: "read", Path: path, Err: err}
	}
	return string(data), nil
}

// Write replaces the file content, keeping its permissions
func (r *FileSourceRepository) Write(ctx context.Context, path string, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return &domain.IOError{Op: "write", Path: path, Err: fmt.Errorf("failed to write source file: %w", err)}
	}
	return nil
}
