package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/kamal-hamza/px-cli/internal/core/domain"
)

// walker lists files under a root, honouring exclude globs.
// Hidden directories and node_modules are skipped unless WithHiddenDirs is set.
type walker struct {
	root       string
	exclude    []string
	scanHidden bool
}

// Option tunes how a repository walks its tree
type Option func(*walker)

// WithHiddenDirs makes the walk enter hidden directories and node_modules
func WithHiddenDirs(scan bool) Option {
	return func(w *walker) {
		w.scanHidden = scan
	}
}

func newWalker(root string, exclude []string, opts ...Option) walker {
	patterns := make([]string, 0, len(exclude))
	for _, p := range exclude {
		p = strings.TrimSpace(p)
		if p != "" {
			patterns = append(patterns, filepath.ToSlash(p))
		}
	}
	w := walker{root: root, exclude: patterns}
	for _, opt := range opts {
		opt(&w)
	}
	return w
}

// SkipsDir reports whether a directory name is skipped by default
func SkipsDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}

// walk returns absolute paths of files whose lower-cased extension is in exts,
// in lexical order
func (w walker) walk(ctx context.Context, exts []string) ([]string, error) {
	info, err := os.Stat(w.root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", w.root, domain.ErrRootMissing)
	}

	wanted := make(map[string]bool, len(exts))
	for _, e := range exts {
		wanted[strings.ToLower(e)] = true
	}

	var files []string
	err = filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			// Unreadable entries are skipped, the rest of the tree is still walked
			if d != nil && d.IsDir() && path != w.root {
				return filepath.SkipDir
			}
			return nil
		}
		if path == w.root {
			return nil
		}

		rel, relErr := filepath.Rel(w.root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if (!w.scanHidden && SkipsDir(d.Name())) || w.excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !wanted[strings.ToLower(filepath.Ext(path))] || w.excluded(rel) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil && !errors.Is(err, filepath.SkipAll) {
		return files, fmt.Errorf("failed to walk %s: %w", w.root, err)
	}

	return files, nil
}

func (w walker) excluded(rel string) bool {
	for _, pattern := range w.exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
