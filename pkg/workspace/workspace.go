package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName is the project-local config file looked up by FindRoot
const ConfigFileName = ".px.yaml"

// Workspace represents the web project px operates on
type Workspace struct {
	RootPath   string
	AssetsPath string
	SourcePath string
	ConfigPath string
	CachePath  string
}

// New creates a Workspace rooted at root. An empty root resolves the
// project from PX_ROOT, then from the working directory upwards.
func New(root string) (*Workspace, error) {
	if root == "" {
		resolved, err := resolveRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to determine project root: %w", err)
		}
		root = resolved
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	ws := &Workspace{
		RootPath:   abs,
		AssetsPath: filepath.Join(abs, "public"),
		SourcePath: filepath.Join(abs, "src"),
		ConfigPath: filepath.Join(abs, ConfigFileName),
		CachePath:  filepath.Join(abs, ".px"),
	}

	return ws, nil
}

// resolveRoot returns PX_ROOT when set, otherwise the nearest ancestor of
// the working directory holding a config file, otherwise the working directory
func resolveRoot() (string, error) {
	if env := os.Getenv("PX_ROOT"); env != "" {
		return env, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	if found, ok := FindRoot(cwd); ok {
		return found, nil
	}
	return cwd, nil
}

// FindRoot walks up from dir looking for a config file
func FindRoot(dir string) (string, bool) {
	current := dir
	for {
		if _, err := os.Stat(filepath.Join(current, ConfigFileName)); err == nil {
			return current, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

// Configure points the asset and source trees at the configured directories.
// Relative directories are taken from the project root.
func (w *Workspace) Configure(publicDir, srcDir string) {
	if publicDir != "" {
		w.AssetsPath = w.resolve(publicDir)
	}
	if srcDir != "" {
		w.SourcePath = w.resolve(srcDir)
	}
}

func (w *Workspace) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(w.RootPath, dir)
}

// AssetsExist checks if the asset root is a directory
func (w *Workspace) AssetsExist() bool {
	return isDir(w.AssetsPath)
}

// SourceExists checks if the source tree is a directory
func (w *Workspace) SourceExists() bool {
	return isDir(w.SourcePath)
}

// HasConfig checks if the project carries its own config file
func (w *Workspace) HasConfig() bool {
	_, err := os.Stat(w.ConfigPath)
	return err == nil
}

// EnsureCache creates the cache directory if it doesn't exist
func (w *Workspace) EnsureCache() error {
	if err := os.MkdirAll(w.CachePath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", w.CachePath, err)
	}
	return nil
}

// GetCachePath returns the full path for a generated report file
func (w *Workspace) GetCachePath(filename string) string {
	return filepath.Join(w.CachePath, filename)
}

// CleanCache removes every generated report, keeping the directory itself.
// A missing cache is not an error.
func (w *Workspace) CleanCache() error {
	entries, err := os.ReadDir(w.CachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	for _, entry := range entries {
		path := filepath.Join(w.CachePath, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}

	return nil
}

// RelToRoot returns path relative to the project root, or path itself when
// it lies elsewhere
func (w *Workspace) RelToRoot(path string) string {
	rel, err := filepath.Rel(w.RootPath, path)
	if err != nil || rel == ".." || filepath.IsAbs(rel) ||
		len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator) {
		return path
	}
	return filepath.ToSlash(rel)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
