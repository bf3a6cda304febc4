package mocks

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/kamal-hamza/px-cli/internal/core/domain"
)

// --- MockAssetRepository ---

// MockAssetRepository is an in-memory asset tree keyed by absolute path
type MockAssetRepository struct {
	mu    sync.RWMutex
	root  string
	files map[string]bool
}

// NewMockAssetRepository creates an empty tree rooted at root
func NewMockAssetRepository(root string) *MockAssetRepository {
	return &MockAssetRepository{
		root:  root,
		files: make(map[string]bool),
	}
}

// AddFile registers a slash separated path relative to the root
func (m *MockAssetRepository) AddFile(relPath string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	abs := filepath.Join(m.root, filepath.FromSlash(relPath))
	m.files[abs] = true
	return abs
}

// RemoveFile drops a relative path from the tree
func (m *MockAssetRepository) RemoveFile(relPath string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, filepath.Join(m.root, filepath.FromSlash(relPath)))
}

func (m *MockAssetRepository) Root() string {
	return m.root
}

func (m *MockAssetRepository) List(ctx context.Context, exts []string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []string
	for abs := range m.files {
		ext := strings.ToLower(filepath.Ext(abs))
		for _, e := range exts {
			if ext == e {
				out = append(out, abs)
				break
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *MockAssetRepository) Exists(ctx context.Context, relPath string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.files[filepath.Join(m.root, filepath.FromSlash(relPath))]
}

// --- MockSourceRepository ---

// MockSourceRepository keeps source files in memory and counts writes
type MockSourceRepository struct {
	mu       sync.RWMutex
	root     string
	files    map[string]string
	writes   map[string]int
	failRead map[string]error
}

func NewMockSourceRepository(root string) *MockSourceRepository {
	return &MockSourceRepository{
		root:     root,
		files:    make(map[string]string),
		writes:   make(map[string]int),
		failRead: make(map[string]error),
	}
}

// AddFile stores content under a path relative to the root and returns the absolute path
func (m *MockSourceRepository) AddFile(relPath, content string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	abs := filepath.Join(m.root, filepath.FromSlash(relPath))
	m.files[abs] = content
	return abs
}

// SetReadError makes Read fail for the given absolute path
func (m *MockSourceRepository) SetReadError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failRead[path] = err
}

// Content returns the current content of an absolute path
func (m *MockSourceRepository) Content(path string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.files[path]
}

// WriteCount returns how many times a path was written
func (m *MockSourceRepository) WriteCount(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes[path]
}

func (m *MockSourceRepository) Root() string {
	return m.root
}

func (m *MockSourceRepository) List(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.files))
	for p := range m.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}

func (m *MockSourceRepository) Read(ctx context.Context, path string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err, ok := m.failRead[path]; ok {
		return "", err
	}
	content, ok := m.files[path]
	if !ok {
		return "", fmt.Errorf("source file not found: %s", path)
	}
	return content, nil
}

func (m *MockSourceRepository) Write(ctx context.Context, path string, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = content
	m.writes[path]++
	return nil
}

// --- MockInspector ---

// MockInspector returns canned records keyed by absolute path
type MockInspector struct {
	mu           sync.Mutex
	records      map[string]domain.AssetRecord
	errs         map[string]error
	transparent  map[string]bool
	transparency []string
}

func NewMockInspector() *MockInspector {
	return &MockInspector{
		records:     make(map[string]domain.AssetRecord),
		errs:        make(map[string]error),
		transparent: make(map[string]bool),
	}
}

func (m *MockInspector) SetRecord(rec domain.AssetRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.AbsPath] = rec
}

func (m *MockInspector) SetError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[path] = err
}

func (m *MockInspector) SetTransparent(path string, transparent bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transparent[path] = transparent
}

// TransparencyCalls returns the paths that were fully decoded for transparency
func (m *MockInspector) TransparencyCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]string, len(m.transparency))
	copy(calls, m.transparency)
	return calls
}

func (m *MockInspector) Inspect(ctx context.Context, path string) (domain.AssetRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.errs[path]; ok {
		return domain.AssetRecord{}, err
	}
	rec, ok := m.records[path]
	if !ok {
		return domain.AssetRecord{}, &domain.DecodeError{Path: path, Err: fmt.Errorf("no canned record")}
	}
	return rec, nil
}

func (m *MockInspector) Transparency(ctx context.Context, path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transparency = append(m.transparency, path)
	return m.transparent[path], nil
}

// --- MockTranscoder ---

// MockTranscoder records calls and converts by swapping the extension
type MockTranscoder struct {
	mu        sync.Mutex
	calls     []domain.OptimizationDecision
	paths     []string
	failPaths map[string]error
}

func NewMockTranscoder() *MockTranscoder {
	return &MockTranscoder{failPaths: make(map[string]error)}
}

func (m *MockTranscoder) SetShouldFail(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPaths[path] = err
}

func (m *MockTranscoder) GetCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]string, len(m.paths))
	copy(calls, m.paths)
	return calls
}

func (m *MockTranscoder) Transcode(ctx context.Context, rec domain.AssetRecord, decision domain.OptimizationDecision) (domain.TranscodeResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, decision)
	m.paths = append(m.paths, rec.AbsPath)

	if err, ok := m.failPaths[rec.AbsPath]; ok {
		return domain.TranscodeResult{}, err
	}

	res := domain.TranscodeResult{
		OutputPath:    rec.AbsPath,
		OutputRelPath: rec.RelPath,
		Width:         rec.Width,
		Height:        rec.Height,
		BytesWritten:  rec.Size / 2,
	}
	if decision.NeedsConversion {
		res.OutputRelPath = domain.WithFormat(rec.RelPath, decision.TargetFormat)
		res.OutputPath = domain.WithFormat(rec.AbsPath, decision.TargetFormat)
		res.Removed = true
	}
	return res, nil
}

// --- MockAdjuster ---

type MockAdjuster struct {
	mu        sync.Mutex
	calls     map[string]string
	failPaths map[string]error
}

func NewMockAdjuster() *MockAdjuster {
	return &MockAdjuster{
		calls:     make(map[string]string),
		failPaths: make(map[string]error),
	}
}

func (m *MockAdjuster) SetShouldFail(src string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPaths[src] = err
}

// Destination returns where src was written, or "" when it was not processed
func (m *MockAdjuster) Destination(src string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[src]
}

func (m *MockAdjuster) Adjust(ctx context.Context, src, dst string, adj domain.Adjustment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failPaths[src]; ok {
		return err
	}
	m.calls[src] = dst
	return nil
}

// --- MockReporter ---

// MockReporter captures everything a service reports
type MockReporter struct {
	mu        sync.Mutex
	Infos     []string
	Successes []string
	Warnings  []string
	Failures  map[string]error
}

func NewMockReporter() *MockReporter {
	return &MockReporter{Failures: make(map[string]error)}
}

func (m *MockReporter) Info(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Infos = append(m.Infos, msg)
}

func (m *MockReporter) Success(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Successes = append(m.Successes, msg)
}

func (m *MockReporter) Warn(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Warnings = append(m.Warnings, msg)
}

func (m *MockReporter) Fail(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Failures[path] = err
}
