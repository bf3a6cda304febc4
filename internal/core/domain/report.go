package domain

import "sort"

// TranscodeResult describes what the transcoder wrote
type TranscodeResult struct {
	OutputPath    string
	OutputRelPath string
	Width         int
	Height        int
	BytesWritten  int64
	// Removed is set when the original file was deleted after a format conversion
	Removed bool
}

// RewriteResult is produced once per converted asset
type RewriteResult struct {
	OldRelPath   string
	NewRelPath   string
	FilesChanged int
	// Errors holds per-file failures; they never stop the scan
	Errors []error
}

// OptimizeSummary aggregates a full optimize run
type OptimizeSummary struct {
	Scanned           int
	Optimized         int
	Converted         int
	Skipped           int
	Failed            int
	ReferencesUpdated int
	BytesBefore       int64
	BytesAfter        int64
}

// Saved returns the byte delta of everything that was rewritten
func (s OptimizeSummary) Saved() int64 {
	return s.BytesBefore - s.BytesAfter
}

// AnalysisFinding is the advisory classification of one asset
type AnalysisFinding struct {
	Record          AssetRecord
	LargeFile       bool
	LargeDimensions bool
	LargePNG        bool
}

// HasIssues reports whether any advisory flag is set
func (f AnalysisFinding) HasIssues() bool {
	return f.LargeFile || f.LargeDimensions || f.LargePNG
}

// AnalyzeReport aggregates the advisory scan
type AnalyzeReport struct {
	Total    int
	Clean    int
	Errors   int
	Findings []AnalysisFinding // only assets with issues, in walk order
}

// Largest returns up to n findings flagged LargeFile, biggest first
func (r AnalyzeReport) Largest(n int) []AnalysisFinding {
	var large []AnalysisFinding
	for _, f := range r.Findings {
		if f.LargeFile {
			large = append(large, f)
		}
	}
	sort.SliceStable(large, func(i, j int) bool {
		return large[i].Record.Size > large[j].Record.Size
	})
	if n >= 0 && len(large) > n {
		large = large[:n]
	}
	return large
}

// Reference is one quoted image path found in a source file
type Reference struct {
	ImagePath  string // as written, e.g. "/images/a.png"
	SourceFile string // relative to the project root
	Line       int
	FullPath   string // resolved location under the asset root
}

// VerifyReport accumulates every broken reference of a verification pass
type VerifyReport struct {
	Scanned int
	Found   map[string]struct{} // unique image paths that resolved
	Missing []Reference
}

// FoundCount returns the number of unique valid image paths
func (r VerifyReport) FoundCount() int {
	return len(r.Found)
}

// AuditReport lists images no source file references
type AuditReport struct {
	Referenced int
	Broken     []string
	Unused     map[string][]string // folder web path -> file names
}

// UnusedCount returns the total number of unused images
func (r AuditReport) UnusedCount() int {
	n := 0
	for _, files := range r.Unused {
		n += len(files)
	}
	return n
}

// Folders returns the folders with unused images, sorted
func (r AuditReport) Folders() []string {
	folders := make([]string, 0, len(r.Unused))
	for f := range r.Unused {
		folders = append(folders, f)
	}
	sort.Strings(folders)
	return folders
}

// AdjustSummary aggregates a lighting adjustment run
type AdjustSummary struct {
	Processed int
	Failed    int
}
