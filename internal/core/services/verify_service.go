package services

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kamal-hamza/px-cli/internal/core/domain"
	"github.com/kamal-hamza/px-cli/internal/core/ports"
)

// imageRefPattern matches a quoted absolute web path ending in an image extension
var imageRefPattern = regexp.MustCompile(`["'](/[a-zA-Z0-9_\-./\s]+\.(?:jpg|jpeg|png|webp|gif|svg|JPG|JPEG|PNG|WEBP|GIF|SVG))["']`)

// RefMatch is one image path found in a text
type RefMatch struct {
	Path string
	Line int
}

// ScanReferences returns every quoted image path in content, in order of
// appearance. Protocol-relative URLs ("//cdn/...") are ignored.
func ScanReferences(content string) []RefMatch {
	var matches []RefMatch
	line, offset := 1, 0
	for _, loc := range imageRefPattern.FindAllStringSubmatchIndex(content, -1) {
		path := content[loc[2]:loc[3]]
		if strings.HasPrefix(path, "//") {
			continue
		}
		line += strings.Count(content[offset:loc[2]], "\n")
		offset = loc[2]
		matches = append(matches, RefMatch{Path: path, Line: line})
	}
	return matches
}

// VerifyService checks that every image referenced in the source tree exists
type VerifyService struct {
	assets      ports.AssetRepository
	sources     ports.SourceRepository
	projectRoot string
	reporter    ports.Reporter
}

// NewVerifyService creates a new verify service
func NewVerifyService(assets ports.AssetRepository, sources ports.SourceRepository, projectRoot string, reporter ports.Reporter) *VerifyService {
	return &VerifyService{
		assets:      assets,
		sources:     sources,
		projectRoot: projectRoot,
		reporter:    reporter,
	}
}

// Execute scans every source file and accumulates all missing references.
// Unreadable files are reported and skipped; nothing fails fast.
func (s *VerifyService) Execute(ctx context.Context) (*domain.VerifyReport, error) {
	files, err := s.sources.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list source files: %w", err)
	}

	report := &domain.VerifyReport{Found: make(map[string]struct{})}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		report.Scanned++

		content, err := s.sources.Read(ctx, path)
		if err != nil {
			s.reporter.Fail(path, err)
			continue
		}

		for _, m := range ScanReferences(content) {
			rel := strings.TrimLeft(m.Path, "/")
			if s.assets.Exists(ctx, rel) {
				report.Found[m.Path] = struct{}{}
				continue
			}
			report.Missing = append(report.Missing, domain.Reference{
				ImagePath:  m.Path,
				SourceFile: s.relToProject(path),
				Line:       m.Line,
				FullPath:   filepath.Join(s.assets.Root(), filepath.FromSlash(rel)),
			})
		}
	}

	return report, nil
}

func (s *VerifyService) relToProject(path string) string {
	rel, err := filepath.Rel(s.projectRoot, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
