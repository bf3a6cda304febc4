package services

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/kamal-hamza/px-cli/internal/core/domain"
	"github.com/kamal-hamza/px-cli/internal/core/ports"
)

// AuditService finds images that no source file references
type AuditService struct {
	assets   ports.AssetRepository
	sources  ports.SourceRepository
	prefixes []string
	reporter ports.Reporter
}

// NewAuditService creates a new audit service. With prefixes set
// ("/projects"), only images under those web paths are audited.
func NewAuditService(assets ports.AssetRepository, sources ports.SourceRepository, prefixes []string, reporter ports.Reporter) *AuditService {
	return &AuditService{
		assets:   assets,
		sources:  sources,
		prefixes: prefixes,
		reporter: reporter,
	}
}

// Execute collects every referenced web path, then walks the asset root
func (s *AuditService) Execute(ctx context.Context) (*domain.AuditReport, error) {
	// 1. Referenced paths
	files, err := s.sources.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list source files: %w", err)
	}

	used := make(map[string]bool)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content, err := s.sources.Read(ctx, file)
		if err != nil {
			s.reporter.Fail(file, err)
			continue
		}
		for _, m := range ScanReferences(content) {
			used[m.Path] = true
		}
	}

	report := &domain.AuditReport{
		Referenced: len(used),
		Unused:     make(map[string][]string),
	}

	// 2. Broken references, for completeness
	for webPath := range used {
		if !s.assets.Exists(ctx, webPath) {
			report.Broken = append(report.Broken, webPath)
		}
	}
	sort.Strings(report.Broken)

	// 3. Unused images
	images, err := s.assets.List(ctx, domain.ImageExtensions)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	for _, abs := range images {
		rel, err := domain.RelativeTo(s.assets.Root(), abs)
		if err != nil {
			continue
		}
		webPath := "/" + rel
		if !s.inScope(webPath) || used[webPath] {
			continue
		}
		folder := path.Dir(webPath)
		report.Unused[folder] = append(report.Unused[folder], path.Base(webPath))
	}

	return report, nil
}

func (s *AuditService) inScope(webPath string) bool {
	if len(s.prefixes) == 0 {
		return true
	}
	for _, p := range s.prefixes {
		p = "/" + strings.Trim(p, "/")
		if webPath == p || strings.HasPrefix(webPath, p+"/") {
			return true
		}
	}
	return false
}
