package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kamal-hamza/px-cli/internal/core/domain"
	"github.com/kamal-hamza/px-cli/internal/core/ports"
)

// AdjustService grades a folder of images into a mirrored destination tree
type AdjustService struct {
	source   ports.AssetRepository
	adjuster ports.Adjuster
	reporter ports.Reporter
}

// NewAdjustService creates a new adjust service over the source folder
func NewAdjustService(source ports.AssetRepository, adjuster ports.Adjuster, reporter ports.Reporter) *AdjustService {
	return &AdjustService{
		source:   source,
		adjuster: adjuster,
		reporter: reporter,
	}
}

// Execute writes an adjusted copy of every raster image under the source
// folder to the same relative path under destDir. Originals are never modified.
func (s *AdjustService) Execute(ctx context.Context, destDir string, adj domain.Adjustment) (domain.AdjustSummary, error) {
	var summary domain.AdjustSummary

	files, err := s.source.List(ctx, domain.OptimizableExtensions)
	if err != nil {
		return summary, fmt.Errorf("failed to list images: %w", err)
	}

	if _, err := os.Stat(destDir); err == nil {
		s.reporter.Warn(fmt.Sprintf("Destination %s already exists; files will be overwritten", destDir))
	}

	for _, src := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		rel, err := domain.RelativeTo(s.source.Root(), src)
		if err != nil {
			summary.Failed++
			s.reporter.Fail(src, err)
			continue
		}
		dst := filepath.Join(destDir, filepath.FromSlash(rel))

		if err := s.adjuster.Adjust(ctx, src, dst, adj); err != nil {
			summary.Failed++
			s.reporter.Fail(src, err)
			continue
		}

		summary.Processed++
		s.reporter.Success("Processed: " + rel)
	}

	return summary, nil
}
