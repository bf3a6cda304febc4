package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kamal-hamza/px-cli/internal/core/domain"
	"github.com/kamal-hamza/px-cli/internal/core/ports"
)

// OptimizeService runs the inspect, decide, transcode, relink pipeline
type OptimizeService struct {
	assets     ports.AssetRepository
	sources    ports.SourceRepository
	inspector  ports.Inspector
	transcoder ports.Transcoder
	rewriter   *RewriteService
	policy     domain.Policy
	reporter   ports.Reporter
}

// OptimizeOptions tunes a single run
type OptimizeOptions struct {
	// DryRun reports decisions without writing anything
	DryRun bool
}

// NewOptimizeService creates a new optimize service
func NewOptimizeService(
	assets ports.AssetRepository,
	sources ports.SourceRepository,
	inspector ports.Inspector,
	transcoder ports.Transcoder,
	policy domain.Policy,
	reporter ports.Reporter,
) *OptimizeService {
	return &OptimizeService{
		assets:     assets,
		sources:    sources,
		inspector:  inspector,
		transcoder: transcoder,
		rewriter:   NewRewriteService(sources),
		policy:     policy,
		reporter:   reporter,
	}
}

// Execute walks the asset root once, sequentially. A failure on one file is
// reported and the walk moves on; only a missing tree aborts the run.
func (s *OptimizeService) Execute(ctx context.Context, opts OptimizeOptions) (domain.OptimizeSummary, error) {
	var summary domain.OptimizeSummary

	// 1. Collect assets and the source files that may reference them
	files, err := s.assets.List(ctx, domain.OptimizableExtensions)
	if err != nil {
		return summary, fmt.Errorf("failed to list assets: %w", err)
	}

	srcFiles, err := s.sources.List(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to list source files: %w", err)
	}

	// 2. One file at a time
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Scanned++
		s.process(ctx, path, srcFiles, opts, &summary)
	}

	return summary, nil
}

func (s *OptimizeService) process(ctx context.Context, path string, srcFiles []string, opts OptimizeOptions, summary *domain.OptimizeSummary) {
	rec, err := s.inspector.Inspect(ctx, path)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedFormat) {
			summary.Skipped++
			s.reporter.Warn(fmt.Sprintf("Skipping %s: %v", path, err))
			return
		}
		summary.Failed++
		s.reporter.Fail(path, err)
		return
	}

	if NeedsTransparencyCheck(rec, s.policy) {
		transparent, err := s.inspector.Transparency(ctx, path)
		if err != nil {
			summary.Failed++
			s.reporter.Fail(path, err)
			return
		}
		rec.HasTransparency = transparent
	}

	decision := Decide(rec, s.policy)
	if decision.IsNoop() {
		summary.Skipped++
		return
	}

	s.reporter.Info(fmt.Sprintf("Optimizing: %s (%s, %.2f MB)", rec.RelPath, rec.Dimensions(), float64(rec.Size)/1024/1024))

	if opts.DryRun {
		s.reporter.Info("  -> would " + describe(decision))
		summary.Optimized++
		if decision.NeedsConversion {
			summary.Converted++
		}
		return
	}

	res, err := s.transcoder.Transcode(ctx, rec, decision)
	if err != nil {
		summary.Failed++
		s.reporter.Fail(path, err)
		return
	}

	summary.Optimized++
	summary.BytesBefore += rec.Size
	summary.BytesAfter += res.BytesWritten

	if res.OutputRelPath == rec.RelPath {
		s.reporter.Success(fmt.Sprintf("%s optimized in place", rec.RelPath))
		return
	}

	// 3. The path changed: relink every literal reference
	summary.Converted++
	rr := s.rewriter.RewriteFiles(ctx, srcFiles, rec.RelPath, res.OutputRelPath)
	summary.ReferencesUpdated += rr.FilesChanged
	for _, rerr := range rr.Errors {
		s.reporter.Fail(rec.RelPath, fmt.Errorf("failed to update reference: %w", rerr))
	}
	s.reporter.Success(fmt.Sprintf("%s -> %s, updated %d references", rec.RelPath, res.OutputRelPath, rr.FilesChanged))
}

// describe renders a decision for dry runs
func describe(d domain.OptimizationDecision) string {
	var action string
	switch {
	case d.NeedsConversion:
		action = "convert to " + string(d.TargetFormat)
	case d.NeedsRecompress:
		action = "recompress"
	default:
		action = "re-encode"
	}
	if d.NeedsResize {
		action = "resize and " + action
	}
	return action
}
