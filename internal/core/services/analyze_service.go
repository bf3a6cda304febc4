package services

import (
	"context"
	"fmt"

	"github.com/kamal-hamza/px-cli/internal/core/domain"
	"github.com/kamal-hamza/px-cli/internal/core/ports"
)

// AnalyzeService produces the advisory size and dimension report
type AnalyzeService struct {
	assets    ports.AssetRepository
	inspector ports.Inspector
	policy    domain.Policy
	reporter  ports.Reporter
}

// NewAnalyzeService creates a new analyze service
func NewAnalyzeService(assets ports.AssetRepository, inspector ports.Inspector, policy domain.Policy, reporter ports.Reporter) *AnalyzeService {
	return &AnalyzeService{
		assets:    assets,
		inspector: inspector,
		policy:    policy,
		reporter:  reporter,
	}
}

// Execute inspects every optimizable asset and classifies it. Nothing is written.
func (s *AnalyzeService) Execute(ctx context.Context) (*domain.AnalyzeReport, error) {
	files, err := s.assets.List(ctx, domain.OptimizableExtensions)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	report := &domain.AnalyzeReport{}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Total++

		rec, err := s.inspector.Inspect(ctx, path)
		if err != nil {
			report.Errors++
			s.reporter.Fail(path, err)
			continue
		}

		finding := Classify(rec, s.policy)
		if !finding.HasIssues() {
			report.Clean++
			continue
		}
		report.Findings = append(report.Findings, finding)
	}

	return report, nil
}
