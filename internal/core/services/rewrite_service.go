package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kamal-hamza/px-cli/internal/core/domain"
	"github.com/kamal-hamza/px-cli/internal/core/ports"
)

// RewriteService updates quoted asset paths in the source tree after a rename
type RewriteService struct {
	sources ports.SourceRepository
}

// NewRewriteService creates a new rewrite service
func NewRewriteService(sources ports.SourceRepository) *RewriteService {
	return &RewriteService{
		sources: sources,
	}
}

// Rewrite lists the source tree and rewrites every file referencing oldRel
func (s *RewriteService) Rewrite(ctx context.Context, oldRel, newRel string) (domain.RewriteResult, error) {
	files, err := s.sources.List(ctx)
	if err != nil {
		return domain.RewriteResult{OldRelPath: oldRel, NewRelPath: newRel}, fmt.Errorf("failed to list source files: %w", err)
	}
	return s.RewriteFiles(ctx, files, oldRel, newRel), nil
}

// RewriteFiles rewrites references in an already listed set of files.
// Files without a match are not written. Per-file failures are collected
// and the scan continues.
func (s *RewriteService) RewriteFiles(ctx context.Context, files []string, oldRel, newRel string) domain.RewriteResult {
	result := domain.RewriteResult{OldRelPath: oldRel, NewRelPath: newRel}
	if oldRel == newRel {
		return result
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, err)
			return result
		}

		content, err := s.sources.Read(ctx, path)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}

		updated, changed := ReplaceReferences(content, oldRel, newRel)
		if !changed {
			continue
		}

		if err := s.sources.Write(ctx, path, updated); err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		result.FilesChanged++
	}

	return result
}

// ReplaceReferences substitutes "/old" with "/new" and '/old' with '/new',
// each quote style with itself. Only the leading-slash form is recognised;
// a bare "old" literal is left as it is.
func ReplaceReferences(content, oldRel, newRel string) (string, bool) {
	oldWeb := "/" + strings.TrimPrefix(oldRel, "/")
	newWeb := "/" + strings.TrimPrefix(newRel, "/")

	updated := content
	for _, quote := range []string{`"`, `'`} {
		updated = strings.ReplaceAll(updated, quote+oldWeb+quote, quote+newWeb+quote)
	}
	return updated, updated != content
}
