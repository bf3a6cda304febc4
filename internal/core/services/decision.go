package services

import "github.com/kamal-hamza/px-cli/internal/core/domain"

// Decide classifies an asset against the policy. It is pure and cheap: a
// record within every ceiling yields a no-op decision.
//
// rec.HasTransparency is only consulted for PNGs over the size ceiling;
// callers fill it when NeedsTransparencyCheck reports true.
func Decide(rec domain.AssetRecord, policy domain.Policy) domain.OptimizationDecision {
	oversized := rec.Size > policy.MaxSizeBytes

	d := domain.OptimizationDecision{
		NeedsResize:     exceedsDimension(rec, policy),
		NeedsRecompress: oversized,
		NeedsConversion: rec.Format == domain.FormatPNG && oversized && !rec.HasTransparency,
		TargetFormat:    rec.Format,
	}
	if d.NeedsConversion {
		d.TargetFormat = domain.FormatJPEG
	}
	return d
}

// NeedsTransparencyCheck reports whether Decide will look at HasTransparency,
// so the full pixel decode can be skipped for everything else
func NeedsTransparencyCheck(rec domain.AssetRecord, policy domain.Policy) bool {
	return rec.Format == domain.FormatPNG && rec.Size > policy.MaxSizeBytes
}

// Classify is the advisory analysis. It never feeds the transcoder.
func Classify(rec domain.AssetRecord, policy domain.Policy) domain.AnalysisFinding {
	return domain.AnalysisFinding{
		Record:          rec,
		LargeFile:       rec.Size > policy.ReportMaxSizeBytes,
		LargeDimensions: exceedsDimension(rec, policy),
		LargePNG:        rec.Format == domain.FormatPNG && rec.Size > policy.ReportMaxPNGBytes,
	}
}

func exceedsDimension(rec domain.AssetRecord, policy domain.Policy) bool {
	return rec.Width > policy.MaxDimension || rec.Height > policy.MaxDimension
}
