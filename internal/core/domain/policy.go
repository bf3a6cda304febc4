package domain

// Policy holds the thresholds and encoder settings used by the decision
// engine and the transcoder. It is passed explicitly so callers and tests
// can vary it per run.
type Policy struct {
	// MaxDimension is the longest-edge ceiling in pixels
	MaxDimension int
	// MaxSizeBytes triggers recompression (and PNG conversion) when exceeded
	MaxSizeBytes int64

	// Advisory thresholds used only by the analysis report
	ReportMaxSizeBytes int64
	ReportMaxPNGBytes  int64

	JPEGQuality int
	WebPQuality int
}

// DefaultPolicy returns the stock thresholds
func DefaultPolicy() Policy {
	return Policy{
		MaxDimension:       2500,
		MaxSizeBytes:       800 * 1024,
		ReportMaxSizeBytes: 1024 * 1024,
		ReportMaxPNGBytes:  500 * 1024,
		JPEGQuality:        85,
		WebPQuality:        85,
	}
}

// OptimizationDecision is what the decision engine concludes for one asset
type OptimizationDecision struct {
	NeedsResize     bool
	NeedsRecompress bool
	NeedsConversion bool
	TargetFormat    Format
}

// IsNoop reports whether the asset can be left untouched
func (d OptimizationDecision) IsNoop() bool {
	return !d.NeedsResize && !d.NeedsRecompress && !d.NeedsConversion
}

// Adjustment holds the multipliers for the lighting adjuster (1.0 = unchanged)
type Adjustment struct {
	Brightness float64
	Contrast   float64
	Saturation float64
	Quality    int
}

// DefaultAdjustment mirrors the values the pools gallery was graded with
func DefaultAdjustment() Adjustment {
	return Adjustment{
		Brightness: 1.15,
		Contrast:   1.10,
		Saturation: 1.05,
		Quality:    95,
	}
}
