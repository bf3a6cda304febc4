package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/px-cli/internal/core/domain"
)

// FileName is the project-local configuration file
const FileName = ".px.yaml"

type Config struct {
	PublicDir string `yaml:"public_dir"`
	SrcDir    string `yaml:"src_dir"`

	// Optimizer policy
	MaxDimension int `yaml:"max_dimension"`
	MaxSizeKB    int `yaml:"max_size_kb"`
	JPEGQuality  int `yaml:"jpeg_quality"`
	WebPQuality  int `yaml:"webp_quality"`

	// Analysis thresholds (advisory only)
	ReportMaxSizeKB int `yaml:"report_max_size_kb"`
	ReportMaxPNGKB  int `yaml:"report_max_png_kb"`
	TopLargest      int `yaml:"top_largest"`

	// Walking
	Exclude    []string `yaml:"exclude"`
	ScanHidden bool     `yaml:"scan_hidden"`

	// Audit / gallery
	AuditPrefixes []string `yaml:"audit_prefixes"`
	GalleryRoot   string   `yaml:"gallery_root"`

	// Lighting adjustment
	Adjust AdjustConfig `yaml:"adjust"`

	// Watch
	WatchDebounceMS int `yaml:"watch_debounce_ms"`

	// UI
	ColorTheme string `yaml:"color_theme"`
	Editor     string `yaml:"editor"`
}

// AdjustConfig holds multipliers for the adjust command (1.0 = unchanged)
type AdjustConfig struct {
	Brightness float64 `yaml:"brightness"`
	Contrast   float64 `yaml:"contrast"`
	Saturation float64 `yaml:"saturation"`
	Quality    int     `yaml:"quality"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	policy := domain.DefaultPolicy()
	adj := domain.DefaultAdjustment()
	return &Config{
		PublicDir:       "public",
		SrcDir:          "src",
		MaxDimension:    policy.MaxDimension,
		MaxSizeKB:       int(policy.MaxSizeBytes / 1024),
		JPEGQuality:     policy.JPEGQuality,
		WebPQuality:     policy.WebPQuality,
		ReportMaxSizeKB: int(policy.ReportMaxSizeBytes / 1024),
		ReportMaxPNGKB:  int(policy.ReportMaxPNGBytes / 1024),
		TopLargest:      5,
		Exclude:         []string{},
		AuditPrefixes:   []string{},
		GalleryRoot:     "projects",
		Adjust: AdjustConfig{
			Brightness: adj.Brightness,
			Contrast:   adj.Contrast,
			Saturation: adj.Saturation,
			Quality:    adj.Quality,
		},
		WatchDebounceMS: 500,
		ColorTheme:      "auto",
		Editor:          "",
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config (not an error)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// applyDefaults restores defaults for zeroed essential values
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.PublicDir == "" {
		c.PublicDir = def.PublicDir
	}
	if c.SrcDir == "" {
		c.SrcDir = def.SrcDir
	}
	if c.MaxDimension <= 0 {
		c.MaxDimension = def.MaxDimension
	}
	if c.MaxSizeKB <= 0 {
		c.MaxSizeKB = def.MaxSizeKB
	}
	if c.JPEGQuality <= 0 {
		c.JPEGQuality = def.JPEGQuality
	}
	if c.WebPQuality <= 0 {
		c.WebPQuality = def.WebPQuality
	}
	if c.ReportMaxSizeKB <= 0 {
		c.ReportMaxSizeKB = def.ReportMaxSizeKB
	}
	if c.ReportMaxPNGKB <= 0 {
		c.ReportMaxPNGKB = def.ReportMaxPNGKB
	}
	if c.TopLargest <= 0 {
		c.TopLargest = def.TopLargest
	}
	if c.GalleryRoot == "" {
		c.GalleryRoot = def.GalleryRoot
	}
	if c.Adjust.Brightness <= 0 {
		c.Adjust.Brightness = def.Adjust.Brightness
	}
	if c.Adjust.Contrast <= 0 {
		c.Adjust.Contrast = def.Adjust.Contrast
	}
	if c.Adjust.Saturation <= 0 {
		c.Adjust.Saturation = def.Adjust.Saturation
	}
	if c.Adjust.Quality <= 0 {
		c.Adjust.Quality = def.Adjust.Quality
	}
	if c.WatchDebounceMS <= 0 {
		c.WatchDebounceMS = def.WatchDebounceMS
	}
	if c.ColorTheme == "" {
		c.ColorTheme = def.ColorTheme
	}
	if c.Exclude == nil {
		c.Exclude = []string{}
	}
	if c.AuditPrefixes == nil {
		c.AuditPrefixes = []string{}
	}
}

// Validate rejects values no command can work with
func (c *Config) Validate() error {
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be between 1 and 100, got %d", c.JPEGQuality)
	}
	if c.WebPQuality < 1 || c.WebPQuality > 100 {
		return fmt.Errorf("webp_quality must be between 1 and 100, got %d", c.WebPQuality)
	}
	if c.Adjust.Quality < 1 || c.Adjust.Quality > 100 {
		return fmt.Errorf("adjust.quality must be between 1 and 100, got %d", c.Adjust.Quality)
	}
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	if !isValidTheme(c.ColorTheme) {
		return fmt.Errorf("color_theme must be auto, dark or light, got %q", c.ColorTheme)
	}
	return nil
}

// Policy projects the optimizer settings into a domain policy
func (c *Config) Policy() domain.Policy {
	return domain.Policy{
		MaxDimension:       c.MaxDimension,
		MaxSizeBytes:       int64(c.MaxSizeKB) * 1024,
		ReportMaxSizeBytes: int64(c.ReportMaxSizeKB) * 1024,
		ReportMaxPNGBytes:  int64(c.ReportMaxPNGKB) * 1024,
		JPEGQuality:        c.JPEGQuality,
		WebPQuality:        c.WebPQuality,
	}
}

// Adjustment projects the adjust section into a domain adjustment
func (c *Config) Adjustment() domain.Adjustment {
	return domain.Adjustment{
		Brightness: c.Adjust.Brightness,
		Contrast:   c.Adjust.Contrast,
		Saturation: c.Adjust.Saturation,
		Quality:    c.Adjust.Quality,
	}
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// isValidTheme checks if the color theme is one ui.SetTheme understands
func isValidTheme(theme string) bool {
	validThemes := []string{"auto", "dark", "light"}
	for _, valid := range validThemes {
		if theme == valid {
			return true
		}
	}
	return false
}
