package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	if cfg.PublicDir != "public" {
		t.Errorf("expected default PublicDir='public', got %q", cfg.PublicDir)
	}

	if cfg.SrcDir != "src" {
		t.Errorf("expected default SrcDir='src', got %q", cfg.SrcDir)
	}

	if cfg.MaxDimension != 2500 {
		t.Errorf("expected default MaxDimension=2500, got %d", cfg.MaxDimension)
	}

	if cfg.MaxSizeKB != 800 {
		t.Errorf("expected default MaxSizeKB=800, got %d", cfg.MaxSizeKB)
	}

	if cfg.JPEGQuality != 85 {
		t.Errorf("expected default JPEGQuality=85, got %d", cfg.JPEGQuality)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	// Loading a non-existent file should return default config
	cfg, err := Load("/nonexistent/path/.px.yaml")

	if err != nil {
		t.Fatalf("unexpected error loading non-existent file: %v", err)
	}

	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	if cfg.PublicDir != "public" {
		t.Errorf("expected default PublicDir='public', got %q", cfg.PublicDir)
	}
}

func TestSave_And_Load(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, FileName)

	cfg := DefaultConfig()
	cfg.PublicDir = "static"
	cfg.MaxDimension = 1920
	cfg.Exclude = []string{"**/drafts/**"}
	cfg.Adjust.Brightness = 1.3

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.PublicDir != "static" {
		t.Errorf("PublicDir: expected %q, got %q", "static", loaded.PublicDir)
	}

	if loaded.MaxDimension != 1920 {
		t.Errorf("MaxDimension: expected 1920, got %d", loaded.MaxDimension)
	}

	if len(loaded.Exclude) != 1 || loaded.Exclude[0] != "**/drafts/**" {
		t.Errorf("Exclude: unexpected %v", loaded.Exclude)
	}

	if loaded.Adjust.Brightness != 1.3 {
		t.Errorf("Adjust.Brightness: expected 1.3, got %v", loaded.Adjust.Brightness)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, FileName)

	// Partial config: only the public dir and a zeroed ceiling
	yamlContent := `public_dir: assets
max_dimension: 0
adjust:
  brightness: 1.2
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to create test config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.PublicDir != "assets" {
		t.Errorf("expected PublicDir='assets', got %q", cfg.PublicDir)
	}

	if cfg.MaxDimension != 2500 {
		t.Errorf("expected default MaxDimension=2500 for zero value, got %d", cfg.MaxDimension)
	}

	if cfg.Adjust.Brightness != 1.2 {
		t.Errorf("expected Adjust.Brightness=1.2, got %v", cfg.Adjust.Brightness)
	}

	if cfg.Adjust.Contrast != 1.10 {
		t.Errorf("expected default Adjust.Contrast=1.10, got %v", cfg.Adjust.Contrast)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, FileName)

	yamlContent := `public_dir: public
exclude: [invalid yaml structure
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to create test config file: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Fatal("expected error loading invalid YAML, got nil")
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"quality too high", "jpeg_quality: 150\n"},
		{"webp quality too high", "webp_quality: 101\n"},
		{"bad exclude glob", "exclude: [\"[\"]\n"},
		{"unknown theme", "color_theme: neon\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), FileName)
			if err := os.WriteFile(configPath, []byte(tt.yaml), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			if _, err := Load(configPath); err == nil {
				t.Errorf("expected validation error for %s", tt.name)
			}
		})
	}
}

func TestPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSizeKB = 100
	cfg.ReportMaxPNGKB = 50

	policy := cfg.Policy()

	if policy.MaxSizeBytes != 100*1024 {
		t.Errorf("expected MaxSizeBytes=%d, got %d", 100*1024, policy.MaxSizeBytes)
	}

	if policy.ReportMaxPNGBytes != 50*1024 {
		t.Errorf("expected ReportMaxPNGBytes=%d, got %d", 50*1024, policy.ReportMaxPNGBytes)
	}

	if policy.MaxDimension != cfg.MaxDimension {
		t.Errorf("expected MaxDimension=%d, got %d", cfg.MaxDimension, policy.MaxDimension)
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nested", "dir", FileName)

	cfg := DefaultConfig()
	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoad_ScanHidden(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(configPath, []byte("scan_hidden: true\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if !cfg.ScanHidden {
		t.Error("expected ScanHidden to be loaded")
	}
	if DefaultConfig().ScanHidden {
		t.Error("hidden directories should be skipped by default")
	}
}
