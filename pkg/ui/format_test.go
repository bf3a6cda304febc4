package ui

import (
	"strings"
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name     string
		input    int64
		expected string
	}{
		{"zero", 0, "0 B"},
		{"bytes", 512, "512 B"},
		{"one kilobyte", 1024, "1.00 KB"},
		{"size ceiling", 800 * 1024, "800.00 KB"},
		{"megabytes", 1536 * 1024, "1.50 MB"},
		{"gigabytes", 3 * 1024 * 1024 * 1024, "3.00 GB"},
		{"negative", -2048, "-2.00 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatBytes(tt.input); got != tt.expected {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(1, 4); got != "25.0%" {
		t.Errorf("expected 25.0%%, got %q", got)
	}
	if got := FormatPercent(5, 0); got != "0.0%" {
		t.Errorf("expected 0.0%% for empty total, got %q", got)
	}
}

func TestBar(t *testing.T) {
	if got := Bar(0, 0, 10); got != "" {
		t.Errorf("expected empty bar for zero max, got %q", got)
	}
	if got := Bar(1, 1000, 10); !strings.Contains(got, "█") {
		t.Error("non-zero value should render at least one cell")
	}
	if got := Bar(50, 10, 5); strings.Count(got, "█") != 5 {
		t.Errorf("bar should be clamped to width, got %q", got)
	}
}

func TestTable_Render(t *testing.T) {
	table := NewTable([]TableColumn{
		{Header: "File"},
		{Header: "Size", Align: "right"},
	})
	table.AddRow([]string{"images/hero.png", "1.20 MB"})
	table.AddRow([]string{"a.jpg", "12 B"})

	out := table.Render()
	for _, want := range []string{"File", "Size", "images/hero.png", "12 B"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered table missing %q", want)
		}
	}
	if lines := strings.Count(out, "\n"); lines != 4 {
		t.Errorf("expected header, separator and 2 rows, got %d lines", lines)
	}
}

func TestPadString(t *testing.T) {
	if got := padString("ab", 4, "right"); got != "  ab" {
		t.Errorf("right align: got %q", got)
	}
	if got := padString("ab", 4, "center"); got != " ab " {
		t.Errorf("center align: got %q", got)
	}
	if got := padString("abcdef", 4, "left"); got != "abcdef" {
		t.Errorf("overlong string should be returned as is, got %q", got)
	}
}

func TestTruncateLeft(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"images/pools/a.jpg", 10, "…ols/a.jpg"},
		{"a.jpg", 10, "a.jpg"},
		{"a.jpg", 0, "a.jpg"},
		{"abc", 1, "…"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := TruncateLeft(tt.in, tt.width); got != tt.want {
				t.Errorf("TruncateLeft(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestTable_FooterAndMax(t *testing.T) {
	table := NewTable([]TableColumn{
		{Header: "Image", Max: 10},
		{Header: "Size", Align: "right"},
	})
	table.AddRow([]string{"images/pools/a.jpg", "2.00 MB"})
	table.SetFooter([]string{"1 flagged", "2.00 MB"})

	out := table.Render()
	if !strings.Contains(out, "…ols/a.jpg") {
		t.Errorf("expected truncated path, got:\n%s", out)
	}
	if strings.Contains(out, "images/pools") {
		t.Error("long cell should not be rendered in full")
	}
	if !strings.Contains(out, "1 flagged") {
		t.Error("footer missing")
	}
	// header, separator, row, separator, footer
	if lines := strings.Count(out, "\n"); lines != 5 {
		t.Errorf("expected 5 lines, got %d", lines)
	}
}

func TestFormatSize(t *testing.T) {
	// Colors are stripped without a terminal; the text must survive any style
	for _, n := range []int64{100, 1500, 5000} {
		if got := FormatSize(n, 1024); !strings.Contains(got, FormatBytes(n)) {
			t.Errorf("FormatSize(%d) = %q, want it to contain %q", n, got, FormatBytes(n))
		}
	}
	if got := FormatSize(5000, 0); got != FormatBytes(5000) {
		t.Errorf("zero limit should not style, got %q", got)
	}
}

func TestSetTheme(t *testing.T) {
	defer SetTheme("auto")

	for _, theme := range []string{"dark", "light", "neon"} {
		SetTheme(theme)
		if ColorPrimary == nil || ColorMuted == nil {
			t.Errorf("theme %q left colors unset", theme)
		}
		if !strings.Contains(FormatSuccess("done"), "done") {
			t.Errorf("theme %q broke FormatSuccess", theme)
		}
	}
}
