package ui

import (
	"fmt"
	"strings"
)

// FormatBytes renders a byte count with a binary unit ("1.50 MB")
func FormatBytes(n int64) string {
	if n < 0 {
		return "-" + FormatBytes(-n)
	}
	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(n)
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.2f %s", size, units[i])
}

// FormatPercent renders part/total as a percentage, 0 when total is 0
func FormatPercent(part, total int64) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)*100/float64(total))
}

// Bar renders a proportional bar of at most width cells
func Bar(value, total int64, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	n := int(value * int64(width) / total)
	if n == 0 && value > 0 {
		n = 1
	}
	if n > width {
		n = width
	}
	return StyleAccent.Render(strings.Repeat("█", n))
}
