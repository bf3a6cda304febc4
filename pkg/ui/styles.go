package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// palette maps each role to a terminal color
type palette struct {
	success, err, primary, info, muted, warning, accent, text lipgloss.TerminalColor
}

var palettes = map[string]palette{
	// Auto lets lipgloss pick per background
	"auto": {
		success: lipgloss.AdaptiveColor{Light: "2", Dark: "10"},
		err:     lipgloss.AdaptiveColor{Light: "1", Dark: "9"},
		primary: lipgloss.AdaptiveColor{Light: "5", Dark: "13"},
		info:    lipgloss.AdaptiveColor{Light: "6", Dark: "14"},
		muted:   lipgloss.AdaptiveColor{Light: "8", Dark: "8"},
		warning: lipgloss.AdaptiveColor{Light: "3", Dark: "11"},
		accent:  lipgloss.AdaptiveColor{Light: "4", Dark: "12"},
		text:    lipgloss.AdaptiveColor{Light: "0", Dark: "7"},
	},
	"dark": {
		success: lipgloss.Color("10"),
		err:     lipgloss.Color("9"),
		primary: lipgloss.Color("13"),
		info:    lipgloss.Color("14"),
		muted:   lipgloss.Color("8"),
		warning: lipgloss.Color("11"),
		accent:  lipgloss.Color("12"),
		text:    lipgloss.Color("7"),
	},
	"light": {
		success: lipgloss.Color("2"),
		err:     lipgloss.Color("1"),
		primary: lipgloss.Color("5"),
		info:    lipgloss.Color("6"),
		muted:   lipgloss.Color("8"),
		warning: lipgloss.Color("3"),
		accent:  lipgloss.Color("4"),
		text:    lipgloss.Color("0"),
	},
}

var (
	// Active colors, set by SetTheme
	ColorSuccess lipgloss.TerminalColor
	ColorError   lipgloss.TerminalColor
	ColorPrimary lipgloss.TerminalColor
	ColorInfo    lipgloss.TerminalColor
	ColorMuted   lipgloss.TerminalColor
	ColorWarning lipgloss.TerminalColor
	ColorAccent  lipgloss.TerminalColor
	ColorDefault lipgloss.TerminalColor

	// Base styles
	StyleSuccess lipgloss.Style
	StyleError   lipgloss.Style
	StylePrimary lipgloss.Style
	StyleInfo    lipgloss.Style
	StyleMuted   lipgloss.Style
	StyleWarning lipgloss.Style
	StyleAccent  lipgloss.Style

	// Component styles
	StyleTitle       lipgloss.Style
	StyleHeader      lipgloss.Style
	StyleSubtle      lipgloss.Style
	StyleBold        lipgloss.Style
	StyleTableHeader lipgloss.Style
	StyleTableRow    lipgloss.Style
	StyleTableRowAlt lipgloss.Style
	StyleTableBorder lipgloss.Style
	StyleTableFooter lipgloss.Style

	// Status icons
	IconSuccess = "✔"
	IconError   = "✘"
	IconRocket  = "🚀"
	IconInfo    = "ℹ"
	IconWarning = "⚠"
	IconImage   = "🖼"
	IconFolder  = "📁"
	IconLink    = "🔗"
	IconChart   = "📊"
)

func init() {
	SetTheme("auto")
}

// SetTheme applies "auto", "dark" or "light". Unknown names fall back to auto.
func SetTheme(theme string) {
	p, ok := palettes[theme]
	if !ok {
		p = palettes["auto"]
	}

	ColorSuccess = p.success
	ColorError = p.err
	ColorPrimary = p.primary
	ColorInfo = p.info
	ColorMuted = p.muted
	ColorWarning = p.warning
	ColorAccent = p.accent
	ColorDefault = p.text

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleError = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleInfo = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleAccent = lipgloss.NewStyle().Foreground(ColorAccent)

	StyleTitle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Underline(true)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleSubtle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	StyleBold = lipgloss.NewStyle().Bold(true)

	StyleTableHeader = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleTableRow = lipgloss.NewStyle().Foreground(ColorDefault)
	StyleTableRowAlt = lipgloss.NewStyle().Foreground(ColorDefault).Faint(true)
	StyleTableBorder = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleTableFooter = lipgloss.NewStyle().Foreground(ColorDefault).Bold(true)
}

// FormatSuccess returns a success message with icon
func FormatSuccess(msg string) string {
	return StyleSuccess.Render(IconSuccess + " " + msg)
}

// FormatError returns an error message with icon
func FormatError(msg string) string {
	return StyleError.Render(IconError + " " + msg)
}

// FormatInfo returns an info message with icon
func FormatInfo(msg string) string {
	return StyleInfo.Render(IconInfo + " " + msg)
}

// FormatWarning returns a warning message with icon
func FormatWarning(msg string) string {
	return StyleWarning.Render(IconWarning + " " + msg)
}

// FormatRocket starts a long running command
func FormatRocket(msg string) string {
	return StylePrimary.Render(IconRocket + " " + msg)
}

// FormatImage returns an asset line with the image icon
func FormatImage(msg string) string {
	return StyleAccent.Render(IconImage + " " + msg)
}

// FormatFolder returns a folder heading
func FormatFolder(msg string) string {
	return StyleHeader.Render(IconFolder + " " + msg)
}

// FormatSize renders a byte count colored by how far it is over limit:
// plain below, warning above, error at twice the limit or more.
// A non-positive limit disables coloring.
func FormatSize(n, limit int64) string {
	text := FormatBytes(n)
	switch {
	case limit <= 0 || n <= limit:
		return text
	case n >= 2*limit:
		return StyleError.Render(text)
	default:
		return StyleWarning.Render(text)
	}
}

func FormatTitle(title string) string {
	return StyleTitle.Render(title)
}

func FormatMuted(text string) string {
	return StyleMuted.Render(text)
}

func FormatBold(text string) string {
	return StyleBold.Render(text)
}
