package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/fmea/internal/fmea"
)

// Color palette, tuned for dark terminals
var (
	Primary   = lipgloss.Color("#38BDF8") // Sky
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Risk tiers
var (
	RiskLowColor    = Success
	RiskMediumColor = Accent
	RiskHighColor   = Error
)

// RiskColor returns the display color of a risk level.
func RiskColor(level fmea.RiskLevel) color.Color {
	switch level {
	case fmea.RiskHigh:
		return RiskHighColor
	case fmea.RiskMedium:
		return RiskMediumColor
	default:
		return RiskLowColor
	}
}

// RiskBadge renders a risk level in its color.
func RiskBadge(level fmea.RiskLevel) string {
	return lipgloss.NewStyle().Foreground(RiskColor(level)).Bold(true).Render(string(level))
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	SliderFilled = lipgloss.NewStyle().
			Background(Secondary)

	SliderFocused = lipgloss.NewStyle().
			Background(Primary)

	SliderEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	// Same height as ButtonActive so focusing the button does not shift the form.
	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Foreground(TextDim).
			Padding(0, 2)
)
