package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/fmea/internal/ui/theme"
)

const (
	// MinWidth fits the six-column variable table with a 20-character name.
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30

	hintGap = "   "
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactWidth returns true if the terminal width is in compact range.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsCompactHeight returns true if the terminal height is in compact range.
func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentHeight returns the rows left for a screen between header and footer.
func ContentHeight(totalHeight int) int {
	return max(totalHeight-HeaderHeight-FooterHeight, 0)
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small for the assessment tables.\n\nResize to at least %d x %d\n(current %d x %d)",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader renders the header bar: app name on the left, screen title
// centered, status on the right. A title that does not fit is cut with "…".
func RenderHeader(title, status string, width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("  FMEA")
	right := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Render(status)

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	innerWidth := max(width-4, 0) // border and padding

	room := max(innerWidth-leftLen-rightLen-2, 1)
	title = Truncate(title, room)
	center := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(title)
	centerLen := lipgloss.Width(center)

	leftGap := max((innerWidth-centerLen)/2-leftLen, 1)
	rightGap := max(innerWidth-leftLen-leftGap-centerLen-rightLen, 1)

	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right

	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// Truncate shortens s to at most n cells, ending in "…" when cut.
func Truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > n {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

// FitHints returns the leading hints whose rendered width fits in width.
// The last hint (quit) is always kept so the way out stays visible.
func FitHints(hints []KeyHint, width int) []KeyHint {
	if len(hints) == 0 {
		return hints
	}
	last := hints[len(hints)-1]
	used := 2 + hintWidth(last)

	var out []KeyHint
	for _, h := range hints[:len(hints)-1] {
		w := hintWidth(h) + len(hintGap)
		if used+w > width {
			break
		}
		used += w
		out = append(out, h)
	}
	return append(out, last)
}

func hintWidth(h KeyHint) int {
	return lipgloss.Width(h.Key) + 1 + lipgloss.Width(h.Description)
}

// RenderFooter renders the key hints that fit in width.
func RenderFooter(hints []KeyHint, width int) string {
	hints = FitHints(hints, max(width-4, 0))
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		part := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) +
			" " +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
		parts = append(parts, part)
	}

	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render("  " + strings.Join(parts, hintGap))
}

// RenderFrame composes header, content and footer. Content taller than the
// space between them is clipped so the footer stays on screen.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	styledContent := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return header + "\n" + styledContent + "\n" + footer
}
