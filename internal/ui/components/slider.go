package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fmea/internal/ui/theme"
)

// Slider is a horizontal integer slider bounded by [Min, Max].
type Slider struct {
	Label   string
	Min     int
	Max     int
	Value   int
	Width   int
	Focused bool
}

// NewSlider creates a slider with value clamped into range.
func NewSlider(label string, min, max, value, width int) Slider {
	s := Slider{Label: label, Min: min, Max: max, Width: width}
	s.Set(value)
	return s
}

// Set assigns v, clamped to [Min, Max].
func (s *Slider) Set(v int) {
	if v < s.Min {
		v = s.Min
	}
	if v > s.Max {
		v = s.Max
	}
	s.Value = v
}

// Update handles left/right adjustments while focused.
func (s Slider) Update(msg tea.Msg) (Slider, tea.Cmd) {
	if !s.Focused {
		return s, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h", "-":
		s.Set(s.Value - 1)
	case "right", "l", "+", "=":
		s.Set(s.Value + 1)
	case "home":
		s.Set(s.Min)
	case "end":
		s.Set(s.Max)
	}
	return s, nil
}

// Fraction returns the position of Value within the range, 0..1.
func (s Slider) Fraction() float64 {
	if s.Max <= s.Min {
		return 1
	}
	return float64(s.Value-s.Min) / float64(s.Max-s.Min)
}

// View renders the slider.
func (s Slider) View() string {
	var result string

	if s.Label != "" {
		label := lipgloss.NewStyle().Foreground(theme.TextDim)
		if s.Focused {
			label = theme.Selected
		}
		result += label.Render(s.Label) + " "
	}

	labelWidth := lipgloss.Width(result)
	valueWidth := 4 // " 10"

	barWidth := s.Width - labelWidth - valueWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * s.Fraction())
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 1 {
		filled = 1
	}
	empty := barWidth - filled

	fill := theme.SliderFilled
	if s.Focused {
		fill = theme.SliderFocused
	}
	result += fill.Render(strings.Repeat(" ", filled)) +
		theme.SliderEmpty.Render(strings.Repeat(" ", empty))

	result += lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(s.Focused).
		Render(fmt.Sprintf(" %2d", s.Value))

	return result
}
