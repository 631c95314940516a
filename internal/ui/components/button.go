package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fmea/internal/ui/theme"
)

// Button is the submit action at the foot of a form.
type Button struct {
	Label string
	// Detail is dim text shown after the label, e.g. "5 variables".
	Detail  string
	Focused bool
	OnPress func() tea.Cmd
}

// NewButton creates an unfocused button.
func NewButton(label string, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		OnPress: onPress,
	}
}

// Update fires OnPress on enter or space while focused.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Focused || b.OnPress == nil {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "space":
			return b, b.OnPress()
		}
	}

	return b, nil
}

func (b Button) View() string {
	var out string
	if b.Focused {
		out = theme.ButtonActive.Render("▸ " + b.Label)
	} else {
		out = theme.ButtonInactive.Render("  " + b.Label)
	}
	if b.Detail != "" {
		out += "  " + theme.Hint.Render(b.Detail)
	}
	return out
}
