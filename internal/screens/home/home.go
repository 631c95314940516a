package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fmea/internal/router"
	"github.com/abhisek/fmea/internal/screen"
	"github.com/abhisek/fmea/internal/screens/notes"
	"github.com/abhisek/fmea/internal/ui/components"
	"github.com/abhisek/fmea/internal/ui/theme"
)

// Menu labels.
const (
	LabelNewAssessment = "NEW ASSESSMENT"
	LabelNotes         = "GUIDANCE NOTES"
	LabelExit          = "EXIT"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen. newAssessment builds the entry screen each time
// a new assessment is started.
func New(newAssessment func() screen.Screen) *HomeScreen {
	items := []components.MenuItem{
		{Label: LabelNewAssessment, Hint: "Rate variables and get DoE suggestions", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: newAssessment()}
			}
		}},
		{Label: LabelNotes, Hint: "ICH Q9 notes on reading the results", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: notes.New()}
			}
		}},
		{Label: LabelExit, Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := width - 8
	if cw > 70 {
		cw = 70
	}

	title := theme.Title.Width(cw).Render("FMEA Risk Assessment & DoE Factor Selection")
	intro := theme.Subtitle.Width(cw).Render(
		"Rate each process variable for Severity, Occurrence and Detectability (1-10).\n" +
			"RPN = S × O × D ranks the risks; Medium and High variables are suggested for your DoE.")

	menu := theme.Card.Width(cw).Render(strings.TrimRight(h.menu.View(), "\n"))

	content := lipgloss.JoinVertical(lipgloss.Center, title, "", intro, "", menu)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
