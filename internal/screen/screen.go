package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fmea/internal/ui/layout"
)

// Screen is one page of the assessment workflow: home, entry form,
// results or notes.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for screens that replace the
// rating scale on the right of the header. An empty status keeps the default.
type StatusProvider interface {
	Status() string
}

// SizeMsg carries the space available to screens between header and footer.
// The app sends it on resize and whenever the active screen changes.
type SizeMsg struct {
	Width  int
	Height int
}
