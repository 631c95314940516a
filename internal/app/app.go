package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/fmea/internal/fmea"
	"github.com/abhisek/fmea/internal/router"
	"github.com/abhisek/fmea/internal/screen"
	"github.com/abhisek/fmea/internal/screens/entry"
	"github.com/abhisek/fmea/internal/screens/home"
	"github.com/abhisek/fmea/internal/ui/layout"
)

// Options configures the terminal UI.
type Options struct {
	// DefaultNumVars prefills the variable count prompt.
	DefaultNumVars int

	// Preload opens the entry form directly, filled with these entries.
	Preload []fmea.RawEntry

	// Title is carried into every assessment.
	Title string

	Logger *zap.SugaredLogger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	initCmd tea.Cmd
	width   int
	height  int
}

// newAppModel creates a new AppModel with the home screen, and the entry
// form on top of it when entries are preloaded.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.DefaultNumVars == 0 {
		opts.DefaultNumVars = fmea.DefaultNumVars
	}

	newEntry := func(preload []fmea.RawEntry) screen.Screen {
		return entry.New(entry.Config{
			DefaultNumVars: opts.DefaultNumVars,
			Title:          opts.Title,
			Preload:        preload,
			Logger:         opts.Logger,
		})
	}

	m := AppModel{
		router: router.New(home.New(func() screen.Screen { return newEntry(nil) })),
	}
	if len(opts.Preload) > 0 {
		m.initCmd = m.router.Push(newEntry(opts.Preload))
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.router.Update(m.contentSize())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	switch msg.(type) {
	case router.PushScreenMsg, router.PopScreenMsg, router.PopToRootMsg:
		// The new active screen has not seen the current size yet.
		if m.width > 0 {
			cmd = tea.Batch(cmd, m.router.Update(m.contentSize()))
		}
	}
	return m, cmd
}

// contentSize is the area between header and footer.
func (m AppModel) contentSize() screen.SizeMsg {
	return screen.SizeMsg{Width: m.width, Height: layout.ContentHeight(m.height)}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	status := fmt.Sprintf("ratings %d-%d", fmea.MinRating, fmea.MaxRating)
	if p, ok := active.(screen.StatusProvider); ok {
		if st := p.Status(); st != "" {
			status = st
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	content := m.router.View(m.width, layout.ContentHeight(m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal UI: %w", err)
	}
	return nil
}
