package entry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/fmea/internal/fmea"
	"github.com/abhisek/fmea/internal/report"
	"github.com/abhisek/fmea/internal/router"
	"github.com/abhisek/fmea/internal/screen"
	"github.com/abhisek/fmea/internal/screens/results"
	"github.com/abhisek/fmea/internal/ui/components"
	"github.com/abhisek/fmea/internal/ui/layout"
	"github.com/abhisek/fmea/internal/ui/theme"
)

// Config controls a new entry screen.
type Config struct {
	// DefaultNumVars prefills the count prompt.
	DefaultNumVars int

	// Title is carried into the results.
	Title string

	// Preload, when set, skips the count prompt and fills the form.
	Preload []fmea.RawEntry

	Logger *zap.SugaredLogger
}

// DefaultConfig returns the config used when no flags are given.
func DefaultConfig() Config {
	return Config{DefaultNumVars: fmea.DefaultNumVars}
}

type phase int

const (
	phaseCount phase = iota
	phaseForm
)

// fieldsPerRow is name plus the three rating sliders.
const fieldsPerRow = 4

const (
	nameWidth   = 24
	sliderWidth = 18
)

type row struct {
	name    components.TextInput
	ratings [3]components.Slider
}

// EntryScreen collects the number of variables and then their ratings.
type EntryScreen struct {
	cfg    Config
	phase  phase
	count  components.TextInput
	rows   []row
	focus  int
	submit components.Button

	countErr string
	errs     []string
	log      *zap.SugaredLogger
}

var _ screen.Screen = (*EntryScreen)(nil)

// New creates an EntryScreen.
func New(cfg Config) *EntryScreen {
	if cfg.DefaultNumVars < fmea.MinVariables || cfg.DefaultNumVars > fmea.MaxVariables {
		cfg.DefaultNumVars = fmea.DefaultNumVars
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	s := &EntryScreen{
		cfg:   cfg,
		count: components.NewTextInput(strconv.Itoa(cfg.DefaultNumVars), true, 2),
		log:   log,
	}
	s.submit = components.NewButton("ASSESS", s.assess)
	s.count.Model.SetValue(strconv.Itoa(cfg.DefaultNumVars))

	if len(cfg.Preload) > 0 {
		s.buildForm(cfg.Preload)
	}
	return s
}

func (s *EntryScreen) Init() tea.Cmd {
	if s.phase == phaseCount {
		return s.count.Init()
	}
	return s.applyFocus()
}

func (s *EntryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, s.forward(msg)
	}

	if s.phase == phaseCount {
		return s.updateCount(kmsg)
	}
	return s.updateForm(kmsg)
}

func (s *EntryScreen) updateCount(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() != "enter" {
		var cmd tea.Cmd
		s.count, cmd = s.count.Update(msg)
		s.count.ClearError()
		s.countErr = ""
		return s, cmd
	}

	n, err := s.count.NumericValue()
	if err != nil || fmea.CheckCount(n) != nil {
		s.count.SetError("out of range")
		s.countErr = fmt.Sprintf("Enter a number between %d and %d.", fmea.MinVariables, fmea.MaxVariables)
		return s, nil
	}

	s.log.Debugw("variable count chosen", "num_vars", n)
	s.buildForm(make([]fmea.RawEntry, n))
	return s, s.applyFocus()
}

// buildForm creates one row per entry. Zero ratings take the slider default.
func (s *EntryScreen) buildForm(entries []fmea.RawEntry) {
	s.rows = make([]row, len(entries))
	for i, e := range entries {
		name := components.NewTextInput(fmea.FallbackName(i+1), false, 0)
		name.Model.SetValue(e.Name)
		name.Blur()
		s.rows[i] = row{
			name: name,
			ratings: [3]components.Slider{
				newSlider("S", e.Severity),
				newSlider("O", e.Occurrence),
				newSlider("D", e.Detectability),
			},
		}
	}
	s.submit.Detail = fmt.Sprintf("%d variables", len(entries))
	s.phase = phaseForm
	s.focus = 0
}

func newSlider(label string, v int) components.Slider {
	if v == 0 {
		v = fmea.DefaultRating
	}
	return components.NewSlider(label, fmea.MinRating, fmea.MaxRating, v, sliderWidth)
}

func (s *EntryScreen) updateForm(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		s.focus = (s.focus + 1) % s.fieldCount()
		return s, s.applyFocus()
	case "shift+tab", "up":
		s.focus = (s.focus - 1 + s.fieldCount()) % s.fieldCount()
		return s, s.applyFocus()
	case "enter":
		return s, s.assess()
	}

	if s.onSubmit() {
		var cmd tea.Cmd
		s.submit, cmd = s.submit.Update(msg)
		return s, cmd
	}
	r, f := s.focus/fieldsPerRow, s.focus%fieldsPerRow
	var cmd tea.Cmd
	if f == 0 {
		s.rows[r].name, cmd = s.rows[r].name.Update(msg)
		s.rows[r].name.ClearError()
	} else {
		s.rows[r].ratings[f-1], cmd = s.rows[r].ratings[f-1].Update(msg)
	}
	return s, cmd
}

// forward passes non-key messages (cursor blink) to the focused input.
func (s *EntryScreen) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case s.phase == phaseCount:
		s.count, cmd = s.count.Update(msg)
	case !s.onSubmit() && s.focus%fieldsPerRow == 0:
		r := s.focus / fieldsPerRow
		s.rows[r].name, cmd = s.rows[r].name.Update(msg)
	}
	return cmd
}

// fieldCount is every name and slider plus the submit button.
func (s *EntryScreen) fieldCount() int {
	return len(s.rows)*fieldsPerRow + 1
}

func (s *EntryScreen) onSubmit() bool {
	return s.focus == len(s.rows)*fieldsPerRow
}

func (s *EntryScreen) applyFocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range s.rows {
		for j := range s.rows[i].ratings {
			s.rows[i].ratings[j].Focused = s.focus == i*fieldsPerRow+j+1
		}
		if s.focus == i*fieldsPerRow {
			cmd = s.rows[i].name.Focus()
		} else {
			s.rows[i].name.Blur()
		}
	}
	s.submit.Focused = s.onSubmit()
	return cmd
}

// Entries returns the form contents in row order.
func (s *EntryScreen) Entries() []fmea.RawEntry {
	out := make([]fmea.RawEntry, len(s.rows))
	for i, r := range s.rows {
		out[i] = fmea.RawEntry{
			Name:          r.name.Value(),
			Severity:      r.ratings[0].Value,
			Occurrence:    r.ratings[1].Value,
			Detectability: r.ratings[2].Value,
		}
	}
	return out
}

// Errors returns the messages from the last failed submit.
func (s *EntryScreen) Errors() []string {
	return s.errs
}

func (s *EntryScreen) Status() string {
	switch len(s.errs) {
	case 0:
		return ""
	case 1:
		return "1 error"
	}
	return fmt.Sprintf("%d errors", len(s.errs))
}

func (s *EntryScreen) assess() tea.Cmd {
	entries := s.Entries()
	res, err := fmea.Assess(entries)
	if err != nil {
		var verrs fmea.ValidationErrors
		if !errors.As(err, &verrs) {
			s.errs = []string{err.Error()}
			return nil
		}
		s.errs = verrs.Messages()
		s.markInvalid(verrs, entries)
		s.log.Infow("assessment rejected", "errors", len(verrs))
		return nil
	}

	s.errs = nil
	for i := range s.rows {
		s.rows[i].name.ClearError()
	}
	s.log.Infow("assessment complete", "summary", report.Summary(res))

	next := results.New(s.cfg.Title, res, s.log)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

// markInvalid flags the name inputs behind empty and duplicate names.
func (s *EntryScreen) markInvalid(verrs fmea.ValidationErrors, entries []fmea.RawEntry) {
	dup := make(map[string]bool)
	empty := make(map[int]bool)
	for _, e := range verrs {
		switch e.Kind {
		case fmea.KindDuplicateName:
			for _, n := range e.Names {
				dup[n] = true
			}
		case fmea.KindEmptyName:
			empty[e.Position-1] = true
		}
	}
	for i := range s.rows {
		switch {
		case empty[i]:
			s.rows[i].name.SetError("empty name")
		case dup[strings.TrimSpace(entries[i].Name)]:
			s.rows[i].name.SetError("duplicate")
		default:
			s.rows[i].name.ClearError()
		}
	}
}

func (s *EntryScreen) View(width, height int) string {
	if s.phase == phaseCount {
		return s.viewCount(width, height)
	}
	return s.viewForm(width, height)
}

func (s *EntryScreen) viewCount(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Number of variables to assess"))
	b.WriteString("\n\n")
	b.WriteString(s.count.View())
	b.WriteString("\n\n")
	if s.countErr != "" {
		b.WriteString(theme.ErrorText.Render(s.countErr))
	} else {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Between %d and %d, then press Enter.",
			fmea.MinVariables, fmea.MaxVariables)))
	}

	card := theme.Card.Width(min(width-8, 60)).Render(b.String())
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}

func (s *EntryScreen) viewForm(width, height int) string {
	header := theme.Hint.Render(fmt.Sprintf("   %-*s  %s", nameWidth,
		"Variable", "Severity · Occurrence · Detectability"))

	lines := make([]string, len(s.rows))
	for i, r := range s.rows {
		label := fmt.Sprintf("%2d ", i+1)
		if s.focus/fieldsPerRow == i && !s.onSubmit() {
			label = theme.Selected.Render(label)
		} else {
			label = theme.Hint.Render(label)
		}
		name := lipgloss.NewStyle().Width(nameWidth).MaxWidth(nameWidth + 2).Render(r.name.View())
		lines[i] = label + name + "  " +
			r.ratings[0].View() + "  " + r.ratings[1].View() + "  " + r.ratings[2].View()
		if reason := r.name.Error(); reason != "" {
			lines[i] += "  " + theme.ErrorText.Render(reason)
		}
	}

	var errBlock string
	if len(s.errs) > 0 {
		var b strings.Builder
		b.WriteString(theme.ErrorText.Render(report.MsgFixErrors))
		for _, msg := range s.errs {
			b.WriteString("\n  • " + msg)
		}
		errBlock = b.String()
	}

	// Keep the focused row visible when the form is taller than the screen.
	reserved := 4 + lipgloss.Height(errBlock)
	visible := max(height-reserved, 1)
	focusRow := min(s.focus/fieldsPerRow, len(s.rows)-1)
	start := 0
	if focusRow >= visible {
		start = focusRow - visible + 1
	}
	end := min(start+visible, len(lines))

	parts := []string{header, strings.Join(lines[start:end], "\n"), "", s.submit.View()}
	if errBlock != "" {
		parts = append(parts, "", errBlock)
	}

	return lipgloss.NewStyle().
		Width(width).
		PaddingLeft(2).
		Render(strings.Join(parts, "\n"))
}

func (s *EntryScreen) Title() string {
	if s.phase == phaseCount {
		return "New Assessment"
	}
	return fmt.Sprintf("New Assessment · %d variables", len(s.rows))
}

func (s *EntryScreen) KeyHints() []layout.KeyHint {
	if s.phase == phaseCount {
		return []layout.KeyHint{
			{Key: "0-9", Description: "Count"},
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Move"},
		{Key: "←→", Description: "Adjust"},
		{Key: "Enter", Description: "Assess"},
		{Key: "Esc", Description: "Back"},
	}
}
