package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestSlider_ClampsOnCreate(t *testing.T) {
	if s := NewSlider("S", 1, 10, 0, 30); s.Value != 1 {
		t.Errorf("value = %d, want 1", s.Value)
	}
	if s := NewSlider("S", 1, 10, 42, 30); s.Value != 10 {
		t.Errorf("value = %d, want 10", s.Value)
	}
}

func TestSlider_Adjust(t *testing.T) {
	s := NewSlider("Severity", 1, 10, 5, 30)

	s, _ = s.Update(specialKey(tea.KeyRight))
	if s.Value != 5 {
		t.Fatalf("unfocused slider moved to %d", s.Value)
	}

	s.Focused = true
	s, _ = s.Update(specialKey(tea.KeyRight))
	s, _ = s.Update(specialKey(tea.KeyRight))
	if s.Value != 7 {
		t.Errorf("value = %d, want 7", s.Value)
	}

	s, _ = s.Update(specialKey(tea.KeyLeft))
	if s.Value != 6 {
		t.Errorf("value = %d, want 6", s.Value)
	}

	s, _ = s.Update(specialKey(tea.KeyEnd))
	if s.Value != 10 {
		t.Errorf("value = %d, want 10", s.Value)
	}
	s, _ = s.Update(specialKey(tea.KeyRight))
	if s.Value != 10 {
		t.Errorf("value past max = %d, want 10", s.Value)
	}

	s, _ = s.Update(specialKey(tea.KeyHome))
	if s.Value != 1 {
		t.Errorf("value = %d, want 1", s.Value)
	}
}

func TestSlider_Fraction(t *testing.T) {
	tests := []struct {
		value int
		want  float64
	}{
		{1, 0},
		{10, 1},
		{4, 1.0 / 3},
	}
	for _, tt := range tests {
		s := NewSlider("", 1, 10, tt.value, 20)
		if got := s.Fraction(); got != tt.want {
			t.Errorf("Fraction(%d) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestSlider_View(t *testing.T) {
	s := NewSlider("Occurrence", 1, 10, 7, 40)
	if v := s.View(); !strings.Contains(v, "Occurrence") || !strings.Contains(v, " 7") {
		t.Errorf("view %q missing label or value", v)
	}
}

func TestMenu_Navigation(t *testing.T) {
	var picked string
	m := NewMenu([]MenuItem{
		{Label: "NEW ASSESSMENT", Action: func() tea.Cmd { picked = "new"; return nil }},
		{Label: "DISABLED", Disabled: true},
		{Label: "EXIT", Action: func() tea.Cmd { picked = "exit"; return nil }},
	})

	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.SelectedLabel() != "EXIT" {
		t.Errorf("selected = %q, want EXIT (disabled item skipped)", m.SelectedLabel())
	}

	m, _ = m.Update(keyPress('k'))
	if m.SelectedLabel() != "NEW ASSESSMENT" {
		t.Errorf("selected = %q, want NEW ASSESSMENT", m.SelectedLabel())
	}

	m.Update(specialKey(tea.KeyEnter))
	if picked != "new" {
		t.Errorf("picked = %q, want new", picked)
	}
}

func TestTextInput_NumericOnly(t *testing.T) {
	ti := NewTextInput("5", true, 2)
	ti, _ = ti.Update(keyPress('a'))
	ti, _ = ti.Update(keyPress('3'))

	if ti.Value() != "3" {
		t.Errorf("value = %q, want 3", ti.Value())
	}
	n, err := ti.NumericValue()
	if err != nil || n != 3 {
		t.Errorf("NumericValue = %d, %v; want 3", n, err)
	}
}

func TestButton_Press(t *testing.T) {
	pressed := 0
	b := NewButton("ASSESS", func() tea.Cmd { pressed++; return nil })

	b.Update(specialKey(tea.KeyEnter))
	if pressed != 0 {
		t.Error("unfocused button fired")
	}

	b.Focused = true
	b.Update(specialKey(tea.KeyEnter))
	b.Update(specialKey(tea.KeySpace))
	if pressed != 2 {
		t.Errorf("pressed = %d, want 2", pressed)
	}
}

func TestButton_ViewShowsDetail(t *testing.T) {
	b := NewButton("ASSESS", nil)
	b.Detail = "3 variables"
	if v := b.View(); !strings.Contains(v, "ASSESS") || !strings.Contains(v, "3 variables") {
		t.Errorf("View = %q", v)
	}
}

func TestTextInput_ErrorFlag(t *testing.T) {
	ti := NewTextInput("Variable 1", false, 0)
	ti.SetError("duplicate")
	if ti.Error() != "duplicate" || !strings.Contains(ti.View(), "✗") {
		t.Errorf("flagged input: Error = %q, View = %q", ti.Error(), ti.View())
	}
	ti.ClearError()
	if ti.Error() != "" || strings.Contains(ti.View(), "✗") {
		t.Error("expected the flag to clear")
	}
}

func TestMenu_HintOnSelected(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "NEW ASSESSMENT", Hint: "Rate variables"},
		{Label: "EXIT", Hint: "Leave"},
	})
	v := m.View()
	if !strings.Contains(v, "Rate variables") {
		t.Error("expected the selected item's hint")
	}
	if strings.Contains(v, "Leave") {
		t.Error("unselected hint should be hidden")
	}
}
