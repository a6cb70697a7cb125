package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/careercoach/internal/quiz"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMultiChoice_Navigation(t *testing.T) {
	m := NewMultiChoice("Q", []string{"a", "b", "c", "d"}, quiz.NoAnswer)
	if m.Answered() {
		t.Fatal("new picker should be unanswered")
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Cursor != 2 {
		t.Fatalf("Cursor = %d, want 2", m.Cursor)
	}
	if m.Answered() {
		t.Fatal("moving the cursor must not pick an option")
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.Chosen != 2 {
		t.Fatalf("Chosen = %d, want 2", m.Chosen)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Cursor != 0 {
		t.Fatalf("Cursor = %d, want 0", m.Cursor)
	}
}

func TestMultiChoice_DirectPick(t *testing.T) {
	tests := []struct {
		key  rune
		want int
	}{
		{'a', 0}, {'B', 1}, {'3', 2}, {'d', 3}, {'e', quiz.NoAnswer}, {'5', quiz.NoAnswer},
	}
	for _, tt := range tests {
		m := NewMultiChoice("Q", []string{"a", "b", "c", "d"}, quiz.NoAnswer)
		m, _ = m.Update(key(tt.key))
		if m.Chosen != tt.want {
			t.Errorf("key %q: Chosen = %d, want %d", tt.key, m.Chosen, tt.want)
		}
	}
}

func TestMultiChoice_ViewHidesKey(t *testing.T) {
	m := NewMultiChoice("What is 2+2?", []string{"3", "4", "5", "6"}, 1)
	view := m.View(60)
	if !strings.Contains(view, "What is 2+2?") || !strings.Contains(view, "B)  4") {
		t.Fatalf("unexpected view:\n%s", view)
	}
	if m.Cursor != 1 {
		t.Errorf("cursor should start on the chosen option, got %d", m.Cursor)
	}
}

func TestTextInput_Error(t *testing.T) {
	in := NewTextInput("you@example.com", 100)
	in.SetError("invalid email")
	if !strings.Contains(in.View(), "invalid email") {
		t.Fatal("error not rendered")
	}
	in, _ = in.Update(key('x'))
	if in.Err() != "" {
		t.Fatal("typing should clear the error")
	}
	if in.Value() != "x" {
		t.Fatalf("Value = %q", in.Value())
	}
}

func TestProgressBar_Clamps(t *testing.T) {
	for _, pct := range []float64{-1, 0, 0.5, 1, 2} {
		if NewProgressBar("Answered", pct, true, 40).View() == "" {
			t.Errorf("empty view for %v", pct)
		}
	}
}
