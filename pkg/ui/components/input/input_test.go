package input

import (
	"strings"
	"testing"

	"opschat/pkg/ui/components/testutils"

	"github.com/charmbracelet/x/ansi"
)

func TestInput_SetValue(t *testing.T) {
	in := New(nil)
	in.SetValue("Machine status")

	if in.Value() != "Machine status" {
		t.Errorf("Expected 'Machine status', got %q", in.Value())
	}

	in.SetValue("")
	if in.Value() != "" {
		t.Errorf("Expected empty value, got %q", in.Value())
	}
}

func TestInput_TypingRequiresFocus(t *testing.T) {
	in := New(nil)
	in.Update(testutils.NewTextKeyPressMsg("a"))
	if in.Value() != "" {
		t.Errorf("Expected unfocused input to ignore keys, got %q", in.Value())
	}

	in.Focus()
	for _, r := range "hi" {
		in.Update(testutils.NewTextKeyPressMsg(string(r)))
	}
	in.Update(testutils.TestKeyBackspace)
	in.Update(testutils.NewTextKeyPressMsg("o"))

	if in.Value() != "ho" {
		t.Errorf("Expected 'ho', got %q", in.Value())
	}
}

func TestInput_AcceptSuggestion(t *testing.T) {
	in := New([]string{"Show today's production", "Help"})
	in.Focus()

	in.Update(testutils.NewTextKeyPressMsg("S"))
	in.Update(testutils.NewTextKeyPressMsg("h"))
	in.Update(testutils.TestKeyTab)

	if in.Value() != "Show today's production" {
		t.Errorf("Expected completed suggestion, got %q", in.Value())
	}
}

func TestInput_View(t *testing.T) {
	in := New(nil)
	in.SetWidth(40)

	view := ansi.Strip(in.View())
	lines := strings.Split(view, "\n")
	if len(lines) != in.Height() {
		t.Fatalf("Expected %d lines, got %d:\n%s", in.Height(), len(lines), view)
	}
	if !strings.Contains(lines[1], prompt) {
		t.Errorf("Expected prompt on the middle line, got %q", lines[1])
	}
}
