package quickbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestBar_Lookup(t *testing.T) {
	b := New([]string{"Machine status", "Help"})

	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{key: "alt+1", want: "Machine status", wantOK: true},
		{key: "f2", want: "Help", wantOK: true},
		{key: "f3"},
		{key: "alt+0"},
		{key: "f10"},
		{key: "enter"},
		{key: "alt+x"},
	}
	for _, tc := range tests {
		got, ok := b.Lookup(tc.key)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("Lookup(%q) = (%q, %v), want (%q, %v)", tc.key, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestBar_Preset(t *testing.T) {
	b := New([]string{"a", "b"})
	if got, ok := b.Preset(2); !ok || got != "b" {
		t.Errorf("Expected preset 2 to be 'b', got %q ok=%v", got, ok)
	}
	if _, ok := b.Preset(0); ok {
		t.Error("Expected preset 0 to be missing")
	}
	if _, ok := b.Preset(3); ok {
		t.Error("Expected preset 3 to be missing")
	}
}

func TestBar_CapsPresets(t *testing.T) {
	presets := make([]string, 12)
	for i := range presets {
		presets[i] = "p"
	}
	if got := len(New(presets).Presets()); got != MaxPresets {
		t.Errorf("Expected %d presets, got %d", MaxPresets, got)
	}
}

func TestBar_View(t *testing.T) {
	b := New([]string{"Machine status", "Help"})
	b.SetWidth(60)

	view := ansi.Strip(b.View())
	if !strings.Contains(view, "F1 Machine status") || !strings.Contains(view, "F2 Help") {
		t.Errorf("Unexpected view %q", view)
	}
	if ansi.StringWidth(view) != 60 {
		t.Errorf("Expected width 60, got %d", ansi.StringWidth(view))
	}

	b.SetWidth(10)
	if w := ansi.StringWidth(b.View()); w > 10 {
		t.Errorf("Expected view to fit width 10, got %d", w)
	}
}

func TestBar_EmptyView(t *testing.T) {
	b := New(nil)
	b.SetWidth(40)
	if b.View() != "" {
		t.Errorf("Expected empty view, got %q", b.View())
	}
}
