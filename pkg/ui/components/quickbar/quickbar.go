// Package quickbar maps function and alt+digit keys to preset messages.
package quickbar

import (
	"fmt"
	"strings"

	"opschat/pkg/ui/components/textutil"
	"opschat/pkg/ui/styles"

	"github.com/charmbracelet/x/ansi"
)

// MaxPresets is the number of presets that get a key.
const MaxPresets = 9

// Bar holds the quick-action presets.
type Bar struct {
	presets []string
	width   int
}

// New creates a bar. Presets beyond MaxPresets are dropped.
func New(presets []string) *Bar {
	if len(presets) > MaxPresets {
		presets = presets[:MaxPresets]
	}
	return &Bar{presets: append([]string(nil), presets...)}
}

// Presets returns a copy of the presets.
func (b *Bar) Presets() []string {
	return append([]string(nil), b.presets...)
}

// SetWidth updates the render width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Lookup returns the preset bound to key ("alt+N" or "fN", N from 1).
func (b *Bar) Lookup(key string) (string, bool) {
	n, ok := keyIndex(key)
	if !ok {
		return "", false
	}
	return b.Preset(n)
}

// Preset returns preset n, counting from 1.
func (b *Bar) Preset(n int) (string, bool) {
	if n < 1 || n > len(b.presets) {
		return "", false
	}
	return b.presets[n-1], true
}

func keyIndex(key string) (int, bool) {
	var digit string
	switch {
	case strings.HasPrefix(key, "alt+"):
		digit = strings.TrimPrefix(key, "alt+")
	case strings.HasPrefix(key, "f"):
		digit = strings.TrimPrefix(key, "f")
	default:
		return 0, false
	}
	if len(digit) != 1 || digit[0] < '1' || digit[0] > '9' {
		return 0, false
	}
	return int(digit[0] - '0'), true
}

// View renders one line: "F1 Show today's production  F2 ...". Entries that
// do not fit are cut.
func (b *Bar) View() string {
	if len(b.presets) == 0 || b.width <= 0 {
		return ""
	}
	parts := make([]string, 0, len(b.presets))
	for i, preset := range b.presets {
		parts = append(parts, styles.QuickKeyStyle.Render(fmt.Sprintf("F%d", i+1))+" "+styles.TextMutedStyle.Render(preset))
	}
	line := strings.Join(parts, "  ")
	if ansi.StringWidth(line) > b.width {
		line = ansi.Truncate(line, b.width, "…")
	}
	return textutil.PadStyled(line, b.width)
}
