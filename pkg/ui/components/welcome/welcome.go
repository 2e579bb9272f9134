// Package welcome renders the help shown in an empty conversation panel.
package welcome

import (
	"fmt"
	"strings"

	"opschat/pkg/ui/components/textutil"
	"opschat/pkg/ui/styles"
	"opschat/pkg/version"

	"github.com/mattn/go-runewidth"
)

const title = "Welcome to opschat"

type shortcut struct{ key, desc string }

var shortcuts = []shortcut{
	{"Enter", "Send message"},
	{"F1-F9", "Quick actions (also Alt+1-9)"},
	{"Up/Down", "Scroll conversation"},
	{"Ctrl+Y", "Copy last reply"},
	{"Ctrl+S", "Save inline chart"},
	{"Esc", "Quit"},
}

// Lines returns the styled welcome block, each line at most width cells.
func Lines(width int) []string {
	if width <= 0 {
		return nil
	}

	center := func(text string) string {
		text = textutil.TruncateToWidth(text, width)
		pad := (width - runewidth.StringWidth(text)) / 2
		return strings.Repeat(" ", pad) + text
	}

	var lines []string
	lines = append(lines, styles.WelcomeTitleStyle.Render(center(title)))
	lines = append(lines, "")
	lines = append(lines, styles.WelcomeHeaderStyle.Render(textutil.TruncateToWidth("Shortcuts:", width)))

	for _, s := range shortcuts {
		key := fmt.Sprintf("  %-9s", s.key)
		if runewidth.StringWidth(key) >= width {
			lines = append(lines, styles.WelcomeKeyStyle.Render(textutil.TrimToWidth(key, width)))
			continue
		}
		desc := textutil.TruncateToWidth(s.desc, width-runewidth.StringWidth(key))
		lines = append(lines, styles.WelcomeKeyStyle.Render(key)+styles.TextStyle.Render(desc))
	}

	lines = append(lines, "")
	lines = append(lines, styles.WelcomeVersionStyle.Render(center(version.Summary())))
	return lines
}
