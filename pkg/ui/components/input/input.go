// Package input wraps a bubbles text input as the message region.
package input

import (
	"strings"

	"opschat/pkg/ui/components/textutil"
	"opschat/pkg/ui/styles"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

const (
	borderSize  = 1
	paddingH    = 1
	prompt      = "> "
	placeholder = "Type a message and press enter"
	charLimit   = 2000
)

// Input is the single-line message field. Quick-action presets are offered
// as tab completions.
type Input struct {
	text  textinput.Model
	width int
}

// New creates an input offering suggestions for completion.
func New(suggestions []string) *Input {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	ti.CharLimit = charLimit
	ti.ShowSuggestions = len(suggestions) > 0
	ti.SetSuggestions(suggestions)
	return &Input{text: ti}
}

// Value returns the current text.
func (i *Input) Value() string {
	return i.text.Value()
}

// SetValue replaces the text and moves the cursor to the end.
func (i *Input) SetValue(value string) {
	i.text.SetValue(value)
	i.text.CursorEnd()
}

// Focus gives the field keyboard focus.
func (i *Input) Focus() tea.Cmd {
	return i.text.Focus()
}

// Update routes a message to the text field.
func (i *Input) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	i.text, cmd = i.text.Update(msg)
	return cmd
}

// SetWidth updates the outer box width.
func (i *Input) SetWidth(width int) {
	i.width = width
	inner := width - 2*(borderSize+paddingH) - ansi.StringWidth(prompt) - 2
	if inner < 1 {
		inner = 1
	}
	i.text.SetWidth(inner)
}

// Height is the number of lines View renders.
func (i *Input) Height() int {
	return 1 + 2*borderSize
}

// View renders the boxed field.
func (i *Input) View() string {
	contentWidth := i.width - 2*(borderSize+paddingH)
	if contentWidth < 1 {
		contentWidth = 1
	}
	line := strings.SplitN(i.text.View(), "\n", 2)[0]
	if ansi.StringWidth(line) > contentWidth {
		line = ansi.Truncate(line, contentWidth, "")
	}
	boxWidth := i.width
	if boxWidth < 1 {
		boxWidth = 1
	}
	return styles.InputBoxStyle.
		Width(boxWidth).
		Render(textutil.PadStyled(line, contentWidth))
}
