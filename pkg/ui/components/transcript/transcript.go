// Package transcript renders the append-only conversation panel.
package transcript

import (
	"fmt"
	"io"
	"strings"

	"opschat/pkg/ui/components/textutil"
	"opschat/pkg/ui/components/welcome"
	"opschat/pkg/ui/styles"
	"opschat/pkg/widget"

	tea "charm.land/bubbletea/v2"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
	"github.com/mattn/go-runewidth"
)

const (
	borderSize = 1
	paddingH   = 1
	pageSize   = 10
	title      = "Conversation"
)

// row is one wrapped display line.
type row struct {
	prefix  string
	text    string
	speaker widget.Speaker
	apology bool
}

// Transcript is the message panel. It only ever grows.
type Transcript struct {
	turns   []widget.Turn
	width   int
	height  int
	rows    []row
	scrollY int
	follow  bool
}

// New creates an empty transcript that follows new turns.
func New() *Transcript {
	return &Transcript{follow: true}
}

// AppendTurn adds a turn to the bottom of the panel.
func (t *Transcript) AppendTurn(turn widget.Turn) {
	t.turns = append(t.turns, turn)
	t.reflow()
}

// Turns returns a copy of the turns shown so far.
func (t *Transcript) Turns() []widget.Turn {
	return append([]widget.Turn(nil), t.turns...)
}

// SetSize updates the outer box size.
func (t *Transcript) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.reflow()
}

// Following reports whether the view sticks to the newest turn.
func (t *Transcript) Following() bool {
	return t.follow
}

// ScrollY returns the index of the first visible row.
func (t *Transcript) ScrollY() int {
	return t.scrollY
}

// HandleKey scrolls the panel. It reports whether the key was consumed.
func (t *Transcript) HandleKey(key string) bool {
	maxScroll := t.maxScroll()

	switch key {
	case "up":
		if t.scrollY > 0 {
			t.scrollY--
			t.follow = false
		}
	case "down":
		if t.scrollY < maxScroll {
			t.scrollY++
		}
		t.follow = t.scrollY >= maxScroll
	case "pgup":
		t.scrollY -= pageSize
		if t.scrollY < 0 {
			t.scrollY = 0
		}
		t.follow = false
	case "pgdown":
		t.scrollY += pageSize
		if t.scrollY > maxScroll {
			t.scrollY = maxScroll
		}
		t.follow = t.scrollY >= maxScroll
	case "home":
		t.scrollY = 0
		t.follow = maxScroll == 0
	case "end":
		t.scrollY = maxScroll
		t.follow = true
	default:
		return false
	}
	return true
}

// PlainLines returns the wrapped rows without styling.
func (t *Transcript) PlainLines() []string {
	out := make([]string, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, r.prefix+r.text)
	}
	return out
}

// View renders the panel.
func (t *Transcript) View() string {
	contentWidth := t.contentWidth()
	bodyHeight := t.bodyHeight()

	lines := make([]string, 0, bodyHeight+1)
	lines = append(lines, textutil.PadStyled(styles.TitleStyle.Render(textutil.TruncateToWidth(title, contentWidth)), contentWidth))

	if len(t.rows) == 0 {
		for i, line := range welcome.Lines(contentWidth) {
			if i >= bodyHeight {
				break
			}
			lines = append(lines, textutil.PadStyled(line, contentWidth))
		}
	}

	end := t.scrollY + bodyHeight
	if end > len(t.rows) {
		end = len(t.rows)
	}
	for i := t.scrollY; i < end; i++ {
		lines = append(lines, textutil.PadStyled(renderRow(t.rows[i]), contentWidth))
	}
	for len(lines) < 1+bodyHeight {
		lines = append(lines, strings.Repeat(" ", contentWidth))
	}

	boxWidth := t.width
	if boxWidth < 1 {
		boxWidth = 1
	}
	return styles.PanelStyle.
		Width(boxWidth).
		Padding(0, paddingH).
		Render(strings.Join(lines, "\n"))
}

func renderRow(r row) string {
	var prefix string
	switch {
	case r.prefix == "" || strings.TrimSpace(r.prefix) == "":
		prefix = r.prefix
	case r.speaker == widget.SpeakerUser:
		prefix = styles.UserPrefixStyle.Render(r.prefix)
	default:
		prefix = styles.BotPrefixStyle.Render(r.prefix)
	}
	if r.apology {
		return prefix + styles.ErrorStyle.Render(r.text)
	}
	return prefix + styles.TextStyle.Render(r.text)
}

func messagePrefix(speaker widget.Speaker) string {
	if speaker == widget.SpeakerUser {
		return "You: "
	}
	return "Bot: "
}

func (t *Transcript) reflow() {
	width := t.contentWidth()
	t.rows = t.rows[:0]
	for _, turn := range t.turns {
		prefix := messagePrefix(turn.Speaker)
		indent := strings.Repeat(" ", runewidth.StringWidth(prefix))
		apology := turn.Speaker == widget.SpeakerBot && turn.Text == widget.ApologyText

		bodyWidth := width - runewidth.StringWidth(prefix)
		if bodyWidth < 1 {
			bodyWidth = 1
		}
		for i, line := range textutil.Wrap(textutil.Sanitize(turn.Text), bodyWidth) {
			p := indent
			if i == 0 {
				p = prefix
			}
			t.rows = append(t.rows, row{prefix: p, text: line, speaker: turn.Speaker, apology: apology})
		}
	}

	if t.follow {
		t.scrollY = t.maxScroll()
		return
	}
	if t.scrollY > t.maxScroll() {
		t.scrollY = t.maxScroll()
	}
	if t.scrollY < 0 {
		t.scrollY = 0
	}
}

func (t *Transcript) contentWidth() int {
	width := t.width - 2*(borderSize+paddingH)
	if width < 1 {
		return 1
	}
	return width
}

// bodyHeight excludes the border and the title line.
func (t *Transcript) bodyHeight() int {
	height := t.height - 2*borderSize - 1
	if height < 0 {
		return 0
	}
	return height
}

func (t *Transcript) maxScroll() int {
	viewportHeight := t.bodyHeight()
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	max := len(t.rows) - viewportHeight
	if max < 0 {
		return 0
	}
	return max
}

// CopiedMsg reports text placed on the clipboard.
type CopiedMsg struct {
	Length int
}

// CopyToClipboard returns a command that writes text to out as an OSC 52
// clipboard sequence.
func CopyToClipboard(out io.Writer, text string) tea.Cmd {
	return func() tea.Msg {
		_, _ = fmt.Fprint(out, osc52.New(text))
		return CopiedMsg{Length: len(text)}
	}
}
