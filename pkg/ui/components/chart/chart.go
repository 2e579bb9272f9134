// Package chart renders the chart panel. It shows at most one chart
// reference, the one from the latest reply.
package chart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"opschat/pkg/chatbot"
	"opschat/pkg/ui/components/textutil"
	"opschat/pkg/ui/styles"

	"github.com/charmbracelet/x/ansi"
)

const (
	borderSize = 1
	paddingH   = 1
	title      = "Chart"
	emptyLabel = "No chart"
	saveHint   = "ctrl+s to save"
)

// ErrNoInlineChart is returned by Save when the panel holds no data URI.
var ErrNoInlineChart = errors.New("no inline chart to save")

// Panel is the chart region.
type Panel struct {
	resolve func(string) string
	now     func() time.Time

	src         string
	resolved    string
	description string
	shown       bool

	width  int
	height int
}

// New creates an empty panel. resolve maps a chart reference to the URL the
// hyperlink opens; nil keeps references as they are.
func New(resolve func(string) string) *Panel {
	if resolve == nil {
		resolve = func(s string) string { return s }
	}
	return &Panel{resolve: resolve, now: time.Now}
}

// ShowChart replaces the panel content with src. Control characters are
// stripped before src reaches the hyperlink or the label.
func (p *Panel) ShowChart(src string) {
	src = textutil.Sanitize(src)
	p.src = src
	p.shown = true
	p.description = Describe(src)
	if chatbot.IsDataURI(src) {
		p.resolved = ""
	} else {
		p.resolved = p.resolve(src)
	}
}

// ClearChart empties the panel.
func (p *Panel) ClearChart() {
	p.src = ""
	p.resolved = ""
	p.description = ""
	p.shown = false
}

// Source returns the chart reference on display, or "".
func (p *Panel) Source() string {
	return p.src
}

// Shown reports whether a chart is on display.
func (p *Panel) Shown() bool {
	return p.shown
}

// IsInline reports whether the current chart is a data URI.
func (p *Panel) IsInline() bool {
	return p.shown && chatbot.IsDataURI(p.src)
}

// SetSize updates the outer box size.
func (p *Panel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Save decodes an inline chart and writes it into dir. It returns the path
// of the written file.
func (p *Panel) Save(dir string) (string, error) {
	if !p.IsInline() {
		return "", ErrNoInlineChart
	}
	mediaType, data, err := chatbot.DecodeDataURI(p.src)
	if err != nil {
		return "", fmt.Errorf("failed to decode chart: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create chart directory: %w", err)
	}
	name := "chart-" + p.now().Format("20060102-150405.000") + chatbot.DataURIExtension(mediaType)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write chart: %w", err)
	}
	return path, nil
}

// View renders the panel.
func (p *Panel) View() string {
	contentWidth := p.contentWidth()
	bodyHeight := p.bodyHeight()

	lines := []string{textutil.PadStyled(styles.TitleStyle.Render(textutil.TruncateToWidth(title, contentWidth)), contentWidth)}

	var body []string
	switch {
	case !p.shown:
		body = append(body, styles.PlaceholderStyle.Render(emptyLabel))
	case chatbot.IsDataURI(p.src):
		body = append(body, styles.TextStyle.Render(textutil.TruncateToWidth(p.description, contentWidth)))
		body = append(body, styles.FooterStyle.Render(textutil.TruncateToWidth(saveHint, contentWidth)))
	case p.resolved == "":
		body = append(body, styles.TextStyle.Render(ansi.Truncate(p.description, contentWidth, "...")))
	default:
		label := ansi.Truncate(p.description, contentWidth, "...")
		link := ansi.SetHyperlink(p.resolved) + styles.LinkStyle.Render(label) + ansi.ResetHyperlink()
		body = append(body, link)
	}

	for i, line := range body {
		if i >= bodyHeight {
			break
		}
		lines = append(lines, textutil.PadStyled(line, contentWidth))
	}
	for len(lines) < 1+bodyHeight {
		lines = append(lines, strings.Repeat(" ", contentWidth))
	}

	boxWidth := p.width
	if boxWidth < 1 {
		boxWidth = 1
	}
	return styles.PanelStyle.
		Width(boxWidth).
		Padding(0, paddingH).
		Render(strings.Join(lines, "\n"))
}

func (p *Panel) contentWidth() int {
	width := p.width - 2*(borderSize+paddingH)
	if width < 1 {
		return 1
	}
	return width
}

func (p *Panel) bodyHeight() int {
	height := p.height - 2*borderSize - 1
	if height < 0 {
		return 0
	}
	return height
}

// Describe returns the text shown for a chart reference: the reference
// itself, or "inline <mime> (<size>)" for a data URI.
func Describe(src string) string {
	if !chatbot.IsDataURI(src) {
		return src
	}
	mediaType, data, err := chatbot.DecodeDataURI(src)
	if err != nil {
		return "inline chart (unreadable)"
	}
	return fmt.Sprintf("inline %s (%s)", mediaType, formatSize(len(data)))
}

func formatSize(n int) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KiB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1024*1024))
	}
}
