// Package alerts renders the alert panel. Each reply replaces the whole
// list.
package alerts

import (
	"fmt"
	"strings"

	"opschat/pkg/ui/components/textutil"
	"opschat/pkg/ui/styles"
)

const (
	borderSize = 1
	paddingH   = 1
	bullet     = "! "
	emptyLabel = "No alerts"
)

// Panel is the alert region.
type Panel struct {
	alerts []string
	width  int
	height int
}

// New creates an empty alert panel.
func New() *Panel {
	return &Panel{}
}

// SetAlerts replaces every alert line. An empty list empties the panel.
func (p *Panel) SetAlerts(alerts []string) {
	p.alerts = append(p.alerts[:0:0], alerts...)
}

// Alerts returns a copy of the displayed alerts.
func (p *Panel) Alerts() []string {
	return append([]string(nil), p.alerts...)
}

// SetSize updates the outer box size.
func (p *Panel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// View renders the panel. Alerts that do not fit collapse into a
// "+N more" line.
func (p *Panel) View() string {
	contentWidth := p.contentWidth()
	bodyHeight := p.bodyHeight()

	heading := "Alerts"
	if len(p.alerts) > 0 {
		heading = fmt.Sprintf("Alerts (%d)", len(p.alerts))
	}
	lines := []string{textutil.PadStyled(styles.TitleStyle.Render(textutil.TruncateToWidth(heading, contentWidth)), contentWidth)}

	body := p.bodyLines(contentWidth, bodyHeight)
	for _, line := range body {
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

func (p *Panel) bodyLines(width, height int) []string {
	if height <= 0 {
		return nil
	}
	if len(p.alerts) == 0 {
		return []string{styles.PlaceholderStyle.Render(emptyLabel)}
	}

	var rows []string
	for _, alert := range p.alerts {
		text := strings.Join(strings.Fields(textutil.Sanitize(alert)), " ")
		rows = append(rows, bullet+textutil.TruncateToWidth(text, width-len(bullet)))
	}
	if len(rows) > height {
		hidden := len(rows) - height + 1
		rows = append(rows[:height-1], fmt.Sprintf("+%d more", hidden))
		out := make([]string, 0, len(rows))
		for _, r := range rows[:len(rows)-1] {
			out = append(out, styles.AlertStyle.Render(r))
		}
		return append(out, styles.FooterStyle.Render(rows[len(rows)-1]))
	}

	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, styles.AlertStyle.Render(r))
	}
	return out
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
