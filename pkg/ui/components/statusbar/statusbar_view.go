package statusbar

import (
	"fmt"
	"strings"

	"opschat/pkg/ui/styles"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

const (
	prefix   = "[opschat] "
	minWidth = 10
)

// StatusBarView handles the status bar rendering with Lipgloss
type StatusBarView struct {
	endpoint string
	message  string
	version  string
	pending  int
	width    int
	style    lipgloss.Style
}

// NewStatusBarView creates a new status bar view
func NewStatusBarView(endpoint, version string) *StatusBarView {
	return &StatusBarView{
		endpoint: endpoint,
		version:  version,
		width:    80,
		style:    styles.StatusBarStyle,
	}
}

// SetMessage sets a temporary message shown in place of the endpoint.
// An empty message restores the endpoint.
func (s *StatusBarView) SetMessage(msg string) {
	s.message = strings.TrimSpace(msg)
}

// Message returns the temporary message, if any.
func (s *StatusBarView) Message() string {
	return s.message
}

// SetPending updates the number of requests in flight.
func (s *StatusBarView) SetPending(n int) {
	if n < 0 {
		n = 0
	}
	s.pending = n
}

// SetWidth updates the width for rendering
func (s *StatusBarView) SetWidth(width int) {
	s.width = width
}

// SetTheme switches between the default, cyan and dark styles.
func (s *StatusBarView) SetTheme(theme string) {
	s.style = styles.StatusBarTheme(theme)
}

// Render returns the styled status bar string, exactly width cells wide.
func (s *StatusBarView) Render() string {
	width := s.width
	if width < minWidth {
		width = minWidth
	}
	inner := width - s.style.GetHorizontalFrameSize()

	label := s.endpoint
	if s.message != "" {
		label = s.message
	}
	right := fmt.Sprintf("| pending: %d | %s", s.pending, s.version)

	// The right side stays visible; the label gives way first.
	avail := inner - ansi.StringWidth(prefix) - ansi.StringWidth(right) - 1
	var content string
	if avail >= 1 {
		if s.message == "" {
			label = truncateEndpoint(label, avail)
		} else if ansi.StringWidth(label) > avail {
			label = ansi.Truncate(label, avail, "...")
		}
		left := prefix + label
		gap := inner - ansi.StringWidth(left) - ansi.StringWidth(right)
		content = left + strings.Repeat(" ", gap) + right
	} else {
		content = ansi.Truncate(strings.TrimPrefix(right, "| "), inner, "...")
		content += strings.Repeat(" ", max(0, inner-ansi.StringWidth(content)))
	}

	return s.style.Render(content)
}

// truncateEndpoint shortens a URL to maxWidth cells: the scheme is dropped
// first, then the tail is cut.
func truncateEndpoint(endpoint string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if ansi.StringWidth(endpoint) <= maxWidth {
		return endpoint
	}
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(endpoint, scheme) {
			endpoint = strings.TrimPrefix(endpoint, scheme)
			break
		}
	}
	if ansi.StringWidth(endpoint) <= maxWidth {
		return endpoint
	}
	return ansi.Truncate(endpoint, maxWidth, "..")
}
