package ui

import (
	"charm.land/lipgloss/v2"
)

const (
	headerHeight    = 1
	statusBarHeight = 1
	quickbarHeight  = 1
	inputHeight     = 3

	minMainHeight  = 4
	minSideWidth   = 24
	maxSideWidth   = 48
	minMainWidth   = 20
	chartMaxHeight = 6
)

// LayoutManager splits the window into header, transcript, side column
// (chart above alerts), quick-action bar, input and status bar.
type LayoutManager struct {
	width       int
	height      int
	hasQuickbar bool
}

// NewLayoutManager creates a new layout manager
func NewLayoutManager(hasQuickbar bool) *LayoutManager {
	return &LayoutManager{
		width:       80,
		height:      24,
		hasQuickbar: hasQuickbar,
	}
}

// SetSize updates the layout dimensions
func (lm *LayoutManager) SetSize(width, height int) {
	lm.width = width
	lm.height = height
}

// GetDimensions returns current width and height
func (lm *LayoutManager) GetDimensions() (width, height int) {
	return lm.width, lm.height
}

// MainHeight is the height shared by the transcript and the side column.
func (lm *LayoutManager) MainHeight() int {
	h := lm.height - headerHeight - inputHeight - statusBarHeight
	if lm.hasQuickbar {
		h -= quickbarHeight
	}
	if h < minMainHeight {
		return minMainHeight
	}
	return h
}

// SideWidth is the width of the chart and alert column.
func (lm *LayoutManager) SideWidth() int {
	w := lm.width / 3
	if w < minSideWidth {
		w = minSideWidth
	}
	if w > maxSideWidth {
		w = maxSideWidth
	}
	if lm.width-w < minMainWidth {
		w = lm.width - minMainWidth
	}
	if w < 1 {
		w = 1
	}
	return w
}

// TranscriptWidth is what remains beside the side column.
func (lm *LayoutManager) TranscriptWidth() int {
	w := lm.width - lm.SideWidth()
	if w < 1 {
		return 1
	}
	return w
}

// ChartHeight gives the chart panel up to half the side column.
func (lm *LayoutManager) ChartHeight() int {
	h := lm.MainHeight() / 2
	if h > chartMaxHeight {
		h = chartMaxHeight
	}
	return h
}

// AlertsHeight is the rest of the side column.
func (lm *LayoutManager) AlertsHeight() int {
	return lm.MainHeight() - lm.ChartHeight()
}

// RenderLayout stacks the sections.
func (lm *LayoutManager) RenderLayout(header, transcript, chart, alerts, quickbar, input, status string) string {
	side := lipgloss.JoinVertical(lipgloss.Left, chart, alerts)
	main := lipgloss.JoinHorizontal(lipgloss.Top, transcript, side)

	sections := []string{header, main}
	if lm.hasQuickbar {
		sections = append(sections, quickbar)
	}
	sections = append(sections, input, status)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
