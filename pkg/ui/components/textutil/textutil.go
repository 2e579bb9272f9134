package textutil

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// TruncateToWidth truncates string to width with ellipsis
func TruncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	if width <= 3 {
		return TrimToWidth(text, width)
	}
	return TrimToWidth(text, width-3) + "..."
}

// TrimToWidth trims string to width without ellipsis
func TrimToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	var sb strings.Builder
	currentWidth := 0
	for _, r := range text {
		runeWidth := runewidth.RuneWidth(r)
		if currentWidth+runeWidth > width {
			break
		}
		sb.WriteRune(r)
		currentWidth += runeWidth
	}
	return sb.String()
}

// PadStyled pads text with spaces to width, accounting for style
func PadStyled(text string, width int) string {
	if width <= 0 {
		return text
	}
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	return text + strings.Repeat(" ", width-textWidth)
}

// SplitByWidth hard-breaks text into chunks no wider than width.
func SplitByWidth(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	if text == "" {
		return []string{""}
	}

	var parts []string
	var sb strings.Builder
	currentWidth := 0

	for _, r := range text {
		runeWidth := runewidth.RuneWidth(r)
		if currentWidth+runeWidth > width && currentWidth > 0 {
			parts = append(parts, sb.String())
			sb.Reset()
			currentWidth = 0
		}
		sb.WriteRune(r)
		currentWidth += runeWidth
	}

	if sb.Len() > 0 {
		parts = append(parts, sb.String())
	}

	if len(parts) == 0 {
		return []string{""}
	}
	return parts
}

// WrapLine word-wraps one line to width. Words wider than width are split.
func WrapLine(line string, width int) []string {
	if width <= 0 {
		return []string{line}
	}
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var sb strings.Builder
	currentWidth := 0

	flush := func() {
		lines = append(lines, sb.String())
		sb.Reset()
		currentWidth = 0
	}

	for _, word := range words {
		wordWidth := runewidth.StringWidth(word)
		if wordWidth > width {
			if currentWidth > 0 {
				flush()
			}
			chunks := SplitByWidth(word, width)
			for _, chunk := range chunks[:len(chunks)-1] {
				lines = append(lines, chunk)
			}
			last := chunks[len(chunks)-1]
			sb.WriteString(last)
			currentWidth = runewidth.StringWidth(last)
			continue
		}

		needed := wordWidth
		if currentWidth > 0 {
			needed++
		}
		if currentWidth+needed > width {
			flush()
			needed = wordWidth
		}
		if currentWidth > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(word)
		currentWidth += needed
	}

	if sb.Len() > 0 {
		flush()
	}
	return lines
}

// Wrap word-wraps multi-line text, keeping existing line breaks.
func Wrap(text string, width int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		out = append(out, WrapLine(line, width)...)
	}
	return out
}

// Sanitize drops C0 and C1 control characters other than newline and tab.
func Sanitize(content string) string {
	if content == "" {
		return content
	}
	var sb strings.Builder
	sb.Grow(len(content))
	for _, r := range content {
		switch r {
		case '\n', '\t':
			sb.WriteRune(r)
			continue
		case '\r':
			continue
		}
		if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
