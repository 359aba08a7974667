package ui

import (
	"strings"

	"github.com/pfassina/mdoutline/internal/markdown"
	"github.com/pfassina/mdoutline/internal/outline"
)

// Label is the terminal text of a header: its HTML with tags dropped.
func Label(h outline.Header) string {
	return markdown.PlainText(h.HTML)
}

// Indent returns the left padding for a header level.
func Indent(level int) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("  ", level-1)
}

// RenderOutline draws headers as an indented list, one per line.
func RenderOutline(headers []outline.Header, s Styles, numbers bool) string {
	var b strings.Builder
	for _, h := range headers {
		b.WriteString(Indent(h.Level))
		if numbers {
			b.WriteString(s.NumberStyle.Render(h.Number))
			b.WriteByte(' ')
		}
		label := Label(h)
		if h.Level == 1 {
			b.WriteString(s.HeadingItem.Render(label))
		} else {
			b.WriteString(s.NormalItem.Render(label))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
