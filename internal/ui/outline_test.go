package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/pfassina/mdoutline/internal/outline"
)

func plainStyles() Styles {
	s := Styles{}
	s.NumberStyle = lipgloss.NewStyle()
	s.HeadingItem = lipgloss.NewStyle()
	s.NormalItem = lipgloss.NewStyle()
	return s
}

func TestRenderOutline(t *testing.T) {
	headers := []outline.Header{
		{Level: 1, HTML: "<mark>Intro</mark>", Number: "1"},
		{Level: 2, HTML: "Use <code>x</code> &amp; y", Number: "1.1"},
		{Level: 4, HTML: "Deep", Number: "1.1.0.1"},
	}

	got := RenderOutline(headers, plainStyles(), true)
	assert.Equal(t, "1 Intro\n  1.1 Use x & y\n      1.1.0.1 Deep\n", got)

	got = RenderOutline(headers, plainStyles(), false)
	assert.Equal(t, "Intro\n  Use x & y\n      Deep\n", got)
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "", Indent(1))
	assert.Equal(t, "", Indent(0))
	assert.Equal(t, "    ", Indent(3))
}
