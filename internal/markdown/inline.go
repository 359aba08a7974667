package markdown

import (
	"bytes"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// InlineRenderer renders a single line of markdown to an HTML fragment.
// Only inline constructs are recognized: a header text like "1. intro" or
// "- item" stays text instead of turning into a list.
type InlineRenderer struct {
	md goldmark.Markdown
}

func NewInlineRenderer() *InlineRenderer {
	p := parser.NewParser(
		parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
		parser.WithInlineParsers(parser.DefaultInlineParsers()...),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
	)
	return &InlineRenderer{
		md: goldmark.New(
			goldmark.WithParser(p),
			goldmark.WithExtensions(
				extension.Strikethrough,
				Mark,
			),
			goldmark.WithRendererOptions(
				ghtml.WithUnsafe(), // typeset formulas arrive as raw HTML
			),
		),
	}
}

// RenderInline returns the HTML for s without the surrounding paragraph.
// A render failure falls back to the escaped source.
func (r *InlineRenderer) RenderInline(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	src := []byte(s)
	doc := r.md.Parser().Parse(text.NewReader(src))

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, doc); err != nil {
		return html.EscapeString(s)
	}

	out := strings.TrimSpace(buf.String())
	out = strings.TrimPrefix(out, "<p>")
	out = strings.TrimSuffix(out, "</p>")
	return out
}
