// Package outline extracts a numbered, anchored table of contents from the
// ATX headers of a markdown document. Header-like lines inside fenced code
// blocks and HTML comments are ignored, and formulas are never typeset
// inside inline code spans.
package outline

import (
	"regexp"
	"strings"

	"github.com/pfassina/mdoutline/internal/markdown"
)

// Header is one outline entry.
type Header struct {
	Level  int    `json:"level"`
	HTML   string `json:"html"`
	Lineno int    `json:"lineno"` // 0-based line of the header in the document
	Slug   string `json:"slug"`
	Number string `json:"number"`
}

// Options tune a Builder.
type Options struct {
	// SkipFrontmatter ignores a leading --- delimited block, whose YAML
	// comments would otherwise read as headers.
	SkipFrontmatter bool
	// AnchorPasses bounds anchor collapsing; zero means DefaultAnchorPasses.
	AnchorPasses int
}

// Builder extracts outlines. It holds no per-document state, so one Builder
// can serve concurrent Build calls as long as its collaborators can.
type Builder struct {
	pipeline Pipeline
	slugger  Slugger
	opts     Options
}

// New returns a Builder wired to the goldmark based collaborators.
func New(opts Options) *Builder {
	return NewWith(
		markdown.LinkStripper{},
		markdown.NewInlineRenderer(),
		markdown.MathTypesetter{},
		markdown.Slugger{},
		opts,
	)
}

// NewWith returns a Builder using the given collaborators.
func NewWith(links LinkStripper, renderer InlineRenderer, ts Typesetter, slugger Slugger, opts Options) *Builder {
	return &Builder{
		pipeline: Pipeline{
			Links:        links,
			Renderer:     renderer,
			Typesetter:   ts,
			AnchorPasses: opts.AnchorPasses,
		},
		slugger: slugger,
		opts:    opts,
	}
}

var defaultBuilder = New(Options{})

// Headers returns the outline of doc using the default Builder.
func Headers(doc string) []Header {
	return defaultBuilder.Build(doc)
}

var (
	closingMarkerPattern = regexp.MustCompile(`\s+#*$`)
	headerPattern        = regexp.MustCompile(`^(#+)\s+(.*?)\s*$`)
)

type candidate struct {
	level int
	text  string
	line  int
}

// parseHeader extracts level and text from a line that passed Classify.
// Lines with more than six #, or no text after the marker, are rejected.
func parseHeader(line string, index int) (candidate, bool) {
	line = strings.TrimSpace(line)
	line = closingMarkerPattern.ReplaceAllString(line, "")

	m := headerPattern.FindStringSubmatch(line)
	if m == nil {
		return candidate{}, false
	}
	level := len(m[1])
	if level > MaxLevel {
		return candidate{}, false
	}
	return candidate{level: level, text: m[2], line: index}, true
}

// frontmatterLines returns the number of lines taken by a closed leading
// --- block, or 0 when the document has none.
func frontmatterLines(lines []string) int {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return 0
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return i + 1
		}
	}
	return 0
}

// Build returns the headers of doc in document order.
func (b *Builder) Build(doc string) []Header {
	var (
		ctx     Context
		counter Counter
		headers []Header
	)
	slugs := NewSlugRegistry()

	lines := strings.Split(doc, "\n")
	skip := 0
	if b.opts.SkipFrontmatter {
		skip = frontmatterLines(lines)
	}

	for i, line := range lines {
		if i < skip || !ctx.Classify(line) {
			continue
		}

		c, ok := parseHeader(line, i)
		if !ok {
			continue
		}

		stripped, html := b.pipeline.Render(c.text)
		headers = append(headers, Header{
			Level:  c.level,
			HTML:   html,
			Lineno: c.line,
			Number: counter.Next(c.level),
			Slug:   slugs.Assign(b.slugger.Slug(stripped)),
		})
	}
	return headers
}
