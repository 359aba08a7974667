package outline

import "regexp"

// LinkStripper reduces [label](target) constructs to their label.
type LinkStripper interface {
	StripLinks(text string) string
}

// InlineRenderer renders one line of inline markdown to HTML. It must not
// fail.
type InlineRenderer interface {
	RenderInline(text string) string
}

// Slugger derives an anchor base name from header text.
type Slugger interface {
	Slug(text string) string
}

// DefaultAnchorPasses bounds the anchor collapsing loop.
const DefaultAnchorPasses = 64

var (
	htmlTagPattern = regexp.MustCompile(`<[^>]+>`)
	anchorPattern  = regexp.MustCompile(`<a\s[^>]*?>([^<>]*?)</a>`)
)

// Pipeline turns raw header text into the label HTML of an outline entry.
// The stage order matters: links are stripped before tags, tags before
// formulas, and formulas are typeset before markdown rendering so that $
// inside a link target or tag never reaches the typesetter.
type Pipeline struct {
	Links        LinkStripper
	Renderer     InlineRenderer
	Typesetter   Typesetter
	AnchorPasses int
}

// Render runs every stage on the raw header text. It returns the
// link-stripped text, which anchors are derived from, along with the HTML.
func (p *Pipeline) Render(raw string) (stripped, html string) {
	stripped = p.Links.StripLinks(raw)
	s := htmlTagPattern.ReplaceAllString(stripped, "")
	s = RenderFormulas(s, p.Typesetter)
	s = p.Renderer.RenderInline(s)
	return stripped, collapseAnchors(s, p.passes())
}

func (p *Pipeline) passes() int {
	if p.AnchorPasses > 0 {
		return p.AnchorPasses
	}
	return DefaultAnchorPasses
}

// collapseAnchors replaces <a ...>inner</a> with inner, one anchor at a
// time, until none is left or max passes ran.
func collapseAnchors(s string, max int) string {
	for i := 0; i < max; i++ {
		loc := anchorPattern.FindStringSubmatchIndex(s)
		if loc == nil {
			break
		}
		s = s[:loc[0]] + s[loc[2]:loc[3]] + s[loc[1]:]
	}
	return s
}
