package markdown

import "regexp"

var (
	// ![alt](src) and [label](target "title"); the target may not contain spaces
	// unless it is followed by a quoted title.
	inlineLinkPattern = regexp.MustCompile(`!?\[([^\[\]]*)\]\(\s*[^\s()]*(?:\s+"[^"]*")?\s*\)`)
	// [label][ref]
	refLinkPattern = regexp.MustCompile(`\[([^\[\]]+)\]\[[^\[\]]*\]`)
)

// LinkStripper reduces markdown link syntax to its visible label.
type LinkStripper struct{}

// StripLinks replaces [label](url), ![alt](src) and [label][ref] with their
// label text.
// "a[text](https://example.com)b" -> "atextb"
func (LinkStripper) StripLinks(s string) string {
	// Labels can contain images: [![logo](a.png)](b)
	for i := 0; i < 4; i++ {
		next := inlineLinkPattern.ReplaceAllString(s, "$1")
		next = refLinkPattern.ReplaceAllString(next, "$1")
		if next == s {
			break
		}
		s = next
	}
	return s
}
