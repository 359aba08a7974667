package outline

import (
	"regexp"
	"strings"
)

var formulaPattern = regexp.MustCompile(`\$.+?\$`)

// Typesetter renders the source of an inline formula (without its $
// delimiters). Implementations must not fail; malformed input degrades to a
// best-effort rendering.
type Typesetter interface {
	Typeset(formula string) string
}

// RenderFormulas replaces every $...$ formula outside code spans with its
// typeset form. Code spans are copied through untouched.
func RenderFormulas(line string, ts Typesetter) string {
	render := func(s string) string {
		return formulaPattern.ReplaceAllStringFunc(s, func(m string) string {
			return ts.Typeset(m[1 : len(m)-1])
		})
	}

	if !strings.Contains(line, "`") {
		return render(line)
	}

	var b strings.Builder
	b.Grow(len(line))
	for _, seg := range Partition(line) {
		if seg.Code {
			b.WriteString(seg.Content)
		} else {
			b.WriteString(render(seg.Content))
		}
	}
	return b.String()
}
