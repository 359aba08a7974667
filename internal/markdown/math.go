package markdown

import (
	"html"
	"strings"
)

// Markdown-significant characters are written as numeric references so the
// inline renderer treats typeset output as plain text.
var mathEscaper = strings.NewReplacer(
	"*", "&#42;",
	"_", "&#95;",
	"`", "&#96;",
	"~", "&#126;",
	"=", "&#61;",
	"[", "&#91;",
	"]", "&#93;",
	"\\", "&#92;",
	"$", "&#36;",
)

// MathTypesetter renders TeX formula sources as inline markup of the form
// <span class="math inline">...</span>, ready for client-side typesetting.
// It never fails: malformed input is emitted escaped as-is.
type MathTypesetter struct{}

func (MathTypesetter) Typeset(formula string) string {
	src := strings.TrimSpace(formula)
	if src == "" {
		return ""
	}
	return `<span class="math inline">` + mathEscaper.Replace(html.EscapeString(src)) + `</span>`
}
