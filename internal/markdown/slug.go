package markdown

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugFormulaPattern = regexp.MustCompile(`\$.+?\$`)

// Slugger turns header text into an anchor base name.
type Slugger struct{}

// Slug converts text to a lowercase, hyphenated anchor name. Inline formulas
// ($...$) are dropped, accents are folded ("Café" -> "cafe"), letters and
// digits of any script are kept and every other character is removed.
func (Slugger) Slug(text string) string {
	return Slugify(slugFormulaPattern.ReplaceAllString(text, ""))
}

// Slugify converts a title to a URL-friendly slug.
func Slugify(title string) string {
	// Chained transformers keep state, so each call builds its own.
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, title)
	if err != nil {
		folded = title
	}
	s := strings.ToLower(folded)

	var buf strings.Builder
	pendingHyphen := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			if pendingHyphen && buf.Len() > 0 {
				buf.WriteByte('-')
			}
			pendingHyphen = false
			buf.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			pendingHyphen = true
		}
	}
	return buf.String()
}
