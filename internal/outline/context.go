package outline

import (
	"regexp"
	"strings"
)

var (
	closedFencePattern = regexp.MustCompile("```.+?```")
	fenceOpenPattern   = regexp.MustCompile("^\\s{0,3}```")
	headerLinePattern  = regexp.MustCompile(`^ {0,3}#`)
)

// Context tracks the multi-line constructs that hide header lines. The zero
// value is the state at the top of a document.
type Context struct {
	InFence   bool
	InComment bool
}

// Classify reports whether line may be a header, updating the context for
// fence and comment delimiters found on it. Fence and comment delimiter
// lines are never headers themselves.
//
// Any line containing "-->" clears InComment, whether or not a comment was
// open.
func (c *Context) Classify(line string) bool {
	if !closedFencePattern.MatchString(line) && fenceOpenPattern.MatchString(line) {
		c.InFence = !c.InFence
		return false
	}

	opens := strings.Contains(line, "<!--")
	closes := strings.Contains(line, "-->")
	if opens && !closes {
		c.InComment = true
		return false
	}
	if closes {
		c.InComment = false
		return false
	}

	if c.InFence || c.InComment {
		return false
	}

	return headerLinePattern.MatchString(line)
}
