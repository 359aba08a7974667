package outline

import (
	"strconv"
	"strings"
)

// MaxLevel is the deepest ATX header level.
const MaxLevel = 6

// Counter numbers headers hierarchically.
type Counter [MaxLevel]int

// Next counts a header at level (1-based) and returns its dotted section
// number. Deeper levels restart at zero. Shallower levels are left alone, so
// a level 3 header with no level 1 or 2 before it is numbered "0.0.1".
func (c *Counter) Next(level int) string {
	c[level-1]++
	for i := level; i < MaxLevel; i++ {
		c[i] = 0
	}

	parts := make([]string, level)
	for i := 0; i < level; i++ {
		parts[i] = strconv.Itoa(c[i])
	}
	return strings.Join(parts, ".")
}
