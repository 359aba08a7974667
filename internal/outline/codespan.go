package outline

import "strings"

// Segment is a slice of a line that is either literal text or a code span.
// Code span content keeps its backtick delimiters.
type Segment struct {
	Code    bool
	Content string
}

// Partition splits line into alternating literal and code span segments.
// Concatenating the contents of the result yields line.
//
// A backtick run of length n opens a span that is closed by the first n
// backticks of the next run at least n long; shorter runs inside the span
// are content. A backtick preceded by a backslash never opens a span, and an
// opener without a closer is literal text.
func Partition(line string) []Segment {
	var segs []Segment
	literalStart := 0

	for i := 0; i < len(line); {
		rel := strings.IndexByte(line[i:], '`')
		if rel < 0 {
			break
		}
		start := i + rel

		if start > 0 && line[start-1] == '\\' {
			i = start + 1
			continue
		}

		n := runLength(line, start)
		end := findCloser(line, start+n, n)
		if end < 0 {
			i = start + n
			continue
		}

		if start > literalStart {
			segs = append(segs, Segment{Content: line[literalStart:start]})
		}
		segs = append(segs, Segment{Code: true, Content: line[start:end]})
		literalStart = end
		i = end
	}

	if literalStart < len(line) {
		segs = append(segs, Segment{Content: line[literalStart:]})
	}
	return segs
}

func runLength(s string, i int) int {
	n := 0
	for i+n < len(s) && s[i+n] == '`' {
		n++
	}
	return n
}

// findCloser returns the index just past the closing fence of length n, or
// -1 when no run of at least n backticks follows from.
func findCloser(s string, from, n int) int {
	for i := from; i < len(s); {
		if s[i] != '`' {
			i++
			continue
		}
		run := runLength(s, i)
		if run >= n {
			return i + n
		}
		i += run
	}
	return -1
}
