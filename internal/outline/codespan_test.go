package outline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func lit(s string) Segment  { return Segment{Content: s} }
func code(s string) Segment { return Segment{Code: true, Content: s} }

func TestPartition(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Segment
	}{
		{"empty", "", nil},
		{"no backticks", "plain $a$ text", []Segment{lit("plain $a$ text")}},
		{"single span", "text `$a`", []Segment{lit("text "), code("`$a`")}},
		{"span then text", "`a` b", []Segment{code("`a`"), lit(" b")}},
		{"double fence", "text ``a ` b``", []Segment{lit("text "), code("``a ` b``")}},
		{"triple fence", "text ```a `` b``` text", []Segment{lit("text "), code("```a `` b```"), lit(" text")}},
		{"two spans", "text `$a` text ``b ` $c``", []Segment{
			lit("text "), code("`$a`"), lit(" text "), code("``b ` $c``"),
		}},
		{"escaped tick", "text \\` text `$a`", []Segment{lit("text \\` text "), code("`$a`")}},
		{"unclosed", "a `b", []Segment{lit("a `b")}},
		{"unclosed long opener", "a ``b` c", []Segment{lit("a ``b` c")}},
		{"unclosed then closed", "``x `y`", []Segment{lit("``x "), code("`y`")}},
		{"longer closing run", "`a``` b", []Segment{code("`a`"), lit("`` b")}},
		{"closer run splits", "`a``b`", []Segment{code("`a`"), code("`b`")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Partition(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPartitionCoversInput(t *testing.T) {
	inputs := []string{
		"`", "``", "```", "\\``a`", "a`b`c`d`e", "``` `` ` `` ```", "x ``` y", "`$a$` $b$ ``c``",
	}
	for _, in := range inputs {
		var b strings.Builder
		for _, seg := range Partition(in) {
			assert.NotEmpty(t, seg.Content, "empty segment for %q", in)
			b.WriteString(seg.Content)
		}
		assert.Equal(t, in, b.String())
	}
}
