package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterNext(t *testing.T) {
	tests := []struct {
		name   string
		levels []int
		want   []string
	}{
		{"siblings", []int{1, 2, 2, 2}, []string{"1", "1.1", "1.2", "1.3"}},
		{"deeper levels restart", []int{1, 2, 3, 3, 2, 3}, []string{"1", "1.1", "1.1.1", "1.1.2", "1.2", "1.2.1"}},
		{"skipped ancestors read zero", []int{3, 3, 1, 3}, []string{"0.0.1", "0.0.2", "1", "1.0.1"}},
		{"new top level", []int{1, 2, 1, 2}, []string{"1", "1.1", "2", "2.1"}},
		{"all levels", []int{1, 2, 3, 4, 5, 6}, []string{"1", "1.1", "1.1.1", "1.1.1.1", "1.1.1.1.1", "1.1.1.1.1.1"}},
		{"shallower keeps deeper ancestors", []int{2, 4, 2, 4}, []string{"0.1", "0.1.0.1", "0.2", "0.2.0.1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Counter
			var got []string
			for _, l := range tt.levels {
				got = append(got, c.Next(l))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
