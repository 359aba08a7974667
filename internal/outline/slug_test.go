package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugRegistryAssign(t *testing.T) {
	tests := []struct {
		name  string
		bases []string
		want  []string
	}{
		{"distinct", []string{"a", "b"}, []string{"a", "b"}},
		{"repeats", []string{"text-b-c", "text-b-c", "text-b-c"}, []string{"text-b-c", "text-b-c-2", "text-b-c-3"}},
		{"interleaved", []string{"a", "b", "a", "b"}, []string{"a", "b", "a-2", "b-2"}},
		{"suffix already taken", []string{"a", "a-2", "a"}, []string{"a", "a-2", "a-3"}},
		{"base taken by a suffix", []string{"a", "a", "a-2"}, []string{"a", "a-2", "a-2-2"}},
		{"empty base", []string{"", ""}, []string{"", "-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewSlugRegistry()
			var got []string
			for _, b := range tt.bases {
				got = append(got, r.Assign(b))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
