package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	type step struct {
		line   string
		header bool
		ctx    Context
	}

	tests := []struct {
		name  string
		steps []step
	}{
		{
			name: "header lines",
			steps: []step{
				{"# h1", true, Context{}},
				{"   ### indented three", true, Context{}},
				{"    # indented four", false, Context{}},
				{"text # not leading", false, Context{}},
				{"#no space", true, Context{}}, // rejected later by parseHeader
			},
		},
		{
			name: "fence toggles",
			steps: []step{
				{"```go", false, Context{InFence: true}},
				{"# hidden", false, Context{InFence: true}},
				{"```", false, Context{}},
				{"# visible", true, Context{}},
			},
		},
		{
			name: "indented fence up to three spaces",
			steps: []step{
				{"   ```", false, Context{InFence: true}},
				{"   ```", false, Context{}},
				{"    ```", false, Context{}},
			},
		},
		{
			name: "self closed fence does not toggle",
			steps: []step{
				{"```inline```", false, Context{}},
				{"# after", true, Context{}},
				{"# with ```code``` inside", true, Context{}},
			},
		},
		{
			name: "comment block",
			steps: []step{
				{"<!--", false, Context{InComment: true}},
				{"# hidden", false, Context{InComment: true}},
				{"```", false, Context{InComment: true, InFence: true}},
				{"end -->", false, Context{InFence: true}},
			},
		},
		{
			name: "one line comment",
			steps: []step{
				{"<!-- note -->", false, Context{}},
				{"# shown", true, Context{}},
			},
		},
		{
			name: "closer without opener still clears",
			steps: []step{
				{"stray -->", false, Context{}},
				{"# shown", true, Context{}},
			},
		},
		{
			name: "fence wins over comment markers",
			steps: []step{
				{"```<!--", false, Context{InFence: true}},
				{"```", false, Context{}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ctx Context
			for i, s := range tt.steps {
				got := ctx.Classify(s.line)
				assert.Equal(t, s.header, got, "step %d %q", i, s.line)
				assert.Equal(t, s.ctx, ctx, "step %d %q", i, s.line)
			}
		})
	}
}
