package editor

import (
	"os/exec"
	"testing"

	"github.com/neovim/go-client/nvim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorLine(t *testing.T) {
	tests := []struct {
		lineno, count, want int
	}{
		{0, 10, 1},
		{4, 10, 5},
		{9, 10, 10},
		{30, 10, 10},
		{0, 0, 1},
		{-3, 10, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cursorLine(tt.lineno, tt.count), "cursorLine(%d, %d)", tt.lineno, tt.count)
	}
}

func TestIntToHex(t *testing.T) {
	assert.Equal(t, "#1e1e2e", intToHex(int64(0x1e1e2e)))
	assert.Equal(t, "#00ff00", intToHex(uint64(0x00ff00)))
	assert.Equal(t, "#0000ff", intToHex(float64(255)))
	assert.Equal(t, "", intToHex("red"))
}

func TestDialWithoutSocket(t *testing.T) {
	_, err := Dial("")
	assert.Error(t, err)
}

// embedded starts a headless Neovim child, skipping when none is installed.
func embedded(t *testing.T) *Nvim {
	t.Helper()
	if _, err := exec.LookPath("nvim"); err != nil {
		t.Skip("nvim not installed")
	}
	client, err := nvim.NewChildProcess(nvim.ChildProcessArgs("-u", "NONE", "-n", "--embed", "--headless"))
	require.NoError(t, err)
	n := &Nvim{client: client}
	t.Cleanup(func() { _ = n.Close() })
	return n
}

func TestBufferTextAndJump(t *testing.T) {
	n := embedded(t)

	buf, err := n.client.CurrentBuffer()
	require.NoError(t, err)
	require.NoError(t, n.client.SetBufferLines(buf, 0, -1, false, [][]byte{
		[]byte("# Title"),
		[]byte(""),
		[]byte("## Section"),
	}))

	text, err := n.BufferText()
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\n## Section", text)

	require.NoError(t, n.JumpToLine(2))
	win, err := n.client.CurrentWindow()
	require.NoError(t, err)
	pos, err := n.client.WindowCursor(win)
	require.NoError(t, err)
	assert.Equal(t, 3, pos[0])

	require.NoError(t, n.JumpToLine(99))
	pos, err = n.client.WindowCursor(win)
	require.NoError(t, err)
	assert.Equal(t, 3, pos[0])
}
