// Package editor talks to a running Neovim over its RPC socket.
package editor

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/neovim/go-client/nvim"
)

// Nvim is a connection to a running Neovim instance.
type Nvim struct {
	client *nvim.Nvim
}

// Dial connects to the Neovim socket at path. It retries briefly since
// Neovim may not have the socket ready immediately.
func Dial(socketPath string) (*Nvim, error) {
	if socketPath == "" {
		return nil, errors.New("no nvim socket: start nvim with --listen or set $NVIM")
	}

	var client *nvim.Nvim
	var err error
	for i := 0; i < 50; i++ {
		client, err = nvim.Dial(socketPath)
		if err == nil {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to nvim socket: %w", err)
	}
	return &Nvim{client: client}, nil
}

// BufferName returns the file path of the current buffer.
func (n *Nvim) BufferName() (string, error) {
	buf, err := n.client.CurrentBuffer()
	if err != nil {
		return "", err
	}
	return n.client.BufferName(buf)
}

// BufferText returns the current buffer as one string, lines joined by \n.
func (n *Nvim) BufferText() (string, error) {
	buf, err := n.client.CurrentBuffer()
	if err != nil {
		return "", err
	}
	lines, err := n.client.BufferLines(buf, 0, -1, false)
	if err != nil {
		return "", err
	}
	return string(bytes.Join(lines, []byte("\n"))), nil
}

// OpenFile opens a file in the current window.
func (n *Nvim) OpenFile(path string) error {
	return n.client.ExecLua("vim.cmd('edit ' .. vim.fn.fnameescape(...))", nil, path)
}

// JumpToLine moves the cursor to a 0-based line of the current buffer and
// centers the view on it. Lines past the end land on the last line.
func (n *Nvim) JumpToLine(lineno int) error {
	buf, err := n.client.CurrentBuffer()
	if err != nil {
		return err
	}
	count, err := n.client.BufferLineCount(buf)
	if err != nil {
		return err
	}

	win, err := n.client.CurrentWindow()
	if err != nil {
		return err
	}
	if err := n.client.SetWindowCursor(win, [2]int{cursorLine(lineno, count), 0}); err != nil {
		return fmt.Errorf("set cursor: %w", err)
	}
	return n.client.Command("normal! zz")
}

// cursorLine converts a 0-based line to Neovim's 1-based cursor row,
// clamped to the buffer.
func cursorLine(lineno, count int) int {
	row := lineno + 1
	if row > count {
		row = count
	}
	if row < 1 {
		row = 1
	}
	return row
}

// Jump opens path and moves to lineno.
func (n *Nvim) Jump(path string, lineno int) error {
	current, err := n.BufferName()
	if err != nil {
		return err
	}
	if current != path {
		if err := n.OpenFile(path); err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
	}
	return n.JumpToLine(lineno)
}

// WatchBuffer calls onChange whenever the text of the current buffer may
// have changed or another buffer was entered. onChange runs on the RPC
// goroutine and must not call back into Neovim synchronously.
func (n *Nvim) WatchBuffer(onChange func()) error {
	if err := n.client.RegisterHandler("mdoutline:changed", func(args ...interface{}) {
		onChange()
	}); err != nil {
		return err
	}
	if err := n.client.Subscribe("mdoutline:changed"); err != nil {
		return err
	}

	lua := fmt.Sprintf(`
vim.api.nvim_create_augroup('MdoutlineChanged', {clear=true})
vim.api.nvim_create_autocmd({'BufEnter', 'TextChanged', 'InsertLeave', 'BufWritePost'}, {
  group = 'MdoutlineChanged',
  callback = function()
    vim.rpcnotify(%d, 'mdoutline:changed')
  end,
})
`, n.client.ChannelID())
	return n.client.ExecLua(lua, nil)
}

// ExtractColors looks up the given highlight groups and returns a map of
// group name to [fg, bg] hex strings. An empty string means the group does
// not define that attribute. Groups the colorscheme lacks are omitted.
func (n *Nvim) ExtractColors(groups []string) (map[string][2]string, error) {
	result := make(map[string][2]string, len(groups))

	for _, g := range groups {
		var raw map[string]interface{}
		err := n.client.ExecLua(
			"return vim.api.nvim_get_hl(0, {name=..., link=false})",
			&raw, g,
		)
		if err != nil {
			continue // group may not exist in this colorscheme
		}
		var pair [2]string
		if fg, ok := raw["fg"]; ok {
			pair[0] = intToHex(fg)
		}
		if bg, ok := raw["bg"]; ok {
			pair[1] = intToHex(bg)
		}
		if pair[0] != "" || pair[1] != "" {
			result[g] = pair
		}
	}

	return result, nil
}

// intToHex converts an integer-typed color value to a #rrggbb hex string.
func intToHex(v interface{}) string {
	switch n := v.(type) {
	case int64:
		return fmt.Sprintf("#%06x", n)
	case uint64:
		return fmt.Sprintf("#%06x", n)
	case float64:
		return fmt.Sprintf("#%06x", int64(n))
	default:
		return ""
	}
}

// Close closes the RPC connection.
func (n *Nvim) Close() error {
	if n.client != nil {
		return n.client.Close()
	}
	return nil
}
