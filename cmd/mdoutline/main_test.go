package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfassina/mdoutline/internal/config"
	"github.com/pfassina/mdoutline/internal/outline"
)

func run(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	cfg := config.Default()
	cfg.VaultPath = t.TempDir()

	root := newRootCmd(cfg)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func TestJSONFromStdin(t *testing.T) {
	out := run(t, "# Intro\ntext\n## **Setup**\n## Setup\n", "json", "-")

	var headers []outline.Header
	require.NoError(t, json.Unmarshal([]byte(out), &headers))
	require.Len(t, headers, 3)

	assert.Equal(t, "1", headers[0].Number)
	assert.Equal(t, "<strong>Setup</strong>", headers[1].HTML)
	assert.Equal(t, 2, headers[1].Lineno)
	assert.Equal(t, "1.1", headers[1].Number)
	assert.Equal(t, "setup", headers[1].Slug)
	assert.Equal(t, "setup-2", headers[2].Slug)
}

func TestJSONEmpty(t *testing.T) {
	out := run(t, "no headers here\n", "json", "-")
	assert.Equal(t, "[]\n", out)
}

func TestShowFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("# Intro\n## Setup\n"), 0644))

	out := run(t, "", "show", path)
	assert.Contains(t, out, "1 Intro")
	assert.Contains(t, out, "  1.1 Setup")

	out = run(t, "", "show", "--numbers=false", path)
	assert.NotContains(t, out, "1.1")
}

func TestShowMissingFile(t *testing.T) {
	root := newRootCmd(config.Default())
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"show", filepath.Join(t.TempDir(), "missing.md")})
	assert.Error(t, root.Execute())
}

func TestIndexAndSearch(t *testing.T) {
	vaultDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(vaultDir, "plan.md"), []byte("# Plan\n## Installing things\n"), 0644))

	run(t, "", "index", "--vault", vaultDir)
	_, err := os.Stat(filepath.Join(vaultDir, ".mdoutline", "index.db"))
	require.NoError(t, err)

	out := run(t, "", "search", "--vault", vaultDir, "install")
	assert.Contains(t, out, "plan.md:2")
	assert.Contains(t, out, "Installing things")
}
