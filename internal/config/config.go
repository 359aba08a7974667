package config

import (
	"os"
	"path/filepath"

	"github.com/pfassina/mdoutline/internal/vault"
)

type Config struct {
	VaultPath       string
	DBPath          string // empty means <vault>/.mdoutline/index.db
	Listen          string
	LogLevel        string
	Theme           string
	TreeWidth       int
	ShowNumbers     bool
	SkipFrontmatter bool
	NvimSocket      string
}

func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		VaultPath:       filepath.Join(home, "notes"),
		Listen:          ":2222",
		LogLevel:        "info",
		Theme:           "catppuccin",
		TreeWidth:       30,
		ShowNumbers:     true,
		SkipFrontmatter: true,
		NvimSocket:      os.Getenv("NVIM"),
	}
}

// IndexPath returns the database location for the configured vault.
func (c Config) IndexPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(c.VaultPath, vault.StateDirName, "index.db")
}
