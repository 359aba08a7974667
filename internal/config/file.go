package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors Config with pointer fields so we can distinguish
// "not set" from zero values when merging TOML.
type fileConfig struct {
	VaultPath       *string `toml:"vault_path"`
	DBPath          *string `toml:"db_path"`
	Listen          *string `toml:"listen"`
	LogLevel        *string `toml:"log_level"`
	Theme           *string `toml:"theme"`
	TreeWidth       *int    `toml:"tree_width"`
	ShowNumbers     *bool   `toml:"show_numbers"`
	SkipFrontmatter *bool   `toml:"skip_frontmatter"`
	NvimSocket      *string `toml:"nvim_socket"`
}

// ConfigDir returns the mdoutline config directory, respecting XDG_CONFIG_HOME.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mdoutline")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "mdoutline")
}

// ConfigPath returns the full path to config.toml.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LoadFile reads config.toml and merges non-nil fields into cfg.
// Returns true if the file existed, false otherwise.
func LoadFile(cfg *Config) (bool, error) {
	path := ConfigPath()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return true, fmt.Errorf("parse %s: %w", path, err)
	}

	if fc.VaultPath != nil {
		cfg.VaultPath = ExpandHome(*fc.VaultPath)
	}
	if fc.DBPath != nil {
		cfg.DBPath = ExpandHome(*fc.DBPath)
	}
	if fc.Listen != nil {
		cfg.Listen = *fc.Listen
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.Theme != nil {
		cfg.Theme = *fc.Theme
	}
	if fc.TreeWidth != nil {
		cfg.TreeWidth = *fc.TreeWidth
	}
	if fc.ShowNumbers != nil {
		cfg.ShowNumbers = *fc.ShowNumbers
	}
	if fc.SkipFrontmatter != nil {
		cfg.SkipFrontmatter = *fc.SkipFrontmatter
	}
	if fc.NvimSocket != nil {
		cfg.NvimSocket = ExpandHome(*fc.NvimSocket)
	}

	return true, nil
}

// SaveFile writes a minimal config.toml with the given vault path.
func SaveFile(vaultPath string) (err error) {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Store with ~ for readability if under home dir.
	home, _ := os.UserHomeDir()
	display := vaultPath
	if home != "" && strings.HasPrefix(vaultPath, home+string(os.PathSeparator)) {
		display = "~" + vaultPath[len(home):]
	}

	fc := fileConfig{VaultPath: &display}
	f, err := os.Create(filepath.Join(dir, "config.toml"))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	return toml.NewEncoder(f).Encode(fc)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, _ := os.UserHomeDir()
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
