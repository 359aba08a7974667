package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pfassina/mdoutline/internal/config"
	"github.com/pfassina/mdoutline/internal/logging"
	"github.com/pfassina/mdoutline/internal/outline"
)

var version = "0.1.0-dev"

// cli carries the resolved configuration through the subcommands.
type cli struct {
	cfg    config.Config
	logger *log.Logger
}

func main() {
	cfg := config.Default()
	if _, err := config.LoadFile(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "error loading config:", err)
		os.Exit(1)
	}

	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config) *cobra.Command {
	c := &cli{cfg: cfg}

	root := &cobra.Command{
		Use:   "mdoutline",
		Short: "Extract and browse the outline of markdown notes",
		Long: `mdoutline lists the headers of markdown documents with rendered HTML,
section numbers and unique anchor slugs. It can index a whole vault of notes,
search every heading, and browse outlines in a terminal UI, locally, over SSH
or next to a running Neovim.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.resolve()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfg.VaultPath, "vault", c.cfg.VaultPath, "path to the notes directory")
	flags.StringVar(&c.cfg.DBPath, "db", c.cfg.DBPath, "index database (default <vault>/.mdoutline/index.db)")
	flags.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level: debug|info|warn|error")
	flags.StringVar(&c.cfg.Theme, "theme", c.cfg.Theme, "color theme")
	flags.BoolVar(&c.cfg.ShowNumbers, "numbers", c.cfg.ShowNumbers, "show section numbers")
	flags.BoolVar(&c.cfg.SkipFrontmatter, "skip-frontmatter", c.cfg.SkipFrontmatter, "ignore a leading YAML frontmatter block")

	root.AddCommand(
		c.showCmd(),
		c.jsonCmd(),
		c.indexCmd(),
		c.searchCmd(),
		c.watchCmd(),
		c.tuiCmd(),
		c.serveCmd(),
		c.nvimCmd(),
		c.initCmd(),
	)
	return root
}

// resolve normalizes paths and builds the logger once flags are parsed.
func (c *cli) resolve() error {
	c.cfg.VaultPath = config.ExpandHome(c.cfg.VaultPath)
	abs, err := filepath.Abs(c.cfg.VaultPath)
	if err != nil {
		return fmt.Errorf("resolve vault path: %w", err)
	}
	c.cfg.VaultPath = abs
	if c.cfg.DBPath != "" {
		c.cfg.DBPath = config.ExpandHome(c.cfg.DBPath)
	}
	if c.logger == nil {
		c.logger = logging.Stderr(c.cfg.LogLevel)
	}
	return nil
}

func (c *cli) builder() *outline.Builder {
	return outline.New(outline.Options{SkipFrontmatter: c.cfg.SkipFrontmatter})
}
