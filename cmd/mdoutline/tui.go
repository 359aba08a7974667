package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pfassina/mdoutline/internal/app"
	"github.com/pfassina/mdoutline/internal/config"
	"github.com/pfassina/mdoutline/internal/editor"
	"github.com/pfassina/mdoutline/internal/logging"
	"github.com/pfassina/mdoutline/internal/ssh"
	"github.com/pfassina/mdoutline/internal/theme"
	"github.com/pfassina/mdoutline/internal/vault"
)

func (c *cli) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse note outlines in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			db, indexer, err := c.openIndex()
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, db.Close()) }()

			// The terminal belongs to the UI; log to the state dir instead.
			stateDir, err := vault.New(c.cfg.VaultPath).StateDir()
			if err != nil {
				return err
			}
			logFile, err := logging.OpenFile(filepath.Join(stateDir, "mdoutline.log"), c.cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, logFile.Close()) }()

			deps := app.Deps{
				DB:      db,
				Indexer: indexer,
				Builder: c.builder(),
				Logger:  logFile.Logger,
				Watch:   true,
			}
			if c.cfg.NvimSocket != "" {
				nv, err := editor.Dial(c.cfg.NvimSocket)
				if err != nil {
					logFile.Warn("running without neovim", "err", err)
				} else {
					defer nv.Close()
					deps.Jumper = nv
				}
			}

			a := app.New(c.cfg, deps)
			p := tea.NewProgram(a, tea.WithAltScreen())
			a.SetProgram(p)
			_, err = p.Run()
			a.Close()
			return err
		},
	}
}

func (c *cli) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the outline browser over SSH",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			db, indexer, err := c.openIndex()
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, db.Close()) }()

			s, err := ssh.New(c.cfg, db, c.logger)
			if err != nil {
				return err
			}

			// Graceful shutdown on SIGINT/SIGTERM.
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			watchDone := make(chan error, 1)
			go func() {
				err := c.watch(ctx, indexer)
				if err != nil {
					stop()
				}
				watchDone <- err
			}()
			go func() {
				<-ctx.Done()
				if err := s.Close(); err != nil {
					c.logger.Error("close server", "err", err)
				}
			}()

			serveErr := s.ListenAndServe()
			stop()
			return errors.Join(serveErr, <-watchDone)
		},
	}
	cmd.Flags().StringVar(&c.cfg.Listen, "listen", c.cfg.Listen, "listen address (e.g. :2222)")
	return cmd
}

func (c *cli) nvimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nvim",
		Short: "Show the outline of the current Neovim buffer",
		Long: `Connects to a running Neovim (its --listen socket, or $NVIM inside a
Neovim terminal) and shows the outline of the current buffer, following edits.
Enter moves the Neovim cursor to the selected heading.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nv, err := editor.Dial(c.cfg.NvimSocket)
			if err != nil {
				return err
			}
			defer nv.Close()

			th := theme.Named(c.cfg.Theme)
			if colors, err := nv.ExtractColors(theme.Groups()); err == nil {
				th = theme.FromExtracted(colors, th)
			}

			f := app.NewFollower(c.cfg, nv, nv, th)
			p := tea.NewProgram(f, tea.WithAltScreen())
			f.SetProgram(p)
			if err := nv.WatchBuffer(f.Notify); err != nil {
				return fmt.Errorf("watch buffer: %w", err)
			}
			_, err = p.Run()
			return err
		},
	}
	cmd.Flags().StringVar(&c.cfg.NvimSocket, "socket", c.cfg.NvimSocket, "neovim RPC socket (default $NVIM)")
	return cmd
}

func (c *cli) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Choose the notes directory and save it to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := config.RunSetup(c.cfg.VaultPath)
			if err != nil {
				return fmt.Errorf("setup: %w", err)
			}
			if res.Cancelled {
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "vault %s (%d notes) saved to %s\n", res.VaultPath, res.Notes, config.ConfigPath())
			return nil
		},
	}
}
