package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pfassina/mdoutline/internal/index"
	"github.com/pfassina/mdoutline/internal/ui"
	"github.com/pfassina/mdoutline/internal/vault"
)

// openIndex opens the vault's index database and an indexer writing to it.
func (c *cli) openIndex() (*index.DB, *index.Indexer, error) {
	info, err := os.Stat(c.cfg.VaultPath)
	if err != nil {
		return nil, nil, fmt.Errorf("vault: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("vault %s is not a directory", c.cfg.VaultPath)
	}

	dbPath := c.cfg.IndexPath()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, nil, fmt.Errorf("create index dir: %w", err)
	}
	db, err := index.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}
	return db, index.NewIndexer(db, vault.New(c.cfg.VaultPath), c.builder(), c.logger), nil
}

func (c *cli) indexCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Index the headings of every note in the vault",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			db, indexer, err := c.openIndex()
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, db.Close()) }()

			n, err := indexer.IndexAll(force)
			if err != nil {
				return err
			}
			c.logger.Info("index updated", "vault", c.cfg.VaultPath, "changed", n)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "re-index notes whose content did not change")
	return cmd
}

func (c *cli) searchCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search indexed headings (FTS5 query syntax)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			db, indexer, err := c.openIndex()
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, db.Close()) }()

			if _, err := indexer.IndexAll(false); err != nil {
				return err
			}
			results, err := db.SearchHeadings(args[0], limit)
			if err != nil {
				return fmt.Errorf("search %q: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			for _, r := range results {
				label := ui.Label(r.Header)
				if c.cfg.ShowNumbers {
					label = r.Number + " " + label
				}
				fmt.Fprintf(out, "%s:%d\t%s\n", r.NotePath, r.Lineno+1, label)
			}
			if len(results) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "no matches")
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum number of results")
	return cmd
}

func (c *cli) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep the index current while notes change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			db, indexer, err := c.openIndex()
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, db.Close()) }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.watch(ctx, indexer)
		},
	}
}

// watch indexes the vault, then re-indexes changed notes until ctx is done.
func (c *cli) watch(ctx context.Context, indexer *index.Indexer) error {
	n, err := indexer.IndexAll(false)
	if err != nil {
		return err
	}
	c.logger.Info("index ready", "changed", n)

	v := vault.New(c.cfg.VaultPath)
	w, err := index.NewWatcher(indexer, c.cfg.VaultPath, func(path string) {
		c.logger.Info("reindexed", "path", v.Rel(path))
	}, func(err error) {
		c.logger.Error("watch", "err", err)
	})
	if err != nil {
		return err
	}
	go w.Start()
	c.logger.Info("watching", "vault", c.cfg.VaultPath)

	<-ctx.Done()
	return w.Stop()
}
