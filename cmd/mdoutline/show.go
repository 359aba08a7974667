package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pfassina/mdoutline/internal/outline"
	"github.com/pfassina/mdoutline/internal/theme"
	"github.com/pfassina/mdoutline/internal/ui"
)

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Print the outline of a markdown file (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			headers, err := c.outlineOf(cmd, args[0])
			if err != nil {
				return err
			}
			if len(headers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no headings")
				return nil
			}
			styles := ui.NewStyles(theme.Named(c.cfg.Theme))
			fmt.Fprint(cmd.OutOrStdout(), ui.RenderOutline(headers, styles, c.cfg.ShowNumbers))
			return nil
		},
	}
}

func (c *cli) jsonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "json FILE",
		Short: "Print the outline of a markdown file as JSON (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			headers, err := c.outlineOf(cmd, args[0])
			if err != nil {
				return err
			}
			if headers == nil {
				headers = []outline.Header{}
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(headers)
		},
	}
}

// outlineOf builds the outline of a file, or of stdin when path is "-".
func (c *cli) outlineOf(cmd *cobra.Command, path string) ([]outline.Header, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return c.builder().Build(string(data)), nil
}
