package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"paperview/internal/render"
	"paperview/internal/tui"
	"paperview/internal/viewer"
)

type renderFlags struct {
	output   string
	search   string
	filters  []string
	format   string
	bodyOnly bool
}

func (a *app) renderCmd() *cobra.Command {
	f := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the (optionally filtered) table as HTML or text",
		Long: `Renders the paper table once and writes it to stdout or a file.
Filters use the column name as shown in the data file:

  paperview render --filter Year=2021 --search robot -o papers.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&f.search, "search", "", "Free-text search term")
	cmd.Flags().StringArrayVarP(&f.filters, "filter", "f", nil, "Facet selection as column=value (repeatable)")
	cmd.Flags().StringVar(&f.format, "format", "html", "Output format: html or text")
	cmd.Flags().BoolVar(&f.bodyOnly, "body-only", false, "Write only the table body rows (html)")

	return cmd
}

// parseFilter splits a column=value selection.
func parseFilter(s string) (string, string, error) {
	column, value, ok := strings.Cut(s, "=")
	column = strings.TrimSpace(column)
	if !ok || column == "" {
		return "", "", fmt.Errorf("invalid filter %q: want column=value", s)
	}
	return column, value, nil
}

// applyFlags replays the command line selections on ctrl the way the
// controls would.
func applyFlags(ctrl *viewer.Controller, f *renderFlags) error {
	idx := ctrl.State().Facets
	for _, raw := range f.filters {
		column, value, err := parseFilter(raw)
		if err != nil {
			return err
		}
		if !idx.Indexed(column) {
			return fmt.Errorf("unknown filter column %q", column)
		}
		ctrl.Select(column, value)
	}
	if f.search != "" {
		ctrl.Search(f.search)
	}
	return nil
}

func (a *app) runRender(cmd *cobra.Command, f *renderFlags) error {
	switch f.format {
	case "html", "text":
	default:
		return fmt.Errorf("unknown format %q (want html or text)", f.format)
	}
	if f.bodyOnly && f.format != "html" {
		return fmt.Errorf("--body-only requires --format html")
	}

	ctrl := a.controller(commandContext(cmd))
	if err := applyFlags(ctrl, f); err != nil {
		return err
	}
	snap := ctrl.Snapshot()

	var out io.Writer = cmd.OutOrStdout()
	if f.output != "" {
		file, err := os.Create(f.output)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer func() { _ = file.Close() }()
		out = file
	}

	if f.format == "text" {
		_, err := io.WriteString(out, tui.RenderText(snap.Title, snap.Table, tui.DefaultStyles(), 0))
		return err
	}
	if f.bodyOnly {
		if err := render.WriteBody(out, snap.Table); err != nil {
			return fmt.Errorf("failed to render rows: %w", err)
		}
		return nil
	}
	if err := render.WritePage(out, snap.Page()); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
