package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"paperview/internal/dataset"
	"paperview/internal/facet"
	"paperview/internal/viewer"
)

func (a *app) facetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "facets [column]",
		Short: "List the selectable values of each filter column",
		Long: `Prints the sorted distinct values offered by every filter selector, or
the values of a single column when one is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runFacets,
	}
}

func (a *app) runFacets(cmd *cobra.Command, args []string) error {
	ld := a.loader()
	data, err := ld.Fetch(commandContext(cmd), a.cfg.Source.Location)
	if err != nil {
		return fmt.Errorf("failed to load papers: %w", err)
	}
	ds, err := dataset.ParseWith(bytes.NewReader(data), dataset.ParseOptions{Delimiter: ld.Delimiter})
	if err != nil {
		return fmt.Errorf("failed to parse papers: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(args) == 1 {
		column := args[0]
		if !ds.HasColumn(column) {
			return fmt.Errorf("unknown column %q", column)
		}
		for _, v := range facet.Values(ds, column) {
			fmt.Fprintln(out, v)
		}
		return nil
	}

	idx := facet.Build(ds, viewer.OptionsFromConfig(a.cfg).Filters)
	for _, f := range idx.Filters() {
		values := idx.Values(f.Column)
		fmt.Fprintf(out, "%s (%d): %s\n", f.Column, len(values), strings.Join(values, ", "))
	}
	return nil
}
