package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"paperview/internal/tui"
)

func (a *app) browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the paper list interactively",
		Long: `Opens the interactive table. Tab moves between the search field, the
filter selectors and the table; left/right change a selector, ctrl+l
clears every filter and enter shows the selected paper.`,
		Args: cobra.NoArgs,
		RunE: a.runBrowse,
	}
}

func (a *app) runBrowse(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl := a.controller(ctx)
	return tui.Run(ctx, ctrl, tui.DefaultStyles())
}

// commandContext returns cmd's context, or Background when run outside
// Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
