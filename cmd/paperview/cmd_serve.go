package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"paperview/internal/server"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Publish the paper table and document folder over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			return a.runServe(cmd)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	return cmd
}

func (a *app) runServe(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl := a.controller(ctx)
	srv, err := server.New(ctrl.Snapshot().Page(), server.Options{
		DocumentsDir:    a.cfg.Viewer.DocumentsDir,
		ShutdownTimeout: a.cfg.GetShutdownTimeout(),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Serving %d papers at http://%s\n", ctrl.State().Total(), a.cfg.Server.Addr)
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop.")

	if err := srv.Run(ctx, a.cfg.Server.Addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
