package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"paperview/internal/config"
	"paperview/internal/dataset"
	"paperview/internal/logging"
	"paperview/internal/viewer"
)

// defaultLogFile receives logs while the terminal UI owns the screen.
const defaultLogFile = "paperview.log"

// app carries the global flags and the configuration they produce.
type app struct {
	configPath string
	source     string
	verbose    bool

	cfg *config.Config
}

// newRootCmd builds the command tree. Run without a subcommand it starts
// the interactive browser.
func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "paperview",
		Short: "Browse, filter and publish a literature-review paper list",
		Long: `paperview loads a delimited paper list (a local file or an http(s) URL),
shows it as a table and filters it by facet selectors and free-text search.

Run without arguments to start the interactive browser.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logging.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBrowse(cmd, args)
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "paperview.yaml", "Configuration file")
	root.PersistentFlags().StringVarP(&a.source, "source", "s", "", "Paper list file or URL (overrides config)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(a.browseCmd())
	root.AddCommand(a.renderCmd())
	root.AddCommand(a.serveCmd())
	root.AddCommand(a.facetsCmd())

	return root
}

// setup loads the configuration, applies flag overrides and initializes
// logging. The interactive browser logs to a file.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.source != "" {
		cfg.Source.Location = a.source
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.cfg = cfg

	opts := logging.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		Categories: cfg.Logging.Categories,
	}
	if a.verbose {
		opts.Level = "debug"
	}
	interactive := cmd.Name() == "browse" || !cmd.HasParent()
	if interactive && opts.File == "" {
		opts.File = defaultLogFile
	}
	if err := logging.Initialize(opts); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logging.Boot("config loaded from %s (source %s)", a.configPath, cfg.Source.Location)
	return nil
}

func (a *app) loader() *dataset.Loader {
	return &dataset.Loader{
		Timeout:   a.cfg.GetSourceTimeout(),
		Delimiter: a.cfg.DelimiterRune(),
	}
}

// controller loads the dataset (empty on failure) and wraps it.
func (a *app) controller(ctx context.Context) *viewer.Controller {
	ds := a.loader().Load(ctx, a.cfg.Source.Location)
	return viewer.New(ds, viewer.OptionsFromConfig(a.cfg))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
