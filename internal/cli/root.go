package cli

import (
	"fmt"

	"github.com/Adda-Baaj/pride-client/internal/app"
	"github.com/Adda-Baaj/pride-client/internal/config"
	"github.com/Adda-Baaj/pride-client/internal/logger"
	"github.com/Adda-Baaj/pride-client/pkg/pride"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	baseURL  string
	verbose  bool
	cache    bool
	output   string
	logLevel string
}

// NewRootCmd creates the root cobra command for the pride CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "pride",
		Short:         "Query the PRIDE proteomics archive",
		Long:          "pride fetches project details, project lists and project counts from the PRIDE archive web service.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_, err := parseFormat(opts.output)
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.baseURL, "base-url", pride.BaseURL, "PRIDE archive base URL (or PRIDE_BASE_URL env)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Log each request at info level")
	pf.BoolVar(&opts.cache, "cache", false, "Cache responses locally (see PRIDE_CACHE_TYPE)")
	pf.StringVarP(&opts.output, "output", "o", formatJSON, "Output format (json, yaml)")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newProjectCmd(opts),
		newListCmd(opts),
		newCountCmd(opts),
	)

	return root
}

// withClient loads config, applies the flags the user passed, and runs fn
// against a ready client. Resources are released when fn returns.
func withClient(cmd *cobra.Command, opts *rootOptions, fn func(*pride.Client) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlags(cmd, opts, cfg)

	log, err := logger.InitWriter(cfg, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.DebugObj("pride starting", "config", cfg)

	a, err := app.New(cfg, logger.Wrap(log))
	if err != nil {
		logger.ErrorObj("failed to initialize client", "error", err)
		return err
	}
	defer a.Close()

	return fn(a.Client())
}

// applyFlags overrides config only with flags set on the command line.
func applyFlags(cmd *cobra.Command, opts *rootOptions, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = opts.baseURL
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	if flags.Changed("cache") {
		cfg.CacheEnabled = opts.cache
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
}
