package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/showcase/app/routes"
	"github.com/vango-dev/showcase/internal/config"
	"github.com/vango-dev/showcase/internal/errors"
	"github.com/vango-dev/showcase/pkg/middleware"
	"github.com/vango-dev/showcase/pkg/router"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprint(os.Stderr, errors.FromError(err, "E151").Format())
		os.Exit(1)
	}
}

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	base        string
	history     string
	configPath  string
	logLevel    string
	metrics     bool
	metricsFile string

	registry *prometheus.Registry
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "showcase",
		Short: "Browse the component showcase from the terminal",
		Long: `showcase serves a small component gallery through a named route table.

Routes:
  home      /
  button    /button
  checkbox  /checkbox
  card      /card

The base URL comes from BASE_URL, showcase.json or showcase.toml,
or the --base flag.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.base, "base", "", "Base URL (default from BASE_URL or config)")
	flags.StringVar(&opts.history, "history", "", "History strategy: web, hash or memory")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to showcase.json or showcase.toml")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.BoolVar(&opts.metrics, "metrics", false, "Record navigation metrics")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "Write navigation metrics to this file when the command ends, even on failure")

	rootCmd.AddCommand(
		routesCmd(opts),
		resolveCmd(opts),
		hrefCmd(opts),
		renderCmd(opts),
		browseCmd(opts),
		versionCmd(),
	)

	return rootCmd
}

// loadConfig merges the config file, the environment and the flags.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load(".")
		if se, ok := err.(*errors.ShowcaseError); ok && se.Code == "E141" {
			cfg, err = config.New(), nil
		}
	}
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv()
	if o.base != "" {
		cfg.Base = o.base
	}
	if o.history != "" {
		cfg.History = o.history
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.metrics || o.metricsFile != "" {
		cfg.Metrics.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newRouter builds the showcase router with logging, metrics and tracing
// installed according to cfg.
func (o *globalOptions) newRouter(cfg *config.Config, logger *slog.Logger, hopts ...router.HistoryOption) (*router.Router, error) {
	table := routes.Table()
	ropts := []router.Option{
		router.WithLogger(logger.With("component", "router")),
		router.WithAfterHooks(middleware.Logging(logger)),
	}

	var metrics *middleware.Metrics
	if cfg.Metrics.Enabled {
		o.registry = prometheus.NewRegistry()
		metrics = middleware.Prometheus(
			middleware.WithNamespace(cfg.Metrics.Namespace),
			middleware.WithRegistry(o.registry),
		)
		table = routes.WrapLoaders(table, metrics.Loader)
	}
	if cfg.Tracing.Enabled {
		ropts = append(ropts, router.WithGuards(middleware.OpenTelemetry(
			middleware.WithTracerName(cfg.Tracing.TracerName),
		)))
	}

	r, err := router.New(cfg.NewHistory(hopts...), table, ropts...)
	if err != nil {
		return nil, err
	}
	if metrics != nil {
		metrics.Install(r)
	}
	return r, nil
}

// setup loads the configuration and builds the router.
func (o *globalOptions) setup(cmd *cobra.Command, hopts ...router.HistoryOption) (*router.Router, *slog.Logger, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Level())
	r, err := o.newRouter(cfg, logger, hopts...)
	if err != nil {
		return nil, nil, err
	}
	return r, logger, nil
}

// runE wraps a command body so the metrics file is written whether or not
// the body fails.
func (o *globalOptions) runE(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if werr := o.writeMetrics(); werr != nil {
			return stderrors.Join(err, fmt.Errorf("write metrics: %w", werr))
		}
		return err
	}
}

func (o *globalOptions) writeMetrics() error {
	if o.metricsFile == "" || o.registry == nil {
		return nil
	}
	return prometheus.WriteToTextfile(o.metricsFile, o.registry)
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
