package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ironsheep/sentiment-image-mcp/internal/config"
	"github.com/ironsheep/sentiment-image-mcp/internal/lexicon"
	"github.com/ironsheep/sentiment-image-mcp/internal/logging"
	"github.com/ironsheep/sentiment-image-mcp/internal/pipeline"
	"github.com/ironsheep/sentiment-image-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app is the state shared by every command, built once the flags are parsed.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	runner *pipeline.Runner
}

func (a *app) setup(cmd *cobra.Command, verbose bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Logs go to stderr; stdout is the MCP channel.
	a.cfg = cfg
	a.logger = logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	a.runner = pipeline.NewRunner(lexicon.NewAnalyzer(), cfg.Params(), pipeline.NewFieldCache(cfg.CacheSize), a.logger)
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))
	return nil
}

func newRootCmd() *cobra.Command {
	var verbose bool
	a := &app{}

	root := &cobra.Command{
		Use:   "sentiment-image-mcp",
		Short: "Render the sentiment of text as a color field",
		Long: `sentiment-image-mcp turns text into an image with one colored cell per word.
Strongly positive or negative words become saturated anchors whose color
diffuses into the neutral words around them.

Without a subcommand it serves the MCP protocol over stdin/stdout.
Configure it in your MCP client (e.g., Claude Desktop).`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}

	root.SetVersionTemplate(versionText())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging (same as SENTIMENT_MCP_LOG_LEVEL=debug)")

	root.AddCommand(newServeCmd(a))
	root.AddCommand(newRenderCmd(a))
	root.AddCommand(newVersionCmd())
	return root
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP requests over stdin/stdout (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	a.logger.Debug("starting server",
		"version", Version,
		"built", BuildTime,
		"commit", GitCommit,
		"workers", a.cfg.Pipeline.Workers,
		"batch_size", a.cfg.Pipeline.BatchSize)

	srv := server.New(a.cfg, a.runner, a.logger)
	srv.Version = Version
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Printing the version needs no configuration.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), versionText())
		},
	}
}

func versionText() string {
	return fmt.Sprintf("sentiment-image-mcp %s\n  Build time: %s\n  Git commit: %s\n", Version, BuildTime, GitCommit)
}
