package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/fakehttp/pkg/config"
	"github.com/getmockd/fakehttp/pkg/logging"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// globalOptions holds the persistent flags shared by all subcommands.
type globalOptions struct {
	jsonOutput bool
	logLevel   string
	logFormat  string
}

// config returns the effective configuration: defaults, then environment,
// then flags.
func (o *globalOptions) config() *config.Config {
	cfg := config.DefaultConfig()
	config.LoadEnvConfig(cfg)
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFormat != "" {
		cfg.LogFormat = o.logFormat
	}
	return cfg
}

func (o *globalOptions) logger(cfg *config.Config, w io.Writer) *slog.Logger {
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: w,
	})
}

// NewRootCommand builds the fakehttp command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "fakehttp",
		Short: "fakehttp checks and exercises HTTP test double fixtures",
		Long: `fakehttp works with the YAML fixtures used by the fakehttp Go test double.

Use "lint" to check fixtures for contradictory or invalid matchers, and
"match" to see which fixture would answer a given request.`,
		SilenceUsage:  true,
		SilenceErrors: true, // We handle errors in Execute()
	}

	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output command results in JSON format")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (env "+config.EnvLogLevel+")")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format: text, json (env "+config.EnvLogFormat+")")

	root.AddCommand(newLintCmd(opts))
	root.AddCommand(newMatchCmd(opts))
	root.AddCommand(newVersionCmd(opts))
	return root
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
