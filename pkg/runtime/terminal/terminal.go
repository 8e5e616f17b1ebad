package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/de-tools/survey-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/survey-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/survey-atlas/pkg/store/survey"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	registry  survey.Registry
	reporter  *export.Reporter
	logOutput io.Writer
	logLevel  string
	logFormat string
	rootCmd   *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry  survey.Registry
	Output    io.Writer
	LogOutput io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	if opts.Registry == nil {
		opts.Registry = survey.DefaultRegistry()
	}

	cli := &CLI{
		registry:  opts.Registry,
		reporter:  export.NewReporter(opts.Output),
		logOutput: opts.LogOutput,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// ExecuteArgs runs the CLI with explicit arguments instead of os.Args
func (cli *CLI) ExecuteArgs(args []string) error {
	cli.rootCmd.SetArgs(args)
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "survey-atlas",
		Short:             "Survey response summary tool",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.setup,
	}

	cmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&cli.logFormat, "log-format", "console", "Log format (console or json)")

	cmd.AddCommand(commands.NewRunCmd(cli.registry))
	cmd.AddCommand(commands.NewSummarizeCmd(cli.registry, cli.reporter))
	cmd.AddCommand(commands.NewColumnsCmd(cli.registry))

	return cmd
}

func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	level, err := zerolog.ParseLevel(strings.ToLower(cli.logLevel))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cli.logLevel, err)
	}

	var w io.Writer
	switch cli.logFormat {
	case "json":
		w = cli.logOutput
	case "console":
		w = zerolog.ConsoleWriter{Out: cli.logOutput, NoColor: true}
	default:
		return fmt.Errorf("invalid log format %q", cli.logFormat)
	}

	logger := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()

	if err := godotenv.Load(); err != nil {
		logger.Debug().Err(err).Msg("no .env file loaded")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.WithContext(ctx))
	return nil
}
