package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/limaJavier/satbatch/internal/config"
	"github.com/limaJavier/satbatch/internal/logging"
)

type commandContext struct {
	configFlag    string
	logLevelFlag  string
	logFormatFlag string

	config config.Config
	logger *slog.Logger
}

// load resolves the configuration (flag path, else config.json next to the executable,
// else defaults) and builds the logger every subcommand shares.
func (c *commandContext) load(cmd *cobra.Command) error {
	cfg := config.Default()

	path := strings.TrimSpace(c.configFlag)
	if path == "" {
		path = config.Locate()
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = c.logLevelFlag
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = c.logFormatFlag
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Writer: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	if path != "" {
		logger.Debug("loaded configuration", "path", path)
	}

	c.config = cfg
	c.logger = logger
	return nil
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "satbatch",
		Short:         "Run a SAT solver over a directory tree of CNF instances",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configFlag, "config", "c", "", fmt.Sprintf("Configuration file (.json, .toml or .yaml); defaults to %v next to the executable", config.DefaultFileName))
	rootCmd.PersistentFlags().StringVar(&ctx.logLevelFlag, "log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&ctx.logFormatFlag, "log-format", "console", "Log format: console or json")

	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newSolversCommand(ctx))
	rootCmd.AddCommand(newGenerateCommand())

	return rootCmd
}
