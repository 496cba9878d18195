package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tsawler/obsmatrix/config"
	"github.com/tsawler/obsmatrix/internal/version"
)

var (
	configPath string
	envFile    string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "obsmatrix",
	Short: "Reconcile review observations into category spreadsheets",
	Long: `obsmatrix reads a technical review report, flags the paragraphs that are
observations, assigns each one the category ("ESPECIALIDAD") heading that
governs its page, and appends new observations to the matching spreadsheet.

Spreadsheets are matched by the part of their filename before the first
underscore, e.g. ELECTRICA_matriz.xlsx receives ELECTRICA observations.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(cmd.ErrOrStderr(), logLevel, logFormat)
		if err != nil {
			return err
		}
		logger = l
		slog.SetDefault(logger)

		var envFiles []string
		if envFile != "" {
			envFiles = append(envFiles, envFile)
		}
		c, err := config.Load(configPath, envFiles...)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("obsmatrix %s\n", version.String()))

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", config.GetEnv(config.EnvPrefix+"CONFIG", ""), "YAML configuration file")
	flags.StringVar(&envFile, "env-file", "", "dotenv file to load (default .env)")
	flags.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "text", "log format (text, json)")
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
