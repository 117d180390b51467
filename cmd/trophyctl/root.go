package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/joshuapare/trophykit/internal/config"
	"github.com/joshuapare/trophykit/internal/logging"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	configPath string
	logFormat  string
	logDir     string

	// Resolved by setup before any command runs.
	cfg      = config.Default()
	logger   = logging.Discard
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "trophyctl",
	Short: "Decode trophy progress files and track a trophy profile",
	Long: `trophyctl reads per-game trophy directories (TROPUSR.DAT progress files
and TROPCONF.SFM descriptors), reconciles them into games, and keeps a profile
with points and level up to date.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return setup() },
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logs")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format on stderr: text or json")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Write JSON logs to dated files in this directory")
}

// setup resolves configuration (defaults, file, flags) and builds the logger.
func setup() error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logFormat != "" {
		c.Log.Format = logFormat
	}
	if logDir != "" {
		c.Log.Dir = logDir
	}
	if verbose {
		c.Log.Level = "debug"
	}
	if err := c.Validate(); err != nil {
		return err
	}
	level, _ := c.Log.SlogLevel()

	l, closeFn, err := logging.New(logging.Options{Level: level, Format: c.Log.Format, Dir: c.Log.Dir})
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	cfg, logger, closeLog = c, l, closeFn
	slog.SetDefault(logger)
	return nil
}

func execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError("%v\n", err)
		stop()
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
