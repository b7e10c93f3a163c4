package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/gorelate/internal/database"
	"github.com/dbsmedya/gorelate/internal/report"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile       string
	logLevel      string
	logFormat     string
	outputFormat  string
	noColor       bool
	strictLoad    bool
	allowLoopback bool
	bidirectional bool
)

// outputWriter is used for printing output, can be overridden in tests
var outputWriter io.Writer = os.Stdout

// setOutputWriter sets the output writer (used for testing)
func setOutputWriter(w io.Writer) {
	outputWriter = w
}

// resetOutputWriter resets output to stdout (used for testing)
func resetOutputWriter() {
	outputWriter = os.Stdout
}

var rootCmd = &cobra.Command{
	Use:   "gorelate",
	Short: "Relational graph tracer for multi-table inventories",
	Long: `gorelate loads a snapshot of every configured table and follows declared
attribute-equality relationships between them.

Features:
  - Breadth-first relationship tracing from one or more seed records
  - Loop prevention and optional bidirectional traversal
  - Toggling of discovered relationships with a full re-trace
  - Orphan report of records linked to nothing
  - MySQL or JSON snapshot sources (local, file://, mem:// or cloud URLs)`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "gorelate.yaml",
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Output
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text",
		"Output format (text, json, yaml, mermaid)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored text output")

	// Loading
	rootCmd.PersistentFlags().BoolVar(&strictLoad, "strict", false,
		"Fail when any table cannot be loaded instead of treating it as empty")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel      string
	LogFormat     string
	AllowLoopback bool
	Bidirectional bool
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:      logLevel,
		LogFormat:     logFormat,
		AllowLoopback: allowLoopback,
		Bidirectional: bidirectional,
	}
}

// newRenderer returns a renderer for the selected output format.
func newRenderer() (*report.Renderer, report.Format, error) {
	format, err := report.ParseFormat(outputFormat)
	if err != nil {
		return nil, "", err
	}
	r := report.NewRenderer(outputWriter)
	r.Color = !noColor && outputWriter == os.Stdout && color.SupportColor()
	return r, format, nil
}

// commandContext is cancelled on SIGINT or SIGTERM.
func commandContext() (context.Context, context.CancelFunc) {
	return database.SetupSignalHandler(context.Background(), func(sig os.Signal) {
		fmt.Fprintf(os.Stderr, "received %s, stopping\n", sig)
	})
}
