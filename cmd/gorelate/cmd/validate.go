package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateSource bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and optionally the source data",
	Long: `Validate checks the configuration file and, with --source, loads every
table to report data problems.

Checks performed:
  - Configuration syntax and required fields
  - Relationships referring to declared tables
  - Relationship cycles (informational)
  - Source connectivity and table loading (--source)
  - Duplicate or missing primary keys (--source)

Example:
  gorelate validate --config gorelate.yaml --source`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateSource, "source", false,
		"Also load every table and check primary keys")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx, stop := commandContext()
	defer stop()

	s, err := openSession(ctx, validateSource)
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Fprintf(outputWriter, "\n=== Configuration Validation ===\n")
	fmt.Fprintf(outputWriter, "Config file: %s\n", GetConfigFile())
	fmt.Fprintf(outputWriter, "Source: %s\n", s.cfg.Source.Type)
	fmt.Fprintf(outputWriter, "Tables: %d\n", s.schema.TableCount())
	fmt.Fprintf(outputWriter, "Relationships: %d\n", s.schema.RelationshipCount())

	if info := s.schema.DetectCycles(); info != nil {
		fmt.Fprintf(outputWriter, "ℹ %s\n", info.String())
	}

	if validateSource {
		fmt.Fprintf(outputWriter, "\n--- Source ---\n")
		for _, id := range s.data.TableIDs() {
			fmt.Fprintf(outputWriter, "  %-20s %d record(s)\n", id, s.data.Len(id))
		}
		if s.stats.TablesFailed > 0 {
			fmt.Fprintf(outputWriter, "❌ %d table(s) failed to load\n", s.stats.TablesFailed)
		}
		for _, w := range s.stats.Warnings {
			fmt.Fprintf(outputWriter, "⚠ %s\n", w.String())
		}
		if s.stats.TablesFailed > 0 {
			return fmt.Errorf("validation failed: %d table(s) could not be loaded", s.stats.TablesFailed)
		}
	}

	fmt.Fprintln(outputWriter, "\n=== Validation Complete ===")
	fmt.Fprintln(outputWriter, "✅ Configuration is valid")
	return nil
}
