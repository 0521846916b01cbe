package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/hirehub/internal/catalog"
	"github.com/jonathan/hirehub/internal/config"
	"github.com/jonathan/hirehub/internal/db"
	"github.com/jonathan/hirehub/internal/schemas"
	"github.com/spf13/cobra"
)

var (
	importTarget string
	importDB     string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Validate and import job catalog files",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a JSON job catalog against the catalog schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogValidate,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a JSON job catalog into SQLite or PostgreSQL",
	Long: `Validate a JSON job catalog and replace the contents of the target database with it.

Examples:
  hirehub catalog import jobs.json --to sqlite --db hirehub.db
  hirehub catalog import jobs.json --to postgres --db postgres://localhost/hirehub`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogImport,
}

func init() {
	catalogImportCmd.Flags().StringVar(&importTarget, "to", config.SourceSQLite, "Target database: sqlite or postgres")
	catalogImportCmd.Flags().StringVar(&importDB, "db", "", "SQLite file path or PostgreSQL URL (defaults to catalog_path or DATABASE_URL)")

	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read catalog file: %w", err)
	}

	if err := schemas.ValidateJobCatalog(data); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation failed:\n")
			for _, fe := range ve.Errors {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  - %s: %s\n", fe.Field, fe.Message)
			}
			return fmt.Errorf("catalog %s is invalid", args[0])
		}
		return err
	}

	jobs, err := catalog.Parse(data)
	if err != nil {
		return err
	}
	if _, err := catalog.NewStatic(jobs, catalog.Latency{}); err != nil {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation failed: %v\n", err)
		return fmt.Errorf("catalog %s is invalid", args[0])
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %d jobs\n", len(jobs))
	return nil
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read catalog file: %w", err)
	}
	jobs, err := catalog.Parse(data)
	if err != nil {
		return fmt.Errorf("invalid catalog %s: %w", args[0], err)
	}
	// NewStatic rejects duplicate ids before anything is written.
	if _, err := catalog.NewStatic(jobs, catalog.Latency{}); err != nil {
		return fmt.Errorf("invalid catalog %s: %w", args[0], err)
	}

	ctx := cmd.Context()
	switch importTarget {
	case config.SourceSQLite:
		path := firstNonEmpty(importDB, cfg.CatalogPath)
		if path == "" {
			return fmt.Errorf("--db is required for sqlite imports")
		}
		store, err := catalog.OpenSQLite(ctx, path)
		if err != nil {
			return err
		}
		defer store.Close() //nolint:errcheck
		if err := store.Import(ctx, jobs); err != nil {
			return err
		}
		logger.Info("catalog imported", "target", importTarget, "path", path, "jobs", len(jobs))

	case config.SourcePostgres:
		url := firstNonEmpty(importDB, cfg.DatabaseURL)
		if url == "" {
			return fmt.Errorf("--db or %s is required for postgres imports", config.EnvDatabaseURL)
		}
		database, err := db.Connect(ctx, url)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.EnsureSchema(ctx); err != nil {
			return err
		}
		if err := database.ImportJobs(ctx, jobs); err != nil {
			return err
		}
		logger.Info("catalog imported", "target", importTarget, "jobs", len(jobs))

	default:
		return fmt.Errorf("unknown import target %q (want sqlite or postgres)", importTarget)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d jobs\n", len(jobs))
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
