// Package main provides the hirehub command line: the API server, the terminal
// browser, and one-shot listing, detail, application, and catalog commands.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jonathan/hirehub/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "hirehub",
	Short: "HireHub job board",
	Long:  "HireHub lists job postings, filters them by category, location, experience and free text, and accepts applications.",
	// Usage is noise for runtime failures such as an unreachable catalog.
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file (overridden by HIREHUB_* environment variables)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration and builds the logger for cmd.
// Logs go to stderr so command output stays clean.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, cfg.NewLogger(cmd.ErrOrStderr()), nil
}
