package main

import (
	"fmt"

	"github.com/jonathan/hirehub/internal/apply"
	"github.com/jonathan/hirehub/internal/config"
	"github.com/jonathan/hirehub/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the job listing, shared filter state, live state events, and application submission.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and HIREHUB_PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	acc, closeCatalog, err := config.OpenCatalog(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}

	srv, err := server.New(server.Config{
		Port:         cfg.Port,
		Catalog:      acc,
		Submitter:    apply.NewSimulatedSubmitter(cfg.SubmitDelay(), logger),
		Logger:       logger,
		CloseCatalog: closeCatalog,
	})
	if err != nil {
		_ = closeCatalog()
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("catalog opened", "source", cfg.CatalogSource)
	return srv.Start()
}
