package main

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonathan/hirehub/internal/apply"
	"github.com/jonathan/hirehub/internal/config"
	"github.com/jonathan/hirehub/internal/tui"
	"github.com/spf13/cobra"
)

var browseLogFile string

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse and apply for jobs in the terminal",
	Args:  cobra.NoArgs,
	RunE:  runBrowse,
}

func init() {
	browseCmd.Flags().StringVar(&browseLogFile, "log-file", "", "Write logs to this file (logs are discarded by default)")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if browseLogFile != "" {
		f, err := tea.LogToFile(browseLogFile, "hirehub")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close() //nolint:errcheck
		logOut = f
	}
	logger := cfg.NewLogger(logOut)

	acc, closeCatalog, err := config.OpenCatalog(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer closeCatalog() //nolint:errcheck

	model, err := tui.New(tui.Config{
		Catalog:   acc,
		Submitter: apply.NewSimulatedSubmitter(cfg.SubmitDelay(), logger),
		Logger:    logger,
		ApplyOptions: []apply.Option{
			apply.WithCloseDelay(cfg.CloseDelay()),
			apply.WithClearDelay(cfg.ClearDelay()),
		},
	})
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	).Run()
	return err
}
