package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/hirehub/internal/apply"
	"github.com/jonathan/hirehub/internal/config"
	"github.com/jonathan/hirehub/internal/observability"
	"github.com/spf13/cobra"
)

var (
	applyName   string
	applyEmail  string
	applyResume string
)

// errApplicationRejected is returned after the field errors have been printed.
var errApplicationRejected = errors.New("application rejected")

var applyCmd = &cobra.Command{
	Use:   "apply <job-id>",
	Short: "Submit an application for a job",
	Long: `Validate and submit an application for the given job.

The resume must be a .pdf, .doc or .docx file of at most 10 MB.`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVarP(&applyName, "name", "n", "", "Applicant full name (required)")
	applyCmd.Flags().StringVarP(&applyEmail, "email", "m", "", "Applicant email address (required)")
	applyCmd.Flags().StringVarP(&applyResume, "resume", "r", "", "Path to the resume file (required)")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	acc, closeCatalog, err := config.OpenCatalog(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer closeCatalog() //nolint:errcheck

	job, err := acc.GetJob(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil {
		return fmt.Errorf("job not found: %s", args[0])
	}

	form := apply.NewController(
		apply.WithLogger(logger),
		apply.WithSubmitter(apply.NewSimulatedSubmitter(cfg.SubmitDelay(), logger)),
		apply.WithCloseDelay(cfg.CloseDelay()),
		apply.WithClearDelay(cfg.ClearDelay()),
	)
	defer form.Dispose()

	// Listeners run under the controller lock, so only hand off terminal states.
	done := make(chan apply.State, 1)
	unsubscribe := form.Subscribe(func(st apply.State) {
		if st.Phase == apply.PhaseSucceeded || (st.Phase == apply.PhaseIdle && st.SubmitError != "") {
			select {
			case done <- st:
			default:
			}
		}
	})
	defer unsubscribe()

	if err := form.Open(job); err != nil {
		return err
	}
	form.SetName(applyName)
	form.SetEmail(applyEmail)

	// The file is picked before the form is validated, as in the browser's picker.
	resume, err := apply.ResumeFromFile(applyResume)
	if err != nil {
		return err
	}
	form.SetResume(resume)

	if err := form.Submit(); err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	if st := form.State(); st.Phase == apply.PhaseIdle && !st.Errors.Valid() {
		printer.PrintFieldErrors(st.Errors)
		return errApplicationRejected
	}

	select {
	case st := <-done:
		if st.Phase != apply.PhaseSucceeded {
			return errors.New(st.SubmitError)
		}
		printer.PrintReceipt(st.Job, st.Receipt)
		return nil
	case <-cmd.Context().Done():
		return cmd.Context().Err()
	}
}
