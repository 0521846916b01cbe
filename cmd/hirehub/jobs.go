package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/hirehub/internal/config"
	"github.com/jonathan/hirehub/internal/observability"
	"github.com/jonathan/hirehub/internal/store"
	"github.com/jonathan/hirehub/internal/types"
	"github.com/spf13/cobra"
)

var (
	jobsCategory   string
	jobsLocation   string
	jobsExperience string
	jobsSearch     string
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List jobs matching the given filters",
	Long:  "Load the catalog and print every job that satisfies the category, location, experience and search filters.",
	Args:  cobra.NoArgs,
	RunE:  runJobs,
}

var jobCmd = &cobra.Command{
	Use:   "job <id>",
	Short: "Show the details of one job",
	Args:  cobra.ExactArgs(1),
	RunE:  runJob,
}

func init() {
	jobsCmd.Flags().StringVarP(&jobsCategory, "category", "c", "", "Category, e.g. Frontend or \"Data Science\"")
	jobsCmd.Flags().StringVarP(&jobsLocation, "location", "l", "", "Exact location, e.g. Remote")
	jobsCmd.Flags().StringVarP(&jobsExperience, "experience", "e", "", "Experience level, e.g. Senior")
	jobsCmd.Flags().StringVarP(&jobsSearch, "search", "q", "", "Case-insensitive text matched against title and company")

	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(jobCmd)
}

// filterUpdate builds the update for the filter flags that were set.
func filterUpdate() (types.FilterUpdate, error) {
	var u types.FilterUpdate
	if v := strings.TrimSpace(jobsCategory); v != "" {
		c, err := types.ParseCategory(v)
		if err != nil {
			return u, err
		}
		u = u.WithCategory(c)
	}
	if v := strings.TrimSpace(jobsLocation); v != "" {
		u = u.WithLocation(v)
	}
	if v := strings.TrimSpace(jobsExperience); v != "" {
		e, err := types.ParseExperienceLevel(v)
		if err != nil {
			return u, err
		}
		u = u.WithExperience(e)
	}
	if jobsSearch != "" {
		u = u.WithSearch(jobsSearch)
	}
	return u, nil
}

func runJobs(cmd *cobra.Command, _ []string) error {
	update, err := filterUpdate()
	if err != nil {
		return err
	}

	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	acc, closeCatalog, err := config.OpenCatalog(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer closeCatalog() //nolint:errcheck

	s := store.New(acc, store.WithLogger(logger))
	s.UpdateFilters(update)
	if err := s.Initialize(cmd.Context()); err != nil {
		return err
	}

	st := s.Snapshot()
	observability.NewPrinter(cmd.OutOrStdout()).PrintJobList(st.FilteredJobs, len(st.Jobs), st.Filters)
	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	acc, closeCatalog, err := config.OpenCatalog(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer closeCatalog() //nolint:errcheck

	d, err := store.NewDetailLoader(acc, logger).Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if d.Job == nil {
		return fmt.Errorf("%s: %s", d.Error, args[0])
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintJobDetail(d.Job)
	return nil
}
