package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/hirehub/internal/filter"
	"github.com/jonathan/hirehub/internal/store"
	"github.com/jonathan/hirehub/internal/types"
)

// ListJobsResponse represents the response for listing jobs
type ListJobsResponse struct {
	Jobs      []types.Job          `json:"jobs"`
	Count     int                  `json:"count"`
	Total     int                  `json:"total"`
	Filters   types.FilterCriteria `json:"filters"`
	IsLoading bool                 `json:"isLoading"`
}

// FilterOptionsResponse lists the values each filter accepts, sentinel first
type FilterOptionsResponse struct {
	Categories       []types.Category        `json:"categories"`
	ExperienceLevels []types.ExperienceLevel `json:"experienceLevels"`
	Locations        []string                `json:"locations"`
}

// handleListJobs filters the loaded collection by query parameters. It does not
// touch the shared filter state.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	update, err := filterUpdateFromQuery(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	st := s.store.Snapshot()
	if st.Error != "" && len(st.Jobs) == 0 {
		s.handleError(w, &ErrCatalogUnavailable{Message: st.Error})
		return
	}

	criteria := types.DefaultFilters().Merge(update)
	jobs := filter.Apply(st.Jobs, criteria)

	s.jsonResponse(w, http.StatusOK, ListJobsResponse{
		Jobs:      jobs,
		Count:     len(jobs),
		Total:     len(st.Jobs),
		Filters:   criteria,
		IsLoading: st.IsLoading,
	})
}

// handleGetJob retrieves a job by its ID
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	job, err := s.catalog.GetJob(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to fetch job", "id", id, "error", err)
		s.errorResponse(w, http.StatusInternalServerError, store.DetailFailMessage)
		return
	}
	if job == nil {
		s.handleError(w, &ErrJobNotFound{ID: id})
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleListLocations returns each distinct job location once
func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := s.catalog.ListLocations(r.Context())
	if err != nil {
		s.logger.Error("failed to fetch locations", "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load locations")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"locations": locations,
		"count":     len(locations),
	})
}

// handleFilterOptions returns the selectable values for every filter control
func (s *Server) handleFilterOptions(w http.ResponseWriter, r *http.Request) {
	locations, err := s.catalog.ListLocations(r.Context())
	if err != nil {
		s.logger.Error("failed to fetch locations", "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load locations")
		return
	}

	resp := FilterOptionsResponse{
		Categories:       append([]types.Category{types.AllCategories}, types.Categories()...),
		ExperienceLevels: append([]types.ExperienceLevel{types.AllExperience}, types.ExperienceLevels()...),
		Locations:        append([]string{types.AllLocations}, locations...),
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// filterUpdateFromQuery reads category, location, experience and q.
func filterUpdateFromQuery(r *http.Request) (types.FilterUpdate, error) {
	q := r.URL.Query()
	var u types.FilterUpdate

	if v := strings.TrimSpace(q.Get("category")); v != "" {
		c, err := parseCategory(v)
		if err != nil {
			return u, err
		}
		u = u.WithCategory(c)
	}
	if v := strings.TrimSpace(q.Get("location")); v != "" {
		u = u.WithLocation(v)
	}
	if v := strings.TrimSpace(q.Get("experience")); v != "" {
		e, err := parseExperience(v)
		if err != nil {
			return u, err
		}
		u = u.WithExperience(e)
	}
	if q.Has("q") {
		u = u.WithSearch(q.Get("q"))
	}
	return u, nil
}

// parseCategory accepts a category name or its sentinel.
func parseCategory(v string) (types.Category, error) {
	if strings.EqualFold(v, string(types.AllCategories)) {
		return types.AllCategories, nil
	}
	c, err := types.ParseCategory(v)
	if err != nil {
		return "", &ErrValidation{Field: "category", Message: err.Error()}
	}
	return c, nil
}

// parseExperience accepts an experience level or its sentinel.
func parseExperience(v string) (types.ExperienceLevel, error) {
	if strings.EqualFold(v, string(types.AllExperience)) {
		return types.AllExperience, nil
	}
	e, err := types.ParseExperienceLevel(v)
	if err != nil {
		return "", &ErrValidation{Field: "experience", Message: err.Error()}
	}
	return e, nil
}
