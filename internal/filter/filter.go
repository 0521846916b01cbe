// Package filter derives the visible job listing from a collection and filter criteria.
package filter

import (
	"strings"

	"github.com/jonathan/hirehub/internal/types"
)

// Apply returns the jobs that satisfy every active predicate in c, in input order.
// The input slice is never modified and the result is never nil.
func Apply(jobs []types.Job, c types.FilterCriteria) []types.Job {
	c = c.Normalize()
	query := searchTerm(c.SearchQuery)

	result := make([]types.Job, 0, len(jobs))
	for _, job := range jobs {
		if matches(job, c, query) {
			result = append(result, job)
		}
	}
	return result
}

// Matches reports whether a single job satisfies c.
func Matches(job types.Job, c types.FilterCriteria) bool {
	c = c.Normalize()
	return matches(job, c, searchTerm(c.SearchQuery))
}

// searchTerm returns the lowercased query, or "" when it is blank. Surrounding
// whitespace is only ignored for that check; it is part of the matched text.
func searchTerm(q string) string {
	if strings.TrimSpace(q) == "" {
		return ""
	}
	return strings.ToLower(q)
}

// matches evaluates predicates in order: category, location, experience, search.
func matches(job types.Job, c types.FilterCriteria, query string) bool {
	if c.Category != types.AllCategories && job.Category != c.Category {
		return false
	}
	if c.Location != types.AllLocations && job.Location != c.Location {
		return false
	}
	if c.Experience != types.AllExperience && job.ExperienceLevel != c.Experience {
		return false
	}
	if query != "" {
		return strings.Contains(strings.ToLower(job.Title), query) ||
			strings.Contains(strings.ToLower(job.Company), query)
	}
	return true
}
