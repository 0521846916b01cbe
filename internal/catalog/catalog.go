// Package catalog provides read-only access to the job collection.
package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/jonathan/hirehub/internal/types"
)

//go:embed data/jobs.json
var seedCatalog []byte

// ErrDuplicateID is returned when a collection contains the same job id twice.
var ErrDuplicateID = errors.New("duplicate job id")

// Accessor is the boundary to a job data source.
// GetJob returns (nil, nil) when no job has the requested id.
type Accessor interface {
	ListJobs(ctx context.Context) ([]types.Job, error)
	GetJob(ctx context.Context, id string) (*types.Job, error)
	ListLocations(ctx context.Context) ([]string, error)
}

// Latency holds the simulated delay of each lookup.
type Latency struct {
	List      time.Duration
	Get       time.Duration
	Locations time.Duration
}

// DefaultLatency returns the delays of the reference catalog.
func DefaultLatency() Latency {
	return Latency{
		List:      500 * time.Millisecond,
		Get:       300 * time.Millisecond,
		Locations: 200 * time.Millisecond,
	}
}

// Static serves a fixed in-memory collection with simulated latency.
type Static struct {
	jobs    []types.Job
	byID    map[string]int
	latency Latency
}

// NewStatic creates a Static accessor over jobs. The slice is copied.
func NewStatic(jobs []types.Job, latency Latency) (*Static, error) {
	byID := make(map[string]int, len(jobs))
	for i, job := range jobs {
		if _, exists := byID[job.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, job.ID)
		}
		byID[job.ID] = i
	}
	return &Static{
		jobs:    slices.Clone(jobs),
		byID:    byID,
		latency: latency,
	}, nil
}

// NewDefault creates a Static accessor over the embedded seed catalog.
func NewDefault(latency Latency) (*Static, error) {
	var jobs []types.Job
	if err := json.Unmarshal(seedCatalog, &jobs); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}
	return NewStatic(jobs, latency)
}

// Len returns the number of jobs in the collection.
func (s *Static) Len() int {
	return len(s.jobs)
}

// ListJobs returns the entire collection.
func (s *Static) ListJobs(ctx context.Context) ([]types.Job, error) {
	if err := wait(ctx, s.latency.List); err != nil {
		return nil, err
	}
	return slices.Clone(s.jobs), nil
}

// GetJob returns the job with the given id, or nil if there is none.
func (s *Static) GetJob(ctx context.Context, id string) (*types.Job, error) {
	if err := wait(ctx, s.latency.Get); err != nil {
		return nil, err
	}
	i, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	job := s.jobs[i]
	return &job, nil
}

// ListLocations returns the distinct locations in the collection.
func (s *Static) ListLocations(ctx context.Context) ([]string, error) {
	if err := wait(ctx, s.latency.Locations); err != nil {
		return nil, err
	}
	return DistinctLocations(s.jobs), nil
}

// DistinctLocations returns each location once, in first-seen order.
func DistinctLocations(jobs []types.Job) []string {
	seen := make(map[string]bool, len(jobs))
	locations := make([]string, 0, len(jobs))
	for _, job := range jobs {
		if seen[job.Location] {
			continue
		}
		seen[job.Location] = true
		locations = append(locations, job.Location)
	}
	return locations
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
