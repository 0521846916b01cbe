// Package store owns the job collection, the active filters, and the filtered view
// derived from them.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jonathan/hirehub/internal/catalog"
	"github.com/jonathan/hirehub/internal/filter"
	"github.com/jonathan/hirehub/internal/types"
)

// LoadErrorMessage is the user-facing message published when the collection cannot be fetched.
const LoadErrorMessage = "Failed to load jobs. Please try again later."

// State is a consistent snapshot of the store. Slices are shared and must be
// treated as read-only.
type State struct {
	Jobs         []types.Job          `json:"jobs"`
	FilteredJobs []types.Job          `json:"filteredJobs"`
	Filters      types.FilterCriteria `json:"filters"`
	IsLoading    bool                 `json:"isLoading"`
	Error        string               `json:"error,omitempty"`
	Version      uint64               `json:"version"`
}

// Listener receives every published snapshot, in publication order.
type Listener func(State)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for fetch failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFilters sets the initial criteria.
func WithFilters(c types.FilterCriteria) Option {
	return func(s *Store) {
		s.state.Filters = c.Normalize()
	}
}

// Store is the job listing state container. Create one per session with New and
// share it by reference. All mutations are serialized; each one publishes exactly
// one snapshot in which FilteredJobs == filter.Apply(Jobs, Filters).
type Store struct {
	catalog catalog.Accessor
	logger  *slog.Logger

	// publishMu serializes mutate+notify so listeners observe snapshots in order.
	publishMu sync.Mutex

	mu        sync.RWMutex
	state     State
	loadGen   uint64
	listeners map[int]Listener
	nextID    int
}

// New creates a Store backed by acc. Call Initialize to fetch the collection.
func New(acc catalog.Accessor, opts ...Option) *Store {
	s := &Store{
		catalog: acc,
		logger:  slog.Default(),
		state: State{
			Jobs:         []types.Job{},
			FilteredJobs: []types.Job{},
			Filters:      types.DefaultFilters(),
		},
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize fetches the full collection once. Loading is published before the fetch
// starts. On failure the store keeps its previous collection, publishes
// LoadErrorMessage, and returns the underlying error; it stays usable and may be
// initialized again. When two initializations overlap, only the latest one applies.
func (s *Store) Initialize(ctx context.Context) error {
	var gen uint64
	s.mutate(func(st *State) {
		s.loadGen++
		gen = s.loadGen
		st.IsLoading = true
		st.Error = ""
	})

	jobs, err := s.catalog.ListJobs(ctx)

	if err != nil {
		s.logger.Error("failed to fetch jobs", "error", err)
		s.mutateIf(gen, func(st *State) {
			st.IsLoading = false
			st.Error = LoadErrorMessage
		})
		return fmt.Errorf("failed to load jobs: %w", err)
	}

	s.mutateIf(gen, func(st *State) {
		if jobs == nil {
			jobs = []types.Job{}
		}
		st.Jobs = jobs
		st.IsLoading = false
	})
	s.logger.Debug("jobs loaded", "count", len(jobs))
	return nil
}

// UpdateFilters merges u into the current criteria and recomputes the filtered view
// as one atomic step.
func (s *Store) UpdateFilters(u types.FilterUpdate) {
	s.mutate(func(st *State) {
		st.Filters = st.Filters.Merge(u)
	})
}

// ResetFilters restores the default criteria and recomputes the filtered view.
func (s *Store) ResetFilters() {
	s.mutate(func(st *State) {
		st.Filters = types.DefaultFilters()
	})
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Jobs returns the full collection.
func (s *Store) Jobs() []types.Job { return s.Snapshot().Jobs }

// FilteredJobs returns the derived view.
func (s *Store) FilteredJobs() []types.Job { return s.Snapshot().FilteredJobs }

// Filters returns the active criteria.
func (s *Store) Filters() types.FilterCriteria { return s.Snapshot().Filters }

// IsLoading reports whether a fetch is pending.
func (s *Store) IsLoading() bool { return s.Snapshot().IsLoading }

// Error returns the user-facing load error, or "" if there is none.
func (s *Store) Error() string { return s.Snapshot().Error }

// Subscribe registers l for every future snapshot and returns a function that
// removes it. Listeners must not call Store mutators synchronously.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// mutate applies fn, recomputes the derived view, and publishes the result.
func (s *Store) mutate(fn func(*State)) {
	s.publish(func() bool {
		fn(&s.state)
		return true
	})
}

// mutateIf is mutate guarded by the load generation that issued it.
func (s *Store) mutateIf(gen uint64, fn func(*State)) {
	s.publish(func() bool {
		if gen != s.loadGen {
			return false
		}
		fn(&s.state)
		return true
	})
}

func (s *Store) publish(apply func() bool) {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	if !apply() {
		s.mu.Unlock()
		return
	}
	s.state.FilteredJobs = filter.Apply(s.state.Jobs, s.state.Filters)
	s.state.Version++
	snapshot := s.state
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
}
