package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonathan/hirehub/internal/catalog"
	"golang.org/x/sync/errgroup"
)

// Bootstrap loads the collection into s and fetches the location list concurrently.
// A failed location fetch is not fatal: the list is derived from the loaded jobs
// instead. The returned error is the collection load error, if any.
func Bootstrap(ctx context.Context, s *Store, acc catalog.Accessor) ([]string, error) {
	g, gCtx := errgroup.WithContext(ctx)

	var locations []string
	var locMu sync.Mutex

	g.Go(func() error {
		if err := s.Initialize(gCtx); err != nil {
			return fmt.Errorf("bootstrap: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		locs, err := acc.ListLocations(gCtx)
		if err != nil {
			s.logger.Warn("failed to fetch locations, deriving from jobs", "error", err)
			return nil
		}
		locMu.Lock()
		locations = locs
		locMu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return catalog.DistinctLocations(s.Jobs()), err
	}

	if locations == nil {
		locations = catalog.DistinctLocations(s.Jobs())
	}
	return locations, nil
}
