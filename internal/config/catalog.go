package config

import (
	"context"
	"fmt"

	"github.com/jonathan/hirehub/internal/catalog"
	"github.com/jonathan/hirehub/internal/db"
)

// OpenCatalog builds the catalog accessor selected by c. The returned close
// function releases any underlying connection and is never nil.
func OpenCatalog(ctx context.Context, c Config) (catalog.Accessor, func() error, error) {
	noop := func() error { return nil }

	switch c.CatalogSource {
	case "", SourceStatic:
		acc, err := catalog.NewDefault(c.CatalogLatency())
		if err != nil {
			return nil, noop, fmt.Errorf("failed to load seed catalog: %w", err)
		}
		return acc, noop, nil

	case SourceFile:
		acc, err := catalog.LoadFile(c.CatalogPath, c.CatalogLatency())
		if err != nil {
			return nil, noop, err
		}
		return acc, noop, nil

	case SourceSQLite:
		acc, err := catalog.OpenSQLite(ctx, c.CatalogPath)
		if err != nil {
			return nil, noop, err
		}
		return acc, acc.Close, nil

	case SourcePostgres:
		database, err := db.Connect(ctx, c.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		return database, func() error {
			database.Close()
			return nil
		}, nil

	default:
		return nil, noop, fmt.Errorf("unknown catalog source %q", c.CatalogSource)
	}
}
