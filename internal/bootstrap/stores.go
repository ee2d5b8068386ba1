package bootstrap

import (
	"fmt"

	"github.com/boolean-maybe/boolq/config"
	"github.com/boolean-maybe/boolq/record"
	"github.com/boolean-maybe/boolq/store"
)

// SampleDataSource names the built-in data set in the status line
const SampleDataSource = "sample users"

// RecordSource returns the loader for cfg's data file, or the built-in
// sample users when none is configured, together with its display name.
func RecordSource(cfg *config.Config) (store.Source, string) {
	path := cfg.Data.File
	if path == "" {
		return func() ([]record.Record, error) { return record.SampleUsers(), nil }, SampleDataSource
	}
	return func() ([]record.Record, error) { return record.LoadFile(path) }, path
}

// InitStore creates the record store and loads it from the configured source.
func InitStore(cfg *config.Config) (*store.InMemoryStore, string, error) {
	source, name := RecordSource(cfg)
	recordStore := store.NewInMemoryStore(
		store.WithSource(source),
		store.WithSortField(cfg.Search.Sort),
		store.WithMaxDepth(cfg.Search.MaxDepth),
	)
	if err := recordStore.Reload(); err != nil {
		return nil, "", fmt.Errorf("initialize record store: %w", err)
	}
	return recordStore, name, nil
}
