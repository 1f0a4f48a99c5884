package testsupport

import (
	"context"
	"testing"

	"whisperd/internal/config"
	"whisperd/internal/history"
)

// MustOpenStore opens a history.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg.History.DBPath)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// RecordEntry journals an entry for tests using the provided store and
// returns its assigned ID.
func RecordEntry(t testing.TB, store *history.Store, entry history.Entry) string {
	t.Helper()

	id, err := store.Record(context.Background(), entry)
	if err != nil {
		t.Fatalf("store.Record: %v", err)
	}
	return id
}
