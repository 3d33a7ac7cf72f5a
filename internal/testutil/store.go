// Package testutil holds helpers shared by tests that need a real inventory
// database or want to assert on rendered views.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/stockroom/internal/inventory"
	"github.com/charmbracelet/x/ansi"
)

// Today is the clock every store opened by NewStore reads.
var Today = time.Date(2025, 8, 10, 9, 30, 0, 0, time.UTC)

// NewStore opens a migrated inventory in a temporary directory, filled with
// the demo data when seed is set. The store is closed when the test ends.
func NewStore(t testing.TB, seed bool) *inventory.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stockroom.db")
	store, err := inventory.Open(context.Background(), inventory.Options{
		Path: path,
		Now:  func() time.Time { return Today },
	})
	if err != nil {
		t.Fatalf("open inventory: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if seed {
		if _, err := store.Seed(context.Background()); err != nil {
			t.Fatalf("seed inventory: %v", err)
		}
	}
	return store
}

// Plain strips terminal styling from a rendered view.
func Plain(view string) string {
	return ansi.Strip(view)
}
