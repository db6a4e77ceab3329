package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/bairooha/donordesk/internal/storage"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	store := New()
	defer store.Close()

	if _, err := store.Get(ctx, storage.KeyPayments); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	blob := []byte(`[{"id":"pay-1"}]`)
	if err := store.Put(ctx, storage.KeyPayments, blob); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	blob[0] = 'X' // caller mutation must not leak into the store

	got, err := store.Get(ctx, storage.KeyPayments)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `[{"id":"pay-1"}]` {
		t.Errorf("Get = %s", got)
	}

	if err := store.Delete(ctx, storage.KeyPayments); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, storage.KeyPayments); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
