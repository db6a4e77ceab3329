// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
)

// Collection keys. Each key holds one JSON array.
const (
	KeyProjects           = "projects"
	KeyPayments           = "payments"
	KeyDebits             = "debits"
	KeyStaff              = "staff"
	KeyEmergencyCampaigns = "emergencyCampaigns"
)

// Keys lists every collection key in load order.
var Keys = []string{KeyProjects, KeyPayments, KeyDebits, KeyStaff, KeyEmergencyCampaigns}

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("key not found")

// BlobStore is a key to JSON blob store with whole-value replace semantics.
// This abstraction allows swapping storage backends (SQLite, in-memory)
// without changing the ledger layer.
type BlobStore interface {
	// Get returns the blob stored under key.
	// Returns ErrNotFound if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the blob stored under key.
	Put(ctx context.Context, key string, blob []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
