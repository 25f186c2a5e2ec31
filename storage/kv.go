package storage

import (
	"context"
	"errors"
)

// Collection keys. Each key holds one whole collection serialized as JSON.
const (
	KeyMenuItems    = "menuItems"
	KeyTables       = "tables"
	KeyWaiters      = "waiters"
	KeyOrders       = "orders"
	KeyReservations = "reservations"
	KeyCurrentUser  = "currentUser"
)

// ErrStorage marks failures of the underlying store.
var ErrStorage = errors.New("storage failure")

// KV is the persistence adapter. Values are opaque text blobs; every write
// replaces the whole value.
type KV interface {
	// Get returns ok=false when the key has never been written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// SetMany writes all entries or none of them.
	SetMany(ctx context.Context, entries map[string]string) error
	Remove(ctx context.Context, key string) error
}
