package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yeremiapane/restaurant-orders/storage"
)

var ErrNotFound = errors.New("not found")

// Entity is a record addressed by a string identifier.
type Entity interface {
	EntityID() string
}

// Repository is the per-collection view the store works against. Swapping
// the whole-blob Collection for per-record storage only touches this seam.
type Repository[T Entity] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Upsert(ctx context.Context, item T, onCreate func(*T)) (saved T, created bool, err error)
	Update(ctx context.Context, id string, mutate func(*T) error) (T, error)
	Delete(ctx context.Context, id string) (removed T, found bool, err error)
}

// Collection stores a slice of T as one JSON blob under Key.
type Collection[T Entity] struct {
	KV  storage.KV
	Key string
}

func NewCollection[T Entity](kv storage.KV, key string) *Collection[T] {
	return &Collection[T]{KV: kv, Key: key}
}

// Exists reports whether the key has ever been written.
func (c *Collection[T]) Exists(ctx context.Context) (bool, error) {
	_, ok, err := c.KV.Get(ctx, c.Key)
	if err != nil {
		return false, fmt.Errorf("check %s: %w: %w", c.Key, storage.ErrStorage, err)
	}
	return ok, nil
}

// Load returns an empty, non-nil slice when the key is absent.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.KV.Get(ctx, c.Key)
	if err != nil {
		return []T{}, fmt.Errorf("load %s: %w: %w", c.Key, storage.ErrStorage, err)
	}
	if !ok || raw == "" {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []T{}, fmt.Errorf("decode %s: %w: %w", c.Key, storage.ErrStorage, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Collection[T]) Encode(items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", c.Key, err)
	}
	return string(raw), nil
}

func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	raw, err := c.Encode(items)
	if err != nil {
		return err
	}
	if err := c.KV.Set(ctx, c.Key, raw); err != nil {
		return fmt.Errorf("save %s: %w: %w", c.Key, storage.ErrStorage, err)
	}
	return nil
}

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	return c.Load(ctx)
}

func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	items, err := c.Load(ctx)
	if err != nil {
		return zero, err
	}
	idx := IndexOf(items, id)
	if idx < 0 {
		return zero, ErrNotFound
	}
	return items[idx], nil
}

// Upsert replaces the record with the same id in place. Records without an
// id, or with an id that matches nothing, go through onCreate and are
// appended.
func (c *Collection[T]) Upsert(ctx context.Context, item T, onCreate func(*T)) (T, bool, error) {
	items, err := c.Load(ctx)
	if err != nil {
		return item, false, err
	}
	created := false
	if idx := IndexOf(items, item.EntityID()); idx >= 0 {
		items[idx] = item
	} else {
		onCreate(&item)
		items = append(items, item)
		created = true
	}
	if err := c.Save(ctx, items); err != nil {
		return item, false, err
	}
	return item, created, nil
}

// Update applies mutate to the record with the given id and saves.
func (c *Collection[T]) Update(ctx context.Context, id string, mutate func(*T) error) (T, error) {
	var zero T
	items, err := c.Load(ctx)
	if err != nil {
		return zero, err
	}
	idx := IndexOf(items, id)
	if idx < 0 {
		return zero, ErrNotFound
	}
	if err := mutate(&items[idx]); err != nil {
		return zero, err
	}
	if err := c.Save(ctx, items); err != nil {
		return zero, err
	}
	return items[idx], nil
}

// Delete removes the record. A missing id is not an error and leaves the
// stored blob untouched.
func (c *Collection[T]) Delete(ctx context.Context, id string) (T, bool, error) {
	var zero T
	items, err := c.Load(ctx)
	if err != nil {
		return zero, false, err
	}
	idx := IndexOf(items, id)
	if idx < 0 {
		return zero, false, nil
	}
	removed := items[idx]
	items = append(items[:idx], items[idx+1:]...)
	if err := c.Save(ctx, items); err != nil {
		return zero, false, err
	}
	return removed, true, nil
}

// IndexOf returns the position of id in items, or -1. Empty ids never match.
func IndexOf[T Entity](items []T, id string) int {
	if id == "" {
		return -1
	}
	for i, item := range items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}
