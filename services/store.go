package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/repository"
	"github.com/yeremiapane/restaurant-orders/storage"
	"github.com/yeremiapane/restaurant-orders/utils"
)

var (
	ErrNotFound           = repository.ErrNotFound
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrTableUnavailable   = errors.New("table is not available")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationError reports a rejected field value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Notifier receives every change the store commits.
type Notifier interface {
	OrderUpdated(order models.Order)
	TableUpdated(table models.Table)
	ReservationUpdated(reservation models.Reservation)
	ReservationDeleted(id string)
}

type nopNotifier struct{}

func (nopNotifier) OrderUpdated(models.Order)             {}
func (nopNotifier) TableUpdated(models.Table)             {}
func (nopNotifier) ReservationUpdated(models.Reservation) {}
func (nopNotifier) ReservationDeleted(string)             {}

// Store is the restaurant domain model on top of the key-value adapter.
// Every operation reads the affected collections, changes them in memory
// and writes them back; mutations are serialized by mu.
type Store struct {
	KV           storage.KV
	MenuItems    *repository.Collection[models.MenuItem]
	Tables       *repository.Collection[models.Table]
	Waiters      *repository.Collection[models.User]
	Orders       *repository.Collection[models.Order]
	Reservations *repository.Collection[models.Reservation]

	Notifier  Notifier
	Now       func() time.Time
	NewID     func() string
	WeekStart time.Weekday

	mu sync.Mutex
}

func NewStore(kv storage.KV) *Store {
	return &Store{
		KV:           kv,
		MenuItems:    repository.NewCollection[models.MenuItem](kv, storage.KeyMenuItems),
		Tables:       repository.NewCollection[models.Table](kv, storage.KeyTables),
		Waiters:      repository.NewCollection[models.User](kv, storage.KeyWaiters),
		Orders:       repository.NewCollection[models.Order](kv, storage.KeyOrders),
		Reservations: repository.NewCollection[models.Reservation](kv, storage.KeyReservations),
		Notifier:     nopNotifier{},
		Now:          time.Now,
		NewID:        uuid.NewString,
		WeekStart:    time.Sunday,
	}
}

// commit writes several collection blobs in one adapter call.
func (s *Store) commit(ctx context.Context, entries map[string]string) error {
	if err := s.KV.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("commit: %w: %w", storage.ErrStorage, err)
	}
	return nil
}

func (s *Store) logFailure(action string, err error) {
	if errors.Is(err, storage.ErrStorage) {
		utils.ErrorLogger.Printf("%s failed: %v", action, err)
	}
}
