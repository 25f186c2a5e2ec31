package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/repository"
	"github.com/yeremiapane/restaurant-orders/storage"
	"github.com/yeremiapane/restaurant-orders/utils"
)

func (s *Store) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	reservations, err := s.Reservations.List(ctx)
	s.logFailure("Loading reservations", err)
	return reservations, err
}

func (s *Store) GetReservation(ctx context.Context, id string) (models.Reservation, error) {
	reservation, err := s.Reservations.Get(ctx, id)
	s.logFailure("Loading reservation", err)
	return reservation, err
}

// ReservableTables lists the tables a reservation may be placed on.
func (s *Store) ReservableTables(ctx context.Context) ([]models.Table, error) {
	tables, err := s.ListTables(ctx)
	if err != nil {
		return tables, err
	}
	out := make([]models.Table, 0, len(tables))
	for _, t := range tables {
		if reservable(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// SaveReservation creates or edits a reservation. New reservations without
// a status are confirmed. A confirmed reservation reserves its table, and
// moving a reservation frees the old table if it was still held for it.
// The reservation and the table are written together.
func (s *Store) SaveReservation(ctx context.Context, r models.Reservation) (models.Reservation, error) {
	r = normalizeReservation(r)
	if err := validateReservation(r); err != nil {
		return r, err
	}

	r, changed, err := s.saveReservation(ctx, r)
	if err != nil {
		s.logFailure("Saving reservation", err)
		return r, err
	}

	utils.InfoLogger.Printf("Reservation %s saved for %s (table %s, status=%s)",
		r.ID, r.CustomerName, r.TableID, r.Status)
	s.Notifier.ReservationUpdated(r)
	for _, t := range changed {
		s.Notifier.TableUpdated(t)
	}
	return r, nil
}

func (s *Store) saveReservation(ctx context.Context, r models.Reservation) (models.Reservation, []models.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservations, tables, err := s.loadReservationsAndTables(ctx)
	if err != nil {
		return r, nil, err
	}

	idx := repository.IndexOf(reservations, r.ID)
	table := findTable(tables, r.TableID)
	if table == nil {
		return r, nil, invalid("tableId", "unknown table")
	}
	holdsTable := idx >= 0 && reservations[idx].TableID == r.TableID
	if !holdsTable && !reservable(*table) {
		return r, nil, invalid("tableId", "table "+strconv.Itoa(table.Number)+" is "+string(table.Status))
	}
	if r.GuestCount > table.Capacity {
		return r, nil, invalid("guestCount", "table seats at most "+strconv.Itoa(table.Capacity)+" guests")
	}

	now := s.Now()
	changed := map[string]*models.Table{}

	if idx >= 0 {
		previous := reservations[idx]
		r.CreatedAt = previous.CreatedAt
		if r.Status == "" {
			r.Status = previous.Status
		}
		if previous.TableID != "" && previous.TableID != r.TableID {
			if old := findTable(tables, previous.TableID); old != nil && old.Status == models.TableReserved {
				applyTableStatus(old, models.TableAvailable, now)
				changed[old.ID] = old
			}
		}
	} else {
		r.ID = s.NewID()
		r.CreatedAt = now
		if r.Status == "" {
			r.Status = models.ReservationConfirmed
		}
	}
	r.UpdatedAt = now

	if r.Status == models.ReservationConfirmed {
		applyTableStatus(table, models.TableReserved, now)
		changed[table.ID] = table
	}

	if idx >= 0 {
		reservations[idx] = r
	} else {
		reservations = append(reservations, r)
	}

	if err := s.commitReservations(ctx, reservations, tables, len(changed) > 0); err != nil {
		return r, nil, err
	}

	out := make([]models.Table, 0, len(changed))
	for _, t := range changed {
		out = append(out, *t)
	}
	return r, out, nil
}

// DeleteReservation removes the reservation and frees its table. Unknown
// ids are a no-op.
func (s *Store) DeleteReservation(ctx context.Context, id string) error {
	removed, table, err := s.deleteReservation(ctx, id)
	if err != nil {
		s.logFailure("Deleting reservation", err)
		return err
	}
	if removed == nil {
		return nil
	}

	utils.InfoLogger.Printf("Reservation %s deleted", removed.ID)
	s.Notifier.ReservationDeleted(removed.ID)
	if table != nil {
		s.Notifier.TableUpdated(*table)
	}
	return nil
}

func (s *Store) deleteReservation(ctx context.Context, id string) (*models.Reservation, *models.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservations, tables, err := s.loadReservationsAndTables(ctx)
	if err != nil {
		return nil, nil, err
	}

	idx := repository.IndexOf(reservations, id)
	if idx < 0 {
		return nil, nil, nil
	}
	removed := reservations[idx]
	reservations = append(reservations[:idx], reservations[idx+1:]...)

	var table *models.Table
	if removed.TableID != "" {
		if table = findTable(tables, removed.TableID); table != nil {
			applyTableStatus(table, models.TableAvailable, s.Now())
		}
	}

	if err := s.commitReservations(ctx, reservations, tables, table != nil); err != nil {
		return nil, nil, err
	}
	return &removed, table, nil
}

// UpdateReservationStatus records the new status and moves the table along:
// confirmed reserves it, arrived occupies it, completed and cancelled free it.
func (s *Store) UpdateReservationStatus(ctx context.Context, id string, status models.ReservationStatus) (models.Reservation, error) {
	if !status.Valid() {
		return models.Reservation{}, invalid("status", "unknown status "+string(status))
	}

	r, table, err := s.updateReservationStatus(ctx, id, status)
	if err != nil {
		s.logFailure("Updating reservation status", err)
		return models.Reservation{}, err
	}

	utils.InfoLogger.Printf("Reservation %s status changed to %s", r.ID, r.Status)
	s.Notifier.ReservationUpdated(r)
	if table != nil {
		s.Notifier.TableUpdated(*table)
	}
	return r, nil
}

func (s *Store) updateReservationStatus(ctx context.Context, id string, status models.ReservationStatus) (models.Reservation, *models.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservations, tables, err := s.loadReservationsAndTables(ctx)
	if err != nil {
		return models.Reservation{}, nil, err
	}

	idx := repository.IndexOf(reservations, id)
	if idx < 0 {
		return models.Reservation{}, nil, fmt.Errorf("reservation %s: %w", id, ErrNotFound)
	}

	now := s.Now()
	r := &reservations[idx]
	r.Status = status
	r.UpdatedAt = now

	var table *models.Table
	if tableStatus, ok := status.TableStatus(); ok && r.TableID != "" {
		if table = findTable(tables, r.TableID); table != nil {
			applyTableStatus(table, tableStatus, now)
		}
	}

	if err := s.commitReservations(ctx, reservations, tables, table != nil); err != nil {
		return models.Reservation{}, nil, err
	}
	return *r, table, nil
}

// reservable reports whether a new reservation may be placed on the table.
func reservable(t models.Table) bool {
	return t.Status == models.TableAvailable || t.Status == models.TableReserved
}

func (s *Store) loadReservationsAndTables(ctx context.Context) ([]models.Reservation, []models.Table, error) {
	reservations, err := s.Reservations.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	tables, err := s.Tables.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	return reservations, tables, nil
}

// commitReservations writes the reservations, and the tables when they
// changed, as one unit.
func (s *Store) commitReservations(ctx context.Context, reservations []models.Reservation, tables []models.Table, tablesChanged bool) error {
	entries := make(map[string]string, 2)

	raw, err := s.Reservations.Encode(reservations)
	if err != nil {
		return err
	}
	entries[storage.KeyReservations] = raw

	if tablesChanged {
		raw, err := s.Tables.Encode(tables)
		if err != nil {
			return err
		}
		entries[storage.KeyTables] = raw
	}
	return s.commit(ctx, entries)
}
