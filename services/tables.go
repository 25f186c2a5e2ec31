package services

import (
	"context"
	"time"

	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/repository"
	"github.com/yeremiapane/restaurant-orders/utils"
)

// applyTableStatus is the only place a table status changes. Freeing a
// table drops its current order summary.
func applyTableStatus(table *models.Table, status models.TableStatus, now time.Time) {
	table.Status = status
	table.LastUpdated = now
	if status == models.TableAvailable {
		table.CurrentOrder = nil
	}
}

func (s *Store) ListTables(ctx context.Context) ([]models.Table, error) {
	tables, err := s.Tables.List(ctx)
	s.logFailure("Loading tables", err)
	return tables, err
}

// TablesByStatus filters tables; an empty status returns all of them.
func (s *Store) TablesByStatus(ctx context.Context, status models.TableStatus) ([]models.Table, error) {
	tables, err := s.ListTables(ctx)
	if err != nil || status == "" {
		return tables, err
	}
	filtered := make([]models.Table, 0, len(tables))
	for _, t := range tables {
		if t.Status == status {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func (s *Store) GetTable(ctx context.Context, id string) (models.Table, error) {
	table, err := s.Tables.Get(ctx, id)
	s.logFailure("Loading table", err)
	return table, err
}

// TableStatusCounts counts tables per status. Every known status is present.
func (s *Store) TableStatusCounts(ctx context.Context) (map[models.TableStatus]int, error) {
	counts := make(map[models.TableStatus]int, len(models.TableStatuses))
	for _, status := range models.TableStatuses {
		counts[status] = 0
	}
	tables, err := s.ListTables(ctx)
	if err != nil {
		return counts, err
	}
	for _, t := range tables {
		counts[t.Status]++
	}
	return counts, nil
}

func (s *Store) SaveTable(ctx context.Context, table models.Table) (models.Table, error) {
	if table.Status == "" {
		table.Status = models.TableAvailable
	}
	if err := validateTable(table); err != nil {
		return table, err
	}

	s.mu.Lock()
	table.LastUpdated = s.Now()
	if table.Status == models.TableAvailable {
		table.CurrentOrder = nil
	}
	saved, _, err := s.Tables.Upsert(ctx, table, func(t *models.Table) {
		t.ID = s.NewID()
	})
	s.mu.Unlock()
	if err != nil {
		s.logFailure("Saving table", err)
		return table, err
	}

	utils.InfoLogger.Printf("Table %d saved (status=%s)", saved.Number, saved.Status)
	s.Notifier.TableUpdated(saved)
	return saved, nil
}

// DeleteTable is a no-op when the id is unknown.
func (s *Store) DeleteTable(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, found, err := s.Tables.Delete(ctx, id)
	if err != nil {
		s.logFailure("Deleting table", err)
		return err
	}
	if found {
		utils.InfoLogger.Printf("Table %d deleted", removed.Number)
	}
	return nil
}

// UpdateTableStatus sets the status and stamps lastUpdated.
func (s *Store) UpdateTableStatus(ctx context.Context, id string, status models.TableStatus) (models.Table, error) {
	if !status.Valid() {
		return models.Table{}, invalid("status", "unknown status "+string(status))
	}

	s.mu.Lock()
	table, err := s.Tables.Update(ctx, id, func(t *models.Table) error {
		applyTableStatus(t, status, s.Now())
		return nil
	})
	s.mu.Unlock()
	if err != nil {
		s.logFailure("Updating table status", err)
		return table, err
	}

	utils.InfoLogger.Printf("Table %d status changed to %s", table.Number, table.Status)
	s.Notifier.TableUpdated(table)
	return table, nil
}

func findTable(tables []models.Table, id string) *models.Table {
	if idx := repository.IndexOf(tables, id); idx >= 0 {
		return &tables[idx]
	}
	return nil
}

func findTableByNumber(tables []models.Table, number int) *models.Table {
	for i := range tables {
		if tables[i].Number == number {
			return &tables[i]
		}
	}
	return nil
}
