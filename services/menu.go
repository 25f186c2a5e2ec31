package services

import (
	"context"

	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/utils"
)

// ListMenuItems returns an empty list alongside the error when the store
// cannot be read.
func (s *Store) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.MenuItems.List(ctx)
	s.logFailure("Loading menu", err)
	return items, err
}

// MenuItemsByCategory filters the menu; an empty category returns all items.
func (s *Store) MenuItemsByCategory(ctx context.Context, category models.Category) ([]models.MenuItem, error) {
	items, err := s.ListMenuItems(ctx)
	if err != nil || category == "" {
		return items, err
	}
	filtered := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if item.Category == category {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

func (s *Store) GetMenuItem(ctx context.Context, id string) (models.MenuItem, error) {
	item, err := s.MenuItems.Get(ctx, id)
	s.logFailure("Loading menu item", err)
	return item, err
}

// SaveMenuItem replaces the item with a matching id in place or appends it
// under a fresh id.
func (s *Store) SaveMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	item = normalizeMenuItem(item)
	if err := validateMenuItem(item); err != nil {
		return item, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	saved, created, err := s.MenuItems.Upsert(ctx, item, func(m *models.MenuItem) {
		m.ID = s.NewID()
	})
	if err != nil {
		s.logFailure("Saving menu item", err)
		return item, err
	}

	if created {
		utils.InfoLogger.Printf("Menu item created: %s (%s)", saved.Name, saved.ID)
	} else {
		utils.InfoLogger.Printf("Menu item updated: %s (%s)", saved.Name, saved.ID)
	}
	return saved, nil
}

// DeleteMenuItem is a no-op when the id is unknown. Past orders keep their
// snapshot of the item.
func (s *Store) DeleteMenuItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, found, err := s.MenuItems.Delete(ctx, id)
	if err != nil {
		s.logFailure("Deleting menu item", err)
		return err
	}
	if found {
		utils.InfoLogger.Printf("Menu item deleted: %s (%s)", removed.Name, removed.ID)
	}
	return nil
}
