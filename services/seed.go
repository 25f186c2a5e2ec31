package services

import (
	"context"
	"strconv"
	"time"

	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/utils"
)

func seedMenuItems() []models.MenuItem {
	return []models.MenuItem{
		{ID: "1", Name: "Adana Kebap", Category: models.CategoryMain, Price: 85, Description: "Spicy minced kebab with rice and salad"},
		{ID: "2", Name: "Chicken Shish", Category: models.CategoryMain, Price: 75, Description: "Marinated chicken breast with rice"},
		{ID: "3", Name: "Lentil Soup", Category: models.CategorySoup, Price: 25, Description: "Traditional red lentil soup"},
		{ID: "4", Name: "Shepherd Salad", Category: models.CategorySalad, Price: 35, Description: "Tomato, cucumber, onion and parsley"},
		{ID: "5", Name: "Ayran", Category: models.CategoryDrink, Price: 15, Description: "Homemade yoghurt drink"},
		{ID: "6", Name: "Tea", Category: models.CategoryDrink, Price: 8, Description: "Brewed black tea"},
	}
}

func seedTables(now time.Time) []models.Table {
	demo := func(id string) *models.TableOrder {
		return &models.TableOrder{ID: id, WaiterName: "Ahmet Yılmaz", CreatedAt: now}
	}
	layout := []struct {
		capacity int
		status   models.TableStatus
		order    *models.TableOrder
	}{
		{4, models.TableAvailable, nil},
		{2, models.TableOccupied, demo("demo1")},
		{6, models.TableAvailable, nil},
		{4, models.TableReserved, nil},
		{2, models.TableCleaning, nil},
		{4, models.TableAvailable, nil},
		{8, models.TableAvailable, nil},
		{4, models.TableOccupied, demo("demo2")},
		{2, models.TableAvailable, nil},
		{6, models.TableMaintenance, nil},
	}

	tables := make([]models.Table, 0, len(layout))
	for i, l := range layout {
		number := i + 1
		tables = append(tables, models.Table{
			ID:           strconv.Itoa(number),
			Number:       number,
			Capacity:     l.capacity,
			Status:       l.status,
			LastUpdated:  now,
			CurrentOrder: l.order,
		})
	}
	return tables
}

func seedUsers() []models.User {
	return []models.User{
		{ID: "1", Username: "garson1", Password: "123456", Name: "Ahmet Yılmaz", Role: models.RoleWaiter},
		{ID: "admin", Username: "admin", Password: "admin", Name: "Administrator", Role: models.RoleAdmin},
	}
}

// Seed writes the initial data for every collection whose key is absent.
// Existing collections are never touched.
func (s *Store) Seed(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	steps := []struct {
		name   string
		exists func(context.Context) (bool, error)
		save   func(context.Context) error
	}{
		{"menu items", s.MenuItems.Exists, func(ctx context.Context) error { return s.MenuItems.Save(ctx, seedMenuItems()) }},
		{"tables", s.Tables.Exists, func(ctx context.Context) error { return s.Tables.Save(ctx, seedTables(now)) }},
		{"waiters", s.Waiters.Exists, func(ctx context.Context) error { return s.Waiters.Save(ctx, seedUsers()) }},
		{"orders", s.Orders.Exists, func(ctx context.Context) error { return s.Orders.Save(ctx, nil) }},
		{"reservations", s.Reservations.Exists, func(ctx context.Context) error { return s.Reservations.Save(ctx, nil) }},
	}

	for _, step := range steps {
		exists, err := step.exists(ctx)
		if err != nil {
			s.logFailure("Seeding "+step.name, err)
			return err
		}
		if exists {
			continue
		}
		if err := step.save(ctx); err != nil {
			s.logFailure("Seeding "+step.name, err)
			return err
		}
		utils.InfoLogger.Printf("Seeded %s", step.name)
	}
	return nil
}
