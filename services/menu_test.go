package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/storage"
)

func TestSaveMenuItem_ReplacesInPlace(t *testing.T) {
	env := setupTestStore(t)
	ctx := context.Background()

	saved, err := env.store.SaveMenuItem(ctx, models.MenuItem{
		ID:          "3",
		Name:        "Lentil Soup XL",
		Category:    models.CategorySoup,
		Price:       30,
		Description: "Large bowl",
	})
	require.NoError(t, err)
	assert.Equal(t, "3", saved.ID)

	items, err := env.store.ListMenuItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 6)
	assert.Equal(t, "Lentil Soup XL", items[2].Name)
	assert.Equal(t, 30.0, items[2].Price)
}

func TestSaveMenuItem_AppendsWithFreshID(t *testing.T) {
	env := setupTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"", "does-not-exist"} {
		saved, err := env.store.SaveMenuItem(ctx, models.MenuItem{
			ID:          id,
			Name:        "Baklava",
			Category:    models.CategoryDessert,
			Price:       40,
			Description: "Pistachio baklava",
		})
		require.NoError(t, err)
		assert.NotEqual(t, id, saved.ID)
		assert.NotEmpty(t, saved.ID)
	}

	items, err := env.store.ListMenuItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 8)
	assert.NotEqual(t, items[6].ID, items[7].ID)
}

func TestSaveMenuItem_Validation(t *testing.T) {
	env := setupTestStore(t)
	valid := models.MenuItem{Name: "Künefe", Category: models.CategoryDessert, Price: 60, Description: "Hot cheese dessert"}

	tests := []struct {
		name   string
		mutate func(*models.MenuItem)
		field  string
	}{
		{"blank name", func(m *models.MenuItem) { m.Name = "   " }, "name"},
		{"blank description", func(m *models.MenuItem) { m.Description = "" }, "description"},
		{"unknown category", func(m *models.MenuItem) { m.Category = "Snack" }, "category"},
		{"zero price", func(m *models.MenuItem) { m.Price = 0 }, "price"},
		{"negative price", func(m *models.MenuItem) { m.Price = -5 }, "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := valid
			tt.mutate(&item)
			_, err := env.store.SaveMenuItem(context.Background(), item)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	items, _ := env.store.ListMenuItems(context.Background())
	assert.Len(t, items, 6)
}

func TestDeleteMenuItem_UnknownIDIsNoop(t *testing.T) {
	env := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, env.store.DeleteMenuItem(ctx, "nope"))
	items, err := env.store.ListMenuItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 6)

	require.NoError(t, env.store.DeleteMenuItem(ctx, "6"))
	items, err = env.store.ListMenuItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 5)
}

func TestSaveMenuItem_WriteFailureKeepsPriorState(t *testing.T) {
	env := setupTestStore(t)
	ctx := context.Background()

	env.kv.fail(false, true, false)
	_, err := env.store.SaveMenuItem(ctx, models.MenuItem{
		Name: "Baklava", Category: models.CategoryDessert, Price: 40, Description: "Pistachio",
	})
	assert.ErrorIs(t, err, storage.ErrStorage)

	env.kv.fail(false, false, false)
	items, err := env.store.ListMenuItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 6)
}

func TestMenuItemsByCategory(t *testing.T) {
	env := setupTestStore(t)

	drinks, err := env.store.MenuItemsByCategory(context.Background(), models.CategoryDrink)
	require.NoError(t, err)
	assert.Len(t, drinks, 2)

	all, err := env.store.MenuItemsByCategory(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 6)
}
