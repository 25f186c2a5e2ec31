package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-orders/models"
)

func TestSaveWaiter_CreateNormalisesUsername(t *testing.T) {
	env := setupTestStore(t)
	ctx := context.Background()

	waiter, err := env.store.SaveWaiter(ctx, models.User{
		Username: "  Mehmet ",
		Password: "secret1",
		Name:     "Mehmet Kaya",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "mehmet", waiter.Username)
	assert.Equal(t, models.RoleWaiter, waiter.Role)
	assert.NotEmpty(t, waiter.ID)

	waiters, err := env.store.ListWaiters(ctx)
	require.NoError(t, err)
	assert.Len(t, waiters, 2)
}

func TestSaveWaiter_UsernameCollisionIgnoresCase(t *testing.T) {
	env := setupTestStore(t)
	ctx := context.Background()

	_, err := env.store.SaveWaiter(ctx, models.User{Username: "ali", Password: "123456", Name: "Ali Veli"})
	require.NoError(t, err)

	_, err = env.store.SaveWaiter(ctx, models.User{Username: "Ali", Password: "654321", Name: "Ali Can"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "username", verr.Field)

	// collides with the admin account too
	_, err = env.store.SaveWaiter(ctx, models.User{Username: "ADMIN", Password: "123456", Name: "Fake"})
	assert.ErrorAs(t, err, &verr)
}

func TestSaveWaiter_EditKeepsOwnUsername(t *testing.T) {
	env := setupTestStore(t)
	ctx := context.Background()

	edited, err := env.store.SaveWaiter(ctx, models.User{ID: "1", Username: "garson1", Password: "abcdef", Name: "Ahmet Y."})
	require.NoError(t, err)
	assert.Equal(t, "1", edited.ID)

	waiters, err := env.store.ListWaiters(ctx)
	require.NoError(t, err)
	require.Len(t, waiters, 1)
	assert.Equal(t, "Ahmet Y.", waiters[0].Name)
	assert.Equal(t, "abcdef", waiters[0].Password)
}

func TestSaveWaiter_Validation(t *testing.T) {
	env := setupTestStore(t)

	tests := []struct {
		name  string
		user  models.User
		field string
	}{
		{"missing name", models.User{Username: "zeynep", Password: "123456"}, "name"},
		{"short username", models.User{Username: "ze", Password: "123456", Name: "Zeynep"}, "username"},
		{"short password", models.User{Username: "zeynep", Password: "123", Name: "Zeynep"}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.store.SaveWaiter(context.Background(), tt.user)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestDeleteWaiter(t *testing.T) {
	env := setupTestStore(t)
	ctx := context.Background()

	err := env.store.DeleteWaiter(ctx, "admin")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	require.NoError(t, env.store.DeleteWaiter(ctx, "missing"))
	require.NoError(t, env.store.DeleteWaiter(ctx, "1"))

	waiters, err := env.store.ListWaiters(ctx)
	require.NoError(t, err)
	assert.Empty(t, waiters)
}

func TestSaveWaiter_AdminAccountIsOffLimits(t *testing.T) {
	env := setupTestStore(t)
	ctx := context.Background()

	_, err := env.store.SaveWaiter(ctx, models.User{ID: "admin", Name: "Owner", Username: "owner", Password: "hunter22"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "id", verr.Field)

	_, err = env.store.GetWaiter(ctx, "admin")
	assert.ErrorIs(t, err, ErrNotFound)

	waiter, err := env.store.GetWaiter(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "garson1", waiter.Username)

	_, err = env.store.Authenticate(ctx, "admin", "admin")
	assert.NoError(t, err)
}
