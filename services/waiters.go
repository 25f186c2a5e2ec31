package services

import (
	"context"
	"fmt"

	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/repository"
	"github.com/yeremiapane/restaurant-orders/utils"
)

// ListWaiters hides the admin account that shares the collection.
func (s *Store) ListWaiters(ctx context.Context) ([]models.User, error) {
	users, err := s.Waiters.List(ctx)
	if err != nil {
		s.logFailure("Loading waiters", err)
		return []models.User{}, err
	}
	waiters := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.Role == models.RoleWaiter {
			waiters = append(waiters, u)
		}
	}
	return waiters, nil
}

// GetWaiter finds a waiter account. The admin account is reported as not
// found, as in ListWaiters.
func (s *Store) GetWaiter(ctx context.Context, id string) (models.User, error) {
	user, err := s.Waiters.Get(ctx, id)
	if err != nil {
		s.logFailure("Loading waiter", err)
		return user, err
	}
	if user.Role != models.RoleWaiter {
		return models.User{}, fmt.Errorf("waiter %s: %w", id, ErrNotFound)
	}
	return user, nil
}

// SaveWaiter creates or edits a waiter account. New accounts always get the
// waiter role and the admin account cannot be edited.
func (s *Store) SaveWaiter(ctx context.Context, waiter models.User) (models.User, error) {
	waiter = normalizeWaiter(waiter)

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.Waiters.Load(ctx)
	if err != nil {
		s.logFailure("Saving waiter", err)
		return waiter, err
	}
	if err := validateWaiter(waiter, users); err != nil {
		return waiter, err
	}

	idx := repository.IndexOf(users, waiter.ID)
	if idx >= 0 && users[idx].Role == models.RoleAdmin {
		return waiter, invalid("id", "the admin account cannot be edited here")
	}
	if idx >= 0 {
		waiter.Role = users[idx].Role
		users[idx] = waiter
	} else {
		waiter.ID = s.NewID()
		waiter.Role = models.RoleWaiter
		users = append(users, waiter)
	}

	if err := s.Waiters.Save(ctx, users); err != nil {
		s.logFailure("Saving waiter", err)
		return waiter, err
	}
	utils.InfoLogger.Printf("Waiter saved: %s (%s)", waiter.Username, waiter.ID)
	return waiter, nil
}

// DeleteWaiter removes a waiter account. Unknown ids are a no-op; the admin
// account cannot be removed here.
func (s *Store) DeleteWaiter(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.Waiters.Load(ctx)
	if err != nil {
		s.logFailure("Deleting waiter", err)
		return err
	}
	idx := repository.IndexOf(users, id)
	if idx < 0 {
		return nil
	}
	if users[idx].Role == models.RoleAdmin {
		return invalid("id", "the admin account cannot be deleted")
	}

	removed := users[idx]
	users = append(users[:idx], users[idx+1:]...)
	if err := s.Waiters.Save(ctx, users); err != nil {
		s.logFailure("Deleting waiter", err)
		return err
	}
	utils.InfoLogger.Printf("Waiter deleted: %s (%s)", removed.Username, removed.ID)
	return nil
}
