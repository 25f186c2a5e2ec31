package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/storage"
	"github.com/yeremiapane/restaurant-orders/utils"
)

// Authenticate looks the user up in the waiter collection, which also holds
// the admin account. The username matches case-insensitively after trimming;
// the password must match exactly. The profile is persisted as the current
// session.
func (s *Store) Authenticate(ctx context.Context, username, password string) (models.Profile, error) {
	users, err := s.Waiters.Load(ctx)
	if err != nil {
		s.logFailure("Login", err)
		return models.Profile{}, err
	}

	username = strings.TrimSpace(username)
	var matched *models.User
	for i := range users {
		if strings.EqualFold(users[i].Username, username) && users[i].Password == password {
			matched = &users[i]
			break
		}
	}
	if matched == nil {
		utils.InfoLogger.Printf("Failed login attempt for %q", username)
		return models.Profile{}, ErrInvalidCredentials
	}

	profile := matched.Profile()
	raw, err := json.Marshal(profile)
	if err != nil {
		return profile, err
	}
	if err := s.KV.Set(ctx, storage.KeyCurrentUser, string(raw)); err != nil {
		err = fmt.Errorf("save session: %w: %w", storage.ErrStorage, err)
		s.logFailure("Login", err)
		return profile, err
	}

	utils.InfoLogger.Printf("User %s logged in as %s", profile.Username, profile.Role)
	return profile, nil
}

// CurrentUser restores the persisted session. It returns nil when nobody is
// logged in.
func (s *Store) CurrentUser(ctx context.Context) (*models.Profile, error) {
	raw, ok, err := s.KV.Get(ctx, storage.KeyCurrentUser)
	if err != nil {
		err = fmt.Errorf("load session: %w: %w", storage.ErrStorage, err)
		s.logFailure("Restoring session", err)
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var profile models.Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		err = fmt.Errorf("decode session: %w: %w", storage.ErrStorage, err)
		s.logFailure("Restoring session", err)
		return nil, err
	}
	return &profile, nil
}

// Logout clears the persisted session only.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.KV.Remove(ctx, storage.KeyCurrentUser); err != nil {
		err = fmt.Errorf("clear session: %w: %w", storage.ErrStorage, err)
		s.logFailure("Logout", err)
		return err
	}
	utils.InfoLogger.Println("Session cleared")
	return nil
}
