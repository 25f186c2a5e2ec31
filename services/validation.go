package services

import (
	"strings"

	"github.com/yeremiapane/restaurant-orders/models"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

func normalizeMenuItem(item models.MenuItem) models.MenuItem {
	item.Name = strings.TrimSpace(item.Name)
	item.Description = strings.TrimSpace(item.Description)
	return item
}

func validateMenuItem(item models.MenuItem) error {
	switch {
	case item.Name == "":
		return invalid("name", "is required")
	case item.Description == "":
		return invalid("description", "is required")
	case !item.Category.Valid():
		return invalid("category", "unknown category "+string(item.Category))
	case item.Price <= 0:
		return invalid("price", "must be a positive number")
	}
	return nil
}

// normalizeWaiter trims every field and lower-cases the username.
func normalizeWaiter(user models.User) models.User {
	user.Name = strings.TrimSpace(user.Name)
	user.Username = strings.ToLower(strings.TrimSpace(user.Username))
	user.Password = strings.TrimSpace(user.Password)
	return user
}

func validateWaiter(user models.User, existing []models.User) error {
	switch {
	case user.Name == "":
		return invalid("name", "is required")
	case user.Username == "":
		return invalid("username", "is required")
	case len([]rune(user.Username)) < minUsernameLength:
		return invalid("username", "must be at least 3 characters")
	case user.Password == "":
		return invalid("password", "is required")
	case len([]rune(user.Password)) < minPasswordLength:
		return invalid("password", "must be at least 6 characters")
	}
	if usernameTaken(existing, user.Username, user.ID) {
		return invalid("username", "is already in use")
	}
	return nil
}

// usernameTaken compares case-insensitively and skips the record being
// edited.
func usernameTaken(users []models.User, username, exceptID string) bool {
	for _, u := range users {
		if u.ID != exceptID && strings.EqualFold(u.Username, username) {
			return true
		}
	}
	return false
}

func validateTable(table models.Table) error {
	switch {
	case table.Number <= 0:
		return invalid("number", "must be a positive number")
	case table.Capacity <= 0:
		return invalid("capacity", "must be a positive number")
	case !table.Status.Valid():
		return invalid("status", "unknown status "+string(table.Status))
	}
	return nil
}

func normalizeReservation(r models.Reservation) models.Reservation {
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.CustomerPhone = strings.TrimSpace(r.CustomerPhone)
	r.TableID = strings.TrimSpace(r.TableID)
	r.Date = strings.TrimSpace(r.Date)
	r.Time = strings.TrimSpace(r.Time)
	r.Notes = strings.TrimSpace(r.Notes)
	return r
}

func validateReservation(r models.Reservation) error {
	switch {
	case r.CustomerName == "":
		return invalid("customerName", "is required")
	case r.CustomerPhone == "":
		return invalid("customerPhone", "is required")
	case r.TableID == "":
		return invalid("tableId", "is required")
	case r.Date == "":
		return invalid("date", "is required")
	case r.Time == "":
		return invalid("time", "is required")
	case r.GuestCount < 1:
		return invalid("guestCount", "must be at least 1")
	case r.Status != "" && !r.Status.Valid():
		return invalid("status", "unknown status "+string(r.Status))
	}
	return nil
}

func validateOrderItems(items []models.OrderItem) error {
	for _, item := range items {
		if item.Quantity < 1 {
			return invalid("items", "quantity must be at least 1 for "+item.Name)
		}
	}
	return nil
}
