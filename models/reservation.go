package models

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationArrived   ReservationStatus = "arrived"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

var ReservationStatuses = []ReservationStatus{
	ReservationPending,
	ReservationConfirmed,
	ReservationArrived,
	ReservationCompleted,
	ReservationCancelled,
}

func (s ReservationStatus) Valid() bool {
	for _, known := range ReservationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// TableStatus is the status the reserved table takes when a reservation
// enters s. Pending reservations leave the table untouched.
func (s ReservationStatus) TableStatus() (TableStatus, bool) {
	switch s {
	case ReservationConfirmed:
		return TableReserved, true
	case ReservationArrived:
		return TableOccupied, true
	case ReservationCompleted, ReservationCancelled:
		return TableAvailable, true
	default:
		return "", false
	}
}

// Reservation keeps date and time as entered; they are not parsed.
type Reservation struct {
	ID            string            `json:"id"`
	CustomerName  string            `json:"customerName"`
	CustomerPhone string            `json:"customerPhone"`
	TableID       string            `json:"tableId"`
	Date          string            `json:"date"`
	Time          string            `json:"time"`
	GuestCount    int               `json:"guestCount"`
	Notes         string            `json:"notes,omitempty"`
	Status        ReservationStatus `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

func (r Reservation) EntityID() string { return r.ID }
