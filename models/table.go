package models

import "time"

type TableStatus string

const (
	TableAvailable   TableStatus = "available"
	TableOccupied    TableStatus = "occupied"
	TableReserved    TableStatus = "reserved"
	TableCleaning    TableStatus = "cleaning"
	TableMaintenance TableStatus = "maintenance"
)

var TableStatuses = []TableStatus{
	TableAvailable,
	TableOccupied,
	TableReserved,
	TableCleaning,
	TableMaintenance,
}

func (s TableStatus) Valid() bool {
	for _, known := range TableStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// TableOrder is the order summary shown on an occupied table.
type TableOrder struct {
	ID         string    `json:"id"`
	WaiterName string    `json:"waiterName"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Table struct {
	ID           string      `json:"id"`
	Number       int         `json:"number"`
	Capacity     int         `json:"capacity"`
	Status       TableStatus `json:"status"`
	LastUpdated  time.Time   `json:"lastUpdated"`
	CurrentOrder *TableOrder `json:"currentOrder"`
}

func (t Table) EntityID() string { return t.ID }

// Selectable reports whether a waiter may open a new order on the table.
func (t Table) Selectable() bool {
	return t.Status == TableAvailable
}
