package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedNext(t *testing.T) {
	assert.Equal(t, []OrderStatus{OrderPreparing}, AllowedNext(OrderPending))
	assert.Equal(t, []OrderStatus{OrderReady}, AllowedNext(OrderPreparing))
	assert.Equal(t, []OrderStatus{OrderCompleted}, AllowedNext(OrderReady))
	assert.Empty(t, AllowedNext(OrderCompleted))
	assert.Empty(t, AllowedNext("cancelled"))
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{OrderPending, OrderPreparing, true},
		{OrderPending, OrderReady, false},
		{OrderPending, OrderCompleted, false},
		{OrderPreparing, OrderPending, false},
		{OrderReady, OrderCompleted, true},
		{OrderCompleted, OrderPending, false},
		{OrderCompleted, OrderCompleted, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to))
		})
	}

	_, ok := OrderCompleted.Next()
	assert.False(t, ok)
}

func TestOrder_Totals(t *testing.T) {
	order := Order{Items: []OrderItem{
		{MenuItemID: "a", Price: 10, Quantity: 2},
		{MenuItemID: "b", Price: 5, Quantity: 1},
	}}
	assert.Equal(t, 25.0, order.Total())
	assert.Equal(t, 3, order.ItemCount())
}

func TestReservationStatus_TableStatus(t *testing.T) {
	tests := []struct {
		status ReservationStatus
		table  TableStatus
		ok     bool
	}{
		{ReservationPending, "", false},
		{ReservationConfirmed, TableReserved, true},
		{ReservationArrived, TableOccupied, true},
		{ReservationCompleted, TableAvailable, true},
		{ReservationCancelled, TableAvailable, true},
	}
	for _, tt := range tests {
		table, ok := tt.status.TableStatus()
		assert.Equal(t, tt.ok, ok, tt.status)
		assert.Equal(t, tt.table, table, tt.status)
	}
}
