package models

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
)

// orderTransitions is the forward-only kitchen flow. Completed is terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderPreparing},
	OrderPreparing: {OrderReady},
	OrderReady:     {OrderCompleted},
	OrderCompleted: nil,
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// AllowedNext returns the statuses an order in status s may move to.
func AllowedNext(s OrderStatus) []OrderStatus {
	return orderTransitions[s]
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Next returns the single forward step, if any.
func (s OrderStatus) Next() (OrderStatus, bool) {
	next := orderTransitions[s]
	if len(next) == 0 {
		return "", false
	}
	return next[0], true
}

// OrderItem is a snapshot of the menu item at order time.
type OrderItem struct {
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

func (i OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

type Order struct {
	ID          string      `json:"id"`
	TableID     string      `json:"tableId,omitempty"`
	TableNumber int         `json:"tableNumber"`
	WaiterID    string      `json:"waiterId,omitempty"`
	WaiterName  string      `json:"waiterName"`
	Items       []OrderItem `json:"items"`
	Notes       string      `json:"notes,omitempty"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
}

func (o Order) EntityID() string { return o.ID }

// Total is derived from the line items and never stored.
func (o Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Subtotal()
	}
	return total
}

func (o Order) ItemCount() int {
	var count int
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// Active reports whether the kitchen still has work on the order.
func (o Order) Active() bool {
	return o.Status == OrderPending || o.Status == OrderPreparing || o.Status == OrderReady
}
