package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/repository"
	"github.com/yeremiapane/restaurant-orders/utils"
)

// KitchenFilter selects which orders the kitchen screen shows.
type KitchenFilter string

const (
	KitchenAll       KitchenFilter = "all"
	KitchenPending   KitchenFilter = "pending"
	KitchenPreparing KitchenFilter = "preparing"
	KitchenActive    KitchenFilter = "active"
)

func (f KitchenFilter) match(order models.Order) bool {
	switch f {
	case KitchenPending:
		return order.Status == models.OrderPending
	case KitchenPreparing:
		return order.Status == models.OrderPreparing
	case KitchenActive:
		return order.Active()
	default:
		return true
	}
}

func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.Orders.List(ctx)
	s.logFailure("Loading orders", err)
	return orders, err
}

func (s *Store) GetOrder(ctx context.Context, id string) (models.Order, error) {
	order, err := s.Orders.Get(ctx, id)
	s.logFailure("Loading order", err)
	return order, err
}

// KitchenOrders returns the filtered orders, oldest first.
func (s *Store) KitchenOrders(ctx context.Context, filter KitchenFilter) ([]models.Order, error) {
	orders, err := s.ListOrders(ctx)
	if err != nil {
		return orders, err
	}
	filtered := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if filter.match(o) {
			filtered = append(filtered, o)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
	})
	return filtered, nil
}

// AddOrder places a new order on an available table. Whatever status the
// caller passed, the order starts pending. Table status is left to the admin
// and the reservation flow.
func (s *Store) AddOrder(ctx context.Context, order models.Order) (models.Order, error) {
	if err := validateOrderItems(order.Items); err != nil {
		return order, err
	}

	order, err := s.addOrder(ctx, order)
	if err != nil {
		s.logFailure("Adding order", err)
		return order, err
	}

	utils.InfoLogger.Printf("Order %s placed for table %d by %s (%d items)",
		order.ID, order.TableNumber, order.WaiterName, order.ItemCount())
	s.Notifier.OrderUpdated(order)
	return order, nil
}

func (s *Store) addOrder(ctx context.Context, order models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables, err := s.Tables.Load(ctx)
	if err != nil {
		return order, err
	}
	var table *models.Table
	if order.TableID != "" {
		table = findTable(tables, order.TableID)
	} else {
		table = findTableByNumber(tables, order.TableNumber)
	}
	if table == nil {
		return order, fmt.Errorf("table: %w", ErrNotFound)
	}
	if !table.Selectable() {
		return order, fmt.Errorf("table %d is %s: %w", table.Number, table.Status, ErrTableUnavailable)
	}

	orders, err := s.Orders.Load(ctx)
	if err != nil {
		return order, err
	}

	order.ID = s.NewID()
	order.TableID = table.ID
	order.TableNumber = table.Number
	order.Status = models.OrderPending
	order.CreatedAt = s.Now()
	order.CompletedAt = nil
	if order.Items == nil {
		order.Items = []models.OrderItem{}
	}

	if err := s.Orders.Save(ctx, append(orders, order)); err != nil {
		return order, err
	}
	return order, nil
}

// UpdateOrderStatus moves an order one step along the kitchen flow.
// Entering completed stamps completedAt.
func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error) {
	if !status.Valid() {
		return models.Order{}, invalid("status", "unknown status "+string(status))
	}

	s.mu.Lock()
	order, err := s.Orders.Update(ctx, id, func(o *models.Order) error {
		if !o.Status.CanTransitionTo(status) {
			return fmt.Errorf("%s -> %s: %w", o.Status, status, ErrInvalidTransition)
		}
		o.Status = status
		if status == models.OrderCompleted {
			now := s.Now()
			o.CompletedAt = &now
		}
		return nil
	})
	s.mu.Unlock()
	if err != nil {
		s.logFailure("Updating order status", err)
		return order, err
	}

	utils.InfoLogger.Printf("Order %s status changed to %s", order.ID, order.Status)
	s.Notifier.OrderUpdated(order)
	return order, nil
}

// AdvanceOrder applies the next step of the kitchen flow.
func (s *Store) AdvanceOrder(ctx context.Context, id string) (models.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return order, err
	}
	next, ok := order.Status.Next()
	if !ok {
		return order, fmt.Errorf("order %s is %s: %w", order.ID, order.Status, ErrInvalidTransition)
	}
	return s.UpdateOrderStatus(ctx, id, next)
}

// ItemRequest names a menu item and how many of it to order.
type ItemRequest struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
}

// SnapshotItems copies name and price from the current menu into order
// lines, merging repeated menu items.
func (s *Store) SnapshotItems(ctx context.Context, requests []ItemRequest) ([]models.OrderItem, error) {
	menu, err := s.ListMenuItems(ctx)
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	for _, req := range requests {
		idx := repository.IndexOf(menu, req.MenuItemID)
		if idx < 0 {
			return nil, invalid("items", "unknown menu item "+req.MenuItemID)
		}
		if req.Quantity < 1 {
			return nil, invalid("items", "quantity must be at least 1 for "+menu[idx].Name)
		}
		existing := 0
		for _, line := range cart.Lines() {
			if line.ID == req.MenuItemID {
				existing = line.Quantity
			}
		}
		cart.Add(menu[idx])
		cart.SetQuantity(req.MenuItemID, existing+req.Quantity)
	}
	return cart.OrderItems(), nil
}

// OrderStatusCounts counts orders per status. Every known status is present.
func (s *Store) OrderStatusCounts(ctx context.Context) (map[models.OrderStatus]int, error) {
	counts := map[models.OrderStatus]int{
		models.OrderPending:   0,
		models.OrderPreparing: 0,
		models.OrderReady:     0,
		models.OrderCompleted: 0,
	}
	orders, err := s.ListOrders(ctx)
	if err != nil {
		return counts, err
	}
	for _, o := range orders {
		counts[o.Status]++
	}
	return counts, nil
}
