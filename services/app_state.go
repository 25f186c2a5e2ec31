package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/utils"
)

var (
	ErrNotReady        = errors.New("application state is not initialised")
	ErrNotLoggedIn     = errors.New("no user is logged in")
	ErrNoTableSelected = errors.New("no table selected")
	ErrEmptyCart       = errors.New("cart is empty")
)

type Phase int

const (
	PhaseNew Phase = iota
	PhaseSeeding
	PhaseLoading
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseSeeding:
		return "seeding"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	default:
		return "new"
	}
}

// AppState is the session held by one device: who is logged in, which
// table they are serving and what is in the cart. Persisted collections
// stay in the Store.
type AppState struct {
	Store *Store

	mu            sync.Mutex
	phase         Phase
	user          *models.Profile
	selectedTable *models.Table
	cart          models.Cart
}

func NewAppState(store *Store) *AppState {
	return &AppState{Store: store}
}

// Init seeds missing collections, restores the persisted session and marks
// the state ready. A failed session restore leaves the user logged out.
func (a *AppState) Init(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.phase = PhaseSeeding
	if err := a.Store.Seed(ctx); err != nil {
		a.phase = PhaseNew
		return fmt.Errorf("init: %w", err)
	}

	a.phase = PhaseLoading
	user, err := a.Store.CurrentUser(ctx)
	if err != nil {
		utils.ErrorLogger.Printf("Session restore failed, starting logged out: %v", err)
		user = nil
	}
	a.user = user

	a.phase = PhaseReady
	if user != nil {
		utils.InfoLogger.Printf("Session restored for %s", user.Username)
	}
	return nil
}

func (a *AppState) Phase() Phase {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.phase
}

func (a *AppState) User() *models.Profile {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

func (a *AppState) Login(ctx context.Context, username, password string) (models.Profile, error) {
	if a.Phase() != PhaseReady {
		return models.Profile{}, ErrNotReady
	}
	profile, err := a.Store.Authenticate(ctx, username, password)
	if err != nil {
		return profile, err
	}
	a.mu.Lock()
	a.user = &profile
	a.selectedTable = nil
	a.cart.Clear()
	a.mu.Unlock()
	return profile, nil
}

// Logout clears the session fields. Collections are left untouched.
func (a *AppState) Logout(ctx context.Context) error {
	err := a.Store.Logout(ctx)

	a.mu.Lock()
	a.user = nil
	a.selectedTable = nil
	a.cart.Clear()
	a.mu.Unlock()
	return err
}

// SelectTable makes the table the target of the next order. Only available
// tables can be chosen.
func (a *AppState) SelectTable(ctx context.Context, tableID string) (models.Table, error) {
	table, err := a.Store.GetTable(ctx, tableID)
	if err != nil {
		return table, err
	}
	if !table.Selectable() {
		return table, fmt.Errorf("table %d is %s: %w", table.Number, table.Status, ErrTableUnavailable)
	}
	a.mu.Lock()
	a.selectedTable = &table
	a.mu.Unlock()
	return table, nil
}

func (a *AppState) SelectedTable() *models.Table {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.selectedTable == nil {
		return nil
	}
	t := *a.selectedTable
	return &t
}

// UpdateCart runs fn against the cart under the state lock.
func (a *AppState) UpdateCart(fn func(cart *models.Cart)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(&a.cart)
}

func (a *AppState) CartLines() []models.CartLine {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cart.Lines()
}

func (a *AppState) CartTotal() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cart.Total()
}

// SubmitOrder places the cart as an order for the selected table on behalf
// of the logged-in user. The cart and table selection are cleared only when
// the order was stored.
func (a *AppState) SubmitOrder(ctx context.Context, notes string) (models.Order, error) {
	a.mu.Lock()
	user, table := a.user, a.selectedTable
	empty := a.cart.Empty()
	items := a.cart.OrderItems()
	a.mu.Unlock()

	switch {
	case user == nil:
		return models.Order{}, ErrNotLoggedIn
	case table == nil:
		return models.Order{}, ErrNoTableSelected
	case empty:
		return models.Order{}, ErrEmptyCart
	}

	order, err := a.Store.AddOrder(ctx, models.Order{
		TableID:     table.ID,
		TableNumber: table.Number,
		WaiterID:    user.ID,
		WaiterName:  user.Name,
		Items:       items,
		Notes:       strings.TrimSpace(notes),
	})
	if err != nil {
		return order, err
	}

	a.mu.Lock()
	a.cart.Clear()
	a.selectedTable = nil
	a.mu.Unlock()
	return order, nil
}
