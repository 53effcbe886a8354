package order

import (
	"errors"
	"fmt"

	"foodmarket/internal/model"

	"gorm.io/gorm"
)

// Sentinel errors returned by Place. Handlers map these onto HTTP statuses.
var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidLine        = errors.New("cart line is malformed")
	ErrRestaurantNotFound = errors.New("restaurant not found")
)

// UnavailableItemError names the menu item that caused an order rejection.
// The whole order is rejected; no partial order is ever created.
type UnavailableItemError struct {
	MenuItemID uint
}

func (e *UnavailableItemError) Error() string {
	return fmt.Sprintf("menu item %d not found", e.MenuItemID)
}

// CartLine is a single submitted cart entry. Only the item reference and
// quantity are read; any client-supplied price is ignored.
type CartLine struct {
	MenuItemID uint `json:"menu_item_id"`
	Quantity   int  `json:"quantity"`
}

// Store is the persistence surface the order service needs. Lookups report
// gorm.ErrRecordNotFound for missing (or inactive/unavailable) rows; any other
// error is an infrastructure failure.
type Store interface {
	// ActiveRestaurant returns the restaurant only if it exists and is active.
	ActiveRestaurant(id uint) (*model.Restaurant, error)
	// AvailableMenuItem returns the menu item only if it exists and is available.
	AvailableMenuItem(id uint) (*model.MenuItem, error)
	// CreateOrder persists the order and its items as a single atomic unit.
	CreateOrder(o *model.Order) error
	// OrderDetail reloads an order with restaurant and item names for display.
	OrderDetail(id uint) (*model.Order, error)
}

// Service validates cart submissions and persists orders.
type Service struct {
	store Store
}

// NewService creates an order service backed by the given store
func NewService(store Store) *Service {
	return &Service{store: store}
}

// ComputeTotal sums price x quantity over the given order items. Prices must
// already be server-side snapshots; this is the only place a total is computed.
func ComputeTotal(items []model.OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Place validates the cart against current restaurant and menu state, computes
// the authoritative total and persists the order transactionally. The returned
// order includes the restaurant and menu item display fields.
func (s *Service) Place(customerID, restaurantID uint, lines []CartLine, notes string) (*model.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	for _, line := range lines {
		if line.MenuItemID == 0 || line.Quantity < 1 {
			return nil, ErrInvalidLine
		}
	}

	if _, err := s.store.ActiveRestaurant(restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}

	items := make([]model.OrderItem, 0, len(lines))
	for _, line := range lines {
		menuItem, err := s.store.AvailableMenuItem(line.MenuItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &UnavailableItemError{MenuItemID: line.MenuItemID}
			}
			return nil, err
		}
		items = append(items, model.OrderItem{
			MenuItemID: menuItem.ID,
			Quantity:   line.Quantity,
			Price:      menuItem.Price, // snapshot of the stored price
		})
	}

	order := &model.Order{
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		Total:        ComputeTotal(items),
		Status:       model.OrderStatusPending,
		Notes:        notes,
		OrderItems:   items,
	}

	if err := s.store.CreateOrder(order); err != nil {
		return nil, err
	}

	detail, err := s.store.OrderDetail(order.ID)
	if err != nil {
		// The order is committed; fall back to the bare order rather than
		// reporting a failure for a read-back problem.
		return order, nil
	}
	return detail, nil
}
