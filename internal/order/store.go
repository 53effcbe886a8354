package order

import (
	"time"

	"foodmarket/internal/model"
	"foodmarket/prometheus"

	"gorm.io/gorm"
)

// GormStore implements Store on top of the shared GORM connection.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store backed by the given database handle
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// ActiveRestaurant returns the restaurant only if it exists and is active
func (s *GormStore) ActiveRestaurant(id uint) (*model.Restaurant, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var restaurant model.Restaurant
	if err := s.db.Where("id = ? AND is_active = ?", id, true).First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// AvailableMenuItem returns the menu item only if it exists and is available
func (s *GormStore) AvailableMenuItem(id uint) (*model.MenuItem, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var item model.MenuItem
	if err := s.db.Where("id = ? AND is_available = ?", id, true).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateOrder writes the order and its items in a single transaction. Either
// all rows are committed or none are.
func (s *GormStore) CreateOrder(o *model.Order) error {
	defer prometheus.TrackDBOperation("transaction")(time.Now())

	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(o).Error
	})
}

// OrderDetail reloads an order with its restaurant and menu item display fields
func (s *GormStore) OrderDetail(id uint) (*model.Order, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var o model.Order
	err := s.db.
		Preload("Restaurant", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "address")
		}).
		Preload("OrderItems").
		Preload("OrderItems.MenuItem", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "price")
		}).
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByCustomer returns a customer's orders, newest first, with restaurant
// and menu item display fields preloaded.
func (s *GormStore) ListByCustomer(customerID uint) ([]model.Order, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var orders []model.Order
	err := s.db.
		Where("customer_id = ?", customerID).
		Preload("Restaurant", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "address")
		}).
		Preload("OrderItems").
		Preload("OrderItems.MenuItem", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "price")
		}).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
