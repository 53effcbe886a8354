package model

import (
	"time"

	"gorm.io/gorm"
)

// Order statuses. New orders always start as PENDING.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusPreparing = "PREPARING"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

// Order represents a customer order against a single restaurant. Total is
// always computed server-side from stored menu item prices.
type Order struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	CustomerID   uint           `json:"customer_id" gorm:"index;not null"`
	RestaurantID uint           `json:"restaurant_id" gorm:"index;not null"`
	Total        float64        `json:"total" gorm:"not null"`
	Status       string         `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	Notes        string         `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Restaurant Restaurant  `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	OrderItems []OrderItem `json:"order_items,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem is a single line of an order. Price is a snapshot of the menu
// item price at order time; later menu price changes never alter it.
type OrderItem struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	OrderID    uint           `json:"order_id" gorm:"index;not null"`
	MenuItemID uint           `json:"menu_item_id" gorm:"index;not null"`
	Quantity   int            `json:"quantity" gorm:"not null"`
	Price      float64        `json:"price" gorm:"not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	MenuItem MenuItem `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
}
