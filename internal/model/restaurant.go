package model

import (
	"time"

	"gorm.io/gorm"
)

// Restaurant represents a restaurant managed by an owner. Inactive
// restaurants are excluded from all customer-facing reads.
type Restaurant struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"type:varchar(100);not null"`
	Description string         `json:"description" gorm:"type:text"`
	Address     string         `json:"address" gorm:"type:varchar(255);not null"`
	Phone       string         `json:"phone" gorm:"type:varchar(30)"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	OwnerID     uint           `json:"owner_id" gorm:"index;not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Owner      User       `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Categories []Category `json:"categories,omitempty" gorm:"foreignKey:RestaurantID"`
	MenuItems  []MenuItem `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID"`
	Orders     []Order    `json:"orders,omitempty" gorm:"foreignKey:RestaurantID"`
}

// Category groups menu items within a restaurant
type Category struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"type:varchar(100);not null"`
	Description  string         `json:"description" gorm:"type:text"`
	RestaurantID uint           `json:"restaurant_id" gorm:"index;not null"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	MenuItems []MenuItem `json:"menu_items,omitempty" gorm:"foreignKey:CategoryID"`
}

// MenuItem represents a dish on a restaurant's menu. Unavailable items
// are excluded from ordering and customer-facing menus.
type MenuItem struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"type:varchar(100);not null"`
	Description  string         `json:"description" gorm:"type:text"`
	Price        float64        `json:"price" gorm:"not null"`
	IsAvailable  bool           `json:"is_available" gorm:"default:true"`
	RestaurantID uint           `json:"restaurant_id" gorm:"index;not null"`
	CategoryID   *uint          `json:"category_id,omitempty" gorm:"index"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}
