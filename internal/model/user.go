package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles. A role is fixed when the user is created; there is no
// role-change endpoint.
const (
	RoleAdmin           = "ADMIN"
	RoleRestaurantOwner = "RESTAURANT_OWNER"
	RoleUser            = "USER"
)

// User represents the user model stored in the database
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(100)"`
	Email     string         `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Password  string         `json:"-" gorm:"type:varchar(255)"`
	Role      string         `json:"role" gorm:"type:varchar(20);not null;default:'USER'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Restaurants []Restaurant `json:"restaurants,omitempty" gorm:"foreignKey:OwnerID"`
}
