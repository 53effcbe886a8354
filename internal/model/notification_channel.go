package model

import (
	"time"

	"gorm.io/gorm"
)

// Notification channel types
const (
	ChannelTypeLine = "LINE"
)

// NotificationChannel stores a delivery credential bound to exactly one of a
// user or a restaurant. Exactly one of UserID and RestaurantID is set.
type NotificationChannel struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Type         string         `json:"type" gorm:"type:varchar(20);not null"`
	Token        string         `json:"-" gorm:"type:varchar(255);not null"`
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	UserID       *uint          `json:"user_id,omitempty" gorm:"index"`
	RestaurantID *uint          `json:"restaurant_id,omitempty" gorm:"index"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}
