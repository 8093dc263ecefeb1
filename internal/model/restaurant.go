package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Restaurant is owned by exactly one user.
type Restaurant struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null;index"`
	Cuisine     *string   `json:"cuisine" gorm:"size:100;index"`
	Rating      *float64  `json:"rating" gorm:"check:chk_restaurants_rating,rating >= 0 AND rating <= 5"`
	Description *string   `json:"description" gorm:"type:text"`
	Address     *string   `json:"address" gorm:"size:500"`
	Phone       *string   `json:"phone" gorm:"size:50"`
	OwnerID     uint      `json:"owner_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Owner *User `json:"-" gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// MenuItem is a priced dish offered by a restaurant.
type MenuItem struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	RestaurantID uint            `json:"restaurant_id" gorm:"not null;index"`
	Name         string          `json:"name" gorm:"size:255;not null"`
	Description  *string         `json:"description" gorm:"type:text"`
	Category     *string         `json:"category" gorm:"size:100;index"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Available    bool            `json:"available" gorm:"not null"`
	CreatedAt    time.Time       `json:"created_at"`

	// Relations
	Restaurant *Restaurant `json:"-" gorm:"foreignKey:RestaurantID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
