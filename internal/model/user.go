package model

import "time"

// Role is the authorization role carried by a user and its tokens.
type Role string

const (
	RoleCustomer        Role = "customer"
	RoleRestaurantOwner Role = "restaurant_owner"
	RoleAdmin           Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleRestaurantOwner, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered account.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Name         string    `json:"name" gorm:"size:255;not null"`
	Role         Role      `json:"role" gorm:"type:varchar(32);not null;default:'customer';index"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserColumns is the public projection of a user row.
var UserColumns = []string{"id", "email", "name", "role", "created_at"}
