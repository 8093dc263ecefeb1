package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store groups repositories that share one connection or one transaction.
type Store interface {
	Users() UserRepository
	Restaurants() RestaurantRepository
	MenuItems() MenuItemRepository
	Orders() OrderRepository
	// WithTransaction runs fn against a Store bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

type store struct {
	db *gorm.DB
}

// NewStore creates a GORM-backed store.
func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) Users() UserRepository {
	return NewUserRepository(s.db)
}

func (s *store) Restaurants() RestaurantRepository {
	return NewRestaurantRepository(s.db)
}

func (s *store) MenuItems() MenuItemRepository {
	return NewMenuItemRepository(s.db)
}

func (s *store) Orders() OrderRepository {
	return NewOrderRepository(s.db)
}

// WithTransaction executes a function within a database transaction.
func (s *store) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &store{db: tx})
	})
}

// forUpdate adds a row lock. Dialects without row locks drop the clause.
func forUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Page is a limit/offset window.
type Page struct {
	Limit  int
	Offset int
}
