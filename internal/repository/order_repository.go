package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"foodorder/internal/model"
	"foodorder/internal/patch"
)

var orderPatch = patch.NewBuilder("orders", "status", "updated_at")

// OrderFilter narrows an order listing. Nil fields do not filter.
type OrderFilter struct {
	UserID       *uint
	RestaurantID *uint
	// OwnerID keeps only orders of restaurants owned by this user.
	OwnerID *uint
	Status  *model.OrderStatus
	Page
}

// OrderRepository defines order persistence operations.
type OrderRepository interface {
	// Create inserts the order together with its items.
	Create(ctx context.Context, order *model.Order) error
	// FindByID loads the order with its items and restaurant.
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]model.Order, int64, error)
	UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) (*model.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Preload("Restaurant")
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	if err := withItems(r.db.WithContext(ctx)).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	if err := forUpdate(r.db.WithContext(ctx)).First(&order, id).Error; err != nil {
		return nil, err
	}
	restaurant, err := NewRestaurantRepository(r.db).FindByID(ctx, order.RestaurantID)
	if err != nil {
		return nil, err
	}
	order.Restaurant = restaurant
	return &order, nil
}

func (r *orderRepository) filtered(ctx context.Context, filter OrderFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Order{})
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.RestaurantID != nil {
		q = q.Where("restaurant_id = ?", *filter.RestaurantID)
	}
	if filter.OwnerID != nil {
		q = q.Where("restaurant_id IN (?)",
			r.db.WithContext(ctx).Model(&model.Restaurant{}).Select("id").Where("owner_id = ?", *filter.OwnerID))
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	return q
}

// List returns one page of matching orders, newest first, and the total count.
func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]model.Order, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orders := []model.Order{}
	if err := withItems(r.filtered(ctx, filter)).
		Order("created_at DESC").Order("id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) (*model.Order, error) {
	stmt, err := orderPatch.Build(id, patch.Set("status", status), patch.Set("updated_at", time.Now()))
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Exec(stmt.SQL, stmt.Args...).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}
