package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"foodorder/internal/model"
)

// MenuItemRepository defines menu item persistence operations.
type MenuItemRepository interface {
	Create(ctx context.Context, item *model.MenuItem) error
	ListByRestaurant(ctx context.Context, restaurantID uint, category string, availableOnly bool) ([]model.MenuItem, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.MenuItem, error)
}

type menuItemRepository struct {
	db *gorm.DB
}

// NewMenuItemRepository creates a new menu item repository.
func NewMenuItemRepository(db *gorm.DB) MenuItemRepository {
	return &menuItemRepository{db: db}
}

func (r *menuItemRepository) Create(ctx context.Context, item *model.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *menuItemRepository) ListByRestaurant(ctx context.Context, restaurantID uint, category string, availableOnly bool) ([]model.MenuItem, error) {
	q := r.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID)
	if category != "" {
		q = q.Where("LOWER(category) = ?", strings.ToLower(category))
	}
	if availableOnly {
		q = q.Where("available = ?", true)
	}

	items := []model.MenuItem{}
	if err := q.Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuItemRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.MenuItem, error) {
	items := []model.MenuItem{}
	if len(ids) == 0 {
		return items, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
