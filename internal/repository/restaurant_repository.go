package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"foodorder/internal/model"
	"foodorder/internal/patch"
)

var restaurantPatch = patch.NewBuilder("restaurants",
	"name", "cuisine", "rating", "description", "address", "phone")

// RestaurantFilter narrows a restaurant listing.
type RestaurantFilter struct {
	// Cuisine matches case-insensitively.
	Cuisine string
	// Search matches a substring of name or description.
	Search string
	Page
}

// RestaurantRepository defines restaurant persistence operations.
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *model.Restaurant) error
	FindByID(ctx context.Context, id uint) (*model.Restaurant, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Restaurant, error)
	List(ctx context.Context, filter RestaurantFilter) ([]model.Restaurant, int64, error)
	Update(ctx context.Context, id uint, fields ...patch.Field) (*model.Restaurant, error)
	Delete(ctx context.Context, id uint) error
}

type restaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository creates a new restaurant repository.
func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) Create(ctx context.Context, restaurant *model.Restaurant) error {
	return r.db.WithContext(ctx).Create(restaurant).Error
}

func (r *restaurantRepository) FindByID(ctx context.Context, id uint) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if err := r.db.WithContext(ctx).First(&restaurant, id).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if err := forUpdate(r.db.WithContext(ctx)).First(&restaurant, id).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) filtered(ctx context.Context, filter RestaurantFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Restaurant{})
	if filter.Cuisine != "" {
		q = q.Where("LOWER(cuisine) = ?", strings.ToLower(filter.Cuisine))
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?)", like, like)
	}
	return q
}

// List returns one page of matching restaurants and the total match count.
func (r *restaurantRepository) List(ctx context.Context, filter RestaurantFilter) ([]model.Restaurant, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	restaurants := []model.Restaurant{}
	if err := r.filtered(ctx, filter).
		Order("id ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&restaurants).Error; err != nil {
		return nil, 0, err
	}
	return restaurants, total, nil
}

// Update applies the present fields and returns the refreshed row. Fields
// not present keep their stored value, owner_id and created_at included.
func (r *restaurantRepository) Update(ctx context.Context, id uint, fields ...patch.Field) (*model.Restaurant, error) {
	stmt, err := restaurantPatch.Build(id, fields...)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Exec(stmt.SQL, stmt.Args...).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *restaurantRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Restaurant{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
