package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"foodorder/internal/authz"
	"foodorder/internal/db"
	apperrors "foodorder/internal/errors"
	"foodorder/internal/model"
	"foodorder/internal/patch"
	"foodorder/internal/repository"
)

const (
	// DefaultPageLimit applies when a listing names no limit.
	DefaultPageLimit = 20
	// MaxPageLimit caps any listing.
	MaxPageLimit = 100
)

// CreateRestaurantInput describes a new restaurant. OwnerID is honoured only
// for admins; everyone else owns what they create.
type CreateRestaurantInput struct {
	Name        string
	Cuisine     *string
	Rating      *float64
	Description *string
	Address     *string
	Phone       *string
	OwnerID     *uint
}

// UpdateRestaurantInput is a sparse restaurant update.
type UpdateRestaurantInput struct {
	Name        *string
	Cuisine     *string
	Rating      *float64
	Description *string
	Address     *string
	Phone       *string
}

func (in UpdateRestaurantInput) fields() []patch.Field {
	return []patch.Field{
		patch.Value("name", in.Name),
		patch.Value("cuisine", in.Cuisine),
		patch.Value("rating", in.Rating),
		patch.Value("description", in.Description),
		patch.Value("address", in.Address),
		patch.Value("phone", in.Phone),
	}
}

// CreateMenuItemInput describes a new dish. A nil Available means true.
type CreateMenuItemInput struct {
	Name        string
	Description *string
	Category    *string
	Price       decimal.Decimal
	Available   *bool
}

// RestaurantService contains business logic for restaurants and their menus.
type RestaurantService interface {
	List(ctx context.Context, filter repository.RestaurantFilter) ([]model.Restaurant, int64, error)
	Get(ctx context.Context, id uint) (*model.Restaurant, error)
	Create(ctx context.Context, caller authz.Identity, in CreateRestaurantInput) (*model.Restaurant, error)
	Update(ctx context.Context, caller authz.Identity, id uint, in UpdateRestaurantInput) (*model.Restaurant, error)
	Delete(ctx context.Context, caller authz.Identity, id uint) error
	// Menu lists the available dishes of a restaurant.
	Menu(ctx context.Context, restaurantID uint, category string) ([]model.MenuItem, error)
	AddMenuItem(ctx context.Context, caller authz.Identity, restaurantID uint, in CreateMenuItemInput) (*model.MenuItem, error)
}

type restaurantService struct {
	store repository.Store
	guard *authz.Guard
}

// NewRestaurantService creates a new restaurant service.
func NewRestaurantService(store repository.Store, guard *authz.Guard) RestaurantService {
	return &restaurantService{store: store, guard: guard}
}

// NormalizePage applies def when no limit is set and clamps the window to
// MaxPageLimit.
func NormalizePage(p repository.Page, def int) repository.Page {
	if p.Limit <= 0 {
		p.Limit = def
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

func (s *restaurantService) List(ctx context.Context, filter repository.RestaurantFilter) ([]model.Restaurant, int64, error) {
	filter.Page = NormalizePage(filter.Page, DefaultPageLimit)
	return s.store.Restaurants().List(ctx, filter)
}

func (s *restaurantService) Get(ctx context.Context, id uint) (*model.Restaurant, error) {
	restaurant, err := s.store.Restaurants().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrRestaurantNotFound)
	}
	return restaurant, nil
}

func (s *restaurantService) Create(ctx context.Context, caller authz.Identity, in CreateRestaurantInput) (*model.Restaurant, error) {
	if err := s.guard.Authorize(caller, authz.ActionCreateRestaurant, authz.Resource{}); err != nil {
		return nil, err
	}

	ownerID := caller.UserID
	if caller.IsAdmin() && in.OwnerID != nil {
		ownerID = *in.OwnerID
	}

	restaurant := &model.Restaurant{
		Name:        in.Name,
		Cuisine:     in.Cuisine,
		Rating:      in.Rating,
		Description: in.Description,
		Address:     in.Address,
		Phone:       in.Phone,
		OwnerID:     ownerID,
	}
	if err := s.store.Restaurants().Create(ctx, restaurant); err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, apperrors.ErrInvalidOwner
		}
		return nil, fmt.Errorf("create restaurant: %w", err)
	}
	return restaurant, nil
}

// Update locks the row, checks ownership, then writes the present fields.
func (s *restaurantService) Update(ctx context.Context, caller authz.Identity, id uint, in UpdateRestaurantInput) (*model.Restaurant, error) {
	var updated *model.Restaurant
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		current, err := tx.Restaurants().FindByIDForUpdate(ctx, id)
		if err != nil {
			return notFound(err, apperrors.ErrRestaurantNotFound)
		}
		if err := s.guard.Authorize(caller, authz.ActionUpdateRestaurant, authz.OwnedBy(current.OwnerID)); err != nil {
			return err
		}

		restaurant, err := tx.Restaurants().Update(ctx, id, in.fields()...)
		if err != nil {
			if errors.Is(err, patch.ErrNoFields) {
				return apperrors.ErrNoFields
			}
			return fmt.Errorf("update restaurant: %w", err)
		}
		updated = restaurant
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *restaurantService) Delete(ctx context.Context, caller authz.Identity, id uint) error {
	return s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		current, err := tx.Restaurants().FindByIDForUpdate(ctx, id)
		if err != nil {
			return notFound(err, apperrors.ErrRestaurantNotFound)
		}
		if err := s.guard.Authorize(caller, authz.ActionDeleteRestaurant, authz.OwnedBy(current.OwnerID)); err != nil {
			return err
		}

		if err := tx.Restaurants().Delete(ctx, id); err != nil {
			if db.IsForeignKeyViolation(err) {
				return apperrors.ErrHasDependents
			}
			return fmt.Errorf("delete restaurant: %w", err)
		}
		return nil
	})
}

func (s *restaurantService) Menu(ctx context.Context, restaurantID uint, category string) ([]model.MenuItem, error) {
	if _, err := s.Get(ctx, restaurantID); err != nil {
		return nil, err
	}
	return s.store.MenuItems().ListByRestaurant(ctx, restaurantID, category, true)
}

func (s *restaurantService) AddMenuItem(ctx context.Context, caller authz.Identity, restaurantID uint, in CreateMenuItemInput) (*model.MenuItem, error) {
	if !in.Price.IsPositive() {
		return nil, apperrors.Invalid("price")
	}

	available := true
	if in.Available != nil {
		available = *in.Available
	}

	item := &model.MenuItem{
		RestaurantID: restaurantID,
		Name:         in.Name,
		Description:  in.Description,
		Category:     in.Category,
		Price:        in.Price.Round(2),
		Available:    available,
	}

	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		restaurant, err := tx.Restaurants().FindByIDForUpdate(ctx, restaurantID)
		if err != nil {
			return notFound(err, apperrors.ErrRestaurantNotFound)
		}
		if err := s.guard.Authorize(caller, authz.ActionCreateMenuItem, authz.OwnedBy(restaurant.OwnerID)); err != nil {
			return err
		}
		if err := tx.MenuItems().Create(ctx, item); err != nil {
			return fmt.Errorf("create menu item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}
