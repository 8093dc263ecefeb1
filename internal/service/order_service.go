package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"foodorder/internal/authz"
	apperrors "foodorder/internal/errors"
	"foodorder/internal/model"
	"foodorder/internal/repository"
)

const (
	// DefaultOrderPageLimit applies to a caller's own order list.
	DefaultOrderPageLimit = 20
	// DefaultAllOrdersPageLimit applies to the staff-wide order list.
	DefaultAllOrdersPageLimit = 50
	// DefaultCancelWindow is how long after placing an order a customer may cancel it.
	DefaultCancelWindow = 15 * time.Minute
)

// OrderItemInput is one requested line of an order.
type OrderItemInput struct {
	MenuItemID uint
	Quantity   int
}

// CreateOrderInput describes a new order.
type CreateOrderInput struct {
	RestaurantID    uint
	Items           []OrderItemInput
	DeliveryAddress string
	PaymentMethod   *string
}

// OrderService contains business logic for orders.
type OrderService interface {
	// ListMine lists the caller's own orders.
	ListMine(ctx context.Context, caller authz.Identity, status *model.OrderStatus, page repository.Page) ([]model.Order, int64, error)
	// ListAll lists every order for admins and the orders of owned
	// restaurants for restaurant owners.
	ListAll(ctx context.Context, caller authz.Identity, filter repository.OrderFilter) ([]model.Order, int64, error)
	Get(ctx context.Context, caller authz.Identity, id uint) (*model.Order, error)
	Create(ctx context.Context, caller authz.Identity, in CreateOrderInput) (*model.Order, error)
	SetStatus(ctx context.Context, caller authz.Identity, id uint, status model.OrderStatus) (*model.Order, error)
	Cancel(ctx context.Context, caller authz.Identity, id uint) (*model.Order, error)
}

type orderService struct {
	store        repository.Store
	guard        *authz.Guard
	cancelWindow time.Duration
	now          func() time.Time
}

// NewOrderService creates a new order service. A zero cancelWindow falls
// back to DefaultCancelWindow.
func NewOrderService(store repository.Store, guard *authz.Guard, cancelWindow time.Duration) OrderService {
	if cancelWindow <= 0 {
		cancelWindow = DefaultCancelWindow
	}
	return &orderService{
		store:        store,
		guard:        guard,
		cancelWindow: cancelWindow,
		now:          time.Now,
	}
}

func (s *orderService) ListMine(ctx context.Context, caller authz.Identity, status *model.OrderStatus, page repository.Page) ([]model.Order, int64, error) {
	userID := caller.UserID
	return s.store.Orders().List(ctx, repository.OrderFilter{
		UserID: &userID,
		Status: status,
		Page:   NormalizePage(page, DefaultOrderPageLimit),
	})
}

func (s *orderService) ListAll(ctx context.Context, caller authz.Identity, filter repository.OrderFilter) ([]model.Order, int64, error) {
	if err := s.guard.Authorize(caller, authz.ActionListAllOrders, authz.Resource{}); err != nil {
		return nil, 0, err
	}
	if !caller.IsAdmin() {
		ownerID := caller.UserID
		filter.OwnerID = &ownerID
	}
	filter.Page = NormalizePage(filter.Page, DefaultAllOrdersPageLimit)
	return s.store.Orders().List(ctx, filter)
}

func orderOwners(order *model.Order) authz.Resource {
	if order.Restaurant == nil {
		return authz.OwnedBy(order.UserID)
	}
	return authz.OwnedBy(order.UserID, order.Restaurant.OwnerID)
}

func restaurantOwner(order *model.Order) authz.Resource {
	if order.Restaurant == nil {
		return authz.Resource{}
	}
	return authz.OwnedBy(order.Restaurant.OwnerID)
}

func (s *orderService) Get(ctx context.Context, caller authz.Identity, id uint) (*model.Order, error) {
	order, err := s.store.Orders().FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrOrderNotFound)
	}
	if err := s.guard.Authorize(caller, authz.ActionViewOrder, orderOwners(order)); err != nil {
		return nil, err
	}
	return order, nil
}

// Create prices the requested items from the restaurant's menu and stores
// the order with its items in one transaction.
func (s *orderService) Create(ctx context.Context, caller authz.Identity, in CreateOrderInput) (*model.Order, error) {
	if len(in.Items) == 0 {
		return nil, apperrors.Required("items")
	}
	ids := make([]uint, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return nil, apperrors.Invalid("quantity")
		}
		ids = append(ids, item.MenuItemID)
	}

	var order *model.Order
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if _, err := tx.Restaurants().FindByID(ctx, in.RestaurantID); err != nil {
			return notFound(err, apperrors.ErrRestaurantNotFound)
		}

		menu, err := tx.MenuItems().FindByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("load menu items: %w", err)
		}
		byID := make(map[uint]model.MenuItem, len(menu))
		for _, m := range menu {
			byID[m.ID] = m
		}

		total := decimal.Zero
		items := make([]model.OrderItem, 0, len(in.Items))
		for _, req := range in.Items {
			m, ok := byID[req.MenuItemID]
			if !ok || m.RestaurantID != in.RestaurantID || !m.Available {
				return apperrors.ErrInvalidMenuItem
			}
			total = total.Add(m.Price.Mul(decimal.NewFromInt(int64(req.Quantity))))
			items = append(items, model.OrderItem{
				MenuItemID: m.ID,
				Name:       m.Name,
				UnitPrice:  m.Price,
				Quantity:   req.Quantity,
			})
		}

		order = &model.Order{
			UserID:          caller.UserID,
			RestaurantID:    in.RestaurantID,
			Status:          model.OrderStatusPending,
			TotalAmount:     total.Round(2),
			DeliveryAddress: in.DeliveryAddress,
			PaymentMethod:   in.PaymentMethod,
			Items:           items,
		}
		if err := tx.Orders().Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// SetStatus moves an order along its lifecycle. Restaurant owners follow the
// lifecycle; admins may jump to any status but never out of a terminal one.
func (s *orderService) SetStatus(ctx context.Context, caller authz.Identity, id uint, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, apperrors.Invalid("status")
	}

	var updated *model.Order
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		current, err := tx.Orders().FindByIDForUpdate(ctx, id)
		if err != nil {
			return notFound(err, apperrors.ErrOrderNotFound)
		}
		if err := s.guard.Authorize(caller, authz.ActionSetOrderStatus, restaurantOwner(current)); err != nil {
			return err
		}

		if current.Status.Terminal() {
			return apperrors.ErrInvalidTransition
		}
		if !caller.IsAdmin() && !current.Status.CanTransitionTo(status) {
			return apperrors.ErrInvalidTransition
		}

		order, err := tx.Orders().UpdateStatus(ctx, id, status)
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Cancel cancels the caller's order while it is still pending or confirmed
// and younger than the cancellation window.
func (s *orderService) Cancel(ctx context.Context, caller authz.Identity, id uint) (*model.Order, error) {
	var updated *model.Order
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		current, err := tx.Orders().FindByIDForUpdate(ctx, id)
		if err != nil {
			return notFound(err, apperrors.ErrOrderNotFound)
		}
		if err := s.guard.Authorize(caller, authz.ActionCancelOrder, authz.OwnedBy(current.UserID)); err != nil {
			return err
		}

		if !current.Status.Cancellable() || s.now().Sub(current.CreatedAt) > s.cancelWindow {
			return apperrors.ErrCancelNotAllowed
		}

		order, err := tx.Orders().UpdateStatus(ctx, id, model.OrderStatusCancelled)
		if err != nil {
			return fmt.Errorf("cancel order: %w", err)
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
