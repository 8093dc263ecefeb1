package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "foodorder/internal/errors"
	"foodorder/internal/model"
	"foodorder/internal/repository"
	"foodorder/internal/service"
)

// OrderHandler serves order endpoints.
type OrderHandler struct {
	svc service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// OrderItemRequest is one line of a new order.
type OrderItemRequest struct {
	MenuItemID uint `json:"menu_item_id" validate:"required"`
	Quantity   int  `json:"quantity" validate:"gte=1,lte=1000"`
}

// CreateOrderRequest represents a new order.
type CreateOrderRequest struct {
	RestaurantID    uint               `json:"restaurant_id" validate:"required"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress string             `json:"delivery_address" validate:"required,max=500"`
	PaymentMethod   *string            `json:"payment_method" validate:"omitempty,max=50"`
}

// UpdateOrderStatusRequest carries the target status.
type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" validate:"required,oneof=pending confirmed preparing ready delivered cancelled"`
}

// OrderResponse wraps one order.
type OrderResponse struct {
	Message string       `json:"message"`
	Order   *model.Order `json:"order"`
}

// OrderListResponse is one page of orders.
type OrderListResponse struct {
	Message    string        `json:"message"`
	Orders     []model.Order `json:"orders"`
	Pagination Pagination    `json:"pagination"`
}

func bindStatus(raw string) (*model.OrderStatus, error) {
	if raw == "" {
		return nil, nil
	}
	status := model.OrderStatus(raw)
	if !status.Valid() {
		return nil, apperrors.Invalid("status")
	}
	return &status, nil
}

// ListOrders godoc
// @Summary List the caller's orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Order status"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} OrderListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to get orders")
	}

	var rawStatus string
	page, err := bindPage(echo.QueryParamsBinder(c).String("status", &rawStatus))
	if err != nil {
		return err
	}
	status, err := bindStatus(rawStatus)
	if err != nil {
		return err
	}
	page = service.NormalizePage(page, service.DefaultOrderPageLimit)

	orders, total, err := h.svc.ListMine(c.Request().Context(), caller, status, page)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to get orders")
	}
	return c.JSON(http.StatusOK, OrderListResponse{
		Message:    "Orders retrieved successfully",
		Orders:     orders,
		Pagination: newPagination(page, total),
	})
}

// ListAllOrders godoc
// @Summary List orders across customers
// @Description Admins see every order; restaurant owners see orders of their restaurants.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Order status"
// @Param restaurant_id query int false "Restaurant ID"
// @Param limit query int false "Page size (default 50, max 100)"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} OrderListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /orders/admin/all [get]
func (h *OrderHandler) ListAllOrders(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to get orders")
	}

	var (
		rawStatus    string
		restaurantID uint
	)
	page, err := bindPage(echo.QueryParamsBinder(c).
		String("status", &rawStatus).
		Uint("restaurant_id", &restaurantID))
	if err != nil {
		return err
	}
	status, err := bindStatus(rawStatus)
	if err != nil {
		return err
	}

	filter := repository.OrderFilter{
		Status: status,
		Page:   service.NormalizePage(page, service.DefaultAllOrdersPageLimit),
	}
	if restaurantID != 0 {
		filter.RestaurantID = &restaurantID
	}

	orders, total, err := h.svc.ListAll(c.Request().Context(), caller, filter)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to get orders")
	}
	return c.JSON(http.StatusOK, OrderListResponse{
		Message:    "Orders retrieved successfully",
		Orders:     orders,
		Pagination: newPagination(filter.Page, total),
	})
}

// GetOrder godoc
// @Summary Get order by id
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} OrderResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	caller, err := identity(c)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to get order")
	}

	order, err := h.svc.Get(c.Request().Context(), caller, id)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to get order")
	}
	return c.JSON(http.StatusOK, OrderResponse{Message: "Order retrieved successfully", Order: order})
}

// CreateOrder godoc
// @Summary Place an order
// @Description Prices come from the restaurant's menu at the time of ordering.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateOrderRequest true "Order"
// @Success 201 {object} OrderResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to create order")
	}

	var req CreateOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.OrderItemInput{MenuItemID: item.MenuItemID, Quantity: item.Quantity})
	}

	order, err := h.svc.Create(c.Request().Context(), caller, service.CreateOrderInput{
		RestaurantID:    req.RestaurantID,
		Items:           items,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to create order")
	}
	return c.JSON(http.StatusCreated, OrderResponse{Message: "Order created successfully", Order: order})
}

// UpdateOrderStatus godoc
// @Summary Set order status
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param request body UpdateOrderStatusRequest true "Target status"
// @Success 200 {object} OrderResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id}/status [put]
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	caller, err := identity(c)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to update order status")
	}

	var req UpdateOrderStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.svc.SetStatus(c.Request().Context(), caller, id, req.Status)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to update order status")
	}
	return c.JSON(http.StatusOK, OrderResponse{Message: "Order status updated successfully", Order: order})
}

// CancelOrder godoc
// @Summary Cancel an order
// @Description Allowed for the ordering customer while pending or confirmed and within the cancellation window.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} OrderResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id}/cancel [put]
func (h *OrderHandler) CancelOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	caller, err := identity(c)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to cancel order")
	}

	order, err := h.svc.Cancel(c.Request().Context(), caller, id)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to cancel order")
	}
	return c.JSON(http.StatusOK, OrderResponse{Message: "Order cancelled successfully", Order: order})
}
