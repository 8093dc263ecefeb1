package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "foodorder/internal/errors"
	"foodorder/internal/model"
	"foodorder/internal/repository"
	"foodorder/internal/service"
)

// RestaurantHandler serves restaurants and their menus.
type RestaurantHandler struct {
	svc service.RestaurantService
}

// NewRestaurantHandler creates a new restaurant handler.
func NewRestaurantHandler(svc service.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{svc: svc}
}

// CreateRestaurantRequest represents a new restaurant. owner_id is only
// honoured for admins.
type CreateRestaurantRequest struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Cuisine     *string  `json:"cuisine" validate:"omitempty,max=100"`
	Rating      *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Description *string  `json:"description"`
	Address     *string  `json:"address" validate:"omitempty,max=500"`
	Phone       *string  `json:"phone" validate:"omitempty,max=50"`
	OwnerID     *uint    `json:"owner_id" validate:"omitempty,gt=0"`
}

// UpdateRestaurantRequest is a partial restaurant update.
type UpdateRestaurantRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Cuisine     *string  `json:"cuisine" validate:"omitempty,max=100"`
	Rating      *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Description *string  `json:"description"`
	Address     *string  `json:"address" validate:"omitempty,max=500"`
	Phone       *string  `json:"phone" validate:"omitempty,max=50"`
}

// CreateMenuItemRequest represents a new dish.
type CreateMenuItemRequest struct {
	Name        string           `json:"name" validate:"required,max=255"`
	Description *string          `json:"description"`
	Category    *string          `json:"category" validate:"omitempty,max=100"`
	Price       *decimal.Decimal `json:"price" validate:"required" swaggertype:"string" example:"9.50"`
	Available   *bool            `json:"available"`
}

// RestaurantResponse wraps one restaurant.
type RestaurantResponse struct {
	Message    string            `json:"message"`
	Restaurant *model.Restaurant `json:"restaurant"`
}

// RestaurantListResponse is one page of restaurants.
type RestaurantListResponse struct {
	Message     string             `json:"message"`
	Restaurants []model.Restaurant `json:"restaurants"`
	Pagination  Pagination         `json:"pagination"`
}

// MenuResponse lists the dishes of a restaurant.
type MenuResponse struct {
	Message   string           `json:"message"`
	MenuItems []model.MenuItem `json:"menu_items"`
}

// MenuItemResponse wraps one dish.
type MenuItemResponse struct {
	Message  string          `json:"message"`
	MenuItem *model.MenuItem `json:"menu_item"`
}

// ListRestaurants godoc
// @Summary List restaurants
// @Tags restaurants
// @Produce json
// @Param category query string false "Cuisine, case-insensitive"
// @Param search query string false "Substring of name or description"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} RestaurantListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /restaurants [get]
func (h *RestaurantHandler) ListRestaurants(c echo.Context) error {
	var filter repository.RestaurantFilter
	page, err := bindPage(echo.QueryParamsBinder(c).
		String("category", &filter.Cuisine).
		String("search", &filter.Search))
	if err != nil {
		return err
	}
	filter.Page = service.NormalizePage(page, service.DefaultPageLimit)

	restaurants, total, err := h.svc.List(c.Request().Context(), filter)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to get restaurants")
	}

	return c.JSON(http.StatusOK, RestaurantListResponse{
		Message:     "Restaurants retrieved successfully",
		Restaurants: restaurants,
		Pagination:  newPagination(filter.Page, total),
	})
}

// GetRestaurant godoc
// @Summary Get restaurant by id
// @Tags restaurants
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 200 {object} RestaurantResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /restaurants/{id} [get]
func (h *RestaurantHandler) GetRestaurant(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	restaurant, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to get restaurant")
	}
	return c.JSON(http.StatusOK, RestaurantResponse{Message: "Restaurant retrieved successfully", Restaurant: restaurant})
}

// CreateRestaurant godoc
// @Summary Create restaurant
// @Tags restaurants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRestaurantRequest true "Restaurant"
// @Success 201 {object} RestaurantResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /restaurants [post]
func (h *RestaurantHandler) CreateRestaurant(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to create restaurant")
	}

	var req CreateRestaurantRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	restaurant, err := h.svc.Create(c.Request().Context(), caller, service.CreateRestaurantInput{
		Name:        req.Name,
		Cuisine:     req.Cuisine,
		Rating:      req.Rating,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to create restaurant")
	}
	return c.JSON(http.StatusCreated, RestaurantResponse{Message: "Restaurant created successfully", Restaurant: restaurant})
}

// UpdateRestaurant godoc
// @Summary Update restaurant
// @Description Owner or admin. Omitted fields keep their value.
// @Tags restaurants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Restaurant ID"
// @Param request body UpdateRestaurantRequest true "Fields to change"
// @Success 200 {object} RestaurantResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /restaurants/{id} [put]
func (h *RestaurantHandler) UpdateRestaurant(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	caller, err := identity(c)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to update restaurant")
	}

	var req UpdateRestaurantRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	restaurant, err := h.svc.Update(c.Request().Context(), caller, id, service.UpdateRestaurantInput{
		Name:        req.Name,
		Cuisine:     req.Cuisine,
		Rating:      req.Rating,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
	})
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to update restaurant")
	}
	return c.JSON(http.StatusOK, RestaurantResponse{Message: "Restaurant updated successfully", Restaurant: restaurant})
}

// DeleteRestaurant godoc
// @Summary Delete restaurant
// @Tags restaurants
// @Produce json
// @Security BearerAuth
// @Param id path int true "Restaurant ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /restaurants/{id} [delete]
func (h *RestaurantHandler) DeleteRestaurant(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	caller, err := identity(c)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to delete restaurant")
	}

	if err := h.svc.Delete(c.Request().Context(), caller, id); err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to delete restaurant")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Restaurant deleted successfully"})
}

// GetMenu godoc
// @Summary List available dishes
// @Tags restaurants
// @Produce json
// @Param id path int true "Restaurant ID"
// @Param category query string false "Menu category"
// @Success 200 {object} MenuResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /restaurants/{id}/menu [get]
func (h *RestaurantHandler) GetMenu(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	items, err := h.svc.Menu(c.Request().Context(), id, c.QueryParam("category"))
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to get menu")
	}
	return c.JSON(http.StatusOK, MenuResponse{Message: "Menu retrieved successfully", MenuItems: items})
}

// CreateMenuItem godoc
// @Summary Add a dish
// @Tags restaurants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Restaurant ID"
// @Param request body CreateMenuItemRequest true "Dish"
// @Success 201 {object} MenuItemResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /restaurants/{id}/menu [post]
func (h *RestaurantHandler) CreateMenuItem(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	caller, err := identity(c)
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to create menu item")
	}

	var req CreateMenuItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	item, err := h.svc.AddMenuItem(c.Request().Context(), caller, id, service.CreateMenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       *req.Price,
		Available:   req.Available,
	})
	if err != nil {
		return apperrors.MapErrorToHTTP(err, "failed to create menu item")
	}
	return c.JSON(http.StatusCreated, MenuItemResponse{Message: "Menu item created successfully", MenuItem: item})
}
