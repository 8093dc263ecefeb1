package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"foodorder/internal/auth"
	"foodorder/internal/authz"
	apperrors "foodorder/internal/errors"
	"foodorder/internal/repository"
)

// ClaimsContextKey is where the JWT middleware stores the verified *auth.Claims.
const ClaimsContextKey = "user"

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// Pagination describes the window of a list response.
type Pagination struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

func newPagination(page repository.Page, total int64) Pagination {
	return Pagination{Limit: page.Limit, Offset: page.Offset, Total: total}
}

func claims(c echo.Context) (*auth.Claims, error) {
	cl, ok := c.Get(ClaimsContextKey).(*auth.Claims)
	if !ok || cl == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	return cl, nil
}

func identity(c echo.Context) (authz.Identity, error) {
	cl, err := claims(c)
	if err != nil {
		return authz.Identity{}, err
	}
	return cl.Identity(), nil
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// bind decodes the JSON body into req and validates it.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.Validate(req)
}

// bindPage reads limit and offset from the query string. Unset values stay zero
// and are defaulted by the services.
func bindPage(b *echo.ValueBinder) (repository.Page, error) {
	var page repository.Page
	if err := b.Int("limit", &page.Limit).Int("offset", &page.Offset).BindError(); err != nil {
		return page, queryError(err)
	}
	if page.Limit < 0 {
		return page, apperrors.Invalid("limit")
	}
	if page.Offset < 0 {
		return page, apperrors.Invalid("offset")
	}
	return page, nil
}

func queryError(err error) error {
	var be *echo.BindingError
	if errors.As(err, &be) {
		return apperrors.Invalid(be.Field)
	}
	return apperrors.NewHTTPError(http.StatusBadRequest, "invalid query")
}
