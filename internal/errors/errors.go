package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthenticated is returned when a request carries no usable token.
	ErrUnauthenticated = errors.New("invalid or expired token")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInsufficientRole is returned when the caller's role is not allowed for an action.
	ErrInsufficientRole = errors.New("insufficient role")
	// ErrNotOwner is returned when the caller neither owns the resource nor is an admin.
	ErrNotOwner = errors.New("not the owner")

	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrRestaurantNotFound is returned when a restaurant is not found.
	ErrRestaurantNotFound = errors.New("restaurant not found")
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")

	// ErrEmailTaken is returned on a unique violation of users.email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrHasDependents is returned when a delete is blocked by referencing rows.
	ErrHasDependents = errors.New("cannot delete, dependents exist")

	// ErrInvalidOwner is returned when a restaurant references a missing user.
	ErrInvalidOwner = errors.New("invalid owner")
	// ErrNoFields is returned when a partial update carries no fields.
	ErrNoFields = errors.New("no fields provided")
	// ErrInvalidMenuItem is returned when an ordered item is unknown, foreign or unavailable.
	ErrInvalidMenuItem = errors.New("invalid menu item")
	// ErrInvalidTransition is returned when an order status change breaks the state machine.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrCancelNotAllowed is returned when an order is past its cancellation point.
	ErrCancelNotAllowed = errors.New("order can no longer be cancelled")
)

// ValidationError reports a malformed or missing input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Required builds the error for a missing required field.
func Required(field string) *ValidationError {
	return &ValidationError{Field: field, Message: field + " is required"}
}

// Invalid builds the error for a field with a bad value.
func Invalid(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "invalid " + field}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	// Err is the underlying cause. It is logged, never rendered.
	Err error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// Internal wraps an unexpected failure behind a generic message.
func Internal(message string, err error) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusInternalServerError,
		Message:    message,
		Err:        err,
	}
}

var statusBySentinel = []struct {
	err    error
	status int
}{
	{ErrUnauthenticated, http.StatusUnauthorized},
	{ErrInvalidCredentials, http.StatusUnauthorized},
	{ErrInsufficientRole, http.StatusForbidden},
	{ErrNotOwner, http.StatusForbidden},
	{ErrUserNotFound, http.StatusNotFound},
	{ErrRestaurantNotFound, http.StatusNotFound},
	{ErrOrderNotFound, http.StatusNotFound},
	{ErrEmailTaken, http.StatusConflict},
	{ErrHasDependents, http.StatusConflict},
	{ErrInvalidOwner, http.StatusBadRequest},
	{ErrNoFields, http.StatusBadRequest},
	{ErrInvalidMenuItem, http.StatusBadRequest},
	{ErrInvalidTransition, http.StatusBadRequest},
	{ErrCancelNotAllowed, http.StatusBadRequest},
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything it does not
// recognise becomes a 500 carrying fallback as its public message.
func MapErrorToHTTP(err error, fallback string) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return NewHTTPError(http.StatusBadRequest, validationErr.Message)
	}

	for _, m := range statusBySentinel {
		if errors.Is(err, m.err) {
			return NewHTTPError(m.status, err.Error())
		}
	}

	return Internal(fallback, err)
}
