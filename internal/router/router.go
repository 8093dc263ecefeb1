package router

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	apperrors "foodorder/internal/errors"
	"foodorder/internal/handler"
	"foodorder/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	logger *slog.Logger,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	restaurantHandler *handler.RestaurantHandler,
	orderHandler *handler.OrderHandler,
) {
	e.HideBanner = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	secured := JWTMiddleware(authService)

	// Public routes
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/restaurants", restaurantHandler.ListRestaurants)
	e.GET("/restaurants/:id", restaurantHandler.GetRestaurant)
	e.GET("/restaurants/:id/menu", restaurantHandler.GetMenu)

	// Secured routes (require JWT authentication)
	e.GET("/auth/profile", authHandler.Profile, secured)
	e.POST("/auth/logout", authHandler.Logout, secured)

	e.POST("/restaurants", restaurantHandler.CreateRestaurant, secured)
	e.PUT("/restaurants/:id", restaurantHandler.UpdateRestaurant, secured)
	e.DELETE("/restaurants/:id", restaurantHandler.DeleteRestaurant, secured)
	e.POST("/restaurants/:id/menu", restaurantHandler.CreateMenuItem, secured)

	users := e.Group("/users", secured)
	users.GET("", userHandler.ListUsers)
	users.GET("/:id", userHandler.GetUser)
	users.PUT("/:id", userHandler.UpdateUser)
	users.DELETE("/:id", userHandler.DeleteUser)

	orders := e.Group("/orders", secured)
	orders.GET("", orderHandler.ListOrders)
	orders.POST("", orderHandler.CreateOrder)
	orders.GET("/admin/all", orderHandler.ListAllOrders)
	orders.GET("/:id", orderHandler.GetOrder)
	orders.PUT("/:id/status", orderHandler.UpdateOrderStatus)
	orders.PUT("/:id/cancel", orderHandler.CancelOrder)
}

// JWTMiddleware authenticates bearer tokens through the auth service and
// stores the verified claims under handler.ClaimsContextKey.
func JWTMiddleware(authService service.AuthService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  handler.ClaimsContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return authService.Authenticate(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var extractErr *echojwt.TokenExtractionError
			if errors.As(err, &extractErr) {
				return apperrors.NewHTTPError(http.StatusUnauthorized, "missing or malformed token")
			}
			return apperrors.NewHTTPError(http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error())
		},
	})
}

// ErrorHandler renders every error as {"error": "..."}. Causes of 5xx
// responses are logged and never sent to the client.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := classify(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
				slog.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				slog.Any("error", err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, apperrors.ErrorResponse{Error: message})
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "write error response", slog.Any("error", err))
		}
	}
}

func classify(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return he.Code, http.StatusText(he.Code)
		}
		return he.Code, fmt.Sprint(he.Message)
	}
	httpErr := apperrors.MapErrorToHTTP(err, "internal server error")
	return httpErr.StatusCode, httpErr.Message
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
				slog.String("remote_ip", v.RemoteIP),
			)
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo and reports the first failing
// field by its JSON name.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a validator keyed on JSON field names.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if fe.Tag() == "required" {
			return apperrors.Required(fe.Field())
		}
		return apperrors.Invalid(fe.Field())
	}
	return err
}
