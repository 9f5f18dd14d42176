package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"trading-journal/internal/dto"
	"trading-journal/internal/service"
	"trading-journal/pkg/logger"
	"trading-journal/pkg/middleware"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// RouteMiddlewares are applied to groups of routes rather than globally.
type RouteMiddlewares struct {
	// Auth guards everything under /api/v1.
	Auth echo.MiddlewareFunc
	// Throttle guards the compute-heavy endpoints. Optional.
	Throttle echo.MiddlewareFunc
}

type HttpAPIHandler struct {
	echo        *echo.Echo
	validator   *goValidator.Validate
	service     *service.Service
	log         *logger.Logger
	middlewares RouteMiddlewares
	health      HealthChecker
}

func NewHttpAPIHandler(
	echo *echo.Echo,
	validator *goValidator.Validate,
	service *service.Service,
	log *logger.Logger,
	middlewares RouteMiddlewares,
	health HealthChecker,
) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:        echo,
		validator:   validator,
		service:     service,
		log:         log,
		middlewares: middlewares,
		health:      health,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	h.echo.GET("/health", h.Health)

	base := h.echo.Group("/api/v1", h.middlewares.Auth)
	h.SetupAccounts(base)
	h.SetupTrades(base)
	h.SetupSymbols(base)
	h.SetupRules(base)
	h.SetupAnalytics(base)
}

func (h *HttpAPIHandler) Health(c echo.Context) error {
	if h.health != nil {
		if err := h.health.Ping(c.Request().Context()); err != nil {
			h.log.ErrorContext(c.Request().Context(), "Health check failed", logger.ErrorField(err))
			return c.JSON(http.StatusServiceUnavailable, dto.NewBaseResponse(http.StatusServiceUnavailable, "database unavailable", nil))
		}
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", nil))
}

// decode binds the request body into req and runs its validation tags.
func (h *HttpAPIHandler) decode(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.New("invalid request body")
	}
	return h.validator.Struct(req)
}

// respondError maps service errors onto HTTP statuses. Unexpected errors are
// logged and hidden from the client.
func (h *HttpAPIHandler) respondError(c echo.Context, err error) error {
	code := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, service.ErrNotFound):
		code, message = http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrForbidden):
		code, message = http.StatusForbidden, err.Error()
	case errors.Is(err, service.ErrTradeAlreadyClosed), errors.Is(err, service.ErrRuleNotEditable):
		code, message = http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrInsufficientBalance):
		code, message = http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, service.ErrInvalidRange), errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrInvalidInput):
		code, message = http.StatusBadRequest, err.Error()
	default:
		h.log.ErrorContext(c.Request().Context(), "Request failed", logger.ErrorField(err))
	}

	return c.JSON(code, dto.NewBaseResponse(code, message, nil))
}

func currentUser(c echo.Context) uuid.UUID {
	id, _ := middleware.UserID(c)
	return id
}

func uintParam(c echo.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

func invalidParam(c echo.Context, name string) error {
	return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid "+name))
}
