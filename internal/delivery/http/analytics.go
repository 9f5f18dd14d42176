package http

import (
	"net/http"

	"trading-journal/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupAnalytics(base *echo.Group) {
	var throttle []echo.MiddlewareFunc
	if h.middlewares.Throttle != nil {
		throttle = append(throttle, h.middlewares.Throttle)
	}
	base.POST("/analytics/calculate", h.calculateAnalytics, throttle...)
}

func (h *HttpAPIHandler) getAccountAnalytics(c echo.Context) error {
	accountID, ok := uintParam(c, "id")
	if !ok {
		return invalidParam(c, "account id")
	}

	report, err := h.service.AnalyticsService.GetAccountReport(c.Request().Context(), currentUser(c), accountID, c.QueryParam("range"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", dto.NewMetricsResponse(*report)))
}

func (h *HttpAPIHandler) calculateAnalytics(c echo.Context) error {
	req := new(dto.CalculateRequest)
	if err := h.decode(c, req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	report, err := h.service.AnalyticsService.Calculate(c.Request().Context(), *req)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", dto.NewMetricsResponse(*report)))
}

func (h *HttpAPIHandler) listSnapshots(c echo.Context) error {
	accountID, ok := uintParam(c, "id")
	if !ok {
		return invalidParam(c, "account id")
	}

	snapshots, err := h.service.AnalyticsService.ListSnapshots(c.Request().Context(), currentUser(c), accountID)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", snapshots))
}
