package http

import (
	"net/http"

	"trading-journal/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupTrades(base *echo.Group) {
	trades := base.Group("/trades")
	trades.POST("", h.createTrade)
	trades.PATCH("/:id", h.updateTrade)
	trades.POST("/:id/close", h.closeTrade)
}

func (h *HttpAPIHandler) createTrade(c echo.Context) error {
	req := new(dto.CreateTradeRequest)
	if err := h.decode(c, req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	trade, err := h.service.TradeService.Create(c.Request().Context(), currentUser(c), *req)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.NewCreatedResponse("trade created", trade))
}

func (h *HttpAPIHandler) updateTrade(c echo.Context) error {
	req := new(dto.UpdateTradeRequest)
	if err := h.decode(c, req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	trade, err := h.service.TradeService.Update(c.Request().Context(), currentUser(c), c.Param("id"), *req)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("trade updated", trade))
}

func (h *HttpAPIHandler) closeTrade(c echo.Context) error {
	req := new(dto.CloseTradeRequest)
	if err := h.decode(c, req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	trade, err := h.service.TradeService.Close(c.Request().Context(), currentUser(c), c.Param("id"), *req)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("trade closed", trade))
}

func (h *HttpAPIHandler) listTrades(c echo.Context) error {
	accountID, ok := uintParam(c, "id")
	if !ok {
		return invalidParam(c, "account id")
	}

	param := dto.ListTradesParam{AccountID: accountID}
	if err := echo.QueryParamsBinder(c).
		Int("page", &param.Page).
		Int("page_size", &param.PageSize).
		BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid pagination"))
	}

	page, err := h.service.TradeService.List(c.Request().Context(), currentUser(c), param)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", page))
}
