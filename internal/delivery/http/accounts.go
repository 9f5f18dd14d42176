package http

import (
	"net/http"

	"trading-journal/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupAccounts(base *echo.Group) {
	accounts := base.Group("/accounts")
	accounts.GET("", h.listAccounts)
	accounts.POST("", h.createAccount)
	accounts.GET("/:id", h.getAccount)
	accounts.GET("/:id/transactions", h.listBalanceTransactions)
	accounts.POST("/:id/transactions", h.createBalanceTransaction)
	accounts.GET("/:id/trades", h.listTrades)
	accounts.GET("/:id/analytics", h.getAccountAnalytics)
	accounts.GET("/:id/snapshots", h.listSnapshots)
}

func (h *HttpAPIHandler) listAccounts(c echo.Context) error {
	accounts, err := h.service.AccountService.List(c.Request().Context(), currentUser(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", accounts))
}

func (h *HttpAPIHandler) createAccount(c echo.Context) error {
	req := new(dto.CreateAccountRequest)
	if err := h.decode(c, req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	account, err := h.service.AccountService.Create(c.Request().Context(), currentUser(c), *req)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.NewCreatedResponse("account created", account))
}

func (h *HttpAPIHandler) getAccount(c echo.Context) error {
	accountID, ok := uintParam(c, "id")
	if !ok {
		return invalidParam(c, "account id")
	}

	account, err := h.service.AccountService.Get(c.Request().Context(), currentUser(c), accountID)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", account))
}

func (h *HttpAPIHandler) listBalanceTransactions(c echo.Context) error {
	accountID, ok := uintParam(c, "id")
	if !ok {
		return invalidParam(c, "account id")
	}

	txns, err := h.service.AccountService.ListTransactions(c.Request().Context(), currentUser(c), accountID)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", txns))
}

func (h *HttpAPIHandler) createBalanceTransaction(c echo.Context) error {
	accountID, ok := uintParam(c, "id")
	if !ok {
		return invalidParam(c, "account id")
	}
	req := new(dto.BalanceTransactionRequest)
	if err := h.decode(c, req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	result, err := h.service.AccountService.RecordTransaction(c.Request().Context(), currentUser(c), accountID, *req)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.NewCreatedResponse("balance updated", result))
}
