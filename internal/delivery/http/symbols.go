package http

import (
	"net/http"

	"trading-journal/internal/dto"
	"trading-journal/internal/model"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupSymbols(base *echo.Group) {
	base.GET("/symbols", h.listSymbols)
}

func (h *HttpAPIHandler) listSymbols(c echo.Context) error {
	param := dto.GetSymbolsParam{
		Type:       model.SymbolType(c.QueryParam("type")),
		ActiveOnly: true,
	}

	symbols, err := h.service.SymbolService.List(c.Request().Context(), param)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", symbols))
}
