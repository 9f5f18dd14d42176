package http

import (
	"net/http"

	"trading-journal/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupRules(base *echo.Group) {
	rules := base.Group("/rules")
	rules.GET("", h.listRules)
	rules.POST("", h.createRule)
	rules.PATCH("/:id/toggle", h.toggleRule)
}

func (h *HttpAPIHandler) listRules(c echo.Context) error {
	var activeOnly bool
	if err := echo.QueryParamsBinder(c).Bool("active", &activeOnly).BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid active flag"))
	}

	rules, err := h.service.RuleService.List(c.Request().Context(), currentUser(c), activeOnly)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", rules))
}

func (h *HttpAPIHandler) createRule(c echo.Context) error {
	req := new(dto.CreateRuleRequest)
	if err := h.decode(c, req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	rule, err := h.service.RuleService.Create(c.Request().Context(), currentUser(c), *req)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.NewCreatedResponse("rule created", rule))
}

func (h *HttpAPIHandler) toggleRule(c echo.Context) error {
	rule, err := h.service.RuleService.Toggle(c.Request().Context(), currentUser(c), c.Param("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("rule updated", rule))
}
