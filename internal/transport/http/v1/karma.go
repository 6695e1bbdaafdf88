package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mentorlane/api/internal/domain"
)

// CalculateKarma totals the karma of a tally of actions.
// POST /v1/karma/calculate
func (h *Handler) CalculateKarma(c echo.Context) error {
	var tally domain.KarmaTally
	if err := c.Bind(&tally); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	return c.JSON(http.StatusOK, map[string]int{
		"karma": h.service.CalculateKarma(tally),
	})
}

// GetKarmaAction returns the points of one action.
// GET /v1/karma/:action
func (h *Handler) GetKarmaAction(c echo.Context) error {
	action := domain.KarmaAction(c.Param("action"))
	points, err := h.service.KarmaForAction(action)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"action": action,
		"points": points,
	})
}
