package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetCurrentUser returns the caller's profile along with the trust tier of
// the credential that identified them.
// GET /v1/users/me
func (h *Handler) GetCurrentUser(c echo.Context) error {
	id := caller(c)
	user, err := h.service.GetUser(c.Request().Context(), id.SubjectID)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":   true,
		"user":      user,
		"trustTier": id.Tier,
	})
}
