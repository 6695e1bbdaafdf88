package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mentorlane/api/internal/identity"
)

const identityKey = "identity"

// Authenticate resolves the bearer credential of the request and rejects
// the request when no caller can be identified. Unverified identities are
// rejected too when the service requires verified credentials.
func (h *Handler) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		credential, ok := identity.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return fail(c, http.StatusUnauthorized, "Missing or invalid Authorization token")
		}

		id := h.service.ResolveIdentity(credential)
		if !id.Resolved() {
			return fail(c, http.StatusUnauthorized, "Invalid or expired token")
		}
		if !id.Verified() && h.service.Config().AuthRequireVerified {
			return fail(c, http.StatusUnauthorized, "Verified credential required")
		}

		c.Set(identityKey, id)
		return next(c)
	}
}

// caller returns the identity stored by Authenticate.
func caller(c echo.Context) identity.ResolvedIdentity {
	id, _ := c.Get(identityKey).(identity.ResolvedIdentity)
	return id
}
