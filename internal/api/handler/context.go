package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/goodplates/recipes-api/internal/api/middleware"
	"github.com/goodplates/recipes-api/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware and
// fast-fails when it is absent: a missing principal on a protected route
// means the middleware did not run, which is a wiring bug, not a client
// error — but the client still gets 401 rather than a panic downstream.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok || principal.ID == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return principal, nil
}
