package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/goodplates/recipes-api/internal/api/metrics"
	"github.com/goodplates/recipes-api/internal/core/domain"
)

// PolicyCheck pairs an action with the subject it applies to.
type PolicyCheck struct {
	Action  domain.Action
	Subject domain.Subject
}

// RequirePolicies returns middleware that builds the caller's ability from
// the authenticated principal and rejects the request with 403 unless every
// check passes. It must run after Auth.
func RequirePolicies(checks ...PolicyCheck) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := PrincipalFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			ability := domain.NewAbility(principal)
			for _, check := range checks {
				if !ability.Can(check.Action, check.Subject) {
					metrics.PolicyDenialsTotal.
						WithLabelValues(string(check.Action), string(check.Subject)).
						Inc()
					return domain.ErrForbidden
				}
			}

			return next(c)
		}
	}
}
