package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/pkg/metrics"
)

// Require enforces policy before the handler runs. Anonymous callers get 401,
// authenticated callers without the role get 403.
func Require(policy domain.Policy) echo.MiddlewareFunc {
	label := policy.String()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller := domain.CallerFrom(c.Request().Context())
			decision := domain.Decide(policy, caller)
			metrics.AuthorizationDecisionsTotal.WithLabelValues(label, decision.String()).Inc()

			if decision == domain.Allow {
				return next(c)
			}
			if !caller.IsAuthenticated() {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": domain.ErrUnauthorized.Error()})
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": domain.ErrForbidden.Error()})
		}
	}
}
