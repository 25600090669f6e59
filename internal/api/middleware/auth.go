package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
	"github.com/storefront/shop-api/internal/pkg/metrics"
)

// Authenticate resolves the bearer token into a domain.Caller and stores it
// on the request context. It never rejects a request: a missing, malformed or
// unverifiable token leaves the caller Anonymous and Require decides.
func Authenticate(codec ports.TokenCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller := domain.Anonymous()

			if token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization)); ok {
				claims, err := codec.Verify(token)
				if err != nil {
					metrics.InvalidTokensTotal.Inc()
				} else {
					caller = domain.Authenticated(claims)
				}
			}

			req := c.Request()
			c.SetRequest(req.WithContext(domain.WithCaller(req.Context(), caller)))
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
