package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// CacheHint marks successful responses as publicly cacheable for maxAge,
// varying on the given request headers. Nothing is cached server-side.
func CacheHint(maxAge time.Duration, vary ...string) echo.MiddlewareFunc {
	value := "public, max-age=" + strconv.Itoa(int(maxAge.Seconds()))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Before(func() {
				if c.Response().Status >= 300 {
					return
				}
				h := c.Response().Header()
				h.Set("Cache-Control", value)
				for _, v := range vary {
					h.Add(echo.HeaderVary, v)
				}
			})
			return next(c)
		}
	}
}
