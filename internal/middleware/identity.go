package middleware

// identity.go holds helpers shared across middleware files.  The rate
// limiter keys buckets per employee when a token is present and falls
// back to "anon" for unauthenticated requests.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// currentEmployeeID extracts the employee identifier placed in the
// context by JWTAuth.  It returns "anon" when no employee is
// authenticated.
func currentEmployeeID(c echo.Context) string {
	v := c.Get("employee_id")
	if v == nil {
		return "anon"
	}
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
	case float64:
		// jwt.MapClaims decodes numeric claims as float64
		return fmt.Sprintf("%.0f", t)
	case uint64:
		return fmt.Sprintf("%d", t)
	}
	return "anon"
}
