package handler // handler defines http handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// getEmployeeID extracts the employee_id placed in the context by the
// JWT middleware and converts it to uint64.  The jwt library decodes
// numeric claims as float64, so several representations are accepted.
func getEmployeeID(c echo.Context) (uint64, error) {
	v := c.Get("employee_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid employee_id in context")
}

// paramID parses a numeric path parameter.
func paramID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// queryUint parses a required numeric query parameter.
func queryUint(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.QueryParam(name), 10, 64)
}

// queryDay parses the "date" query parameter (YYYY-MM-DD, UTC).  An
// empty value means today.
func queryDay(c echo.Context) (time.Time, error) {
	raw := c.QueryParam("date")
	if raw == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse("2006-01-02", raw)
}
