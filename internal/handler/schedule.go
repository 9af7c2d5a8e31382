package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-pos/internal/repository"
)

// ScheduleHandler serves the day view the operator works from: every
// session of the day with movie/hall names and sold vs total seats.
type ScheduleHandler struct {
	Sessions *repository.SessionRepo
}

func NewScheduleHandler(sessions *repository.SessionRepo) *ScheduleHandler {
	return &ScheduleHandler{Sessions: sessions}
}

// Day returns the sessions of one calendar day.  Query parameter
// "date" (YYYY-MM-DD) defaults to today.
func (h *ScheduleHandler) Day(c echo.Context) error {
	day, err := queryDay(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sessions, err := h.Sessions.ListByDay(ctx, day)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load schedule failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":     day.UTC().Format("2006-01-02"),
		"sessions": sessions,
	})
}
