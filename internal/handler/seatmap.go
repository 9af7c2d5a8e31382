package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-pos/internal/layout"
	"github.com/iliyamo/cinema-pos/internal/repository"
	"github.com/iliyamo/cinema-pos/internal/seatmap"
)

// SeatMapHandler projects the seat picker grid for a session.  Opening
// a seat map is what triggers lazy materialization of the hall's
// seats, exactly once per hall.
type SeatMapHandler struct {
	Sessions     *repository.SessionRepo
	Seats        *repository.SeatRepo
	Tickets      *repository.TicketRepo
	Layouts      *layout.Catalog
	Materializer *seatmap.Materializer
}

func NewSeatMapHandler(sessions *repository.SessionRepo, seats *repository.SeatRepo, tickets *repository.TicketRepo, layouts *layout.Catalog, m *seatmap.Materializer) *SeatMapHandler {
	return &SeatMapHandler{Sessions: sessions, Seats: seats, Tickets: tickets, Layouts: layouts, Materializer: m}
}

// Get returns the 20x20 availability projection for the session.  The
// projection is computed fresh on every call; another operator may have
// sold a seat since the last one.
func (h *SeatMapHandler) Get(c echo.Context) error {
	sessionID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	session, err := h.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	grid := h.Layouts.Get(session.HallID)
	if err := h.Materializer.EnsureSeats(ctx, session.HallID, grid); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "materialize seats failed"})
	}

	seats, err := h.Seats.SeatsByHall(ctx, session.HallID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load seats failed"})
	}
	sold, err := h.Tickets.SoldSeatIDs(ctx, sessionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load sold seats failed"})
	}

	sm := seatmap.Project(grid, seats, sold)
	return c.JSON(http.StatusOK, echo.Map{
		"session_id": sessionID,
		"hall_id":    session.HallID,
		"seat_map":   sm,
	})
}
