package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-pos/internal/model"
	"github.com/iliyamo/cinema-pos/internal/repository"
	"github.com/iliyamo/cinema-pos/internal/schedule"
)

// SessionHandler creates sessions and serves start-time suggestions.
// Creation is checked against the hall's day through the conflict
// checker before the row is written.
type SessionHandler struct {
	Sessions *repository.SessionRepo
	Movies   *repository.MovieRepo
	Halls    *repository.HallRepo
	Checker  *schedule.Checker
}

func NewSessionHandler(sessions *repository.SessionRepo, movies *repository.MovieRepo, halls *repository.HallRepo, checker *schedule.Checker) *SessionHandler {
	return &SessionHandler{Sessions: sessions, Movies: movies, Halls: halls, Checker: checker}
}

type createSessionReq struct {
	MovieID        uint64 `json:"movie_id"`
	HallID         uint64 `json:"hall_id"`
	StartTime      string `json:"start_time"` // RFC3339
	BasePriceCents uint32 `json:"base_price_cents"`
}

// Create schedules a screening.  A proposal that overlaps an existing
// session of the hall is rejected with 409 and the conflicting session
// so the operator can see what is in the way.
func (h *SessionHandler) Create(c echo.Context) error {
	var req createSessionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.MovieID == 0 || req.HallID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id and hall_id required"})
	}
	if req.BasePriceCents == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "base_price_cents must be positive"})
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be RFC3339"})
	}
	start = start.UTC()

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movie, err := h.Movies.GetByID(ctx, req.MovieID)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if _, err := h.Halls.GetByID(ctx, req.HallID); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	conflict, err := h.Checker.HasConflict(ctx, req.HallID, start, start, movie.DurationMinutes)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "conflict check failed"})
	}
	if conflict != nil {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":    "session overlaps an existing session",
			"conflict": conflict,
		})
	}

	session := &model.Session{
		MovieID:        req.MovieID,
		HallID:         req.HallID,
		StartTime:      start,
		BasePriceCents: req.BasePriceCents,
	}
	if err := h.Sessions.Create(ctx, session); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create session failed"})
	}
	return c.JSON(http.StatusCreated, session)
}

// Suggestions returns conflict-free start times for scheduling the
// given movie in the given hall on a day.  Query parameters: hall_id,
// movie_id, date (YYYY-MM-DD, defaults to today).
func (h *SessionHandler) Suggestions(c echo.Context) error {
	hallID, err := queryUint(c, "hall_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hall_id required"})
	}
	movieID, err := queryUint(c, "movie_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id required"})
	}
	day, err := queryDay(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movie, err := h.Movies.GetByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	options, err := h.Checker.Suggest(ctx, hallID, day, movie.DurationMinutes)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "suggest failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"hall_id":     hallID,
		"movie_id":    movieID,
		"date":        day.Format("2006-01-02"),
		"suggestions": options,
	})
}
