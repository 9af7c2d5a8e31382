package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-pos/internal/repository"
)

// ReportHandler serves the daily revenue summary.
type ReportHandler struct {
	Tickets *repository.TicketRepo
}

func NewReportHandler(tickets *repository.TicketRepo) *ReportHandler {
	return &ReportHandler{Tickets: tickets}
}

// Daily returns per-session sold counts and revenue plus payment
// method totals for one calendar day.  Query parameter "date"
// (YYYY-MM-DD) defaults to today.
func (h *ReportHandler) Daily(c echo.Context) error {
	day, err := queryDay(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	sessions, err := h.Tickets.RevenueByDay(ctx, day)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load report failed"})
	}
	methods, err := h.Tickets.RevenueByMethod(ctx, day)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load report failed"})
	}

	var totalTickets int
	var totalCents uint64
	for _, s := range sessions {
		totalTickets += s.TicketsSold
		totalCents += s.RevenueCents
	}

	return c.JSON(http.StatusOK, echo.Map{
		"date":                day.UTC().Format("2006-01-02"),
		"sessions":            sessions,
		"payment_methods":     methods,
		"total_tickets":       totalTickets,
		"total_revenue_cents": totalCents,
	})
}
