package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-pos/internal/queue"
	"github.com/iliyamo/cinema-pos/internal/repository"
	"github.com/iliyamo/cinema-pos/internal/sale"
	service "github.com/iliyamo/cinema-pos/internal/service"
)

// SaleHandler runs counter sales through the sale coordinator and
// announces committed sales on the message broker.
type SaleHandler struct {
	Coordinator *sale.Coordinator
	Sessions    *repository.SessionRepo
	Movies      *repository.MovieRepo
	Seats       *repository.SeatRepo
}

func NewSaleHandler(coord *sale.Coordinator, sessions *repository.SessionRepo, movies *repository.MovieRepo, seats *repository.SeatRepo) *SaleHandler {
	return &SaleHandler{Coordinator: coord, Sessions: sessions, Movies: movies, Seats: seats}
}

type sellReq struct {
	SessionID     uint64   `json:"session_id"`
	SeatIDs       []uint64 `json:"seat_ids"`
	CustomerName  string   `json:"customer_name"`
	CustomerPhone string   `json:"customer_phone"`
	PaymentMethod string   `json:"payment_method"` // CASH | CARD
}

// Sell performs one atomic sale.  Seats lost to a concurrent operator
// come back in skipped_seat_ids with a 200, not an error; the operator
// refreshes the seat map and carries on.
func (h *SaleHandler) Sell(c echo.Context) error {
	var req sellReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	employeeID, err := getEmployeeID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	res, err := h.Coordinator.Sell(ctx, sale.Request{
		SessionID:     req.SessionID,
		SeatIDs:       req.SeatIDs,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		EmployeeID:    employeeID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, sale.ErrValidation):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, sale.ErrSessionNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sale failed"})
		}
	}

	if res.SoldCount > 0 {
		go h.announce(req, employeeID, res)
	}
	return c.JSON(http.StatusOK, res)
}

// announce publishes the ticket.sold event.  The sale is already
// committed; a broker failure only costs the journal line.
func (h *SaleHandler) announce(req sellReq, employeeID uint64, res *sale.Result) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ev := queue.TicketSoldEvent{
		SessionID:     req.SessionID,
		TicketIDs:     res.TicketIDs,
		CustomerPhone: req.CustomerPhone,
		EmployeeID:    employeeID,
		PaymentMethod: req.PaymentMethod,
		SoldAt:        time.Now().UTC().Format(time.RFC3339),
	}
	if session, err := h.Sessions.GetByID(ctx, req.SessionID); err == nil {
		ev.HallID = session.HallID
		ev.StartsAt = session.StartTime.Format(time.RFC3339)
		ev.AmountCents = uint64(res.SoldCount) * uint64(session.BasePriceCents)
		if movie, err := h.Movies.GetByID(ctx, session.MovieID); err == nil {
			ev.MovieTitle = movie.Title
		}
	}
	soldSeats := make([]uint64, 0, len(req.SeatIDs))
	skipped := make(map[uint64]struct{}, len(res.SkippedSeatIDs))
	for _, id := range res.SkippedSeatIDs {
		skipped[id] = struct{}{}
	}
	for _, id := range req.SeatIDs {
		if _, ok := skipped[id]; !ok {
			soldSeats = append(soldSeats, id)
		}
	}
	if labels, err := h.Seats.Labels(ctx, soldSeats); err == nil {
		ev.SeatLabels = labels
	}

	if err := service.PublishTicketSold(ctx, ev); err != nil {
		log.Printf("sale: publish ticket.sold failed: %v", err)
	}
}
