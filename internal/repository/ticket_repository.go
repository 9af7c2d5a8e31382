package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/cinema-pos/internal/model"
)

// TicketRepo provides read access to sold tickets.  Ticket writes only
// ever happen inside a sale transaction; see SaleStore.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo constructs a TicketRepo with the given DB handle.
func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

// SoldSeatIDs returns the set of seat ids that have a Sold ticket for
// the session.  The availability projector folds this set over the
// hall's layout grid.
func (r *TicketRepo) SoldSeatIDs(ctx context.Context, sessionID uint64) (map[uint64]struct{}, error) {
	const q = `SELECT seat_id FROM tickets WHERE session_id = ? AND status = ?`
	rows, err := r.db.QueryContext(ctx, q, sessionID, model.TicketSold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sold := make(map[uint64]struct{})
	for rows.Next() {
		var seatID uint64
		if err := rows.Scan(&seatID); err != nil {
			return nil, err
		}
		sold[seatID] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sold, nil
}

// SessionRevenue is one row of the daily report: sold count and
// revenue of a single session.
type SessionRevenue struct {
	SessionID    uint64    `json:"session_id"`
	MovieTitle   string    `json:"movie_title"`
	HallName     string    `json:"hall_name"`
	StartTime    time.Time `json:"start_time"`
	TicketsSold  int       `json:"tickets_sold"`
	RevenueCents uint64    `json:"revenue_cents"`
}

// MethodRevenue totals one payment method for the day.
type MethodRevenue struct {
	Method      string `json:"method"`
	Payments    int    `json:"payments"`
	AmountCents uint64 `json:"amount_cents"`
}

// RevenueByDay aggregates Sold tickets of one calendar day into
// per-session rows ordered by start time.
func (r *TicketRepo) RevenueByDay(ctx context.Context, day time.Time) ([]SessionRevenue, error) {
	from, to := dayBounds(day)
	const q = `SELECT s.id, m.title, h.name, s.start_time,
	                  COUNT(t.id), COALESCE(SUM(t.price_cents), 0)
	           FROM tickets t
	           JOIN sessions s ON s.id = t.session_id
	           JOIN movies m ON m.id = s.movie_id
	           JOIN halls h ON h.id = s.hall_id
	           WHERE t.status = ? AND t.sale_time >= ? AND t.sale_time < ?
	           GROUP BY s.id, m.title, h.name, s.start_time
	           ORDER BY s.start_time, s.id`
	rows, err := r.db.QueryContext(ctx, q, model.TicketSold, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SessionRevenue, 0)
	for rows.Next() {
		var sr SessionRevenue
		if err := rows.Scan(&sr.SessionID, &sr.MovieTitle, &sr.HallName, &sr.StartTime,
			&sr.TicketsSold, &sr.RevenueCents); err != nil {
			return nil, err
		}
		sr.StartTime = sr.StartTime.UTC()
		out = append(out, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// RevenueByMethod totals one calendar day's payments grouped by method.
func (r *TicketRepo) RevenueByMethod(ctx context.Context, day time.Time) ([]MethodRevenue, error) {
	from, to := dayBounds(day)
	const q = `SELECT p.method, COUNT(p.id), COALESCE(SUM(p.amount_cents), 0)
	           FROM payments p
	           WHERE p.paid_at >= ? AND p.paid_at < ?
	           GROUP BY p.method
	           ORDER BY p.method`
	rows, err := r.db.QueryContext(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MethodRevenue, 0)
	for rows.Next() {
		var mr MethodRevenue
		if err := rows.Scan(&mr.Method, &mr.Payments, &mr.AmountCents); err != nil {
			return nil, err
		}
		out = append(out, mr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
