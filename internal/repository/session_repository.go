package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/cinema-pos/internal/model"
	"github.com/iliyamo/cinema-pos/internal/schedule"
)

// ErrSessionNotFound is returned when a session lookup fails.
var ErrSessionNotFound = errors.New("session not found")

// DaySession is one row of the schedule view: a session joined with
// its movie and hall names plus the sold and total seat counts.
type DaySession struct {
	ID              uint64    `json:"id"`
	MovieID         uint64    `json:"movie_id"`
	MovieTitle      string    `json:"movie_title"`
	HallID          uint64    `json:"hall_id"`
	HallName        string    `json:"hall_name"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	BasePriceCents  uint32    `json:"base_price_cents"`
	SoldCount       int       `json:"sold_count"`
	TotalSeats      int       `json:"total_seats"`
}

// SessionRepo provides access to scheduled screenings.
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo constructs a SessionRepo with the given DB handle.
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create inserts a new session and populates its ID and timestamps.
// The conflict check happens before this call; the insert itself only
// enforces referential integrity.
func (r *SessionRepo) Create(ctx context.Context, s *model.Session) error {
	const qInsert = `INSERT INTO sessions (movie_id, hall_id, start_time, base_price_cents)
	                 VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, s.MovieID, s.HallID, s.StartTime.UTC(), s.BasePriceCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)

	const qSelect = `SELECT id, movie_id, hall_id, start_time, base_price_cents, created_at, updated_at
	                 FROM sessions WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, s.ID).Scan(
		&s.ID, &s.MovieID, &s.HallID, &s.StartTime, &s.BasePriceCents, &s.CreatedAt, &s.UpdatedAt)
}

// GetByID retrieves a session by its ID.  It returns ErrSessionNotFound
// when no row is found.
func (r *SessionRepo) GetByID(ctx context.Context, id uint64) (*model.Session, error) {
	const q = `SELECT id, movie_id, hall_id, start_time, base_price_cents, created_at, updated_at
	           FROM sessions WHERE id = ?`
	var s model.Session
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.MovieID, &s.HallID, &s.StartTime, &s.BasePriceCents, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// DayEntries returns the schedule entries of one hall for the calendar
// day containing `day`, joined with movie titles and durations.  This
// is the conflict checker's view of the hall.
func (r *SessionRepo) DayEntries(ctx context.Context, hallID uint64, day time.Time) ([]schedule.Entry, error) {
	from, to := dayBounds(day)
	const q = `SELECT s.id, s.movie_id, m.title, s.start_time, m.duration_minutes
	           FROM sessions s
	           JOIN movies m ON m.id = s.movie_id
	           WHERE s.hall_id = ? AND s.start_time >= ? AND s.start_time < ?
	           ORDER BY s.start_time`
	rows, err := r.db.QueryContext(ctx, q, hallID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []schedule.Entry
	for rows.Next() {
		var e schedule.Entry
		if err := rows.Scan(&e.SessionID, &e.MovieID, &e.MovieTitle, &e.Start, &e.DurationMinutes); err != nil {
			return nil, err
		}
		e.Start = e.Start.UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListByDay returns all sessions of a calendar day across halls, with
// sold and total seat counts, ordered by start time.  Only Sold
// tickets count towards SoldCount.
func (r *SessionRepo) ListByDay(ctx context.Context, day time.Time) ([]DaySession, error) {
	from, to := dayBounds(day)
	const q = `SELECT s.id, s.movie_id, m.title, s.hall_id, h.name,
	                  s.start_time, m.duration_minutes, s.base_price_cents,
	                  (SELECT COUNT(*) FROM tickets t
	                   WHERE t.session_id = s.id AND t.status = ?),
	                  (SELECT COUNT(*) FROM seats se WHERE se.hall_id = s.hall_id)
	           FROM sessions s
	           JOIN movies m ON m.id = s.movie_id
	           JOIN halls h ON h.id = s.hall_id
	           WHERE s.start_time >= ? AND s.start_time < ?
	           ORDER BY s.start_time, s.id`
	rows, err := r.db.QueryContext(ctx, q, model.TicketSold, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]DaySession, 0)
	for rows.Next() {
		var d DaySession
		if err := rows.Scan(
			&d.ID, &d.MovieID, &d.MovieTitle, &d.HallID, &d.HallName,
			&d.StartTime, &d.DurationMinutes, &d.BasePriceCents,
			&d.SoldCount, &d.TotalSeats,
		); err != nil {
			return nil, err
		}
		d.StartTime = d.StartTime.UTC()
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// dayBounds returns the half-open UTC window [00:00, next 00:00) of
// the calendar day containing t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	from := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return from, from.Add(24 * time.Hour)
}
