package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-pos/internal/model"
)

// ErrMovieNotFound is returned when a movie lookup fails.
var ErrMovieNotFound = errors.New("movie not found")

// MovieRepo provides catalog access for movies.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// Create inserts a new movie and populates its ID and timestamps.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const qInsert = `INSERT INTO movies (title, duration_minutes, age_restriction, release_date, description)
	                 VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		m.Title, m.DurationMinutes, m.AgeRestriction, m.ReleaseDate, m.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)

	const qSelect = `SELECT id, title, duration_minutes, age_restriction, release_date, description, created_at, updated_at
	                 FROM movies WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, m.ID).Scan(
		&m.ID, &m.Title, &m.DurationMinutes, &m.AgeRestriction,
		&m.ReleaseDate, &m.Description, &m.CreatedAt, &m.UpdatedAt)
}

// GetByID retrieves a movie by its ID.  It returns ErrMovieNotFound
// when no row is found.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	const q = `SELECT id, title, duration_minutes, age_restriction, release_date, description, created_at, updated_at
	           FROM movies WHERE id = ?`
	var m model.Movie
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.Title, &m.DurationMinutes, &m.AgeRestriction,
		&m.ReleaseDate, &m.Description, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns the full movie catalog ordered by title.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	const q = `SELECT id, title, duration_minutes, age_restriction, release_date, description, created_at, updated_at
	           FROM movies ORDER BY title, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Movie, 0)
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(
			&m.ID, &m.Title, &m.DurationMinutes, &m.AgeRestriction,
			&m.ReleaseDate, &m.Description, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
