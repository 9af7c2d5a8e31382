package model

import "time"

// Movie holds the catalog metadata for a film.  DurationMinutes feeds
// the schedule conflict checker; every session of this movie occupies
// the half-open interval [start, start + max(1, DurationMinutes)).
type Movie struct {
	ID              uint64    `json:"id"`               // movies.id
	Title           string    `json:"title"`            // movies.title
	DurationMinutes int       `json:"duration_minutes"` // movies.duration_minutes
	AgeRestriction  int       `json:"age_restriction"`  // movies.age_restriction
	ReleaseDate     time.Time `json:"release_date"`     // movies.release_date
	Description     string    `json:"description"`      // movies.description
	CreatedAt       time.Time `json:"created_at"`       // movies.created_at
	UpdatedAt       time.Time `json:"updated_at"`       // movies.updated_at
}
