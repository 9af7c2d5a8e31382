package model

import "time"

// Session is a scheduled screening of a movie in a hall.  Within one
// hall no two sessions may overlap; the session's time window is
// derived from StartTime and the movie's duration, so no end time is
// stored.  BasePriceCents is the price charged per seat.
//
// Fields:
//  ID             – primary key identifier.
//  MovieID        – movie being screened.
//  HallID         – hall the screening takes place in.
//  StartTime      – UTC start of the session.
//  BasePriceCents – seat price in cents.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Session struct {
	ID             uint64    `json:"id"`               // sessions.id
	MovieID        uint64    `json:"movie_id"`         // sessions.movie_id
	HallID         uint64    `json:"hall_id"`          // sessions.hall_id
	StartTime      time.Time `json:"start_time"`       // sessions.start_time
	BasePriceCents uint32    `json:"base_price_cents"` // sessions.base_price_cents
	CreatedAt      time.Time `json:"created_at"`       // sessions.created_at
	UpdatedAt      time.Time `json:"updated_at"`       // sessions.updated_at
}
