package model

import "time"

// Hall is a screening hall of the cinema.  Its seat inventory is not
// stored on the hall itself: seats are materialized lazily from the
// hall's layout grid, so the total seat count is always derived by
// counting seat rows.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – human readable label for the hall.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Hall struct {
	ID        uint64    `json:"id"`         // halls.id
	Name      string    `json:"name"`       // halls.name
	CreatedAt time.Time `json:"created_at"` // halls.created_at
	UpdatedAt time.Time `json:"updated_at"` // halls.updated_at
}
