// Package schedule decides whether a proposed session fits into a
// hall's day and proposes free start times.  All interval math uses
// half-open windows [start, end): sessions that touch end-to-start do
// not conflict.
package schedule

import (
	"context"
	"time"
)

// Entry is one existing session of the hall/day under consideration,
// joined with the movie duration that defines its time window.
type Entry struct {
	SessionID       uint64    `json:"session_id"`
	MovieID         uint64    `json:"movie_id"`
	MovieTitle      string    `json:"movie_title"`
	Start           time.Time `json:"start"`
	DurationMinutes int       `json:"duration_minutes"`
}

// End returns the exclusive end of the entry's window.  A duration of
// less than one minute still occupies one minute.
func (e Entry) End() time.Time {
	return e.Start.Add(time.Duration(clampDuration(e.DurationMinutes)) * time.Minute)
}

func clampDuration(minutes int) int {
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Overlaps is the half-open interval test: two windows conflict iff
// each starts before the other ends.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// FindConflict returns the existing entry that overlaps the proposed
// [start, start+duration) window, or nil.  Entries are scanned in
// ascending start order, so the conflicting session with the earliest
// start is the one reported.
func FindConflict(entries []Entry, start time.Time, durationMinutes int) *Entry {
	end := start.Add(time.Duration(clampDuration(durationMinutes)) * time.Minute)
	var found *Entry
	for i := range entries {
		e := entries[i]
		if !Overlaps(start, end, e.Start, e.End()) {
			continue
		}
		if found == nil || e.Start.Before(found.Start) {
			found = &entries[i]
		}
	}
	return found
}

// SuggestOptions are the business-hour settings for suggestion walks.
type SuggestOptions struct {
	OpenHour    int // first candidate hour of the day, e.g. 10
	CloseHour   int // screenings must end by this hour, e.g. 23
	StepMinutes int // candidate spacing, e.g. 15
}

// Suggest walks candidate start times across the day's business hours
// and returns every candidate whose window conflicts with no existing
// entry.  When the hall has no sessions that day and nothing fits the
// walk (the movie is longer than the remaining business hours), a few
// default candidates from opening time are seeded so the operator is
// never shown an empty list for an empty hall.
func Suggest(entries []Entry, day time.Time, durationMinutes int, opts SuggestOptions) []time.Time {
	dur := time.Duration(clampDuration(durationMinutes)) * time.Minute
	step := time.Duration(opts.StepMinutes) * time.Minute
	if step <= 0 {
		step = 15 * time.Minute
	}
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	open := midnight.Add(time.Duration(opts.OpenHour) * time.Hour)
	close := midnight.Add(time.Duration(opts.CloseHour) * time.Hour)

	var out []time.Time
	for t := open; !t.After(close.Add(-dur)); t = t.Add(step) {
		if FindConflict(entries, t, durationMinutes) == nil {
			out = append(out, t)
		}
	}
	if len(out) == 0 && len(entries) == 0 {
		out = append(out, open, open.Add(60*time.Minute), open.Add(120*time.Minute))
	}
	return out
}

// DayLister loads a hall's sessions whose start time falls within
// [day 00:00, day+1 00:00), ordered by start ascending, joined with
// movie durations.  Cross-midnight sessions are out of scope.
type DayLister interface {
	DayEntries(ctx context.Context, hallID uint64, day time.Time) ([]Entry, error)
}

// Checker answers conflict and suggestion queries against persisted
// sessions.  It performs a linear scan of the day's handful of
// sessions per query.
type Checker struct {
	lister DayLister
	opts   SuggestOptions
}

// NewChecker builds a Checker over the given session lister.
func NewChecker(lister DayLister, opts SuggestOptions) *Checker {
	return &Checker{lister: lister, opts: opts}
}

// HasConflict reports the earliest-starting session in the hall/day
// that overlaps the proposed window, or nil when the slot is free.
func (c *Checker) HasConflict(ctx context.Context, hallID uint64, day, start time.Time, durationMinutes int) (*Entry, error) {
	entries, err := c.lister.DayEntries(ctx, hallID, day)
	if err != nil {
		return nil, err
	}
	return FindConflict(entries, start, durationMinutes), nil
}

// Suggest returns the conflict-free candidate start times for
// scheduling a movie of the given duration in the hall on that day.
func (c *Checker) Suggest(ctx context.Context, hallID uint64, day time.Time, durationMinutes int) ([]time.Time, error) {
	entries, err := c.lister.DayEntries(ctx, hallID, day)
	if err != nil {
		return nil, err
	}
	return Suggest(entries, day, durationMinutes, c.opts), nil
}
