package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 3, 14, hour, min, 0, 0, time.UTC)
}

func TestOverlapsHalfOpen(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"disjoint", at(10, 0), at(11, 0), at(12, 0), at(13, 0), false},
		{"touching endpoints never conflict", at(10, 0), at(11, 0), at(11, 0), at(12, 0), false},
		{"touching reversed", at(11, 0), at(12, 0), at(10, 0), at(11, 0), false},
		{"partial overlap", at(10, 0), at(11, 0), at(10, 30), at(12, 0), true},
		{"containment", at(10, 0), at(14, 0), at(11, 0), at(12, 0), true},
		{"identical", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// overlap is symmetric
			assert.Equal(t, tc.want, Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}

func TestFindConflictRejectsOverlappingProposal(t *testing.T) {
	// Movie A, 90 min, at 18:00 -> [18:00, 19:30)
	existing := []Entry{{SessionID: 1, MovieTitle: "A", Start: at(18, 0), DurationMinutes: 90}}

	// Movie B, 100 min, proposed at 19:00 -> [19:00, 20:40) overlaps A
	got := FindConflict(existing, at(19, 0), 100)
	require.NotNil(t, got)
	assert.Equal(t, uint64(1), got.SessionID)

	// 19:30 touches A's end exactly and is fine
	assert.Nil(t, FindConflict(existing, at(19, 30), 100))
	// ending exactly at A's start is fine too: [16:20, 18:00)
	assert.Nil(t, FindConflict(existing, at(16, 20), 100))
}

func TestFindConflictReportsEarliestStart(t *testing.T) {
	existing := []Entry{
		{SessionID: 2, Start: at(12, 0), DurationMinutes: 60},
		{SessionID: 3, Start: at(13, 0), DurationMinutes: 60},
	}

	// proposal spans both sessions; the earlier one is reported
	got := FindConflict(existing, at(11, 30), 180)
	require.NotNil(t, got)
	assert.Equal(t, uint64(2), got.SessionID)
}

func TestFindConflictClampsDuration(t *testing.T) {
	existing := []Entry{{SessionID: 4, Start: at(12, 0), DurationMinutes: 0}}

	// a zero-duration movie still occupies one minute
	require.NotNil(t, FindConflict(existing, at(12, 0), 30))
	assert.Nil(t, FindConflict(existing, at(12, 1), 30))
}

func TestSuggestSkipsOccupiedSlots(t *testing.T) {
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	opts := SuggestOptions{OpenHour: 10, CloseHour: 23, StepMinutes: 15}
	existing := []Entry{{SessionID: 1, Start: at(10, 0), DurationMinutes: 120}} // [10:00, 12:00)

	got := Suggest(existing, day, 60, opts)
	require.NotEmpty(t, got)

	assert.Equal(t, at(12, 0), got[0], "first free slot right after the existing session")
	for _, s := range got {
		assert.Nil(t, FindConflict(existing, s, 60))
	}
	// candidates stay inside business hours: last one ends by 23:00
	last := got[len(got)-1]
	assert.False(t, last.Add(60*time.Minute).After(at(23, 0)))
}

func TestSuggestSeedsDefaultsForEmptyDay(t *testing.T) {
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	opts := SuggestOptions{OpenHour: 10, CloseHour: 23, StepMinutes: 15}

	// movie longer than the whole business day: the walk finds nothing,
	// but an empty hall still gets opening-time seeds
	got := Suggest(nil, day, 14*60, opts)
	assert.Equal(t, []time.Time{at(10, 0), at(11, 0), at(12, 0)}, got)
}

type fakeLister struct {
	entries []Entry
	err     error
}

func (f *fakeLister) DayEntries(_ context.Context, _ uint64, _ time.Time) ([]Entry, error) {
	return f.entries, f.err
}

func TestCheckerHasConflict(t *testing.T) {
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	lister := &fakeLister{entries: []Entry{
		{SessionID: 9, MovieTitle: "A", Start: at(18, 0), DurationMinutes: 90},
	}}
	c := NewChecker(lister, SuggestOptions{OpenHour: 10, CloseHour: 23, StepMinutes: 15})

	got, err := c.HasConflict(context.Background(), 1, day, at(19, 0), 100)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint64(9), got.SessionID)

	got, err = c.HasConflict(context.Background(), 1, day, at(19, 30), 100)
	require.NoError(t, err)
	assert.Nil(t, got)
}
