package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, start, end string) DateRange {
	t.Helper()
	r, err := ParseDateRange(start, end)
	require.NoError(t, err)
	return r
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr error
	}{
		{name: "valid range", start: "2026-06-01", end: "2026-06-10"},
		{name: "single day", start: "2026-06-01", end: "2026-06-01"},
		{name: "unparseable start", start: "06/01/2026", end: "2026-06-10", wantErr: ErrRangeUnparseable},
		{name: "unparseable end", start: "2026-06-01", end: "not-a-date", wantErr: ErrRangeUnparseable},
		{name: "empty start", start: "", end: "2026-06-10", wantErr: ErrRangeUnparseable},
		{name: "inverted", start: "2026-06-10", end: "2026-06-01", wantErr: ErrRangeInverted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseDateRange(tt.start, tt.end)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, r.Valid())
		})
	}
}

func TestDateRange_NormalizesToMidnightUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	r, err := NewDateRange(
		time.Date(2026, 6, 1, 18, 30, 0, 0, loc),
		time.Date(2026, 6, 3, 2, 15, 0, 0, loc),
	)
	require.NoError(t, err)

	assert.Equal(t, day(2026, 6, 1), r.Start)
	assert.Equal(t, day(2026, 6, 3), r.End)
}

func TestDateRange_Days(t *testing.T) {
	assert.Equal(t, 1, mustRange(t, "2026-06-01", "2026-06-01").Days())
	assert.Equal(t, 10, mustRange(t, "2026-06-01", "2026-06-10").Days())
	assert.Equal(t, 0, DateRange{}.Days())
}

func TestDateRange_ContainsDay(t *testing.T) {
	r := mustRange(t, "2026-06-01", "2026-06-10")

	assert.True(t, r.ContainsDay(day(2026, 6, 1)))
	assert.True(t, r.ContainsDay(day(2026, 6, 10)))
	assert.True(t, r.ContainsDay(time.Date(2026, 6, 5, 23, 59, 0, 0, time.UTC)))
	assert.False(t, r.ContainsDay(day(2026, 5, 31)))
	assert.False(t, r.ContainsDay(day(2026, 6, 11)))
}

func TestDateRange_Overlaps(t *testing.T) {
	base := mustRange(t, "2026-06-10", "2026-06-20")

	tests := []struct {
		name  string
		other DateRange
		want  bool
	}{
		{name: "identical", other: mustRange(t, "2026-06-10", "2026-06-20"), want: true},
		{name: "contained", other: mustRange(t, "2026-06-12", "2026-06-15"), want: true},
		{name: "partial left", other: mustRange(t, "2026-06-05", "2026-06-10"), want: true},
		{name: "partial right", other: mustRange(t, "2026-06-20", "2026-06-25"), want: true},
		{name: "adjacent left", other: mustRange(t, "2026-06-01", "2026-06-09"), want: false},
		{name: "adjacent right", other: mustRange(t, "2026-06-21", "2026-06-30"), want: false},
		{name: "disjoint", other: mustRange(t, "2026-07-01", "2026-07-10"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestDateRange_AdjacentTo(t *testing.T) {
	base := mustRange(t, "2026-06-10", "2026-06-20")

	assert.True(t, base.AdjacentTo(mustRange(t, "2026-06-21", "2026-06-25")))
	assert.True(t, base.AdjacentTo(mustRange(t, "2026-06-01", "2026-06-09")))
	assert.False(t, base.AdjacentTo(mustRange(t, "2026-06-22", "2026-06-25")))
	assert.False(t, base.AdjacentTo(mustRange(t, "2026-06-15", "2026-06-25")))
}

func TestDateRange_Merge(t *testing.T) {
	tests := []struct {
		name      string
		a, b      DateRange
		wantStart time.Time
		wantEnd   time.Time
		wantOK    bool
	}{
		{
			name: "overlapping",
			a:    mustRange(t, "2026-06-01", "2026-06-10"),
			b:    mustRange(t, "2026-06-05", "2026-06-15"),
			wantStart: day(2026, 6, 1), wantEnd: day(2026, 6, 15), wantOK: true,
		},
		{
			name: "adjacent",
			a:    mustRange(t, "2026-06-01", "2026-06-10"),
			b:    mustRange(t, "2026-06-11", "2026-06-15"),
			wantStart: day(2026, 6, 1), wantEnd: day(2026, 6, 15), wantOK: true,
		},
		{
			name: "contained keeps outer bounds",
			a:    mustRange(t, "2026-06-01", "2026-06-30"),
			b:    mustRange(t, "2026-06-10", "2026-06-12"),
			wantStart: day(2026, 6, 1), wantEnd: day(2026, 6, 30), wantOK: true,
		},
		{
			name:   "disjoint",
			a:      mustRange(t, "2026-06-01", "2026-06-10"),
			b:      mustRange(t, "2026-06-20", "2026-06-25"),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, ok := tt.a.Merge(tt.b)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantStart, merged.Start)
				assert.Equal(t, tt.wantEnd, merged.End)
			}
		})
	}
}

func TestDateRange_ZeroValueIsInvalid(t *testing.T) {
	var r DateRange
	assert.True(t, r.IsZero())
	assert.False(t, r.Valid())
	assert.False(t, r.ContainsDay(day(2026, 6, 1)))
}
