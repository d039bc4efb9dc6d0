package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrRangeUnparseable возвращается, когда границы диапазона не парсятся или не заданы
	ErrRangeUnparseable = errors.New("domain: date range is unparseable")

	// ErrRangeInverted возвращается, когда конец диапазона раньше начала
	ErrRangeInverted = errors.New("domain: date range end is before start")
)

// DateRange represents an inclusive interval of calendar days [Start, End].
// Both bounds are stored as midnight UTC.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a canonical range from two day values.
// Returns ErrRangeUnparseable on zero values and ErrRangeInverted
// when end precedes start.
func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, ErrRangeUnparseable
	}
	r := DateRange{Start: truncateDay(start), End: truncateDay(end)}
	if r.End.Before(r.Start) {
		return DateRange{}, fmt.Errorf("%w: %s > %s", ErrRangeInverted,
			r.Start.Format(DateFormat), r.End.Format(DateFormat))
	}
	return r, nil
}

// ParseDateRange parses a range from two YYYY-MM-DD strings.
func ParseDateRange(start, end string) (DateRange, error) {
	if start == "" || end == "" {
		return DateRange{}, fmt.Errorf("%w: empty bound", ErrRangeUnparseable)
	}
	s, err := time.Parse(DateFormat, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: %q", ErrRangeUnparseable, start)
	}
	e, err := time.Parse(DateFormat, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: %q", ErrRangeUnparseable, end)
	}
	return NewDateRange(s, e)
}

// IsZero reports whether the range has no bounds set.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Valid reports whether the range is well-formed.
// Stored data may contain corrupted entries that fail this check;
// they stay removable by index but are excluded from every derived day-set.
func (r DateRange) Valid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && !r.End.Before(r.Start)
}

// Days returns the number of calendar days covered by the range.
func (r DateRange) Days() int {
	if !r.Valid() {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// ContainsDay reports whether the given date falls inside the range.
func (r DateRange) ContainsDay(t time.Time) bool {
	if !r.Valid() {
		return false
	}
	d := truncateDay(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Contains reports whether other lies fully inside r.
func (r DateRange) Contains(other DateRange) bool {
	if !r.Valid() || !other.Valid() {
		return false
	}
	return !other.Start.Before(r.Start) && !other.End.After(r.End)
}

// Overlaps reports whether the two ranges share at least one day.
func (r DateRange) Overlaps(other DateRange) bool {
	if !r.Valid() || !other.Valid() {
		return false
	}
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

// AdjacentTo reports whether one range ends on the day immediately
// preceding the other's start.
func (r DateRange) AdjacentTo(other DateRange) bool {
	if !r.Valid() || !other.Valid() {
		return false
	}
	return r.End.AddDate(0, 0, 1).Equal(other.Start) ||
		other.End.AddDate(0, 0, 1).Equal(r.Start)
}

// Merge combines r with other into a single coalesced range.
// The second return value is false when the ranges neither overlap
// nor touch, in which case no merge applies.
func (r DateRange) Merge(other DateRange) (DateRange, bool) {
	if !r.Overlaps(other) && !r.AdjacentTo(other) {
		return DateRange{}, false
	}
	merged := r
	if other.Start.Before(merged.Start) {
		merged.Start = other.Start
	}
	if other.End.After(merged.End) {
		merged.End = other.End
	}
	return merged, true
}

// Equal reports whether both ranges have the same start and end.
func (r DateRange) Equal(other DateRange) bool {
	return r.Start.Equal(other.Start) && r.End.Equal(other.End)
}

// String returns "YYYY-MM-DD..YYYY-MM-DD" for logging.
func (r DateRange) String() string {
	return r.Start.Format(DateFormat) + ".." + r.End.Format(DateFormat)
}

// truncateDay нормализует время к полуночи UTC
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Day возвращает дату, нормализованную к полуночи UTC
func Day(t time.Time) time.Time {
	return truncateDay(t)
}
