package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidWeekday возвращается при неизвестном названии дня недели
var ErrInvalidWeekday = errors.New("domain: invalid weekday")

// WeekdaySet is a bitmask of enabled weekdays for a slot-mode calendar.
type WeekdaySet uint8

// NewWeekdaySet builds a set from the given weekdays.
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.With(d)
	}
	return s
}

// ParseWeekday parses an english weekday name ("monday" ... "sunday").
func ParseWeekday(name string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	case "sunday":
		return time.Sunday, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, name)
	}
}

// ParseWeekdaySet parses a list of weekday names into a set.
func ParseWeekdaySet(names []string) (WeekdaySet, error) {
	var s WeekdaySet
	for _, name := range names {
		d, err := ParseWeekday(name)
		if err != nil {
			return 0, err
		}
		s = s.With(d)
	}
	return s, nil
}

// Contains reports whether the weekday is enabled.
func (s WeekdaySet) Contains(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

// With returns a copy of the set with the weekday enabled.
func (s WeekdaySet) With(d time.Weekday) WeekdaySet {
	return s | (1 << uint(d))
}

// Without returns a copy of the set with the weekday disabled.
func (s WeekdaySet) Without(d time.Weekday) WeekdaySet {
	return s &^ (1 << uint(d))
}

// Toggle returns a copy of the set with the weekday flipped.
func (s WeekdaySet) Toggle(d time.Weekday) WeekdaySet {
	return s ^ (1 << uint(d))
}

// IsEmpty reports whether no weekday is enabled.
func (s WeekdaySet) IsEmpty() bool {
	return s == 0
}

// Count returns the number of enabled weekdays.
func (s WeekdaySet) Count() int {
	n := 0
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Contains(d) {
			n++
		}
	}
	return n
}

// Weekdays returns the enabled weekdays in Sunday..Saturday order.
func (s WeekdaySet) Weekdays() []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Contains(d) {
			days = append(days, d)
		}
	}
	return days
}

// Strings returns lowercase weekday names for the wire representation.
func (s WeekdaySet) Strings() []string {
	days := s.Weekdays()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = strings.ToLower(d.String())
	}
	return names
}
