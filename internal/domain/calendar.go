package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/Blane-SchedulingService/pkg/types"
)

var (
	// ErrRangeOutOfBounds возвращается, когда диапазон выходит за окно действия оффера
	ErrRangeOutOfBounds = errors.New("domain: range is out of offer bounds")

	// ErrDuplicateRange возвращается при попытке добавить уже существующий диапазон
	ErrDuplicateRange = errors.New("domain: duplicate range")

	// ErrRangeNotFound возвращается, когда индекс диапазона вне списка
	ErrRangeNotFound = errors.New("domain: range not found")

	// ErrEmptyWeekdays возвращается, когда слотовый календарь не содержит ни одного дня недели
	ErrEmptyWeekdays = errors.New("domain: weekday set is empty")

	// ErrInvalidDailyWindow возвращается, когда конец дневного окна не позже начала
	ErrInvalidDailyWindow = errors.New("domain: daily window end must be after start")

	// ErrInvalidSlotInterval возвращается при недопустимой длине слота
	ErrInvalidSlotInterval = errors.New("domain: invalid slot interval")
)

// OfferMode defines the scheduling style of an offer.
// The two modes are mutually exclusive.
type OfferMode string

const (
	// ModeSlot - recurring weekdays with a daily window sliced into time slots
	ModeSlot OfferMode = "slot"
	// ModeRange - coalesced set of inclusive day intervals (multi-day stays)
	ModeRange OfferMode = "range"
)

// Calendar is the availability calendar of one offer.
// The concrete shape depends on the offer mode; invalid combinations
// (weekdays in range mode and vice versa) are unrepresentable.
type Calendar interface {
	CalendarMode() OfferMode
}

// SlotCalendar is the slot-mode calendar: weekly days plus a fixed daily
// time window sliced into discrete slots of SlotIntervalMinutes.
type SlotCalendar struct {
	Weekdays            WeekdaySet
	DailyStart          types.TimeString
	DailyEnd            types.TimeString
	SlotIntervalMinutes int
}

// CalendarMode implements Calendar.
func (c SlotCalendar) CalendarMode() OfferMode { return ModeSlot }

// Validate проверяет инварианты слотового календаря
func (c SlotCalendar) Validate() error {
	if c.Weekdays.IsEmpty() {
		return ErrEmptyWeekdays
	}
	if err := c.DailyStart.Validate(); err != nil {
		return fmt.Errorf("%w: daily start: %v", ErrInvalidDailyWindow, err)
	}
	if err := c.DailyEnd.Validate(); err != nil {
		return fmt.Errorf("%w: daily end: %v", ErrInvalidDailyWindow, err)
	}
	if !c.DailyStart.IsBefore(c.DailyEnd) {
		return ErrInvalidDailyWindow
	}
	if c.SlotIntervalMinutes < MinSlotIntervalMinutes || c.SlotIntervalMinutes > MaxSlotIntervalMinutes {
		return fmt.Errorf("%w: %d minutes", ErrInvalidSlotInterval, c.SlotIntervalMinutes)
	}
	return nil
}

// SlotsForDate returns the bookable slots for the given date, bounded by the
// offer's validity window. Empty when the date's weekday is not enabled or
// the date lies outside bounds. Slots are consecutive intervals of
// SlotIntervalMinutes starting at DailyStart; a partial trailing slot whose
// end would pass DailyEnd is dropped, not truncated.
func (c SlotCalendar) SlotsForDate(date time.Time, bounds DateRange) []TimeSlot {
	if !bounds.ContainsDay(date) {
		return []TimeSlot{}
	}
	if !c.Weekdays.Contains(date.Weekday()) {
		return []TimeSlot{}
	}
	if c.SlotIntervalMinutes <= 0 {
		return []TimeSlot{}
	}

	slots := make([]TimeSlot, 0)
	current := c.DailyStart

	for current.IsBefore(c.DailyEnd) {
		end, err := current.AddMinutes(c.SlotIntervalMinutes)
		if err != nil {
			break
		}
		if end.IsAfter(c.DailyEnd) {
			break
		}
		slots = append(slots, TimeSlot{StartTime: current, DurationMinutes: c.SlotIntervalMinutes})
		current = end
	}

	return slots
}

// RangeCalendar is the range-mode calendar: an ordered set of inclusive day
// intervals. Invariant: stored ranges are pairwise non-overlapping and
// non-adjacent; every mutation restores the invariant or fails without
// touching the set.
type RangeCalendar struct {
	Ranges []DateRange
}

// CalendarMode implements Calendar.
func (c RangeCalendar) CalendarMode() OfferMode { return ModeRange }

// AddRange returns a new calendar with candidate inserted. The candidate is
// merged with every stored range it overlaps or touches (day-adjacency),
// repeatedly, until no further merge applies; the result stays sorted by
// start. Fails with ErrRangeOutOfBounds when the candidate leaves bounds and
// ErrDuplicateRange when an identical range is already stored.
func (c RangeCalendar) AddRange(candidate DateRange, bounds DateRange) (RangeCalendar, error) {
	if !candidate.Valid() {
		return RangeCalendar{}, ErrRangeUnparseable
	}
	if !bounds.Contains(candidate) {
		return RangeCalendar{}, fmt.Errorf("%w: %s outside %s", ErrRangeOutOfBounds, candidate, bounds)
	}

	for _, existing := range c.Ranges {
		if existing.Equal(candidate) {
			return RangeCalendar{}, fmt.Errorf("%w: %s", ErrDuplicateRange, candidate)
		}
	}

	merged := candidate
	pending := append([]DateRange(nil), c.Ranges...)

	// Повторяем слияние, пока очередной проход поглощает хотя бы один диапазон
	for {
		absorbed := false
		next := make([]DateRange, 0, len(pending))
		for _, existing := range pending {
			if m, ok := merged.Merge(existing); ok {
				merged = m
				absorbed = true
				continue
			}
			next = append(next, existing)
		}
		pending = next
		if !absorbed {
			break
		}
	}

	result := append(pending, merged)
	sortRanges(result)
	return RangeCalendar{Ranges: result}, nil
}

// RemoveRange returns a new calendar without the range at index. Removal is
// positional and never blocked by the entry's content, so corrupted stored
// entries stay deletable. Neighbours are not re-coalesced: they were already
// non-adjacent by the calendar invariant.
func (c RangeCalendar) RemoveRange(index int) (RangeCalendar, error) {
	if index < 0 || index >= len(c.Ranges) {
		return RangeCalendar{}, fmt.Errorf("%w: index %d of %d", ErrRangeNotFound, index, len(c.Ranges))
	}
	result := make([]DateRange, 0, len(c.Ranges)-1)
	result = append(result, c.Ranges[:index]...)
	result = append(result, c.Ranges[index+1:]...)
	return RangeCalendar{Ranges: result}, nil
}

// ContainsDay reports whether the date falls into any valid stored range.
// Corrupted entries contribute nothing to the day-set.
func (c RangeCalendar) ContainsDay(date time.Time) bool {
	for _, r := range c.Ranges {
		if r.ContainsDay(date) {
			return true
		}
	}
	return false
}

// ValidRanges returns only the well-formed stored ranges.
func (c RangeCalendar) ValidRanges() []DateRange {
	valid := make([]DateRange, 0, len(c.Ranges))
	for _, r := range c.Ranges {
		if r.Valid() {
			valid = append(valid, r)
		}
	}
	return valid
}

// Validate проверяет инвариант календаря: валидные диапазоны попарно
// не пересекаются и не соприкасаются
func (c RangeCalendar) Validate() error {
	valid := c.ValidRanges()
	for i := 0; i < len(valid); i++ {
		for j := i + 1; j < len(valid); j++ {
			if valid[i].Overlaps(valid[j]) || valid[i].AdjacentTo(valid[j]) {
				return fmt.Errorf("%w: ranges %s and %s must be merged",
					ErrDuplicateRange, valid[i], valid[j])
			}
		}
	}
	return nil
}

// sortRanges сортирует диапазоны по началу для детерминированной итерации
// Невалидные (нулевые) записи оказываются в начале списка
func sortRanges(ranges []DateRange) {
	sort.SliceStable(ranges, func(i, j int) bool {
		return ranges[i].Start.Before(ranges[j].Start)
	})
}
