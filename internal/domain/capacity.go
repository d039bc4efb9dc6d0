package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCeiling возвращается при отрицательном или слишком большом потолке
	ErrInvalidCeiling = errors.New("domain: invalid capacity ceiling")

	// ErrCeilingOrder возвращается, когда потолок на слот превышает дневной потолок
	ErrCeilingOrder = errors.New("domain: per-slot ceiling exceeds per-day ceiling")
)

// CapacityScope identifies which ceiling a count or reservation applies to.
type CapacityScope string

const (
	// ScopeTotal - lifetime ceiling across the whole offer
	ScopeTotal CapacityScope = "total"
	// ScopeSlotOrDay - ceiling per slot (slot mode) or per calendar day (range mode)
	ScopeSlotOrDay CapacityScope = "slot_or_day"
	// ScopeCalendarDay - independent daily ceiling for offers with several slots per day
	ScopeCalendarDay CapacityScope = "day"
)

// RejectReason explains why a booking request was not admitted.
type RejectReason string

const (
	ReasonQuantityInvalid RejectReason = "quantity_invalid"
	ReasonTotalExceeded   RejectReason = "total_exceeded"
	ReasonSlotExceeded    RejectReason = "slot_exceeded"
	ReasonDailyExceeded   RejectReason = "daily_exceeded"
	ReasonNotAvailable    RejectReason = "not_available"
)

// Decision is the outcome of a capacity check: admitted, or rejected with
// the first violated reason. Rejection is an expected business outcome,
// not a system fault.
type Decision struct {
	Admitted bool
	Reason   RejectReason
}

// Admit возвращает положительное решение
func Admit() Decision {
	return Decision{Admitted: true}
}

// Reject возвращает отрицательное решение с причиной
func Reject(reason RejectReason) Decision {
	return Decision{Admitted: false, Reason: reason}
}

// PersonScopes marks which ceilings are denominated in persons rather than
// booking counts. A person-denominated scope consumes
// quantity * PersonsMultiplier units per booking; the rest consume raw
// quantity. Which scopes are person-denominated is configuration, not a
// fixed rule.
type PersonScopes struct {
	Total       bool
	SlotOrDay   bool
	CalendarDay bool
}

// UsageCounts holds the already-consumed units per scope, as reported by the
// booking ledger. The policy itself never fetches counts.
type UsageCounts struct {
	Total       int
	SlotOrDay   int
	CalendarDay int
}

// CapacityPolicy holds the quota rules of one offer.
// A ceiling of 0 means the scope is unbounded.
type CapacityPolicy struct {
	MaxTotalBookings  int
	MaxPerSlotOrDay   int
	MaxPerCalendarDay int
	PersonsMultiplier int
	PersonScopes      PersonScopes
}

// Validate проверяет инварианты политики ёмкости
func (p CapacityPolicy) Validate() error {
	for _, ceiling := range []int{p.MaxTotalBookings, p.MaxPerSlotOrDay, p.MaxPerCalendarDay} {
		if ceiling < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidCeiling, ceiling)
		}
	}
	if p.PersonsMultiplier < 0 {
		return fmt.Errorf("%w: persons multiplier %d", ErrInvalidCeiling, p.PersonsMultiplier)
	}
	if p.MaxPerSlotOrDay > 0 && p.MaxPerCalendarDay > 0 && p.MaxPerSlotOrDay > p.MaxPerCalendarDay {
		return fmt.Errorf("%w: %d > %d", ErrCeilingOrder, p.MaxPerSlotOrDay, p.MaxPerCalendarDay)
	}
	return nil
}

// Ceiling returns the configured ceiling for the scope; 0 means unbounded.
func (p CapacityPolicy) Ceiling(scope CapacityScope) int {
	switch scope {
	case ScopeTotal:
		return p.MaxTotalBookings
	case ScopeSlotOrDay:
		return p.MaxPerSlotOrDay
	case ScopeCalendarDay:
		return p.MaxPerCalendarDay
	default:
		return 0
	}
}

// RemainingQuota returns the remaining units for the scope given the existing
// consumed count. The second value is false when the scope is unbounded;
// the remaining value is then meaningless. Never negative.
func (p CapacityPolicy) RemainingQuota(scope CapacityScope, existing int) (int, bool) {
	ceiling := p.Ceiling(scope)
	if ceiling == 0 {
		return 0, false
	}
	remaining := ceiling - existing
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// PersonsFor returns how many persons a booking of the given quantity brings,
// independently of which ceilings are person-denominated.
func (p CapacityPolicy) PersonsFor(quantity int) int {
	multiplier := p.PersonsMultiplier
	if multiplier <= 0 {
		multiplier = DefaultPersonsMultiplier
	}
	return quantity * multiplier
}

// UnitsFor converts a booking quantity into the units consumed against the
// scope's ceiling: persons for person-denominated scopes, bookings otherwise.
func (p CapacityPolicy) UnitsFor(scope CapacityScope, quantity int) int {
	personDenominated := false
	switch scope {
	case ScopeTotal:
		personDenominated = p.PersonScopes.Total
	case ScopeSlotOrDay:
		personDenominated = p.PersonScopes.SlotOrDay
	case ScopeCalendarDay:
		personDenominated = p.PersonScopes.CalendarDay
	}

	if personDenominated {
		return p.PersonsFor(quantity)
	}
	return quantity
}

// Admits decides whether a booking of the given quantity fits within the
// remaining quota. Checks run in fixed order - total, per-slot/day,
// per-calendar-day - and the first violated ceiling names the reason.
// All three must hold independently for an admission.
func (p CapacityPolicy) Admits(quantity int, counts UsageCounts) Decision {
	if quantity < MinBookingQuantity || quantity > MaxBookingQuantity {
		return Reject(ReasonQuantityInvalid)
	}

	checks := []struct {
		scope    CapacityScope
		existing int
		reason   RejectReason
	}{
		{ScopeTotal, counts.Total, ReasonTotalExceeded},
		{ScopeSlotOrDay, counts.SlotOrDay, ReasonSlotExceeded},
		{ScopeCalendarDay, counts.CalendarDay, ReasonDailyExceeded},
	}

	for _, check := range checks {
		remaining, bounded := p.RemainingQuota(check.scope, check.existing)
		if !bounded {
			continue
		}
		if p.UnitsFor(check.scope, quantity) > remaining {
			return Reject(check.reason)
		}
	}

	return Admit()
}
