package domain

import (
	"time"

	"github.com/m04kA/Blane-SchedulingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed        BookingStatus = "confirmed"
	StatusCancelledByUser  BookingStatus = "cancelled_by_user"
	StatusCancelledByAdmin BookingStatus = "cancelled_by_admin"
)

// Booking represents an admitted reservation against an offer.
// StartTime is set only for slot-mode offers.
type Booking struct {
	ID        int64
	OfferID   int64
	UserID    int64
	Date      time.Time
	StartTime *types.TimeString
	Quantity  int
	Persons   int
	Status    BookingStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still consumes capacity
func (b *Booking) IsActive() bool {
	for _, s := range ActiveStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	for _, s := range InactiveStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.IsActive()
}

// UnitKey returns the ledger key of the bookable unit this booking occupies:
// "date time" for slot mode, "date" for range mode.
func (b *Booking) UnitKey() string {
	if b.StartTime != nil {
		return SlotUnitKey(b.Date, *b.StartTime)
	}
	return DayUnitKey(b.Date)
}

// DayKey returns the calendar-day ledger key of the booking.
func (b *Booking) DayKey() string {
	return DayUnitKey(b.Date)
}

// SlotUnitKey строит ключ бронируемой единицы для слота
func SlotUnitKey(date time.Time, start types.TimeString) string {
	return date.Format(DateFormat) + " " + start.String()
}

// DayUnitKey строит ключ бронируемой единицы для календарного дня
func DayUnitKey(date time.Time) string {
	return date.Format(DateFormat)
}

// TotalUnitKey ключ для счётчика за весь срок действия оффера
const TotalUnitKey = ""
