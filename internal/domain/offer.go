package domain

import "time"

// OfferStatus represents the lifecycle state of an offer
type OfferStatus string

const (
	OfferDraft     OfferStatus = "draft"
	OfferPublished OfferStatus = "published"
	OfferArchived  OfferStatus = "archived"
)

// Offer is the scheduling view of a promotional offer ("Blane").
// Pricing, media and ownership live outside this service; only the fields
// governing when and how many reservations the offer accepts are modeled.
type Offer struct {
	ID          int64
	Title       string
	Mode        OfferMode
	ActiveFrom  time.Time
	ActiveUntil time.Time
	Calendar    Calendar
	Capacity    CapacityPolicy
	Status      OfferStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Bounds returns the offer's overall validity window as an inclusive range.
// All availability must lie within this window.
func (o *Offer) Bounds() DateRange {
	return DateRange{Start: Day(o.ActiveFrom), End: Day(o.ActiveUntil)}
}

// IsPublished returns true once the offer is visible to the storefront
func (o *Offer) IsPublished() bool {
	return o.Status == OfferPublished
}

// IsArchived returns true when the offer no longer accepts bookings
func (o *Offer) IsArchived() bool {
	return o.Status == OfferArchived
}

// SlotCalendar returns the slot-mode calendar, or false for range mode.
func (o *Offer) SlotCalendar() (SlotCalendar, bool) {
	c, ok := o.Calendar.(SlotCalendar)
	return c, ok
}

// RangeCalendar returns the range-mode calendar, or false for slot mode.
func (o *Offer) RangeCalendar() (RangeCalendar, bool) {
	c, ok := o.Calendar.(RangeCalendar)
	return c, ok
}
