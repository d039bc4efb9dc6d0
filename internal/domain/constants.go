package domain

// Default values for a freshly authored offer schedule
const (
	DefaultSlotIntervalMinutes = 30
	DefaultPersonsMultiplier   = 1
)

// Business validation constants
const (
	MinSlotIntervalMinutes = 5
	MaxSlotIntervalMinutes = 480 // 8 hours

	MinBookingQuantity = 1
	MaxBookingQuantity = 100

	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов неактивных бронирований
// Неактивные бронирования не занимают ёмкость в счётчиках
var InactiveStatuses = []BookingStatus{
	StatusCancelledByUser,
	StatusCancelledByAdmin,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusConfirmed,
}
