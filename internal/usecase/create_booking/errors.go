package create_booking

import "errors"

var (
	// ErrOfferNotFound возвращается, когда оффер не найден
	ErrOfferNotFound = errors.New("create_booking: offer not found")

	// ErrOfferInactive возвращается, когда оффер не принимает бронирования
	ErrOfferInactive = errors.New("create_booking: offer is not accepting bookings")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrNotAvailable возвращается, когда запрошенная дата/время не входит
	// в календарь доступности оффера
	ErrNotAvailable = errors.New("create_booking: requested date or time is not available")

	// ErrQuantityInvalid возвращается при недопустимом количестве в запросе
	ErrQuantityInvalid = errors.New("create_booking: invalid quantity")

	// ErrTotalExceeded возвращается при исчерпании общего лимита оффера
	ErrTotalExceeded = errors.New("create_booking: total booking limit exceeded")

	// ErrSlotExceeded возвращается при исчерпании лимита слота или дня
	ErrSlotExceeded = errors.New("create_booking: slot capacity exceeded")

	// ErrDailyExceeded возвращается при исчерпании дневного лимита
	ErrDailyExceeded = errors.New("create_booking: daily capacity exceeded")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
