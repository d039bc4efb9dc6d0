package schedule

import "errors"

var (
	// ErrOfferNotFound возвращается, когда оффер не найден
	ErrOfferNotFound = errors.New("schedule: offer not found")

	// ErrOfferArchived возвращается при попытке редактировать архивный оффер
	ErrOfferArchived = errors.New("schedule: offer is archived")

	// ErrModeMismatch возвращается, когда операция не подходит режиму оффера
	ErrModeMismatch = errors.New("schedule: operation does not match offer mode")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule: internal error")
)
