package ledger

import "errors"

var (
	// ErrLedgerUnavailable возвращается при инфраструктурном сбое леджера
	// Транзиентная ошибка: вызывающая сторона может повторить запрос,
	// отказ леджера никогда не интерпретируется как отклонение бронирования
	ErrLedgerUnavailable = errors.New("ledger.repository: ledger unavailable")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("ledger.repository: failed to build query")
)
