package create_booking

import (
	"time"

	"github.com/m04kA/Blane-SchedulingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	OfferID   int64             // ID оффера
	UserID    int64             // ID пользователя
	Date      time.Time         // Дата бронирования (без времени)
	StartTime *types.TimeString // Время начала слота; обязательно только для slot-режима
	Quantity  int               // Количество бронируемых единиц (>= 1)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64             // ID созданного бронирования
	OfferID   int64             // ID оффера
	UserID    int64             // ID пользователя
	Date      time.Time         // Дата бронирования
	StartTime *types.TimeString // Время начала (только slot-режим)
	Quantity  int               // Количество единиц
	Persons   int               // Количество персон (quantity * personsMultiplier)
	Status    string            // Статус бронирования

	CreatedAt time.Time // Время создания
}

// bookingUnit ключи бронируемой единицы в леджере
// slotKey пустой для range-режима
type bookingUnit struct {
	slotOrDayKey string
	dayKey       string
}
