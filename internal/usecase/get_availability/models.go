package get_availability

import (
	"time"

	"github.com/m04kA/Blane-SchedulingService/internal/domain"
	"github.com/m04kA/Blane-SchedulingService/pkg/types"
)

// Request модель запроса доступности на дату
type Request struct {
	OfferID int64     // ID оффера
	Date    time.Time // Дата, на которую запрашивается доступность
}

// Response модель ответа со списком бронируемых единиц
type Response struct {
	OfferID int64            // ID оффера
	Date    time.Time        // Дата запроса
	Mode    domain.OfferMode // Режим календаря оффера
	Units   []Unit           // Бронируемые единицы с остатком квоты
}

// Unit бронируемая единица: слот (slot-режим) или календарный день (range-режим)
// Remaining выражен в бронированиях: единица с Remaining > 0 гарантированно
// проходит проверку допуска на одно бронирование
type Unit struct {
	UnitKey         string            // Ключ единицы в леджере
	StartTime       *types.TimeString // Начало слота (только slot-режим)
	DurationMinutes int               // Длительность слота, 0 для range-режима
	Remaining       int               // Остаток квоты; 0 при Unlimited
	Unlimited       bool              // Ни один потолок не ограничивает единицу
}
