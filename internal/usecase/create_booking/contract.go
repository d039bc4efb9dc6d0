package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/Blane-SchedulingService/internal/domain"
)

// OfferRepository интерфейс репозитория офферов
type OfferRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Offer, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// Ledger интерфейс леджера занятой ёмкости
// CountReserved и TryReserve вызываются внутри сериализуемой транзакции;
// TryReserve - атомарный условный инкремент счётчика
type Ledger interface {
	CountReserved(ctx context.Context, offerID int64, scope domain.CapacityScope, unitKey string) (int, error)
	TryReserve(ctx context.Context, offerID int64, scope domain.CapacityScope, unitKey string, amount, ceiling int) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// DecisionObserver интерфейс для учёта решений о допуске и попыток
// резервирования в леджере (метрики)
type DecisionObserver interface {
	ObserveDecision(admitted bool, reason string)
	ObserveReserve(scope string, reserved bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
