package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Blane-SchedulingService/internal/domain"
	offerRepo "github.com/m04kA/Blane-SchedulingService/internal/infra/storage/offer"
)

// UseCase use case для создания бронирования
//
// Машина состояний одной попытки:
// Received -> Validated (дата/время против календаря) -> CapacityChecked
// (счётчики леджера против политики ёмкости) -> Admitted | Rejected.
// Проверка и резервирование выполняются в одной сериализуемой транзакции,
// а сам инкремент счётчика условный, поэтому два конкурентных запроса
// не могут вместе превысить потолок
type UseCase struct {
	offerRepo    OfferRepository
	bookingRepo  BookingRepository
	ledger       Ledger
	txManager    TransactionManager
	timeProvider TimeProvider
	observer     DecisionObserver
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// observer может быть nil, если метрики отключены
func NewUseCase(
	offerRepo OfferRepository,
	bookingRepo BookingRepository,
	ledger Ledger,
	txManager TransactionManager,
	observer DecisionObserver,
	logger Logger,
) *UseCase {
	return &UseCase{
		offerRepo:    offerRepo,
		bookingRepo:  bookingRepo,
		ledger:       ledger,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		observer:     observer,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: offer=%d, user=%d, date=%s, time=%v, quantity=%d",
		req.OfferID, req.UserID, req.Date.Format(domain.DateFormat), req.StartTime, req.Quantity)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и проверяем, что дата не в прошлом
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	var result *domain.Booking

	// 3. Проверка и резервирование в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем оффер (строка блокируется внутри транзакции)
		offer, err := uc.offerRepo.GetByID(txCtx, req.OfferID)
		if err != nil {
			if errors.Is(err, offerRepo.ErrOfferNotFound) {
				uc.logger.Warn("CreateBooking: offer id=%d not found", req.OfferID)
				return ErrOfferNotFound
			}
			uc.logger.Error("CreateBooking: failed to get offer id=%d: %v", req.OfferID, err)
			return fmt.Errorf("%w: failed to get offer: %v", ErrInternal, err)
		}

		if offer.IsArchived() {
			uc.logger.Warn("CreateBooking: offer id=%d is archived", req.OfferID)
			return ErrOfferInactive
		}

		// 3.2. Received -> Validated: дата/время против календаря
		unit, err := resolveUnit(offer, req.Date, req)
		if err != nil {
			uc.logger.Warn("CreateBooking: unit validation failed for offer=%d: %v", req.OfferID, err)
			return err
		}

		// 3.3. Validated -> CapacityChecked: живые счётчики из леджера
		counts, err := uc.fetchCounts(txCtx, req.OfferID, unit)
		if err != nil {
			return err
		}

		decision := offer.Capacity.Admits(req.Quantity, counts)
		if !decision.Admitted {
			uc.logger.Warn("CreateBooking: rejected offer=%d, reason=%s, counts=%+v",
				req.OfferID, decision.Reason, counts)
			return rejectionError(decision.Reason)
		}

		// 3.4. CapacityChecked -> Admitted: условный инкремент каждого scope
		// Любой отказ откатывает транзакцию целиком - частичного резерва не бывает
		if err := uc.reserve(txCtx, offer, unit, req.Quantity); err != nil {
			return err
		}

		// 3.5. Создаем запись бронирования
		booking := &domain.Booking{
			OfferID:   req.OfferID,
			UserID:    req.UserID,
			Date:      domain.Day(req.Date),
			StartTime: req.StartTime,
			Quantity:  req.Quantity,
			Persons:   offer.Capacity.PersonsFor(req.Quantity),
			Status:    domain.StatusConfirmed,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	uc.observeDecision(err)

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: admitted booking id=%d for offer=%d", result.ID, req.OfferID)

	return &Response{
		ID:        result.ID,
		OfferID:   result.OfferID,
		UserID:    result.UserID,
		Date:      result.Date,
		StartTime: result.StartTime,
		Quantity:  result.Quantity,
		Persons:   result.Persons,
		Status:    string(result.Status),
		CreatedAt: result.CreatedAt,
	}, nil
}

// fetchCounts собирает занятые единицы по всем трём scope
func (uc *UseCase) fetchCounts(ctx context.Context, offerID int64, unit bookingUnit) (domain.UsageCounts, error) {
	var counts domain.UsageCounts

	total, err := uc.ledger.CountReserved(ctx, offerID, domain.ScopeTotal, domain.TotalUnitKey)
	if err != nil {
		uc.logger.Error("CreateBooking: ledger count total failed: %v", err)
		return counts, err
	}
	counts.Total = total

	slotOrDay, err := uc.ledger.CountReserved(ctx, offerID, domain.ScopeSlotOrDay, unit.slotOrDayKey)
	if err != nil {
		uc.logger.Error("CreateBooking: ledger count slot failed: %v", err)
		return counts, err
	}
	counts.SlotOrDay = slotOrDay

	day, err := uc.ledger.CountReserved(ctx, offerID, domain.ScopeCalendarDay, unit.dayKey)
	if err != nil {
		uc.logger.Error("CreateBooking: ledger count day failed: %v", err)
		return counts, err
	}
	counts.CalendarDay = day

	return counts, nil
}

// reserve выполняет условный инкремент по каждому scope в фиксированном порядке
func (uc *UseCase) reserve(ctx context.Context, offer *domain.Offer, unit bookingUnit, quantity int) error {
	reservations := []struct {
		scope   domain.CapacityScope
		unitKey string
		failure error
	}{
		{domain.ScopeTotal, domain.TotalUnitKey, ErrTotalExceeded},
		{domain.ScopeSlotOrDay, unit.slotOrDayKey, ErrSlotExceeded},
		{domain.ScopeCalendarDay, unit.dayKey, ErrDailyExceeded},
	}

	for _, res := range reservations {
		ok, err := uc.ledger.TryReserve(ctx, offer.ID,
			res.scope, res.unitKey,
			offer.Capacity.UnitsFor(res.scope, quantity),
			offer.Capacity.Ceiling(res.scope),
		)
		if err != nil {
			uc.logger.Error("CreateBooking: ledger reserve %s failed: %v", res.scope, err)
			return err
		}
		if uc.observer != nil {
			uc.observer.ObserveReserve(string(res.scope), ok)
		}
		if !ok {
			uc.logger.Warn("CreateBooking: reservation refused at scope=%s, offer=%d", res.scope, offer.ID)
			return res.failure
		}
	}

	return nil
}

// observeDecision учитывает исход попытки в метриках
func (uc *UseCase) observeDecision(err error) {
	if uc.observer == nil {
		return
	}

	switch {
	case err == nil:
		uc.observer.ObserveDecision(true, "")
	case errors.Is(err, ErrNotAvailable):
		uc.observer.ObserveDecision(false, string(domain.ReasonNotAvailable))
	case errors.Is(err, ErrQuantityInvalid):
		uc.observer.ObserveDecision(false, string(domain.ReasonQuantityInvalid))
	case errors.Is(err, ErrTotalExceeded):
		uc.observer.ObserveDecision(false, string(domain.ReasonTotalExceeded))
	case errors.Is(err, ErrSlotExceeded):
		uc.observer.ObserveDecision(false, string(domain.ReasonSlotExceeded))
	case errors.Is(err, ErrDailyExceeded):
		uc.observer.ObserveDecision(false, string(domain.ReasonDailyExceeded))
	}
}
