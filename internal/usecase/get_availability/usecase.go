package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Blane-SchedulingService/internal/domain"
	offerRepo "github.com/m04kA/Blane-SchedulingService/internal/infra/storage/offer"
)

// UseCase use case получения доступности оффера на дату
// Использует те же счётчики и потолки, что и создание бронирования,
// поэтому витрина не показывает единиц, которые допуск бы отклонил
type UseCase struct {
	offerRepo    OfferRepository
	ledger       Ledger
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(offerRepo OfferRepository, ledger Ledger, logger Logger) *UseCase {
	return &UseCase{
		offerRepo:    offerRepo,
		ledger:       ledger,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: offer=%d, date=%s",
		req.OfferID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.OfferID <= 0 {
		return nil, fmt.Errorf("%w: offerID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Получаем оффер
	offer, err := uc.offerRepo.GetByID(ctx, req.OfferID)
	if err != nil {
		if errors.Is(err, offerRepo.ErrOfferNotFound) {
			uc.logger.Warn("GetAvailability: offer id=%d not found", req.OfferID)
			return nil, ErrOfferNotFound
		}
		uc.logger.Error("GetAvailability: failed to get offer id=%d: %v", req.OfferID, err)
		return nil, fmt.Errorf("%w: failed to get offer: %v", ErrInternal, err)
	}

	response := &Response{
		OfferID: req.OfferID,
		Date:    domain.Day(req.Date),
		Mode:    offer.Mode,
		Units:   []Unit{},
	}

	// 3. Прошедшие даты и архивные офферы не бронируются - пустой список
	now := uc.timeProvider.Now()
	if domain.Day(req.Date).Before(domain.Day(now)) || offer.IsArchived() {
		return response, nil
	}

	// 4. Перечисляем бронируемые единицы на дату
	switch cal := offer.Calendar.(type) {
	case domain.SlotCalendar:
		units, err := uc.slotUnits(ctx, offer, cal, response.Date)
		if err != nil {
			return nil, err
		}
		response.Units = units

	case domain.RangeCalendar:
		if !cal.ContainsDay(response.Date) {
			return response, nil
		}
		unit, err := uc.dayUnit(ctx, offer, response.Date)
		if err != nil {
			return nil, err
		}
		response.Units = []Unit{unit}

	default:
		return nil, fmt.Errorf("%w: unsupported calendar type %T", ErrInternal, offer.Calendar)
	}

	uc.logger.Info("GetAvailability: offer=%d, date=%s, units=%d",
		req.OfferID, response.Date.Format(domain.DateFormat), len(response.Units))

	return response, nil
}

// slotUnits строит единицы для всех слотов дня с учётом остатка квоты
func (uc *UseCase) slotUnits(ctx context.Context, offer *domain.Offer, cal domain.SlotCalendar, date time.Time) ([]Unit, error) {
	slots := cal.SlotsForDate(date, offer.Bounds())
	if len(slots) == 0 {
		return []Unit{}, nil
	}

	total, err := uc.countReserved(ctx, offer.ID, domain.ScopeTotal, domain.TotalUnitKey)
	if err != nil {
		return nil, err
	}
	dayCount, err := uc.countReserved(ctx, offer.ID, domain.ScopeCalendarDay, domain.DayUnitKey(date))
	if err != nil {
		return nil, err
	}

	units := make([]Unit, 0, len(slots))
	for _, slot := range slots {
		slotKey := domain.SlotUnitKey(date, slot.StartTime)

		slotCount, err := uc.countReserved(ctx, offer.ID, domain.ScopeSlotOrDay, slotKey)
		if err != nil {
			return nil, err
		}

		counts := domain.UsageCounts{Total: total, SlotOrDay: slotCount, CalendarDay: dayCount}
		remaining, bounded := remainingBookings(offer.Capacity, counts)

		start := slot.StartTime
		units = append(units, Unit{
			UnitKey:         slotKey,
			StartTime:       &start,
			DurationMinutes: slot.DurationMinutes,
			Remaining:       remaining,
			Unlimited:       !bounded,
		})
	}

	return units, nil
}

// dayUnit строит единицу календарного дня для range-режима
func (uc *UseCase) dayUnit(ctx context.Context, offer *domain.Offer, date time.Time) (Unit, error) {
	dayKey := domain.DayUnitKey(date)

	total, err := uc.countReserved(ctx, offer.ID, domain.ScopeTotal, domain.TotalUnitKey)
	if err != nil {
		return Unit{}, err
	}
	dayCount, err := uc.countReserved(ctx, offer.ID, domain.ScopeSlotOrDay, dayKey)
	if err != nil {
		return Unit{}, err
	}
	calDayCount, err := uc.countReserved(ctx, offer.ID, domain.ScopeCalendarDay, dayKey)
	if err != nil {
		return Unit{}, err
	}

	counts := domain.UsageCounts{Total: total, SlotOrDay: dayCount, CalendarDay: calDayCount}
	remaining, bounded := remainingBookings(offer.Capacity, counts)

	return Unit{
		UnitKey:   dayKey,
		Remaining: remaining,
		Unlimited: !bounded,
	}, nil
}

// countReserved обёртка над леджером с единообразным логированием
func (uc *UseCase) countReserved(ctx context.Context, offerID int64, scope domain.CapacityScope, unitKey string) (int, error) {
	count, err := uc.ledger.CountReserved(ctx, offerID, scope, unitKey)
	if err != nil {
		uc.logger.Error("GetAvailability: ledger count %s failed for offer=%d: %v", scope, offerID, err)
		return 0, err
	}
	return count, nil
}
