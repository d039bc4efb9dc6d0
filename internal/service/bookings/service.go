package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Blane-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/Blane-SchedulingService/internal/infra/storage/booking"
	offerRepo "github.com/m04kA/Blane-SchedulingService/internal/infra/storage/offer"
	"github.com/m04kA/Blane-SchedulingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	offerRepo   OfferRepository
	ledger      Ledger
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	offerRepo OfferRepository,
	ledger Ledger,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		offerRepo:   offerRepo,
		ledger:      ledger,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только собственные бронирования
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
func (s *Service) GetUserBookings(ctx context.Context, userID int64) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d", userID)

	bookings, err := s.bookingRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), userID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование и освобождает занятую ёмкость.
// Пользователь может отменить только своё бронирование (cancelled_by_user),
// администратор - любое (cancelled_by_admin). Отмена и освобождение счётчиков
// выполняются в одной serializable-транзакции
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// 1. Получаем бронирование
		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// 2. Определяем статус отмены по инициатору
		cancelStatus := domain.StatusCancelledByAdmin
		if !req.AsAdmin {
			if booking.UserID != req.UserID {
				return ErrAccessDenied
			}
			cancelStatus = domain.StatusCancelledByUser
		}

		// 3. Проверяем, можно ли отменить бронирование
		if !booking.CanBeCancelled() {
			return ErrCannotCancel
		}

		// 4. Отменяем бронирование
		if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// 5. Освобождаем счётчики во всех скоупах
		return s.releaseCapacity(ctx, booking)
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrAccessDenied), errors.Is(err, ErrCannotCancel):
			s.logger.Warn("Cancel: booking id=%d: %v", bookingID, err)
			return err
		case errors.Is(err, ErrInternal):
			s.logger.Error("Cancel: booking id=%d: %v", bookingID, err)
			return err
		default:
			s.logger.Error("Cancel: transaction failed for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - transaction error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// releaseCapacity уменьшает счётчики леджера на объём отменённого бронирования.
// Объём на скоуп считается по текущей политике оффера; леджер не уходит
// ниже нуля, поэтому смена политики между бронированием и отменой безопасна
func (s *Service) releaseCapacity(ctx context.Context, booking *domain.Booking) error {
	offer, err := s.offerRepo.GetByID(ctx, booking.OfferID)
	if err != nil {
		if errors.Is(err, offerRepo.ErrOfferNotFound) {
			// Оффер удалён - счётчиков больше нет, освобождать нечего
			s.logger.Warn("Cancel: offer id=%d not found, skipping capacity release", booking.OfferID)
			return nil
		}
		return fmt.Errorf("%w: Cancel - failed to get offer: %v", ErrInternal, err)
	}

	releases := []struct {
		scope   domain.CapacityScope
		unitKey string
	}{
		{domain.ScopeTotal, domain.TotalUnitKey},
		{domain.ScopeSlotOrDay, booking.UnitKey()},
		{domain.ScopeCalendarDay, booking.DayKey()},
	}

	for _, rel := range releases {
		amount := offer.Capacity.UnitsFor(rel.scope, booking.Quantity)
		if amount <= 0 {
			continue
		}
		if err := s.ledger.Release(ctx, booking.OfferID, rel.scope, rel.unitKey, amount); err != nil {
			return fmt.Errorf("%w: Cancel - failed to release %s capacity: %v", ErrInternal, rel.scope, err)
		}
	}

	return nil
}
