package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/Blane-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OfferID <= 0 {
		return fmt.Errorf("%w: offerID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// validateDate проверяет, что дата бронирования не в прошлом
func validateDate(bookingDate, now time.Time) error {
	if domain.Day(bookingDate).Before(domain.Day(now)) {
		return ErrInvalidDate
	}
	return nil
}

// resolveUnit проверяет запрошенную дату/время против календаря оффера
// и возвращает ключи бронируемой единицы для леджера.
//
// Slot-режим: дата должна попадать в рабочие дни недели и окно действия,
// а время - совпадать с началом одного из сгенерированных слотов.
// Range-режим: дата должна входить в один из сохранённых диапазонов.
func resolveUnit(offer *domain.Offer, date time.Time, req *Request) (bookingUnit, error) {
	switch cal := offer.Calendar.(type) {
	case domain.SlotCalendar:
		if req.StartTime == nil {
			return bookingUnit{}, fmt.Errorf("%w: startTime is required for slot offers", ErrInvalidInput)
		}

		slots := cal.SlotsForDate(date, offer.Bounds())
		for _, slot := range slots {
			if slot.Matches(*req.StartTime) {
				return bookingUnit{
					slotOrDayKey: domain.SlotUnitKey(date, *req.StartTime),
					dayKey:       domain.DayUnitKey(date),
				}, nil
			}
		}
		return bookingUnit{}, ErrNotAvailable

	case domain.RangeCalendar:
		if req.StartTime != nil {
			return bookingUnit{}, fmt.Errorf("%w: startTime is not allowed for range offers", ErrInvalidInput)
		}
		if !cal.ContainsDay(date) {
			return bookingUnit{}, ErrNotAvailable
		}
		dayKey := domain.DayUnitKey(date)
		return bookingUnit{slotOrDayKey: dayKey, dayKey: dayKey}, nil

	default:
		return bookingUnit{}, fmt.Errorf("%w: unsupported calendar type %T", ErrInternal, offer.Calendar)
	}
}

// rejectionError конвертирует причину отклонения в типизированную ошибку usecase
func rejectionError(reason domain.RejectReason) error {
	switch reason {
	case domain.ReasonQuantityInvalid:
		return ErrQuantityInvalid
	case domain.ReasonTotalExceeded:
		return ErrTotalExceeded
	case domain.ReasonSlotExceeded:
		return ErrSlotExceeded
	case domain.ReasonDailyExceeded:
		return ErrDailyExceeded
	case domain.ReasonNotAvailable:
		return ErrNotAvailable
	default:
		return fmt.Errorf("%w: unknown rejection reason %q", ErrInternal, reason)
	}
}
