package schedule

import (
	"context"
	"fmt"

	"github.com/m04kA/Blane-SchedulingService/internal/domain"
	"github.com/m04kA/Blane-SchedulingService/pkg/types"
)

// Defaults дефолтное недельное расписание для слотовых офферов
// Используется как стартовый календарь, пока оффер его не переопределил
type Defaults struct {
	Weekdays            domain.WeekdaySet
	DailyStart          types.TimeString
	DailyEnd            types.TimeString
	SlotIntervalMinutes int
}

// Session сессия редактирования расписания одного оффера.
// Все правки накапливаются в черновике в памяти; в БД попадает
// только валидное состояние целиком при Commit
type Session struct {
	original *domain.Offer
	draft    domain.Offer
	dirty    bool
}

// NewSession открывает сессию редактирования поверх снимка оффера.
// Слотовый оффер без календаря получает календарь из дефолтов
func NewSession(offer *domain.Offer, defaults Defaults) *Session {
	draft := *offer

	if draft.Mode == domain.ModeSlot {
		if _, ok := draft.SlotCalendar(); !ok {
			draft.Calendar = domain.SlotCalendar{
				Weekdays:            defaults.Weekdays,
				DailyStart:          defaults.DailyStart,
				DailyEnd:            defaults.DailyEnd,
				SlotIntervalMinutes: defaults.SlotIntervalMinutes,
			}
		}
	} else {
		if _, ok := draft.RangeCalendar(); !ok {
			draft.Calendar = domain.RangeCalendar{}
		}
	}

	return &Session{original: offer, draft: draft}
}

// Offer возвращает текущее состояние черновика
func (s *Session) Offer() *domain.Offer {
	draft := s.draft
	return &draft
}

// Changed сообщает, были ли правки с момента открытия сессии
func (s *Session) Changed() bool {
	return s.dirty
}

// AddRange добавляет диапазон дат (только range-режим).
// Диапазон парсится из строк, проверяется по окну действия оффера
// и сливается с пересекающимися и смежными диапазонами
func (s *Session) AddRange(startDate, endDate string) error {
	cal, ok := s.draft.RangeCalendar()
	if !ok {
		return fmt.Errorf("%w: offer is in slot mode", ErrModeMismatch)
	}

	candidate, err := domain.ParseDateRange(startDate, endDate)
	if err != nil {
		return err
	}

	updated, err := cal.AddRange(candidate, s.draft.Bounds())
	if err != nil {
		return err
	}

	s.draft.Calendar = updated
	s.dirty = true
	return nil
}

// RemoveRange удаляет диапазон по позиции (только range-режим)
func (s *Session) RemoveRange(index int) error {
	cal, ok := s.draft.RangeCalendar()
	if !ok {
		return fmt.Errorf("%w: offer is in slot mode", ErrModeMismatch)
	}

	updated, err := cal.RemoveRange(index)
	if err != nil {
		return err
	}

	s.draft.Calendar = updated
	s.dirty = true
	return nil
}

// ToggleWeekday переключает день недели (только slot-режим).
// Снять последний рабочий день нельзя
func (s *Session) ToggleWeekday(name string) error {
	cal, ok := s.draft.SlotCalendar()
	if !ok {
		return fmt.Errorf("%w: offer is in range mode", ErrModeMismatch)
	}

	day, err := domain.ParseWeekday(name)
	if err != nil {
		return err
	}

	toggled := cal.Weekdays.Toggle(day)
	if toggled.IsEmpty() {
		return domain.ErrEmptyWeekdays
	}

	cal.Weekdays = toggled
	s.draft.Calendar = cal
	s.dirty = true
	return nil
}

// SetDailyWindow задает дневное окно работы (только slot-режим)
func (s *Session) SetDailyWindow(start, end string) error {
	cal, ok := s.draft.SlotCalendar()
	if !ok {
		return fmt.Errorf("%w: offer is in range mode", ErrModeMismatch)
	}

	startTS, err := types.NewTimeStringFromString(start)
	if err != nil {
		return fmt.Errorf("%w: dailyStart: %v", domain.ErrInvalidDailyWindow, err)
	}
	endTS, err := types.NewTimeStringFromString(end)
	if err != nil {
		return fmt.Errorf("%w: dailyEnd: %v", domain.ErrInvalidDailyWindow, err)
	}
	if !startTS.IsBefore(endTS) {
		return fmt.Errorf("%w: %s >= %s", domain.ErrInvalidDailyWindow, start, end)
	}

	cal.DailyStart = startTS
	cal.DailyEnd = endTS
	s.draft.Calendar = cal
	s.dirty = true
	return nil
}

// SetSlotInterval задает длительность слота в минутах (только slot-режим)
func (s *Session) SetSlotInterval(minutes int) error {
	cal, ok := s.draft.SlotCalendar()
	if !ok {
		return fmt.Errorf("%w: offer is in range mode", ErrModeMismatch)
	}
	if minutes < domain.MinSlotIntervalMinutes || minutes > domain.MaxSlotIntervalMinutes {
		return fmt.Errorf("%w: %d minutes", domain.ErrInvalidSlotInterval, minutes)
	}

	cal.SlotIntervalMinutes = minutes
	s.draft.Calendar = cal
	s.dirty = true
	return nil
}

// SetCeiling задает потолок ёмкости для скоупа; 0 снимает ограничение
func (s *Session) SetCeiling(scope domain.CapacityScope, value int) error {
	policy := s.draft.Capacity

	switch scope {
	case domain.ScopeTotal:
		policy.MaxTotalBookings = value
	case domain.ScopeSlotOrDay:
		policy.MaxPerSlotOrDay = value
	case domain.ScopeCalendarDay:
		policy.MaxPerCalendarDay = value
	default:
		return fmt.Errorf("%w: unknown capacity scope %q", ErrInvalidInput, scope)
	}

	if err := policy.Validate(); err != nil {
		return err
	}

	s.draft.Capacity = policy
	s.dirty = true
	return nil
}

// SetPersonsMultiplier задает множитель человек на бронирование
func (s *Session) SetPersonsMultiplier(value int) error {
	policy := s.draft.Capacity
	policy.PersonsMultiplier = value

	if err := policy.Validate(); err != nil {
		return err
	}

	s.draft.Capacity = policy
	s.dirty = true
	return nil
}

// Commit сохраняет черновик через репозиторий.
// Без правок коммит не трогает БД и возвращает исходный снимок
func (s *Session) Commit(ctx context.Context, repo OfferRepository) (*domain.Offer, error) {
	if !s.dirty {
		return s.original, nil
	}

	switch cal := s.draft.Calendar.(type) {
	case domain.SlotCalendar:
		if err := cal.Validate(); err != nil {
			return nil, err
		}
	case domain.RangeCalendar:
		if err := cal.Validate(); err != nil {
			return nil, err
		}
	}
	if err := s.draft.Capacity.Validate(); err != nil {
		return nil, err
	}

	if err := repo.Update(ctx, &s.draft); err != nil {
		return nil, err
	}

	committed := s.draft
	return &committed, nil
}
