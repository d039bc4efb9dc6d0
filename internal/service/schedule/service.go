package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Blane-SchedulingService/internal/domain"
	offerRepo "github.com/m04kA/Blane-SchedulingService/internal/infra/storage/offer"
	"github.com/m04kA/Blane-SchedulingService/internal/service/schedule/models"
)

// Service сервис редактирования расписания офферов
type Service struct {
	offerRepo OfferRepository
	defaults  Defaults
	logger    Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(offerRepo OfferRepository, defaults Defaults, logger Logger) *Service {
	return &Service{
		offerRepo: offerRepo,
		defaults:  defaults,
		logger:    logger,
	}
}

// GetSchedule возвращает текущее расписание и политику ёмкости оффера
// Публичный метод - доступен всем
func (s *Service) GetSchedule(ctx context.Context, offerID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for offer=%d", offerID)

	offer, err := s.loadOffer(ctx, "GetSchedule", offerID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainOffer(offer), nil
}

// AddRange добавляет диапазон дат в календарь range-оффера
// Доступно только владельцу оффера (авторизация на уровне API)
func (s *Service) AddRange(ctx context.Context, offerID int64, req *models.AddRangeRequest) (*models.RangesResponse, error) {
	s.logger.Info("AddRange: offer=%d, range=[%s, %s]", offerID, req.StartDate, req.EndDate)

	offer, err := s.loadEditableOffer(ctx, "AddRange", offerID)
	if err != nil {
		return nil, err
	}

	session := NewSession(offer, s.defaults)
	if err := session.AddRange(req.StartDate, req.EndDate); err != nil {
		s.logger.Warn("AddRange: rejected for offer=%d: %v", offerID, err)
		return nil, err
	}

	updated, err := session.Commit(ctx, s.offerRepo)
	if err != nil {
		return nil, s.commitError("AddRange", offerID, err)
	}

	resp := models.RangesFromDomainOffer(updated)
	s.logger.Info("AddRange: offer=%d now has %d ranges", offerID, len(resp.Ranges))
	return resp, nil
}

// RemoveRange удаляет диапазон по позиции из календаря range-оффера
// Уже принятые бронирования при этом не отменяются
func (s *Service) RemoveRange(ctx context.Context, offerID int64, index int) (*models.RangesResponse, error) {
	s.logger.Info("RemoveRange: offer=%d, index=%d", offerID, index)

	offer, err := s.loadEditableOffer(ctx, "RemoveRange", offerID)
	if err != nil {
		return nil, err
	}

	session := NewSession(offer, s.defaults)
	if err := session.RemoveRange(index); err != nil {
		s.logger.Warn("RemoveRange: rejected for offer=%d index=%d: %v", offerID, index, err)
		return nil, err
	}

	updated, err := session.Commit(ctx, s.offerRepo)
	if err != nil {
		return nil, s.commitError("RemoveRange", offerID, err)
	}

	s.logger.Info("RemoveRange: successfully removed range %d from offer=%d", index, offerID)
	return models.RangesFromDomainOffer(updated), nil
}

// UpdateSchedule применяет пакет правок расписания и ёмкости
// Правки применяются в черновике; в БД попадает только валидное состояние
func (s *Service) UpdateSchedule(ctx context.Context, offerID int64, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: offer=%d", offerID)

	offer, err := s.loadEditableOffer(ctx, "UpdateSchedule", offerID)
	if err != nil {
		return nil, err
	}

	session := NewSession(offer, s.defaults)

	// 1. Переключения дней недели (slot-режим)
	for _, name := range req.ToggleWeekdays {
		if err := session.ToggleWeekday(name); err != nil {
			s.logger.Warn("UpdateSchedule: toggle %q rejected for offer=%d: %v", name, offerID, err)
			return nil, err
		}
	}

	// 2. Дневное окно: оба конца задаются вместе
	if req.DailyStart != nil || req.DailyEnd != nil {
		if req.DailyStart == nil || req.DailyEnd == nil {
			return nil, fmt.Errorf("%w: dailyStart and dailyEnd must be set together", ErrInvalidInput)
		}
		if err := session.SetDailyWindow(*req.DailyStart, *req.DailyEnd); err != nil {
			s.logger.Warn("UpdateSchedule: daily window rejected for offer=%d: %v", offerID, err)
			return nil, err
		}
	}

	// 3. Длительность слота
	if req.SlotIntervalMinutes != nil {
		if err := session.SetSlotInterval(*req.SlotIntervalMinutes); err != nil {
			s.logger.Warn("UpdateSchedule: slot interval rejected for offer=%d: %v", offerID, err)
			return nil, err
		}
	}

	// 4. Потолки ёмкости
	ceilings := []struct {
		scope domain.CapacityScope
		value *int
	}{
		{domain.ScopeTotal, req.MaxTotalBookings},
		{domain.ScopeSlotOrDay, req.MaxPerSlotOrDay},
		{domain.ScopeCalendarDay, req.MaxPerCalendarDay},
	}
	for _, c := range ceilings {
		if c.value == nil {
			continue
		}
		if err := session.SetCeiling(c.scope, *c.value); err != nil {
			s.logger.Warn("UpdateSchedule: ceiling %s rejected for offer=%d: %v", c.scope, offerID, err)
			return nil, err
		}
	}

	// 5. Множитель человек
	if req.PersonsMultiplier != nil {
		if err := session.SetPersonsMultiplier(*req.PersonsMultiplier); err != nil {
			s.logger.Warn("UpdateSchedule: persons multiplier rejected for offer=%d: %v", offerID, err)
			return nil, err
		}
	}

	updated, err := session.Commit(ctx, s.offerRepo)
	if err != nil {
		return nil, s.commitError("UpdateSchedule", offerID, err)
	}

	s.logger.Info("UpdateSchedule: successfully updated schedule for offer=%d", offerID)
	return models.FromDomainOffer(updated), nil
}

// Вспомогательные методы

func (s *Service) loadOffer(ctx context.Context, op string, offerID int64) (*domain.Offer, error) {
	offer, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, offerRepo.ErrOfferNotFound) {
			s.logger.Warn("%s: offer id=%d not found", op, offerID)
			return nil, ErrOfferNotFound
		}
		s.logger.Error("%s: repository error for offer id=%d: %v", op, offerID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return offer, nil
}

func (s *Service) loadEditableOffer(ctx context.Context, op string, offerID int64) (*domain.Offer, error) {
	offer, err := s.loadOffer(ctx, op, offerID)
	if err != nil {
		return nil, err
	}
	if offer.IsArchived() {
		s.logger.Warn("%s: offer id=%d is archived", op, offerID)
		return nil, ErrOfferArchived
	}
	return offer, nil
}

func (s *Service) commitError(op string, offerID int64, err error) error {
	if errors.Is(err, offerRepo.ErrOfferNotFound) {
		s.logger.Warn("%s: offer id=%d not found during commit", op, offerID)
		return ErrOfferNotFound
	}
	s.logger.Error("%s: failed to commit offer id=%d: %v", op, offerID, err)
	return fmt.Errorf("%w: %s - commit error: %v", ErrInternal, op, err)
}
