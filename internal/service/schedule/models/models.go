package models

import (
	"github.com/m04kA/Blane-SchedulingService/internal/domain"
)

// Request модели

// AddRangeRequest запрос на добавление диапазона дат
type AddRangeRequest struct {
	StartDate string `json:"startDate"` // YYYY-MM-DD
	EndDate   string `json:"endDate"`   // YYYY-MM-DD
}

// UpdateScheduleRequest пакетное обновление расписания и ёмкости
// Все поля опциональны - применяются только переданные значения
type UpdateScheduleRequest struct {
	ToggleWeekdays      []string `json:"toggleWeekdays,omitempty"`
	DailyStart          *string  `json:"dailyStart,omitempty"`
	DailyEnd            *string  `json:"dailyEnd,omitempty"`
	SlotIntervalMinutes *int     `json:"slotIntervalMinutes,omitempty"`
	MaxTotalBookings    *int     `json:"maxTotalBookings,omitempty"`
	MaxPerSlotOrDay     *int     `json:"maxPerSlotOrDay,omitempty"`
	MaxPerCalendarDay   *int     `json:"maxPerCalendarDay,omitempty"`
	PersonsMultiplier   *int     `json:"personsMultiplier,omitempty"`
}

// Response модели

// DateRangeResponse один диапазон дат календаря
type DateRangeResponse struct {
	Index     int    `json:"index"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Days      int    `json:"days"`
}

// CapacityResponse политика ёмкости оффера
type CapacityResponse struct {
	MaxTotalBookings  int `json:"maxTotalBookings"`
	MaxPerSlotOrDay   int `json:"maxPerSlotOrDay"`
	MaxPerCalendarDay int `json:"maxPerCalendarDay"`
	PersonsMultiplier int `json:"personsMultiplier"`
}

// ScheduleResponse полное расписание оффера
type ScheduleResponse struct {
	OfferID             int64               `json:"offerId"`
	Mode                string              `json:"mode"`
	Status              string              `json:"status"`
	ActiveFrom          string              `json:"activeFrom"`
	ActiveUntil         string              `json:"activeUntil"`
	Weekdays            []string            `json:"weekdays,omitempty"`
	DailyStart          string              `json:"dailyStart,omitempty"`
	DailyEnd            string              `json:"dailyEnd,omitempty"`
	SlotIntervalMinutes int                 `json:"slotIntervalMinutes,omitempty"`
	Ranges              []DateRangeResponse `json:"ranges,omitempty"`
	Capacity            CapacityResponse    `json:"capacity"`
}

// RangesResponse список диапазонов после мутации
type RangesResponse struct {
	OfferID int64               `json:"offerId"`
	Ranges  []DateRangeResponse `json:"ranges"`
}

// FromDomainOffer конвертирует доменный оффер в ответ API
func FromDomainOffer(offer *domain.Offer) *ScheduleResponse {
	resp := &ScheduleResponse{
		OfferID:     offer.ID,
		Mode:        string(offer.Mode),
		Status:      string(offer.Status),
		ActiveFrom:  offer.ActiveFrom.Format(domain.DateFormat),
		ActiveUntil: offer.ActiveUntil.Format(domain.DateFormat),
		Capacity: CapacityResponse{
			MaxTotalBookings:  offer.Capacity.MaxTotalBookings,
			MaxPerSlotOrDay:   offer.Capacity.MaxPerSlotOrDay,
			MaxPerCalendarDay: offer.Capacity.MaxPerCalendarDay,
			PersonsMultiplier: offer.Capacity.PersonsMultiplier,
		},
	}

	switch cal := offer.Calendar.(type) {
	case domain.SlotCalendar:
		resp.Weekdays = cal.Weekdays.Strings()
		resp.DailyStart = cal.DailyStart.String()
		resp.DailyEnd = cal.DailyEnd.String()
		resp.SlotIntervalMinutes = cal.SlotIntervalMinutes
	case domain.RangeCalendar:
		resp.Ranges = rangesFromDomain(cal.Ranges)
	}

	return resp
}

// RangesFromDomainOffer конвертирует диапазоны оффера в ответ API
func RangesFromDomainOffer(offer *domain.Offer) *RangesResponse {
	resp := &RangesResponse{OfferID: offer.ID, Ranges: []DateRangeResponse{}}
	if cal, ok := offer.RangeCalendar(); ok {
		resp.Ranges = rangesFromDomain(cal.Ranges)
	}
	return resp
}

func rangesFromDomain(ranges []domain.DateRange) []DateRangeResponse {
	out := make([]DateRangeResponse, 0, len(ranges))
	for i, r := range ranges {
		item := DateRangeResponse{Index: i, Days: r.Days()}
		if !r.Start.IsZero() {
			item.StartDate = r.Start.Format(domain.DateFormat)
		}
		if !r.End.IsZero() {
			item.EndDate = r.End.Format(domain.DateFormat)
		}
		out = append(out, item)
	}
	return out
}
