package get_availability

import (
	"github.com/m04kA/Blane-SchedulingService/internal/domain"
	getAvailability "github.com/m04kA/Blane-SchedulingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	OfferID int64          `json:"offerId"`
	Date    string         `json:"date"`
	Mode    string         `json:"mode"`
	Units   []UnitResponse `json:"units"`
}

// UnitResponse одна бронируемая единица
type UnitResponse struct {
	UnitKey         string  `json:"unitKey"`
	StartTime       *string `json:"startTime,omitempty"`
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	Remaining       int     `json:"remaining"`
	Unlimited       bool    `json:"unlimited"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	units := make([]UnitResponse, 0, len(resp.Units))
	for _, u := range resp.Units {
		unit := UnitResponse{
			UnitKey:         u.UnitKey,
			DurationMinutes: u.DurationMinutes,
			Remaining:       u.Remaining,
			Unlimited:       u.Unlimited,
		}
		if u.StartTime != nil {
			st := u.StartTime.String()
			unit.StartTime = &st
		}
		units = append(units, unit)
	}

	return &AvailabilityResponse{
		OfferID: resp.OfferID,
		Date:    resp.Date.Format(domain.DateFormat),
		Mode:    string(resp.Mode),
		Units:   units,
	}
}
