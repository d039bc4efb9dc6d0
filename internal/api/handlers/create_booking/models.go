package create_booking

import (
	"time"

	"github.com/m04kA/Blane-SchedulingService/internal/domain"
	createBooking "github.com/m04kA/Blane-SchedulingService/internal/usecase/create_booking"
	"github.com/m04kA/Blane-SchedulingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	OfferID   int64   `json:"offerId"`
	Date      string  `json:"date"`                // "2025-10-15"
	StartTime *string `json:"startTime,omitempty"` // "10:00", только slot-режим
	Quantity  int     `json:"quantity"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        int64   `json:"id"`
	OfferID   int64   `json:"offerId"`
	UserID    int64   `json:"userId"`
	Date      string  `json:"date"`
	StartTime *string `json:"startTime,omitempty"`
	Quantity  int     `json:"quantity"`
	Persons   int     `json:"persons"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	var startTime *types.TimeString
	if r.StartTime != nil {
		ts, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		startTime = &ts
	}

	return &createBooking.Request{
		OfferID:   r.OfferID,
		UserID:    userID,
		Date:      date,
		StartTime: startTime,
		Quantity:  r.Quantity,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:        resp.ID,
		OfferID:   resp.OfferID,
		UserID:    resp.UserID,
		Date:      resp.Date.Format(domain.DateFormat),
		Quantity:  resp.Quantity,
		Persons:   resp.Persons,
		Status:    resp.Status,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}

	if resp.StartTime != nil {
		st := resp.StartTime.String()
		out.StartTime = &st
	}

	return out
}
