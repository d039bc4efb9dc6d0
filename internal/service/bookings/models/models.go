package models

import (
	"time"

	"github.com/m04kA/Blane-SchedulingService/internal/domain"
	"github.com/m04kA/Blane-SchedulingService/pkg/ptr"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason,omitempty"`
	AsAdmin            bool   `json:"-"` // заполняется из заголовков на уровне API
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                 int64   `json:"id"`
	OfferID            int64   `json:"offerId"`
	UserID             int64   `json:"userId"`
	Date               string  `json:"date"`
	StartTime          *string `json:"startTime,omitempty"`
	Quantity           int     `json:"quantity"`
	Persons            int     `json:"persons"`
	Status             string  `json:"status"`
	CancellationReason string  `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CreatedAt          string  `json:"createdAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBooking конвертирует доменное бронирование в ответ API
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:        b.ID,
		OfferID:   b.OfferID,
		UserID:    b.UserID,
		Date:      b.Date.Format(domain.DateFormat),
		Quantity:  b.Quantity,
		Persons:   b.Persons,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}

	if b.StartTime != nil {
		resp.StartTime = ptr.Ptr(b.StartTime.String())
	}
	if b.IsCancelled() {
		if b.CancellationReason != nil {
			resp.CancellationReason = *b.CancellationReason
		}
		if b.CancelledAt != nil {
			resp.CancelledAt = ptr.Ptr(b.CancelledAt.Format(time.RFC3339))
		}
	}

	return resp
}

// FromDomainBookingList конвертирует список доменных бронирований в ответ API
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	items := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, *FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: items, Total: len(items)}
}
