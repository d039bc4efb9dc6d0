package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/Blane-SchedulingService/internal/api/handlers"
	"github.com/m04kA/Blane-SchedulingService/internal/api/middleware"
	createBooking "github.com/m04kA/Blane-SchedulingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgOfferNotFound      = "оффер не найден"
	msgOfferInactive      = "оффер не принимает бронирования"
	msgInvalidDate        = "некорректная дата бронирования"
	msgNotAvailable       = "выбранная дата или время недоступны"
	msgInvalidQuantity    = "некорректное количество"
	msgTotalExceeded      = "общий лимит бронирований оффера исчерпан"
	msgSlotExceeded       = "лимит бронирований на выбранное время исчерпан"
	msgDailyExceeded      = "дневной лимит бронирований исчерпан"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrOfferNotFound):
			h.logger.Warn("POST /bookings - Offer not found: offer_id=%d", req.OfferID)
			handlers.RespondNotFound(w, msgOfferNotFound)

		case errors.Is(err, createBooking.ErrOfferInactive):
			h.logger.Warn("POST /bookings - Offer inactive: offer_id=%d", req.OfferID)
			handlers.RespondError(w, http.StatusConflict, msgOfferInactive)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: offer_id=%d, user_id=%d", req.OfferID, userID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrNotAvailable):
			h.logger.Warn("POST /bookings - Not available: offer_id=%d, user_id=%d", req.OfferID, userID)
			handlers.RespondError(w, http.StatusConflict, msgNotAvailable)

		case errors.Is(err, createBooking.ErrQuantityInvalid):
			h.logger.Warn("POST /bookings - Invalid quantity: offer_id=%d, quantity=%d", req.OfferID, req.Quantity)
			handlers.RespondBadRequest(w, msgInvalidQuantity)

		case errors.Is(err, createBooking.ErrTotalExceeded):
			h.logger.Warn("POST /bookings - Total limit exceeded: offer_id=%d", req.OfferID)
			handlers.RespondError(w, http.StatusConflict, msgTotalExceeded)

		case errors.Is(err, createBooking.ErrSlotExceeded):
			h.logger.Warn("POST /bookings - Slot limit exceeded: offer_id=%d", req.OfferID)
			handlers.RespondError(w, http.StatusConflict, msgSlotExceeded)

		case errors.Is(err, createBooking.ErrDailyExceeded):
			h.logger.Warn("POST /bookings - Daily limit exceeded: offer_id=%d", req.OfferID)
			handlers.RespondError(w, http.StatusConflict, msgDailyExceeded)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: offer_id=%d, error=%v", req.OfferID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: offer_id=%d, user_id=%d, error=%v",
				req.OfferID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, offer_id=%d, user_id=%d",
		result.ID, req.OfferID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
