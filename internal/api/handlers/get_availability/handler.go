package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/Blane-SchedulingService/internal/api/handlers"
	"github.com/m04kA/Blane-SchedulingService/internal/domain"
	getAvailability "github.com/m04kA/Blane-SchedulingService/internal/usecase/get_availability"
)

const (
	msgInvalidOfferID = "некорректный ID оффера"
	msgInvalidDate    = "некорректный параметр date, ожидается YYYY-MM-DD"
	msgOfferNotFound  = "оффер не найден"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/offers/{offerId}/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	offerID, err := strconv.ParseInt(vars["offerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /offers/{id}/availability - Invalid offer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOfferID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /offers/{id}/availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		OfferID: offerID,
		Date:    date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrOfferNotFound):
			h.logger.Warn("GET /offers/{id}/availability - Offer not found: offer_id=%d", offerID)
			handlers.RespondNotFound(w, msgOfferNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /offers/{id}/availability - Invalid input: offer_id=%d, error=%v", offerID, err)
			handlers.RespondBadRequest(w, msgInvalidOfferID)

		default:
			h.logger.Error("GET /offers/{id}/availability - Failed: offer_id=%d, error=%v", offerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /offers/{id}/availability - OK: offer_id=%d, date=%s, units=%d",
		offerID, r.URL.Query().Get("date"), len(result.Units))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
