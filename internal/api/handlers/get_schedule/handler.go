package get_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Blane-SchedulingService/internal/api/handlers"
	"github.com/m04kA/Blane-SchedulingService/internal/service/schedule"
)

const (
	msgInvalidOfferID = "некорректный ID оффера"
	msgOfferNotFound  = "оффер не найден"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/offers/{offerId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	offerID, err := strconv.ParseInt(vars["offerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /offers/{id}/schedule - Invalid offer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOfferID)
		return
	}

	result, err := h.service.GetSchedule(r.Context(), offerID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrOfferNotFound):
			h.logger.Warn("GET /offers/{id}/schedule - Offer not found: offer_id=%d", offerID)
			handlers.RespondNotFound(w, msgOfferNotFound)

		default:
			h.logger.Error("GET /offers/{id}/schedule - Failed: offer_id=%d, error=%v", offerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /offers/{id}/schedule - OK: offer_id=%d", offerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
