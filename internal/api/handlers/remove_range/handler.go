package remove_range

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Blane-SchedulingService/internal/api/handlers"
	"github.com/m04kA/Blane-SchedulingService/internal/domain"
	"github.com/m04kA/Blane-SchedulingService/internal/service/schedule"
)

const (
	msgInvalidOfferID = "некорректный ID оффера"
	msgInvalidIndex   = "некорректный номер диапазона"
	msgOfferNotFound  = "оффер не найден"
	msgOfferArchived  = "оффер в архиве и не редактируется"
	msgRangeNotFound  = "диапазон с таким номером не найден"
	msgModeMismatch   = "оффер работает по слотам, а не по диапазонам дат"
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

// Handle DELETE /api/v1/offers/{offerId}/availability/ranges/{index}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	offerID, err := strconv.ParseInt(vars["offerId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /offers/{id}/availability/ranges/{index} - Invalid offer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOfferID)
		return
	}

	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		h.logger.Warn("DELETE /offers/{id}/availability/ranges/{index} - Invalid index: %v", err)
		handlers.RespondBadRequest(w, msgInvalidIndex)
		return
	}

	result, err := h.service.RemoveRange(r.Context(), offerID, index)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrOfferNotFound):
			h.logger.Warn("DELETE /offers/{id}/availability/ranges/{index} - Offer not found: offer_id=%d", offerID)
			handlers.RespondNotFound(w, msgOfferNotFound)

		case errors.Is(err, schedule.ErrOfferArchived):
			h.logger.Warn("DELETE /offers/{id}/availability/ranges/{index} - Offer archived: offer_id=%d", offerID)
			handlers.RespondError(w, http.StatusConflict, msgOfferArchived)

		case errors.Is(err, schedule.ErrModeMismatch):
			h.logger.Warn("DELETE /offers/{id}/availability/ranges/{index} - Mode mismatch: offer_id=%d", offerID)
			handlers.RespondError(w, http.StatusConflict, msgModeMismatch)

		case errors.Is(err, domain.ErrRangeNotFound):
			h.logger.Warn("DELETE /offers/{id}/availability/ranges/{index} - Range not found: offer_id=%d, index=%d",
				offerID, index)
			handlers.RespondNotFound(w, msgRangeNotFound)

		default:
			h.logger.Error("DELETE /offers/{id}/availability/ranges/{index} - Failed: offer_id=%d, error=%v",
				offerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /offers/{id}/availability/ranges/{index} - Range removed: offer_id=%d, index=%d",
		offerID, index)
	handlers.RespondJSON(w, http.StatusOK, result)
}
