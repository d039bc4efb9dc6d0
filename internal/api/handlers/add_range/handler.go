package add_range

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Blane-SchedulingService/internal/api/handlers"
	"github.com/m04kA/Blane-SchedulingService/internal/domain"
	"github.com/m04kA/Blane-SchedulingService/internal/service/schedule"
	"github.com/m04kA/Blane-SchedulingService/internal/service/schedule/models"
)

const (
	msgInvalidOfferID     = "некорректный ID оффера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgOfferNotFound      = "оффер не найден"
	msgOfferArchived      = "оффер в архиве и не редактируется"
	msgUnparseableRange   = "некорректный формат дат, ожидается YYYY-MM-DD"
	msgInvertedRange      = "дата конца диапазона раньше даты начала"
	msgDuplicateRange     = "такой диапазон уже есть в календаре"
	msgRangeOutOfBounds   = "диапазон выходит за окно действия оффера"
	msgModeMismatch       = "оффер работает по слотам, а не по диапазонам дат"
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

// Handle POST /api/v1/offers/{offerId}/availability/ranges
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	offerID, err := strconv.ParseInt(vars["offerId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /offers/{id}/availability/ranges - Invalid offer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOfferID)
		return
	}

	var req models.AddRangeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /offers/{id}/availability/ranges - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddRange(r.Context(), offerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrOfferNotFound):
			h.logger.Warn("POST /offers/{id}/availability/ranges - Offer not found: offer_id=%d", offerID)
			handlers.RespondNotFound(w, msgOfferNotFound)

		case errors.Is(err, schedule.ErrOfferArchived):
			h.logger.Warn("POST /offers/{id}/availability/ranges - Offer archived: offer_id=%d", offerID)
			handlers.RespondError(w, http.StatusConflict, msgOfferArchived)

		case errors.Is(err, schedule.ErrModeMismatch):
			h.logger.Warn("POST /offers/{id}/availability/ranges - Mode mismatch: offer_id=%d", offerID)
			handlers.RespondError(w, http.StatusConflict, msgModeMismatch)

		case errors.Is(err, domain.ErrRangeUnparseable):
			h.logger.Warn("POST /offers/{id}/availability/ranges - Unparseable range: offer_id=%d, error=%v", offerID, err)
			handlers.RespondBadRequest(w, msgUnparseableRange)

		case errors.Is(err, domain.ErrRangeInverted):
			h.logger.Warn("POST /offers/{id}/availability/ranges - Inverted range: offer_id=%d", offerID)
			handlers.RespondBadRequest(w, msgInvertedRange)

		case errors.Is(err, domain.ErrDuplicateRange):
			h.logger.Warn("POST /offers/{id}/availability/ranges - Duplicate range: offer_id=%d", offerID)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateRange)

		case errors.Is(err, domain.ErrRangeOutOfBounds):
			h.logger.Warn("POST /offers/{id}/availability/ranges - Range out of bounds: offer_id=%d", offerID)
			handlers.RespondError(w, http.StatusConflict, msgRangeOutOfBounds)

		default:
			h.logger.Error("POST /offers/{id}/availability/ranges - Failed: offer_id=%d, error=%v", offerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /offers/{id}/availability/ranges - Range added: offer_id=%d, ranges=%d",
		offerID, len(result.Ranges))
	handlers.RespondJSON(w, http.StatusOK, result)
}
