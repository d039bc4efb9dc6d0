package update_schedule

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
	msgModeMismatch       = "операция не соответствует режиму оффера"
	msgInvalidWeekday     = "некорректный день недели"
	msgEmptyWeekdays      = "нельзя снять последний рабочий день"
	msgInvalidWindow      = "некорректное дневное окно работы"
	msgInvalidInterval    = "некорректная длительность слота"
	msgInvalidCeiling     = "некорректный потолок ёмкости"
	msgCeilingOrder       = "потолок на слот не может превышать дневной потолок"
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

// Handle PUT /api/v1/offers/{offerId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	offerID, err := strconv.ParseInt(vars["offerId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /offers/{id}/schedule - Invalid offer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOfferID)
		return
	}

	var req models.UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /offers/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSchedule(r.Context(), offerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrOfferNotFound):
			h.logger.Warn("PUT /offers/{id}/schedule - Offer not found: offer_id=%d", offerID)
			handlers.RespondNotFound(w, msgOfferNotFound)

		case errors.Is(err, schedule.ErrOfferArchived):
			h.logger.Warn("PUT /offers/{id}/schedule - Offer archived: offer_id=%d", offerID)
			handlers.RespondError(w, http.StatusConflict, msgOfferArchived)

		case errors.Is(err, schedule.ErrModeMismatch):
			h.logger.Warn("PUT /offers/{id}/schedule - Mode mismatch: offer_id=%d, error=%v", offerID, err)
			handlers.RespondError(w, http.StatusConflict, msgModeMismatch)

		case errors.Is(err, domain.ErrInvalidWeekday):
			h.logger.Warn("PUT /offers/{id}/schedule - Invalid weekday: offer_id=%d, error=%v", offerID, err)
			handlers.RespondBadRequest(w, msgInvalidWeekday)

		case errors.Is(err, domain.ErrEmptyWeekdays):
			h.logger.Warn("PUT /offers/{id}/schedule - Empty weekdays: offer_id=%d", offerID)
			handlers.RespondError(w, http.StatusConflict, msgEmptyWeekdays)

		case errors.Is(err, domain.ErrInvalidDailyWindow):
			h.logger.Warn("PUT /offers/{id}/schedule - Invalid daily window: offer_id=%d, error=%v", offerID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, domain.ErrInvalidSlotInterval):
			h.logger.Warn("PUT /offers/{id}/schedule - Invalid slot interval: offer_id=%d, error=%v", offerID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, domain.ErrCeilingOrder):
			h.logger.Warn("PUT /offers/{id}/schedule - Ceiling order violated: offer_id=%d", offerID)
			handlers.RespondError(w, http.StatusConflict, msgCeilingOrder)

		case errors.Is(err, domain.ErrInvalidCeiling):
			h.logger.Warn("PUT /offers/{id}/schedule - Invalid ceiling: offer_id=%d, error=%v", offerID, err)
			handlers.RespondBadRequest(w, msgInvalidCeiling)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /offers/{id}/schedule - Invalid input: offer_id=%d, error=%v", offerID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /offers/{id}/schedule - Failed: offer_id=%d, error=%v", offerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /offers/{id}/schedule - Schedule updated: offer_id=%d", offerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
