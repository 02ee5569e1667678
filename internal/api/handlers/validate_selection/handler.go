package validate_selection

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationEngine/internal/api/handlers"
	validateSelection "github.com/m04kA/SMC-ReservationEngine/internal/usecase/validate_selection"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidSelection   = "некорректный выбор дат"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	useCase ValidateSelectionUseCase
	logger  Logger
}

func NewHandler(useCase ValidateSelectionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/services/{serviceId}/selection/validate
// Невалидный диапазон не ошибка: ответ 200 с valid=false и причиной
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]

	var body handlers.SelectionDTO
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /services/{id}/selection/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	selection, err := body.ToDomain()
	if err != nil {
		h.logger.Warn("POST /services/{id}/selection/validate - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &validateSelection.Request{
		ServiceID: serviceID,
		Selection: selection,
	})
	if err != nil {
		switch {
		case errors.Is(err, validateSelection.ErrInvalidInput):
			h.logger.Warn("POST /services/{id}/selection/validate - Invalid selection: service_id=%s, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidSelection)

		case errors.Is(err, validateSelection.ErrServiceNotFound):
			h.logger.Warn("POST /services/{id}/selection/validate - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, validateSelection.ErrCatalogUnavailable):
			h.logger.Error("POST /services/{id}/selection/validate - Catalog unavailable: service_id=%s, error=%v", serviceID, err)
			handlers.RespondBadGateway(w)

		default:
			h.logger.Error("POST /services/{id}/selection/validate - Failed to validate: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services/{id}/selection/validate - Selection validated: service_id=%s, valid=%t, reason=%s",
		serviceID, result.Validation.Valid, result.Validation.Reason)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
