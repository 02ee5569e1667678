package select_date

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationEngine/internal/api/handlers"
	selectDate "github.com/m04kA/SMC-ReservationEngine/internal/usecase/select_date"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidSelection   = "некорректный выбор дат"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	useCase SelectDateUseCase
	logger  Logger
}

func NewHandler(useCase SelectDateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/services/{serviceId}/selection
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]

	var req SelectDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services/{id}/selection - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(serviceID)
	if err != nil {
		h.logger.Warn("POST /services/{id}/selection - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, selectDate.ErrInvalidInput):
			h.logger.Warn("POST /services/{id}/selection - Invalid selection: service_id=%s, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidSelection)

		case errors.Is(err, selectDate.ErrServiceNotFound):
			h.logger.Warn("POST /services/{id}/selection - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, selectDate.ErrCatalogUnavailable):
			h.logger.Error("POST /services/{id}/selection - Catalog unavailable: service_id=%s, error=%v", serviceID, err)
			handlers.RespondBadGateway(w)

		default:
			h.logger.Error("POST /services/{id}/selection - Failed to select date: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services/{id}/selection - Date processed: service_id=%s, candidate=%s, accepted=%t",
		serviceID, req.Candidate, result.Accepted)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
