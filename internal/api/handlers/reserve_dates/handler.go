package reserve_dates

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationEngine/internal/api/handlers"
	reserveDates "github.com/m04kA/SMC-ReservationEngine/internal/usecase/reserve_dates"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequest     = "некорректный запрос резервирования"
	msgInvalidRange       = "некорректный диапазон дат"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна для бронирования"
	msgDatesUnavailable   = "выбранные даты уже заняты"
	msgReserveRejected    = "каталог отклонил резервирование"
)

type Handler struct {
	useCase ReserveDatesUseCase
	logger  Logger
}

func NewHandler(useCase ReserveDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/services/{serviceId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]

	var req ReserveDatesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services/{id}/reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(serviceID)
	if err != nil {
		h.logger.Warn("POST /services/{id}/reservations - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var rangeErr *reserveDates.RangeError
		switch {
		case errors.As(err, &rangeErr):
			h.logger.Warn("POST /services/{id}/reservations - Range rejected: service_id=%s, start=%s, end=%s, reason=%s",
				serviceID, req.StartDate, req.EndDate, rangeErr.Reason)
			handlers.RespondErrorWithReason(w, http.StatusUnprocessableEntity, reasonMessage(rangeErr.Reason), string(rangeErr.Reason))

		case errors.Is(err, reserveDates.ErrInvalidInput):
			h.logger.Warn("POST /services/{id}/reservations - Invalid request: service_id=%s, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, reserveDates.ErrServiceNotFound):
			h.logger.Warn("POST /services/{id}/reservations - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, reserveDates.ErrServiceInactive):
			h.logger.Warn("POST /services/{id}/reservations - Service inactive: service_id=%s", serviceID)
			handlers.RespondConflict(w, msgServiceInactive)

		case errors.Is(err, reserveDates.ErrDatesUnavailable):
			h.logger.Warn("POST /services/{id}/reservations - Dates taken: service_id=%s, start=%s, end=%s",
				serviceID, req.StartDate, req.EndDate)
			handlers.RespondConflict(w, msgDatesUnavailable)

		case errors.Is(err, reserveDates.ErrReserveRejected):
			h.logger.Warn("POST /services/{id}/reservations - Rejected by catalog: service_id=%s, error=%v", serviceID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgReserveRejected)

		case errors.Is(err, reserveDates.ErrCatalogUnavailable):
			h.logger.Error("POST /services/{id}/reservations - Catalog unavailable: service_id=%s, error=%v", serviceID, err)
			handlers.RespondBadGateway(w)

		default:
			h.logger.Error("POST /services/{id}/reservations - Failed to reserve dates: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services/{id}/reservations - Dates reserved: reservation_id=%s, service_id=%s, expires_at=%s",
		result.Reservation.ReservationID, serviceID, result.Reservation.ExpiresAt)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
