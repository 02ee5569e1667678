package get_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationEngine/internal/api/handlers"
	getCalendar "github.com/m04kA/SMC-ReservationEngine/internal/usecase/get_calendar"
	"github.com/m04kA/SMC-ReservationEngine/pkg/ptr"
)

const (
	msgInvalidYear     = "некорректный год"
	msgInvalidMonth    = "некорректный месяц"
	msgInvalidRequest  = "некорректные параметры календаря"
	msgServiceNotFound = "услуга не найдена"
)

type Handler struct {
	useCase GetCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/calendar?year=2025&month=3&nav=next
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]
	query := r.URL.Query()

	req := &getCalendar.Request{
		ServiceID: serviceID,
		Nav:       query.Get("nav"),
	}

	if raw := query.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /services/{id}/calendar - Invalid year: %v", err)
			handlers.RespondBadRequest(w, msgInvalidYear)
			return
		}
		req.Year = ptr.Ptr(year)
	}

	if raw := query.Get("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /services/{id}/calendar - Invalid month: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMonth)
			return
		}
		req.Month = ptr.Ptr(month)
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getCalendar.ErrInvalidInput):
			h.logger.Warn("GET /services/{id}/calendar - Invalid request: service_id=%s, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, getCalendar.ErrServiceNotFound):
			h.logger.Warn("GET /services/{id}/calendar - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getCalendar.ErrCatalogUnavailable):
			h.logger.Error("GET /services/{id}/calendar - Catalog unavailable: service_id=%s, error=%v", serviceID, err)
			handlers.RespondBadGateway(w)

		default:
			h.logger.Error("GET /services/{id}/calendar - Failed to build calendar: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/{id}/calendar - Calendar built: service_id=%s, month=%s", serviceID, result.Month)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
