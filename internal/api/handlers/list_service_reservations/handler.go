package list_service_reservations

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationEngine/internal/api/handlers"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidParams    = "некорректные параметры запроса"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/reservations
// Query params: state (active, confirmed, expired, cancelled, finished), limit (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]
	if serviceID == "" {
		h.logger.Warn("GET /services/{id}/reservations - Empty service ID")
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	query, err := ParseQuery(r.URL.Query().Get("state"), r.URL.Query().Get("limit"))
	if err != nil {
		h.logger.Warn("GET /services/{id}/reservations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	statuses, err := h.service.ListByService(r.Context(), serviceID, query.States, query.Limit)
	if err != nil {
		h.logger.Error("GET /services/{id}/reservations - Failed to list reservations: service_id=%s, error=%v", serviceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services/{id}/reservations - Reservations retrieved: service_id=%s, count=%d", serviceID, len(statuses))
	handlers.RespondJSON(w, http.StatusOK, FromStatuses(serviceID, statuses))
}
