package get_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationEngine/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationEngine/internal/service/sessions"
)

const (
	msgInvalidReservationID = "некорректный ID резерва"
	msgNotFound             = "резерв не найден"
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

// Handle GET /api/v1/reservations/{reservationId}
// Клиент опрашивает этот endpoint раз в секунду, пока идёт отсчёт
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID := mux.Vars(r)["reservationId"]
	if reservationID == "" {
		h.logger.Warn("GET /reservations/{id} - Empty reservation ID")
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	status, err := h.service.Get(r.Context(), reservationID)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("GET /reservations/{id} - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /reservations/{id} - Failed to get reservation: reservation_id=%s, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromStatus(status))
}
