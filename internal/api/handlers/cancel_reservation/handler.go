package cancel_reservation

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
	msgNotActive            = "резерв уже подтвержден, отменен или истек"
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

// Handle DELETE /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID := mux.Vars(r)["reservationId"]
	if reservationID == "" {
		h.logger.Warn("DELETE /reservations/{id} - Empty reservation ID")
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	status, err := h.service.Cancel(r.Context(), reservationID)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("DELETE /reservations/{id} - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrSessionNotActive):
			h.logger.Warn("DELETE /reservations/{id} - Reservation not active: reservation_id=%s", reservationID)
			handlers.RespondConflict(w, msgNotActive)

		default:
			h.logger.Error("DELETE /reservations/{id} - Failed to cancel reservation: reservation_id=%s, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reservations/{id} - Reservation cancelled: reservation_id=%s", reservationID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromStatus(status))
}
