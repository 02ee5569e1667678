package confirm_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationEngine/internal/api/handlers"
	confirmReservation "github.com/m04kA/SMC-ReservationEngine/internal/usecase/confirm_reservation"
)

const (
	msgInvalidRequest = "некорректный запрос подтверждения"
	msgNotFound       = "резерв не найден"
	msgNotActive      = "резерв уже подтвержден, отменен или истек"
	msgRejected       = "каталог отказал в подтверждении резерва"
)

type Handler struct {
	useCase ConfirmReservationUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/services/{serviceId}/reservations/{reservationId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID := vars["serviceId"]
	reservationID := vars["reservationId"]

	result, err := h.useCase.Execute(r.Context(), &confirmReservation.Request{
		ServiceID:     serviceID,
		ReservationID: reservationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations/{id}/confirm - Invalid request: service_id=%s, reservation_id=%s", serviceID, reservationID)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, confirmReservation.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/confirm - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmReservation.ErrNotActive):
			h.logger.Warn("POST /reservations/{id}/confirm - Reservation not active: reservation_id=%s", reservationID)
			handlers.RespondConflict(w, msgNotActive)

		case errors.Is(err, confirmReservation.ErrConfirmRejected):
			h.logger.Warn("POST /reservations/{id}/confirm - Rejected by catalog: reservation_id=%s, error=%v", reservationID, err)
			handlers.RespondConflict(w, msgRejected)

		case errors.Is(err, confirmReservation.ErrCatalogUnavailable):
			h.logger.Error("POST /reservations/{id}/confirm - Catalog unavailable: reservation_id=%s, error=%v", reservationID, err)
			handlers.RespondBadGateway(w)

		default:
			h.logger.Error("POST /reservations/{id}/confirm - Failed to confirm: reservation_id=%s, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/confirm - Reservation confirmed: reservation_id=%s, service_id=%s, late=%t",
		reservationID, serviceID, result.LateConfirm)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
