package confirm_reservation

import (
	"github.com/m04kA/SMC-ReservationEngine/internal/api/handlers"
	confirmReservation "github.com/m04kA/SMC-ReservationEngine/internal/usecase/confirm_reservation"
)

// ConfirmReservationResponse HTTP response model
type ConfirmReservationResponse struct {
	*handlers.ReservationResponse
	LateConfirm bool `json:"lateConfirm"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmReservation.Response) *ConfirmReservationResponse {
	return &ConfirmReservationResponse{
		ReservationResponse: handlers.FromStatus(resp.Reservation),
		LateConfirm:         resp.LateConfirm,
	}
}
