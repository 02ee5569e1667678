package get_reservation

import (
	"context"

	"github.com/m04kA/SMC-ReservationEngine/internal/service/sessions/models"
)

type SessionService interface {
	Get(ctx context.Context, reservationID string) (*models.Status, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
