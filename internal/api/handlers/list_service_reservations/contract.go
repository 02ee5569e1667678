package list_service_reservations

import (
	"context"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	"github.com/m04kA/SMC-ReservationEngine/internal/service/sessions/models"
)

type SessionService interface {
	ListByService(ctx context.Context, serviceID string, states []domain.SessionState, limit uint64) ([]*models.Status, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
