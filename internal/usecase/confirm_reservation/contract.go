package confirm_reservation

import (
	"context"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	sessionModels "github.com/m04kA/SMC-ReservationEngine/internal/service/sessions/models"
)

// SessionService интерфейс реестра сессий резервирования
type SessionService interface {
	Hold(reservationID string) (domain.ReservationHold, domain.SessionState, error)
	BeginConfirm(reservationID string) error
	EndConfirm(reservationID string, upstreamConfirmed bool)
	Confirm(reservationID string, confirmed *domain.ReservationHold) (bool, error)
	Get(ctx context.Context, reservationID string) (*sessionModels.Status, error)
}

// CatalogClient интерфейс клиента каталога для подтверждения резерва
type CatalogClient interface {
	Confirm(ctx context.Context, serviceID, reservationID string) (*domain.ReservationHold, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
