package reserve_dates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	engine "github.com/m04kA/SMC-ReservationEngine/internal/engine/availability"
	sessionModels "github.com/m04kA/SMC-ReservationEngine/internal/service/sessions/models"
)

// AvailabilityService интерфейс сервиса доступности
type AvailabilityService interface {
	Resolver(ctx context.Context, serviceID string, dates ...time.Time) (*engine.Resolver, *domain.ServiceDetails, error)
	Invalidate(ctx context.Context, serviceID string, start, end time.Time)
}

// CatalogClient интерфейс клиента каталога для резервирования дат
type CatalogClient interface {
	Reserve(ctx context.Context, serviceID string, start, end time.Time) (*domain.ReservationHold, error)
	Cancel(ctx context.Context, reservationID string) error
}

// SessionService интерфейс реестра сессий резервирования
type SessionService interface {
	Start(ctx context.Context, hold domain.ReservationHold) (*sessionModels.Status, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
