package validate_selection

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	engine "github.com/m04kA/SMC-ReservationEngine/internal/engine/availability"
)

// AvailabilityService интерфейс сервиса доступности
type AvailabilityService interface {
	Resolver(ctx context.Context, serviceID string, dates ...time.Time) (*engine.Resolver, *domain.ServiceDetails, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
