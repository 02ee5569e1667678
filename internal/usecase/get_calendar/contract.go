package get_calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	engine "github.com/m04kA/SMC-ReservationEngine/internal/engine/availability"
)

// AvailabilityService интерфейс сервиса доступности
type AvailabilityService interface {
	GetService(ctx context.Context, serviceID string) (*domain.ServiceDetails, error)
	BookedDates(ctx context.Context, serviceID string, months []domain.MonthCursor) (domain.BookedDateSet, error)
	Navigator(details *domain.ServiceDetails) *engine.Navigator
	Today() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
