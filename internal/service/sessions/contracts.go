package sessions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

// Journal интерфейс журнала сессий резервирования
type Journal interface {
	Create(ctx context.Context, rec *domain.SessionRecord) error
	Finish(ctx context.Context, reservationID string, state domain.SessionState, remaining int, finishedAt time.Time) error
	GetByID(ctx context.Context, reservationID string) (*domain.SessionRecord, error)
	ListByService(ctx context.Context, serviceID string, states []domain.SessionState, limit uint64) ([]*domain.SessionRecord, error)
	ExpireOrphaned(ctx context.Context, now time.Time) (int64, error)
}

// CatalogClient интерфейс клиента каталога для снятия резерва
type CatalogClient interface {
	Cancel(ctx context.Context, reservationID string) error
}

// SessionMetrics интерфейс учёта сессий
type SessionMetrics interface {
	SessionStarted()
	SessionFinished(state string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
