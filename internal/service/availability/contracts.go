package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

// CatalogClient интерфейс клиента каталога услуг
type CatalogClient interface {
	GetService(ctx context.Context, serviceID string) (*domain.ServiceDetails, error)
	GetMonthlyAvailability(ctx context.Context, serviceID string, year int, month time.Month) (domain.BookedDateSet, error)
}

// Cache интерфейс кэша занятых дат по месяцам
type Cache interface {
	Get(ctx context.Context, serviceID string, month domain.MonthCursor) (domain.BookedDateSet, error)
	Set(ctx context.Context, serviceID string, month domain.MonthCursor, booked domain.BookedDateSet) error
	Invalidate(ctx context.Context, serviceID string, months []domain.MonthCursor) error
}

// CacheMetrics интерфейс учёта попаданий в кэш
type CacheMetrics interface {
	CacheHit()
	CacheMiss()
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
