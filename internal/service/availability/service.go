package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	engine "github.com/m04kA/SMC-ReservationEngine/internal/engine/availability"
	cacheRepo "github.com/m04kA/SMC-ReservationEngine/internal/infra/cache/availability"
	"github.com/m04kA/SMC-ReservationEngine/internal/integrations/catalog"
)

// Service загружает окно доступности и занятые даты услуги
// Занятые даты читаются через кэш, если он подключён
type Service struct {
	catalog      CatalogClient
	cache        Cache
	metrics      CacheMetrics
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает сервис доступности
// cache может быть nil - тогда каждый месяц запрашивается у каталога
func NewService(catalogClient CatalogClient, cache Cache, location *time.Location, logger Logger) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		catalog:      catalogClient,
		cache:        cache,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithMetrics включает учёт попаданий в кэш
func (s *Service) WithMetrics(m CacheMetrics) *Service {
	s.metrics = m
	return s
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Today возвращает текущую дату в часовом поясе календаря
func (s *Service) Today() time.Time {
	return domain.DateOnly(s.timeProvider.Now().In(s.location))
}

// GetService получает услугу из каталога
func (s *Service) GetService(ctx context.Context, serviceID string) (*domain.ServiceDetails, error) {
	details, err := s.catalog.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			s.logger.Warn("GetService: service id=%s not found", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetService: catalog error for service id=%s: %v", serviceID, err)
		return nil, fmt.Errorf("%w: GetService - catalog error: %v", ErrCatalogUnavailable, err)
	}
	return details, nil
}

// BookedDates возвращает объединённый набор занятых дат за указанные месяцы
func (s *Service) BookedDates(ctx context.Context, serviceID string, months []domain.MonthCursor) (domain.BookedDateSet, error) {
	sets := make([]domain.BookedDateSet, 0, len(months))
	for _, month := range months {
		booked, err := s.monthBookedDates(ctx, serviceID, month)
		if err != nil {
			return nil, err
		}
		sets = append(sets, booked)
	}
	return domain.Merge(sets...), nil
}

func (s *Service) monthBookedDates(ctx context.Context, serviceID string, month domain.MonthCursor) (domain.BookedDateSet, error) {
	if s.cache != nil {
		booked, err := s.cache.Get(ctx, serviceID, month)
		switch {
		case err == nil:
			s.cacheHit()
			return booked, nil
		case errors.Is(err, cacheRepo.ErrCacheMiss):
			s.cacheMiss()
		default:
			// Кэш недоступен - идём в каталог напрямую
			s.cacheMiss()
			s.logger.Warn("BookedDates: cache read failed for service=%s, month=%s: %v", serviceID, month, err)
		}
	}

	booked, err := s.catalog.GetMonthlyAvailability(ctx, serviceID, month.Year, month.Month)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			s.logger.Warn("BookedDates: service id=%s not found", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("BookedDates: catalog error for service=%s, month=%s: %v", serviceID, month, err)
		return nil, fmt.Errorf("%w: BookedDates - catalog error: %v", ErrCatalogUnavailable, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, serviceID, month, booked); err != nil {
			s.logger.Warn("BookedDates: cache write failed for service=%s, month=%s: %v", serviceID, month, err)
		}
	}

	return booked, nil
}

// Resolver собирает резолвер по окну услуги
// Занятые даты загружаются за месяцы окна, которые затрагивают переданные даты
func (s *Service) Resolver(ctx context.Context, serviceID string, dates ...time.Time) (*engine.Resolver, *domain.ServiceDetails, error) {
	details, err := s.GetService(ctx, serviceID)
	if err != nil {
		return nil, nil, err
	}

	var months []domain.MonthCursor
	if len(dates) > 0 {
		earliest, latest := dates[0], dates[0]
		for _, d := range dates[1:] {
			if d.Before(earliest) {
				earliest = d
			}
			if d.After(latest) {
				latest = d
			}
		}
		months = details.Availability.MonthsWithin(earliest, latest)
	}

	booked, err := s.BookedDates(ctx, serviceID, months)
	if err != nil {
		return nil, nil, err
	}

	window := details.Availability
	return engine.NewResolver(&window, booked, s.Today()), details, nil
}

// Navigator границы навигации по месяцам для услуги
func (s *Service) Navigator(details *domain.ServiceDetails) *engine.Navigator {
	window := details.Availability
	return engine.NewNavigator(s.Today(), &window)
}

// Invalidate сбрасывает закэшированные месяцы диапазона
// Ошибка кэша не прерывает операцию
func (s *Service) Invalidate(ctx context.Context, serviceID string, start, end time.Time) {
	if s.cache == nil {
		return
	}
	months := domain.MonthsBetween(start, end)
	if err := s.cache.Invalidate(ctx, serviceID, months); err != nil {
		s.logger.Warn("Invalidate: cache invalidation failed for service=%s: %v", serviceID, err)
		return
	}
	s.logger.Info("Invalidate: dropped %d cached months for service=%s", len(months), serviceID)
}

func (s *Service) cacheHit() {
	if s.metrics != nil {
		s.metrics.CacheHit()
	}
}

func (s *Service) cacheMiss() {
	if s.metrics != nil {
		s.metrics.CacheMiss()
	}
}
