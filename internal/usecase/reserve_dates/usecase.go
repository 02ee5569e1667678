package reserve_dates

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	catalogClient "github.com/m04kA/SMC-ReservationEngine/internal/integrations/catalog"
	availabilityService "github.com/m04kA/SMC-ReservationEngine/internal/service/availability"
	"github.com/m04kA/SMC-ReservationEngine/pkg/ptr"
)

// UseCase use case для резервирования диапазона дат
type UseCase struct {
	availability AvailabilityService
	catalog      CatalogClient
	sessions     SessionService
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availability AvailabilityService,
	catalog CatalogClient,
	sessions SessionService,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability: availability,
		catalog:      catalog,
		sessions:     sessions,
		logger:       logger,
	}
}

// Execute резервирует даты в каталоге и запускает отсчёт подтверждения
// При отказе каталога сессия не создаётся
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveDates: service=%s, start=%s, end=%s",
		req.ServiceID, domain.DateKey(req.StartDate), domain.DateKey(req.EndDate))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveDates: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем окно и занятые даты диапазона
	resolver, details, err := uc.availability.Resolver(ctx, req.ServiceID, req.StartDate, req.EndDate)
	if err != nil {
		if errors.Is(err, availabilityService.ErrServiceNotFound) {
			uc.logger.Warn("ReserveDates: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("ReserveDates: failed to load availability for service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to load availability: %v", ErrCatalogUnavailable, err)
	}

	// 3. Неактивную услугу забронировать нельзя
	if !details.IsActive {
		uc.logger.Warn("ReserveDates: service id=%s is not active", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 4. Локальная проверка диапазона
	selection := domain.DateSelection{Start: ptr.Ptr(req.StartDate), End: ptr.Ptr(req.EndDate)}
	if validation := resolver.ValidateRange(selection); !validation.Valid {
		uc.logger.Warn("ReserveDates: range rejected for service id=%s: reason=%s", req.ServiceID, validation.Reason)
		return nil, &RangeError{Reason: validation.Reason}
	}

	// 5. Резервируем в каталоге
	hold, err := uc.catalog.Reserve(ctx, req.ServiceID, req.StartDate, req.EndDate)
	if err != nil {
		switch {
		case errors.Is(err, catalogClient.ErrServiceNotFound):
			uc.logger.Warn("ReserveDates: catalog does not know service id=%s", req.ServiceID)
			return nil, ErrServiceNotFound
		case errors.Is(err, catalogClient.ErrConflict):
			uc.logger.Warn("ReserveDates: dates taken meanwhile for service id=%s: %v", req.ServiceID, err)
			// Кэш месяцев устарел
			uc.availability.Invalidate(ctx, req.ServiceID, req.StartDate, req.EndDate)
			return nil, ErrDatesUnavailable
		case errors.Is(err, catalogClient.ErrRejected):
			uc.logger.Warn("ReserveDates: catalog rejected reservation for service id=%s: %v", req.ServiceID, err)
			return nil, fmt.Errorf("%w: %v", ErrReserveRejected, err)
		default:
			uc.logger.Error("ReserveDates: failed to reserve for service id=%s: %v", req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to reserve: %v", ErrCatalogUnavailable, err)
		}
	}

	if hold.ServiceID == "" {
		hold.ServiceID = req.ServiceID
	}

	// 6. Запускаем отсчёт подтверждения
	status, err := uc.sessions.Start(ctx, *hold)
	if err != nil {
		uc.logger.Error("ReserveDates: failed to start session for reservation=%s: %v", hold.ID, err)
		// Без сессии резерв никто не отпустит, снимаем его сразу
		if cancelErr := uc.catalog.Cancel(ctx, hold.ID); cancelErr != nil {
			uc.logger.Warn("ReserveDates: failed to release reservation=%s: %v", hold.ID, cancelErr)
		} else {
			uc.logger.Info("ReserveDates: reservation=%s released after session failure", hold.ID)
		}
		return nil, fmt.Errorf("%w: failed to start session: %v", ErrInternal, err)
	}

	// 7. Даты теперь заняты, сбрасываем закэшированные месяцы
	uc.availability.Invalidate(ctx, req.ServiceID, req.StartDate, req.EndDate)

	uc.logger.Info("ReserveDates: reservation=%s held for service=%s, total_price=%.2f, expires_at=%s",
		status.ReservationID, req.ServiceID, status.TotalPrice, status.ExpiresAt.Format("15:04:05"))

	return &Response{
		Reservation: status,
		PricePerDay: details.PricePerDay,
	}, nil
}
