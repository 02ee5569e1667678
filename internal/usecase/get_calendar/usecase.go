package get_calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	engine "github.com/m04kA/SMC-ReservationEngine/internal/engine/availability"
	availabilityService "github.com/m04kA/SMC-ReservationEngine/internal/service/availability"
	"github.com/m04kA/SMC-ReservationEngine/pkg/ptr"
)

// UseCase use case для получения календаря доступности услуги на месяц
type UseCase struct {
	availability AvailabilityService
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availability AvailabilityService, logger Logger) *UseCase {
	return &UseCase{
		availability: availability,
		logger:       logger,
	}
}

// Execute строит сетку месяца
// Запрошенный месяц приводится к допустимым границам, затем применяется навигация
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCalendar: service=%s, year=%d, month=%d, nav=%q",
		req.ServiceID, ptr.Deref(req.Year, 0), ptr.Deref(req.Month, 0), req.Nav)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCalendar: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу и её окно доступности
	details, err := uc.availability.GetService(ctx, req.ServiceID)
	if err != nil {
		return nil, uc.mapError("get service", req.ServiceID, err)
	}

	// 3. Определяем отображаемый месяц
	today := uc.availability.Today()
	nav := uc.availability.Navigator(details)

	cursor := domain.CursorOf(today)
	if req.Year != nil {
		cursor = domain.MonthCursor{Year: *req.Year, Month: time.Month(*req.Month)}
	}
	cursor = nav.Clamp(cursor)

	switch req.Nav {
	case NavPrev:
		cursor = nav.Prev(cursor)
	case NavNext:
		cursor = nav.Next(cursor)
	}

	// 4. Загружаем занятые даты месяца
	booked, err := uc.availability.BookedDates(ctx, req.ServiceID, []domain.MonthCursor{cursor})
	if err != nil {
		return nil, uc.mapError("get booked dates", req.ServiceID, err)
	}

	// 5. Строим сетку
	window := details.Availability
	resolver := engine.NewResolver(&window, booked, today)
	maxMonth, _ := nav.Max()

	uc.logger.Info("GetCalendar: service=%s, month=%s built with %d booked dates", req.ServiceID, cursor, len(booked))

	return &Response{
		ServiceID:    details.ID,
		Title:        details.Title,
		PricePerDay:  details.PricePerDay,
		Month:        cursor,
		Today:        resolver.Today(),
		Window:       window,
		Days:         resolver.MonthGrid(cursor.Year, cursor.Month),
		CanGoBack:    nav.CanGoBack(cursor),
		CanGoForward: nav.CanGoForward(cursor),
		MinMonth:     nav.Min(),
		MaxMonth:     maxMonth,
		YearOptions:  nav.YearOptions(),
	}, nil
}

func (uc *UseCase) mapError(op, serviceID string, err error) error {
	if errors.Is(err, availabilityService.ErrServiceNotFound) {
		uc.logger.Warn("GetCalendar: service id=%s not found", serviceID)
		return ErrServiceNotFound
	}
	uc.logger.Error("GetCalendar: failed to %s for service id=%s: %v", op, serviceID, err)
	return fmt.Errorf("%w: failed to %s: %v", ErrCatalogUnavailable, op, err)
}
