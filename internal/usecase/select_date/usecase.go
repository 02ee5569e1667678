package select_date

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	availabilityService "github.com/m04kA/SMC-ReservationEngine/internal/service/availability"
)

// UseCase use case для применения клика по дате к текущему выбору
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

// Execute применяет клик и проверяет получившийся диапазон
// Отклонённый клик не является ошибкой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SelectDate: validation failed: %v", err)
		return nil, err
	}

	// Занятые даты нужны за все месяцы между кликом и текущими границами выбора
	dates := []time.Time{req.Candidate}
	if req.Current.Start != nil {
		dates = append(dates, *req.Current.Start)
	}
	if req.Current.End != nil {
		dates = append(dates, *req.Current.End)
	}

	resolver, _, err := uc.availability.Resolver(ctx, req.ServiceID, dates...)
	if err != nil {
		if errors.Is(err, availabilityService.ErrServiceNotFound) {
			uc.logger.Warn("SelectDate: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("SelectDate: failed to load availability for service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to load availability: %v", ErrCatalogUnavailable, err)
	}

	selection, accepted := resolver.SelectDate(req.Candidate, req.Current)
	status := resolver.DayStatus(req.Candidate)
	if !accepted {
		uc.logger.Info("SelectDate: service=%s, candidate %s rejected as %s", req.ServiceID, domain.DateKey(req.Candidate), status)
	}

	return &Response{
		Selection:       selection,
		Accepted:        accepted,
		CandidateStatus: status,
		Validation:      resolver.ValidateRange(selection),
	}, nil
}
