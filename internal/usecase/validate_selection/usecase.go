package validate_selection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	availabilityService "github.com/m04kA/SMC-ReservationEngine/internal/service/availability"
)

// UseCase use case для проверки выбранного диапазона дат
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

// Execute проверяет диапазон по окну услуги, занятым датам и текущему дню
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.ServiceID == "" {
		return nil, fmt.Errorf("%w: service id is required", ErrInvalidInput)
	}

	var dates []time.Time
	if req.Selection.IsComplete() {
		dates = []time.Time{*req.Selection.Start, *req.Selection.End}
	}

	resolver, details, err := uc.availability.Resolver(ctx, req.ServiceID, dates...)
	if err != nil {
		if errors.Is(err, availabilityService.ErrServiceNotFound) {
			uc.logger.Warn("ValidateSelection: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("ValidateSelection: failed to load availability for service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to load availability: %v", ErrCatalogUnavailable, err)
	}

	validation := resolver.ValidateRange(req.Selection)
	resp := &Response{
		Validation:  validation,
		PricePerDay: details.PricePerDay,
	}

	if !validation.Valid {
		uc.logger.Info("ValidateSelection: service=%s, range rejected: reason=%s", req.ServiceID, validation.Reason)
		return resp, nil
	}

	hold := domain.ReservationHold{StartDate: *req.Selection.Start, EndDate: *req.Selection.End}
	resp.TotalDays = hold.TotalDays()
	resp.TotalPrice = float64(resp.TotalDays) * details.PricePerDay

	return resp, nil
}
