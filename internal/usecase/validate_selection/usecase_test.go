package validate_selection

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	engine "github.com/m04kA/SMC-ReservationEngine/internal/engine/availability"
	availabilityService "github.com/m04kA/SMC-ReservationEngine/internal/service/availability"
	"github.com/m04kA/SMC-ReservationEngine/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeAvailability struct {
	err   error
	dates []time.Time
}

func (f *fakeAvailability) Resolver(_ context.Context, _ string, dates ...time.Time) (*engine.Resolver, *domain.ServiceDetails, error) {
	f.dates = dates
	if f.err != nil {
		return nil, nil, f.err
	}
	details := &domain.ServiceDetails{
		ID:           "svc-1",
		PricePerDay:  120,
		Availability: domain.MustNewAvailabilityWindow(day(1), day(31)),
	}
	window := details.Availability
	return engine.NewResolver(&window, domain.BookedDateSet{"2025-03-15": true}, day(10)), details, nil
}

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func selection(start, end int) domain.DateSelection {
	return domain.DateSelection{Start: ptr.Ptr(day(start)), End: ptr.Ptr(day(end))}
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name      string
		selection domain.DateSelection
		valid     bool
		reason    domain.SelectionFailureReason
		days      int
	}{
		{"valid", selection(20, 25), true, "", 6},
		{"single day", selection(20, 20), true, "", 1},
		{"incomplete", domain.DateSelection{Start: ptr.Ptr(day(20))}, false, domain.ReasonIncomplete, 0},
		{"inverted", selection(25, 20), false, domain.ReasonInvertedRange, 0},
		{"booked inside", selection(12, 18), false, domain.ReasonContainsBookedDate, 0},
		{"in past", selection(5, 8), false, domain.ReasonInPast, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(&fakeAvailability{}, nopLogger{})

			resp, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1", Selection: tt.selection})
			require.NoError(t, err)
			assert.Equal(t, tt.valid, resp.Validation.Valid)
			assert.Equal(t, tt.reason, resp.Validation.Reason)
			assert.Equal(t, tt.days, resp.TotalDays)
			assert.Equal(t, float64(tt.days)*120, resp.TotalPrice)
			assert.Equal(t, 120.0, resp.PricePerDay)
		})
	}
}

func TestExecute_IncompleteLoadsNoMonths(t *testing.T) {
	fake := &fakeAvailability{}
	_, err := NewUseCase(fake, nopLogger{}).Execute(context.Background(), &Request{ServiceID: "svc-1"})
	require.NoError(t, err)
	assert.Empty(t, fake.dates)
}

func TestExecute_Errors(t *testing.T) {
	_, err := NewUseCase(&fakeAvailability{}, nopLogger{}).Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	fake := &fakeAvailability{err: availabilityService.ErrServiceNotFound}
	_, err = NewUseCase(fake, nopLogger{}).Execute(context.Background(), &Request{ServiceID: "svc-1"})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	fake.err = availabilityService.ErrCatalogUnavailable
	_, err = NewUseCase(fake, nopLogger{}).Execute(context.Background(), &Request{ServiceID: "svc-1"})
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}
