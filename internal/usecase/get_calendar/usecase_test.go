package get_calendar

import (
	"context"
	"errors"
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
	details    *domain.ServiceDetails
	serviceErr error
	booked     domain.BookedDateSet
	bookedErr  error
	today      time.Time
	requested  []domain.MonthCursor
}

func (f *fakeAvailability) GetService(context.Context, string) (*domain.ServiceDetails, error) {
	if f.serviceErr != nil {
		return nil, f.serviceErr
	}
	return f.details, nil
}

func (f *fakeAvailability) BookedDates(_ context.Context, _ string, months []domain.MonthCursor) (domain.BookedDateSet, error) {
	f.requested = append(f.requested, months...)
	if f.bookedErr != nil {
		return nil, f.bookedErr
	}
	return f.booked, nil
}

func (f *fakeAvailability) Navigator(details *domain.ServiceDetails) *engine.Navigator {
	window := details.Availability
	return engine.NewNavigator(f.today, &window)
}

func (f *fakeAvailability) Today() time.Time { return f.today }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newFake() *fakeAvailability {
	return &fakeAvailability{
		details: &domain.ServiceDetails{
			ID:           "svc-1",
			Title:        "Loft on the river",
			PricePerDay:  150,
			IsActive:     true,
			Availability: domain.MustNewAvailabilityWindow(day(2025, 3, 1), day(2025, 6, 30)),
		},
		booked: domain.BookedDateSet{"2025-03-15": true},
		today:  day(2025, 3, 10),
	}
}

func TestExecute_DefaultsToTodaysMonth(t *testing.T) {
	fake := newFake()
	uc := NewUseCase(fake, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1"})
	require.NoError(t, err)

	assert.Equal(t, domain.MonthCursor{Year: 2025, Month: time.March}, resp.Month)
	assert.Equal(t, []domain.MonthCursor{{Year: 2025, Month: time.March}}, fake.requested)
	assert.False(t, resp.CanGoBack)
	assert.True(t, resp.CanGoForward)
	assert.Equal(t, domain.MonthCursor{Year: 2025, Month: time.June}, resp.MaxMonth)
	assert.Equal(t, []int{2025}, resp.YearOptions)
	assert.Equal(t, "Loft on the river", resp.Title)

	// 1 March 2025 is a Saturday
	require.Len(t, resp.Days, 6+31)
	assert.True(t, resp.Days[5].IsBlank())
	assert.Equal(t, 1, resp.Days[6].Day)
	assert.Equal(t, domain.DayPast, resp.Days[6+8].Status)
	assert.True(t, resp.Days[6+9].IsToday)
	assert.Equal(t, domain.DayBooked, resp.Days[6+14].Status)
	assert.Equal(t, domain.DayAvailable, resp.Days[6+15].Status)
}

func TestExecute_Navigation(t *testing.T) {
	tests := []struct {
		name        string
		year, month int
		nav         string
		want        domain.MonthCursor
		canForward  bool
	}{
		{"next inside window", 2025, 4, NavNext, domain.MonthCursor{Year: 2025, Month: time.May}, true},
		{"next to last month", 2025, 5, NavNext, domain.MonthCursor{Year: 2025, Month: time.June}, false},
		{"next past window is a no-op", 2025, 6, NavNext, domain.MonthCursor{Year: 2025, Month: time.June}, false},
		{"prev before today is a no-op", 2025, 3, NavPrev, domain.MonthCursor{Year: 2025, Month: time.March}, true},
		{"requested month is clamped", 2024, 1, NavNone, domain.MonthCursor{Year: 2025, Month: time.March}, true},
		{"far future is clamped", 2027, 1, NavNone, domain.MonthCursor{Year: 2025, Month: time.June}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(newFake(), nopLogger{})

			resp, err := uc.Execute(context.Background(), &Request{
				ServiceID: "svc-1",
				Year:      ptr.Ptr(tt.year),
				Month:     ptr.Ptr(tt.month),
				Nav:       tt.nav,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Month)
			assert.Equal(t, tt.canForward, resp.CanGoForward)
		})
	}
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{"missing service", &Request{}},
		{"year without month", &Request{ServiceID: "svc-1", Year: ptr.Ptr(2025)}},
		{"month out of range", &Request{ServiceID: "svc-1", Year: ptr.Ptr(2025), Month: ptr.Ptr(13)}},
		{"bad year", &Request{ServiceID: "svc-1", Year: ptr.Ptr(0), Month: ptr.Ptr(1)}},
		{"unknown nav", &Request{ServiceID: "svc-1", Nav: "up"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFake()
			uc := NewUseCase(fake, nopLogger{})

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, fake.requested)
		})
	}
}

func TestExecute_Errors(t *testing.T) {
	fake := newFake()
	fake.serviceErr = availabilityService.ErrServiceNotFound
	_, err := NewUseCase(fake, nopLogger{}).Execute(context.Background(), &Request{ServiceID: "svc-1"})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	fake = newFake()
	fake.bookedErr = errors.New("catalog timeout")
	_, err = NewUseCase(fake, nopLogger{}).Execute(context.Background(), &Request{ServiceID: "svc-1"})
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}
