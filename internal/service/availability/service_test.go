package availability

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	cacheRepo "github.com/m04kA/SMC-ReservationEngine/internal/infra/cache/availability"
	"github.com/m04kA/SMC-ReservationEngine/internal/integrations/catalog"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeCatalog struct {
	service    *domain.ServiceDetails
	serviceErr error
	months     map[string]domain.BookedDateSet
	monthErr   error
	calls      int
}

func (f *fakeCatalog) GetService(context.Context, string) (*domain.ServiceDetails, error) {
	if f.serviceErr != nil {
		return nil, f.serviceErr
	}
	return f.service, nil
}

func (f *fakeCatalog) GetMonthlyAvailability(_ context.Context, _ string, year int, month time.Month) (domain.BookedDateSet, error) {
	f.calls++
	if f.monthErr != nil {
		return nil, f.monthErr
	}
	return f.months[fmt.Sprintf("%04d-%02d", year, month)], nil
}

type fakeCache struct {
	data        map[string]domain.BookedDateSet
	getErr      error
	invalidated []domain.MonthCursor
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]domain.BookedDateSet{}}
}

func (f *fakeCache) Get(_ context.Context, serviceID string, month domain.MonthCursor) (domain.BookedDateSet, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.data[cacheRepo.Key(serviceID, month)]
	if !ok {
		return nil, cacheRepo.ErrCacheMiss
	}
	return v, nil
}

func (f *fakeCache) Set(_ context.Context, serviceID string, month domain.MonthCursor, booked domain.BookedDateSet) error {
	f.data[cacheRepo.Key(serviceID, month)] = booked
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, serviceID string, months []domain.MonthCursor) error {
	f.invalidated = append(f.invalidated, months...)
	for _, m := range months {
		delete(f.data, cacheRepo.Key(serviceID, m))
	}
	return nil
}

type countingMetrics struct{ hits, misses int }

func (c *countingMetrics) CacheHit()  { c.hits++ }
func (c *countingMetrics) CacheMiss() { c.misses++ }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newCatalog() *fakeCatalog {
	return &fakeCatalog{
		service: &domain.ServiceDetails{
			ID:           "svc-1",
			PricePerDay:  100,
			Availability: domain.MustNewAvailabilityWindow(day(2025, 3, 1), day(2025, 6, 30)),
		},
		months: map[string]domain.BookedDateSet{
			"2025-03": {"2025-03-31": true},
			"2025-04": {"2025-04-01": true},
		},
	}
}

var (
	march = domain.MonthCursor{Year: 2025, Month: time.March}
	april = domain.MonthCursor{Year: 2025, Month: time.April}
)

func TestBookedDates_CacheThrough(t *testing.T) {
	cat := newCatalog()
	cache := newFakeCache()
	m := &countingMetrics{}
	svc := NewService(cat, cache, time.UTC, nopLogger{}).WithMetrics(m)

	booked, err := svc.BookedDates(context.Background(), "svc-1", []domain.MonthCursor{march, april})
	require.NoError(t, err)
	assert.True(t, booked.IsBooked(day(2025, 3, 31)))
	assert.True(t, booked.IsBooked(day(2025, 4, 1)))
	assert.Equal(t, 2, cat.calls)
	assert.Equal(t, 2, m.misses)

	_, err = svc.BookedDates(context.Background(), "svc-1", []domain.MonthCursor{march, april})
	require.NoError(t, err)
	assert.Equal(t, 2, cat.calls, "second read served from cache")
	assert.Equal(t, 2, m.hits)
}

func TestBookedDates_WithoutCache(t *testing.T) {
	cat := newCatalog()
	svc := NewService(cat, nil, time.UTC, nopLogger{})

	_, err := svc.BookedDates(context.Background(), "svc-1", []domain.MonthCursor{march})
	require.NoError(t, err)
	_, err = svc.BookedDates(context.Background(), "svc-1", []domain.MonthCursor{march})
	require.NoError(t, err)
	assert.Equal(t, 2, cat.calls)
}

func TestBookedDates_CacheErrorFallsBackToCatalog(t *testing.T) {
	cat := newCatalog()
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")
	svc := NewService(cat, cache, time.UTC, nopLogger{})

	booked, err := svc.BookedDates(context.Background(), "svc-1", []domain.MonthCursor{march})
	require.NoError(t, err)
	assert.True(t, booked.IsBooked(day(2025, 3, 31)))
}

func TestBookedDates_CatalogErrors(t *testing.T) {
	cat := newCatalog()
	svc := NewService(cat, nil, time.UTC, nopLogger{})

	cat.monthErr = fmt.Errorf("%w: gone", catalog.ErrServiceNotFound)
	_, err := svc.BookedDates(context.Background(), "svc-1", []domain.MonthCursor{march})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	cat.monthErr = catalog.ErrInvalidResponse
	_, err = svc.BookedDates(context.Background(), "svc-1", []domain.MonthCursor{march})
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestResolver(t *testing.T) {
	cat := newCatalog()
	svc := NewService(cat, nil, time.UTC, nopLogger{}).
		WithTimeProvider(fixedTime{now: time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)})

	r, details, err := svc.Resolver(context.Background(), "svc-1", day(2025, 3, 31), day(2025, 3, 12))
	require.NoError(t, err)
	assert.Equal(t, 1, cat.calls, "only march is inside the requested span")
	assert.Equal(t, "svc-1", details.ID)
	assert.Equal(t, day(2025, 3, 10), r.Today())
	assert.Equal(t, domain.DayPast, r.DayStatus(day(2025, 3, 9)))
	assert.Equal(t, domain.DayBooked, r.DayStatus(day(2025, 3, 31)))
	assert.Equal(t, domain.DayOutOfWindow, r.DayStatus(day(2025, 7, 1)))
}

func TestResolver_ServiceNotFound(t *testing.T) {
	cat := newCatalog()
	cat.serviceErr = catalog.ErrServiceNotFound
	svc := NewService(cat, nil, time.UTC, nopLogger{})

	_, _, err := svc.Resolver(context.Background(), "svc-1")
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestResolver_SpanClippedToWindow(t *testing.T) {
	cat := newCatalog()
	svc := NewService(cat, nil, time.UTC, nopLogger{})

	// window ends in june, so months after it are never fetched
	_, _, err := svc.Resolver(context.Background(), "svc-1", day(2025, 6, 20), day(2026, 2, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, cat.calls)

	cat.calls = 0
	_, _, err = svc.Resolver(context.Background(), "svc-1", day(2026, 1, 1), day(2026, 2, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, cat.calls)
}

func TestToday_UsesCalendarTimezone(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// 22:30 UTC on 9 March is already 10 March in UTC+3
	svc := NewService(newCatalog(), nil, loc, nopLogger{}).
		WithTimeProvider(fixedTime{now: time.Date(2025, 3, 9, 22, 30, 0, 0, time.UTC)})

	assert.Equal(t, day(2025, 3, 10), svc.Today())
}

func TestNavigator(t *testing.T) {
	cat := newCatalog()
	svc := NewService(cat, nil, time.UTC, nopLogger{}).
		WithTimeProvider(fixedTime{now: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)})

	n := svc.Navigator(cat.service)
	assert.Equal(t, domain.MonthCursor{Year: 2025, Month: time.May}, n.Min())
	max, bounded := n.Max()
	assert.True(t, bounded)
	assert.Equal(t, domain.MonthCursor{Year: 2025, Month: time.June}, max)
}

func TestInvalidate(t *testing.T) {
	cache := newFakeCache()
	svc := NewService(newCatalog(), cache, time.UTC, nopLogger{})

	svc.Invalidate(context.Background(), "svc-1", day(2025, 3, 30), day(2025, 4, 2))
	assert.Equal(t, []domain.MonthCursor{march, april}, cache.invalidated)

	// no cache configured
	NewService(newCatalog(), nil, time.UTC, nopLogger{}).
		Invalidate(context.Background(), "svc-1", day(2025, 3, 30), day(2025, 4, 2))
}
