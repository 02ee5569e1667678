package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

func TestMonthGrid_Layout(t *testing.T) {
	r := marchResolver()

	// 1 March 2025 is a Saturday
	cells := r.MonthGrid(2025, time.March)
	require.Len(t, cells, 6+31)

	for i := 0; i < 6; i++ {
		assert.True(t, cells[i].IsBlank(), "cell %d", i)
	}

	first := cells[6]
	assert.Equal(t, 1, first.Day)
	assert.Equal(t, domain.DayPast, first.Status)

	last := cells[len(cells)-1]
	assert.Equal(t, 31, last.Day)
	assert.Equal(t, domain.DayAvailable, last.Status)

	booked := cells[6+14]
	assert.Equal(t, 15, booked.Day)
	assert.Equal(t, domain.DayBooked, booked.Status)

	today := cells[6+9]
	assert.Equal(t, 10, today.Day)
	assert.True(t, today.IsToday)
	assert.Equal(t, domain.DayAvailable, today.Status)

	for i := 7; i < len(cells); i++ {
		assert.Equal(t, cells[i-1].Day+1, cells[i].Day)
	}
}

func TestMonthGrid_NoLeadingCellsOnSunday(t *testing.T) {
	r := NewResolver(nil, nil, day(2025, 6, 1))

	// 1 June 2025 is a Sunday
	cells := r.MonthGrid(2025, time.June)
	require.Len(t, cells, 30)
	assert.Equal(t, 1, cells[0].Day)
}

func TestMonthGrid_LeapFebruary(t *testing.T) {
	r := NewResolver(nil, nil, day(2024, 1, 1))

	cells := r.MonthGrid(2024, time.February)
	// 1 Feb 2024 is a Thursday
	require.Len(t, cells, 4+29)
	assert.Equal(t, 29, cells[len(cells)-1].Day)
}

func TestMonthGrid_IsPureFunctionOfInputs(t *testing.T) {
	r := marchResolver()
	assert.Equal(t, r.MonthGrid(2025, time.March), r.MonthGrid(2025, time.March))
}

func TestNavigator_BoundedByTodayAndWindow(t *testing.T) {
	window := domain.MustNewAvailabilityWindow(day(2025, 1, 10), day(2025, 5, 20))
	n := NewNavigator(day(2025, 3, 10), &window)

	march := domain.MonthCursor{Year: 2025, Month: time.March}
	may := domain.MonthCursor{Year: 2025, Month: time.May}

	assert.Equal(t, march, n.Prev(march), "cannot move before today's month")
	assert.False(t, n.CanGoBack(march))
	assert.True(t, n.CanGoForward(march))

	assert.Equal(t, domain.MonthCursor{Year: 2025, Month: time.April}, n.Next(march))
	assert.Equal(t, may, n.Next(may), "cannot move past the window end")
	assert.False(t, n.CanGoForward(may))

	assert.Equal(t, march, n.Jump(march, domain.MonthCursor{Year: 2026, Month: time.January}))
	assert.Equal(t, may, n.Jump(march, may))
}

func TestNavigator_WindowStartsLater(t *testing.T) {
	window := domain.MustNewAvailabilityWindow(day(2025, 6, 1), day(2025, 8, 31))
	n := NewNavigator(day(2025, 3, 10), &window)

	june := domain.MonthCursor{Year: 2025, Month: time.June}
	assert.Equal(t, june, n.Min())
	assert.Equal(t, june, n.Prev(june))
	assert.Equal(t, june, n.Clamp(domain.MonthCursor{Year: 2025, Month: time.March}))
	assert.Equal(t, domain.MonthCursor{Year: 2025, Month: time.August}, n.Clamp(domain.MonthCursor{Year: 2027, Month: time.January}))
}

func TestNavigator_WindowInPast(t *testing.T) {
	window := domain.MustNewAvailabilityWindow(day(2024, 1, 1), day(2024, 2, 1))
	n := NewNavigator(day(2025, 3, 10), &window)

	march := domain.MonthCursor{Year: 2025, Month: time.March}
	assert.Equal(t, march, n.Clamp(domain.MonthCursor{Year: 2024, Month: time.January}))
	assert.False(t, n.CanGoBack(march))
	assert.False(t, n.CanGoForward(march))
}

func TestNavigator_Unbounded(t *testing.T) {
	n := NewNavigator(day(2025, 12, 1), nil)

	dec := domain.MonthCursor{Year: 2025, Month: time.December}
	assert.Equal(t, domain.MonthCursor{Year: 2026, Month: time.January}, n.Next(dec))
	assert.Equal(t, dec, n.Prev(dec))
	assert.Equal(t, []int{2025, 2026, 2027}, n.YearOptions())

	_, bounded := n.Max()
	assert.False(t, bounded)
}

func TestNavigator_YearOptionsClippedToWindow(t *testing.T) {
	window := domain.MustNewAvailabilityWindow(day(2025, 1, 1), day(2026, 3, 1))
	n := NewNavigator(day(2025, 3, 10), &window)

	assert.Equal(t, []int{2025, 2026}, n.YearOptions())
}
