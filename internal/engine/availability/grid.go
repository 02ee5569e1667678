package availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

// DayCell is one cell of the month grid. Leading blank cells have Day == 0.
type DayCell struct {
	Day     int
	Date    time.Time
	Status  domain.DayStatus
	IsToday bool
}

// IsBlank returns true for alignment cells before day 1
func (c DayCell) IsBlank() bool {
	return c.Day == 0
}

// MonthGrid builds the display grid of a month: one blank cell per weekday before day 1
// (Sunday = 0), then every day of the month in ascending order with its status.
// The grid is recomputed from the resolver on every call.
func (r *Resolver) MonthGrid(year int, month time.Month) []DayCell {
	cursor := domain.MonthCursor{Year: year, Month: month}
	first := cursor.FirstDay()
	// normalize overflowing months (e.g. month 13)
	cursor = domain.CursorOf(first)

	leading := int(first.Weekday())
	days := cursor.DaysIn()

	cells := make([]DayCell, 0, leading+days)
	for i := 0; i < leading; i++ {
		cells = append(cells, DayCell{})
	}

	for day := 1; day <= days; day++ {
		date := time.Date(cursor.Year, cursor.Month, day, 0, 0, 0, 0, time.UTC)
		cells = append(cells, DayCell{
			Day:     day,
			Date:    date,
			Status:  r.DayStatus(date),
			IsToday: date.Equal(r.today),
		})
	}

	return cells
}
