package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidWindow is returned when an availability window ends before it starts
	ErrInvalidWindow = errors.New("domain: availability window must satisfy from <= to")

	// ErrInvalidDate is returned when a date string is not YYYY-MM-DD
	ErrInvalidDate = errors.New("domain: invalid date, expected YYYY-MM-DD")
)

// DayStatus represents how a calendar day can be interacted with
type DayStatus string

const (
	DayPast        DayStatus = "past"
	DayOutOfWindow DayStatus = "out_of_window"
	DayBooked      DayStatus = "booked"
	DayAvailable   DayStatus = "available"
)

// IsSelectable returns true if the day can be clicked
func (s DayStatus) IsSelectable() bool {
	return s == DayAvailable
}

// AvailabilityWindow is the inclusive range within which a service can ever be booked
type AvailabilityWindow struct {
	From time.Time
	To   time.Time
}

// NewAvailabilityWindow builds a window truncated to day granularity
func NewAvailabilityWindow(from, to time.Time) (AvailabilityWindow, error) {
	from, to = DateOnly(from), DateOnly(to)
	if from.After(to) {
		return AvailabilityWindow{}, fmt.Errorf("%w: from=%s, to=%s",
			ErrInvalidWindow, from.Format(DateFormat), to.Format(DateFormat))
	}
	return AvailabilityWindow{From: from, To: to}, nil
}

// MustNewAvailabilityWindow is like NewAvailabilityWindow but panics on an invalid window
func MustNewAvailabilityWindow(from, to time.Time) AvailabilityWindow {
	w, err := NewAvailabilityWindow(from, to)
	if err != nil {
		panic(err)
	}
	return w
}

// Contains returns true if the date lies inside the window (date-only comparison)
func (w AvailabilityWindow) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(w.From) && !d.After(w.To)
}

// MonthsWithin returns the months the inclusive [from, to] range touches inside the window,
// nil when the range misses the window entirely
func (w AvailabilityWindow) MonthsWithin(from, to time.Time) []MonthCursor {
	from, to = DateOnly(from), DateOnly(to)
	if from.After(to) {
		from, to = to, from
	}
	if from.Before(w.From) {
		from = w.From
	}
	if to.After(w.To) {
		to = w.To
	}
	if from.After(to) {
		return nil
	}
	return MonthsBetween(from, to)
}

// BookedDateSet maps a YYYY-MM-DD key to "is booked for this service"
type BookedDateSet map[string]bool

// IsBooked returns true if the date is marked as booked
func (s BookedDateSet) IsBooked(date time.Time) bool {
	return s[DateKey(date)]
}

// Merge combines several monthly sets into one, later sets win on conflicting keys
func Merge(sets ...BookedDateSet) BookedDateSet {
	merged := make(BookedDateSet)
	for _, set := range sets {
		for k, v := range set {
			merged[k] = v
		}
	}
	return merged
}

// DateSelection is the transient start/end pick of the user
type DateSelection struct {
	Start *time.Time
	End   *time.Time
}

// IsEmpty returns true if nothing is selected yet
func (s DateSelection) IsEmpty() bool {
	return s.Start == nil && s.End == nil
}

// IsComplete returns true if both bounds are set
func (s DateSelection) IsComplete() bool {
	return s.Start != nil && s.End != nil
}

// RangeValidation is the outcome of validating a selection
type RangeValidation struct {
	Valid  bool
	Reason SelectionFailureReason
}

// ValidRange is a successful validation result
func ValidRange() RangeValidation {
	return RangeValidation{Valid: true}
}

// InvalidRange is a failed validation result with the reason
func InvalidRange(reason SelectionFailureReason) RangeValidation {
	return RangeValidation{Valid: false, Reason: reason}
}

// MonthCursor identifies a displayed calendar month
type MonthCursor struct {
	Year  int
	Month time.Month
}

// CursorOf returns the month containing the date
func CursorOf(date time.Time) MonthCursor {
	return MonthCursor{Year: date.Year(), Month: date.Month()}
}

// FirstDay returns the first day of the month
func (c MonthCursor) FirstDay() time.Time {
	return time.Date(c.Year, c.Month, 1, 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days in the month
func (c MonthCursor) DaysIn() int {
	return time.Date(c.Year, c.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths shifts the cursor by n months (n may be negative)
func (c MonthCursor) AddMonths(n int) MonthCursor {
	return CursorOf(c.FirstDay().AddDate(0, n, 0))
}

// Before returns true if the cursor is strictly earlier than other
func (c MonthCursor) Before(other MonthCursor) bool {
	if c.Year != other.Year {
		return c.Year < other.Year
	}
	return c.Month < other.Month
}

// After returns true if the cursor is strictly later than other
func (c MonthCursor) After(other MonthCursor) bool {
	return other.Before(c)
}

// String formats the cursor as YYYY-MM
func (c MonthCursor) String() string {
	return c.FirstDay().Format(MonthKey)
}

// DateOnly drops the time of day, keeping the calendar date as seen in the value's location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateKey formats the calendar date as YYYY-MM-DD
func DateKey(t time.Time) string {
	return DateOnly(t).Format(DateFormat)
}

// ParseDate parses a YYYY-MM-DD string
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// MonthsBetween returns every month touched by the inclusive [from, to] range
func MonthsBetween(from, to time.Time) []MonthCursor {
	start, end := CursorOf(DateOnly(from)), CursorOf(DateOnly(to))
	if start.After(end) {
		start, end = end, start
	}
	months := make([]MonthCursor, 0, 1)
	for c := start; !c.After(end); c = c.AddMonths(1) {
		months = append(months, c)
	}
	return months
}
