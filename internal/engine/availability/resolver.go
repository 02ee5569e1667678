// Package availability resolves which calendar days of a service can be picked and
// validates a chosen date range against the availability window and booked days.
//
// All operations are pure: a Resolver is an immutable snapshot of (window, booked days, today)
// and never fails on ordinary bad input; rejected clicks and invalid ranges are reported as values.
package availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

// Resolver computes day statuses for one service
type Resolver struct {
	window *domain.AvailabilityWindow
	booked domain.BookedDateSet
	today  time.Time
}

// NewResolver creates a resolver. A nil window means the service has no window restriction.
func NewResolver(window *domain.AvailabilityWindow, booked domain.BookedDateSet, today time.Time) *Resolver {
	if booked == nil {
		booked = domain.BookedDateSet{}
	}
	return &Resolver{
		window: window,
		booked: booked,
		today:  domain.DateOnly(today),
	}
}

// Today returns the resolver's notion of today
func (r *Resolver) Today() time.Time {
	return r.today
}

// Window returns the availability window, nil if unrestricted
func (r *Resolver) Window() *domain.AvailabilityWindow {
	return r.window
}

// DayStatus returns the status of a date. PAST wins over OUT_OF_WINDOW, which wins over BOOKED.
func (r *Resolver) DayStatus(date time.Time) domain.DayStatus {
	d := domain.DateOnly(date)

	if d.Before(r.today) {
		return domain.DayPast
	}
	if r.window != nil && !r.window.Contains(d) {
		return domain.DayOutOfWindow
	}
	if r.booked.IsBooked(d) {
		return domain.DayBooked
	}
	return domain.DayAvailable
}

// SelectDate applies a click to the current selection.
// Returns the new selection and whether the click was accepted; a rejected click leaves the selection unchanged.
func (r *Resolver) SelectDate(candidate time.Time, current domain.DateSelection) (domain.DateSelection, bool) {
	if !r.DayStatus(candidate).IsSelectable() {
		return current, false
	}

	c := domain.DateOnly(candidate)

	// First click, or range already complete: restart
	if current.Start == nil || current.End != nil {
		return domain.DateSelection{Start: &c}, true
	}

	// Clicking before the start moves the start instead of failing
	if c.Before(domain.DateOnly(*current.Start)) {
		return domain.DateSelection{Start: &c}, true
	}

	start := domain.DateOnly(*current.Start)
	return domain.DateSelection{Start: &start, End: &c}, true
}

// ValidateRange checks a selection. Reasons are checked in order:
// incomplete, inverted_range, out_of_window, contains_booked_date, in_past.
func (r *Resolver) ValidateRange(selection domain.DateSelection) domain.RangeValidation {
	if !selection.IsComplete() {
		return domain.InvalidRange(domain.ReasonIncomplete)
	}

	start, end := domain.DateOnly(*selection.Start), domain.DateOnly(*selection.End)

	if start.After(end) {
		return domain.InvalidRange(domain.ReasonInvertedRange)
	}

	if r.window != nil && (!r.window.Contains(start) || !r.window.Contains(end)) {
		return domain.InvalidRange(domain.ReasonOutOfWindow)
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if r.DayStatus(d) == domain.DayBooked {
			return domain.InvalidRange(domain.ReasonContainsBookedDate)
		}
	}

	if start.Before(r.today) {
		return domain.InvalidRange(domain.ReasonInPast)
	}

	return domain.ValidRange()
}
