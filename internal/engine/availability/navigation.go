package availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

// Navigator bounds month navigation of the calendar.
// Backward navigation never passes the month containing today, and when a window is set
// navigation stays inside [window.From month, window.To month]. Moves outside are no-ops.
type Navigator struct {
	min domain.MonthCursor
	max domain.MonthCursor
	// bounded is false when there is no window, so forward navigation is unlimited
	bounded bool
}

// NewNavigator creates a navigator for today and an optional window
func NewNavigator(today time.Time, window *domain.AvailabilityWindow) *Navigator {
	n := &Navigator{min: domain.CursorOf(domain.DateOnly(today))}
	if window == nil {
		return n
	}

	if from := domain.CursorOf(window.From); from.After(n.min) {
		n.min = from
	}
	n.max = domain.CursorOf(window.To)
	n.bounded = true

	// Window entirely in the past: only the current month stays viewable
	if n.max.Before(n.min) {
		n.max = n.min
	}
	return n
}

// Min returns the earliest reachable month
func (n *Navigator) Min() domain.MonthCursor {
	return n.min
}

// Max returns the latest reachable month and whether there is such a bound
func (n *Navigator) Max() (domain.MonthCursor, bool) {
	return n.max, n.bounded
}

// Allowed returns true if the month can be displayed
func (n *Navigator) Allowed(c domain.MonthCursor) bool {
	if c.Before(n.min) {
		return false
	}
	if n.bounded && c.After(n.max) {
		return false
	}
	return true
}

// Prev moves one month back, staying put if not allowed
func (n *Navigator) Prev(c domain.MonthCursor) domain.MonthCursor {
	return n.Jump(c, c.AddMonths(-1))
}

// Next moves one month forward, staying put if not allowed
func (n *Navigator) Next(c domain.MonthCursor) domain.MonthCursor {
	return n.Jump(c, c.AddMonths(1))
}

// Jump moves to target if allowed, otherwise returns current unchanged
func (n *Navigator) Jump(current, target domain.MonthCursor) domain.MonthCursor {
	if !n.Allowed(target) {
		return current
	}
	return target
}

// CanGoBack returns true if Prev would move
func (n *Navigator) CanGoBack(c domain.MonthCursor) bool {
	return n.Allowed(c.AddMonths(-1))
}

// CanGoForward returns true if Next would move
func (n *Navigator) CanGoForward(c domain.MonthCursor) bool {
	return n.Allowed(c.AddMonths(1))
}

// Clamp maps an arbitrary month into the reachable bounds
func (n *Navigator) Clamp(c domain.MonthCursor) domain.MonthCursor {
	if c.Before(n.min) {
		return n.min
	}
	if n.bounded && c.After(n.max) {
		return n.max
	}
	return c
}

// YearOptions lists the years offered by the year picker: the current year and the next two,
// limited to years that contain at least one reachable month
func (n *Navigator) YearOptions() []int {
	years := make([]int, 0, domain.YearOptionsCount)
	for y := n.min.Year; y < n.min.Year+domain.YearOptionsCount; y++ {
		if n.bounded && y > n.max.Year {
			break
		}
		years = append(years, y)
	}
	return years
}
