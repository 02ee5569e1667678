package reservation

import (
	"fmt"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

// Countdown is the MM:SS display form of the remaining seconds
type Countdown struct {
	Minutes int
	Seconds int
	// Urgent is advisory, true in the last minute
	Urgent bool
}

// NewCountdown splits remaining seconds into minutes and seconds
func NewCountdown(remaining int) Countdown {
	if remaining < 0 {
		remaining = 0
	}
	return Countdown{
		Minutes: remaining / 60,
		Seconds: remaining % 60,
		Urgent:  remaining < domain.UrgentThresholdSeconds,
	}
}

// String formats as zero-padded MM:SS
func (c Countdown) String() string {
	return fmt.Sprintf("%02d:%02d", c.Minutes, c.Seconds)
}
