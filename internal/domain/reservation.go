package domain

import "time"

// HoldStatus represents the server-side status of a reservation hold
type HoldStatus string

const (
	HoldHeld      HoldStatus = "held"
	HoldConfirmed HoldStatus = "confirmed"
	HoldExpired   HoldStatus = "expired"
	HoldCancelled HoldStatus = "cancelled"
)

// SessionState represents the client-side countdown state of a hold
type SessionState string

const (
	SessionActive    SessionState = "active"
	SessionConfirmed SessionState = "confirmed"
	SessionExpired   SessionState = "expired"
	SessionCancelled SessionState = "cancelled"
)

// IsTerminal returns true if no further transition is possible
func (s SessionState) IsTerminal() bool {
	return s == SessionConfirmed || s == SessionExpired || s == SessionCancelled
}

// HoldStatus maps the session state onto the hold status it implies
func (s SessionState) HoldStatus() HoldStatus {
	switch s {
	case SessionConfirmed:
		return HoldConfirmed
	case SessionExpired:
		return HoldExpired
	case SessionCancelled:
		return HoldCancelled
	default:
		return HoldHeld
	}
}

// ReservationHold represents a server-issued temporary reservation of a date range
type ReservationHold struct {
	ID         string
	ServiceID  string
	StartDate  time.Time
	EndDate    time.Time
	TotalPrice float64
	Status     HoldStatus
	CreatedAt  time.Time
	ExpiresAt  time.Time // CreatedAt + TTL, derived on receipt
}

// WithTTL returns a copy with ExpiresAt derived from CreatedAt
func (h ReservationHold) WithTTL(ttl time.Duration) ReservationHold {
	h.ExpiresAt = h.CreatedAt.Add(ttl)
	return h
}

// TotalDays returns the inclusive number of booked days
func (h *ReservationHold) TotalDays() int {
	start, end := DateOnly(h.StartDate), DateOnly(h.EndDate)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// IsHeld returns true if the hold still awaits confirmation
func (h *ReservationHold) IsHeld() bool {
	return h.Status == HoldHeld
}

// SessionRecord is the journal entry of one reservation session
type SessionRecord struct {
	ReservationID    string
	ServiceID        string
	StartDate        time.Time
	EndDate          time.Time
	TotalPrice       float64
	State            SessionState
	RemainingSeconds int
	CreatedAt        time.Time
	ExpiresAt        time.Time
	FinishedAt       *time.Time
}

// NewSessionRecord builds a journal entry for a freshly started session
func NewSessionRecord(hold ReservationHold, remainingSeconds int) *SessionRecord {
	return &SessionRecord{
		ReservationID:    hold.ID,
		ServiceID:        hold.ServiceID,
		StartDate:        hold.StartDate,
		EndDate:          hold.EndDate,
		TotalPrice:       hold.TotalPrice,
		State:            SessionActive,
		RemainingSeconds: remainingSeconds,
		CreatedAt:        hold.CreatedAt,
		ExpiresAt:        hold.ExpiresAt,
	}
}

// ServiceDetails is the part of the catalog service detail the engine consumes
type ServiceDetails struct {
	ID           string
	Title        string
	Category     string
	City         string
	PricePerDay  float64
	IsActive     bool
	Availability AvailabilityWindow
}
