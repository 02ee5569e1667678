package domain

// Reservation defaults
const (
	DefaultReservationTTLSeconds = 300 // 5 minutes to confirm a hold
	UrgentThresholdSeconds       = 60
	TickIntervalSeconds          = 1
)

// Calendar constants
const (
	YearOptionsCount = 3 // current year + next 2
	DaysInWeek       = 7
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
	MonthKey   = "2006-01"    // YYYY-MM
)

// SelectionFailureReason explains why a date range cannot be reserved
type SelectionFailureReason string

const (
	ReasonIncomplete         SelectionFailureReason = "incomplete"
	ReasonInvertedRange      SelectionFailureReason = "inverted_range"
	ReasonOutOfWindow        SelectionFailureReason = "out_of_window"
	ReasonContainsBookedDate SelectionFailureReason = "contains_booked_date"
	ReasonInPast             SelectionFailureReason = "in_past"
)

// FinishedStates список терминальных состояний сессии
// state=finished в списке резервов раскрывается в этот набор
var FinishedStates = []SessionState{
	SessionConfirmed,
	SessionExpired,
	SessionCancelled,
}
