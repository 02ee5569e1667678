package get_calendar

import (
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	engine "github.com/m04kA/SMC-ReservationEngine/internal/engine/availability"
)

// Навигация относительно запрошенного месяца
const (
	NavNone = ""
	NavPrev = "prev"
	NavNext = "next"
)

// Request модель запроса календаря
type Request struct {
	ServiceID string
	Year      *int   // Год (опционально, вместе с Month)
	Month     *int   // Месяц 1-12 (опционально, вместе с Year)
	Nav       string // "", "prev" или "next"
}

// Response сетка месяца с флагами навигации
type Response struct {
	ServiceID   string
	Title       string
	PricePerDay float64

	Month        domain.MonthCursor
	Today        time.Time
	Window       domain.AvailabilityWindow
	Days         []engine.DayCell
	CanGoBack    bool
	CanGoForward bool
	MinMonth     domain.MonthCursor
	MaxMonth     domain.MonthCursor
	YearOptions  []int
}
