package get_calendar

import (
	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	getCalendar "github.com/m04kA/SMC-ReservationEngine/internal/usecase/get_calendar"
)

// CalendarResponse HTTP response model
type CalendarResponse struct {
	ServiceID    string         `json:"serviceId"`
	Title        string         `json:"title"`
	PricePerDay  float64        `json:"pricePerDay"`
	Year         int            `json:"year"`
	Month        int            `json:"month"`
	Today        string         `json:"today"`
	Window       WindowResponse `json:"availability"`
	Days         []DayResponse  `json:"days"`
	CanGoBack    bool           `json:"canGoBack"`
	CanGoForward bool           `json:"canGoForward"`
	MinMonth     string         `json:"minMonth"` // YYYY-MM
	MaxMonth     string         `json:"maxMonth"`
	YearOptions  []int          `json:"yearOptions"`
}

// WindowResponse окно доступности услуги
type WindowResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// DayResponse ячейка сетки; у пустых ячеек day = 0 и нет даты
type DayResponse struct {
	Day        int    `json:"day"`
	Date       string `json:"date,omitempty"`
	Status     string `json:"status,omitempty"`
	Selectable bool   `json:"selectable"`
	IsToday    bool   `json:"isToday"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	days := make([]DayResponse, 0, len(resp.Days))
	for _, cell := range resp.Days {
		if cell.IsBlank() {
			days = append(days, DayResponse{})
			continue
		}
		days = append(days, DayResponse{
			Day:        cell.Day,
			Date:       cell.Date.Format(domain.DateFormat),
			Status:     string(cell.Status),
			Selectable: cell.Status.IsSelectable(),
			IsToday:    cell.IsToday,
		})
	}

	return &CalendarResponse{
		ServiceID:   resp.ServiceID,
		Title:       resp.Title,
		PricePerDay: resp.PricePerDay,
		Year:        resp.Month.Year,
		Month:       int(resp.Month.Month),
		Today:       resp.Today.Format(domain.DateFormat),
		Window: WindowResponse{
			From: resp.Window.From.Format(domain.DateFormat),
			To:   resp.Window.To.Format(domain.DateFormat),
		},
		Days:         days,
		CanGoBack:    resp.CanGoBack,
		CanGoForward: resp.CanGoForward,
		MinMonth:     resp.MinMonth.String(),
		MaxMonth:     resp.MaxMonth.String(),
		YearOptions:  resp.YearOptions,
	}
}
