package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

// envelope общий формат ответа каталога
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Service детальная информация об услуге
type Service struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Category     string       `json:"category"`
	City         string       `json:"city"`
	PricePerDay  float64      `json:"pricePerDay"`
	IsActive     bool         `json:"isActive"`
	Availability Availability `json:"availability"`
}

// Availability окно доступности услуги
type Availability struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ReserveRequest тело запроса на резервирование дат
type ReserveRequest struct {
	StartDate string `json:"startDate"` // "2025-03-20"
	EndDate   string `json:"endDate"`
}

// Hold резерв, выданный каталогом
type Hold struct {
	ID         string  `json:"id"`
	MongoID    string  `json:"_id"` // старые ответы каталога отдают только _id
	ServiceID  string  `json:"serviceId"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	TotalPrice float64 `json:"totalPrice"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"createdAt"`
}

// toDomain конвертирует услугу в доменную модель
func (s *Service) toDomain() (*domain.ServiceDetails, error) {
	from, err := parseDate(s.Availability.From)
	if err != nil {
		return nil, fmt.Errorf("availability.from: %v", err)
	}
	to, err := parseDate(s.Availability.To)
	if err != nil {
		return nil, fmt.Errorf("availability.to: %v", err)
	}
	window, err := domain.NewAvailabilityWindow(from, to)
	if err != nil {
		return nil, err
	}

	return &domain.ServiceDetails{
		ID:           s.ID,
		Title:        s.Title,
		Category:     s.Category,
		City:         s.City,
		PricePerDay:  s.PricePerDay,
		IsActive:     s.IsActive,
		Availability: window,
	}, nil
}

// toDomain конвертирует резерв в доменную модель
func (h *Hold) toDomain() (*domain.ReservationHold, error) {
	id := h.ID
	if id == "" {
		id = h.MongoID
	}
	if id == "" {
		return nil, fmt.Errorf("empty reservation id")
	}
	start, err := parseDate(h.StartDate)
	if err != nil {
		return nil, fmt.Errorf("startDate: %v", err)
	}
	end, err := parseDate(h.EndDate)
	if err != nil {
		return nil, fmt.Errorf("endDate: %v", err)
	}
	status, err := parseHoldStatus(h.Status)
	if err != nil {
		return nil, err
	}
	// Без createdAt остаётся нулевое время, отсчёт начнётся с момента получения
	var createdAt time.Time
	if h.CreatedAt != "" {
		createdAt, err = time.Parse(time.RFC3339, h.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("createdAt: %v", err)
		}
	}

	return &domain.ReservationHold{
		ID:         id,
		ServiceID:  h.ServiceID,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: h.TotalPrice,
		Status:     status,
		CreatedAt:  createdAt,
	}, nil
}

// parseDate принимает YYYY-MM-DD или полную RFC3339 метку
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return domain.DateOnly(t), nil
	}
	return domain.ParseDate(s)
}

func parseHoldStatus(s string) (domain.HoldStatus, error) {
	switch strings.ToLower(s) {
	case "held", "pending", "reserved":
		return domain.HoldHeld, nil
	case "confirmed":
		return domain.HoldConfirmed, nil
	case "expired":
		return domain.HoldExpired, nil
	case "cancelled", "canceled":
		return domain.HoldCancelled, nil
	default:
		return "", fmt.Errorf("unknown hold status %q", s)
	}
}
