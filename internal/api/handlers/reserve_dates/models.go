package reserve_dates

import (
	"github.com/m04kA/SMC-ReservationEngine/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	reserveDates "github.com/m04kA/SMC-ReservationEngine/internal/usecase/reserve_dates"
)

// ReserveDatesRequest HTTP request model
type ReserveDatesRequest struct {
	StartDate string `json:"startDate"` // "2025-03-20"
	EndDate   string `json:"endDate"`   // "2025-03-25"
}

// ReserveDatesResponse HTTP response model
type ReserveDatesResponse struct {
	*handlers.ReservationResponse
	PricePerDay float64 `json:"pricePerDay"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReserveDatesRequest) ToUseCaseRequest(serviceID string) (*reserveDates.Request, error) {
	start, err := domain.ParseDate(r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseDate(r.EndDate)
	if err != nil {
		return nil, err
	}

	return &reserveDates.Request{
		ServiceID: serviceID,
		StartDate: start,
		EndDate:   end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveDates.Response) *ReserveDatesResponse {
	return &ReserveDatesResponse{
		ReservationResponse: handlers.FromStatus(resp.Reservation),
		PricePerDay:         resp.PricePerDay,
	}
}

var reasonMessages = map[domain.SelectionFailureReason]string{
	domain.ReasonIncomplete:         "не выбраны даты начала и окончания",
	domain.ReasonInvertedRange:      "дата окончания раньше даты начала",
	domain.ReasonOutOfWindow:        "диапазон выходит за окно доступности услуги",
	domain.ReasonContainsBookedDate: "диапазон содержит занятые даты",
	domain.ReasonInPast:             "диапазон начинается в прошлом",
}

func reasonMessage(reason domain.SelectionFailureReason) string {
	if msg, ok := reasonMessages[reason]; ok {
		return msg
	}
	return msgInvalidRange
}
