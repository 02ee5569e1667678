package handlers

import (
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	sessionModels "github.com/m04kA/SMC-ReservationEngine/internal/service/sessions/models"
	"github.com/m04kA/SMC-ReservationEngine/pkg/ptr"
)

// ReservationResponse состояние резерва и отсчёта подтверждения
type ReservationResponse struct {
	ReservationID    string  `json:"reservationId"`
	ServiceID        string  `json:"serviceId"`
	StartDate        string  `json:"startDate"`
	EndDate          string  `json:"endDate"`
	TotalDays        int     `json:"totalDays"`
	TotalPrice       float64 `json:"totalPrice"`
	State            string  `json:"state"`
	HoldStatus       string  `json:"holdStatus"`
	RemainingSeconds int     `json:"remainingSeconds"`
	Countdown        string  `json:"countdown"`
	Urgent           bool    `json:"urgent"`
	CreatedAt        string  `json:"createdAt"`
	ExpiresAt        string  `json:"expiresAt"`
	FinishedAt       *string `json:"finishedAt,omitempty"`
	Live             bool    `json:"live"`
}

// FromStatus конвертирует статус сессии в HTTP ответ
func FromStatus(s *sessionModels.Status) *ReservationResponse {
	resp := &ReservationResponse{
		ReservationID:    s.ReservationID,
		ServiceID:        s.ServiceID,
		StartDate:        s.StartDate.Format(domain.DateFormat),
		EndDate:          s.EndDate.Format(domain.DateFormat),
		TotalDays:        s.TotalDays,
		TotalPrice:       s.TotalPrice,
		State:            string(s.State),
		HoldStatus:       string(s.HoldStatus),
		RemainingSeconds: s.RemainingSeconds,
		Countdown:        s.Countdown,
		Urgent:           s.Urgent,
		CreatedAt:        s.CreatedAt.Format(time.RFC3339),
		ExpiresAt:        s.ExpiresAt.Format(time.RFC3339),
		Live:             s.Live,
	}
	if s.FinishedAt != nil {
		resp.FinishedAt = ptr.Ptr(s.FinishedAt.Format(time.RFC3339))
	}
	return resp
}

// SelectionDTO выбор дат в формате YYYY-MM-DD
type SelectionDTO struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// ToDomain разбирает даты выбора
func (s SelectionDTO) ToDomain() (domain.DateSelection, error) {
	var sel domain.DateSelection
	if s.Start != nil {
		start, err := domain.ParseDate(*s.Start)
		if err != nil {
			return sel, err
		}
		sel.Start = &start
	}
	if s.End != nil {
		end, err := domain.ParseDate(*s.End)
		if err != nil {
			return sel, err
		}
		sel.End = &end
	}
	return sel, nil
}

// FromSelection форматирует выбор дат
func FromSelection(sel domain.DateSelection) SelectionDTO {
	var dto SelectionDTO
	if sel.Start != nil {
		dto.Start = ptr.Ptr(domain.DateKey(*sel.Start))
	}
	if sel.End != nil {
		dto.End = ptr.Ptr(domain.DateKey(*sel.End))
	}
	return dto
}

// ValidationDTO результат проверки диапазона
type ValidationDTO struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// FromValidation конвертирует результат проверки
func FromValidation(v domain.RangeValidation) ValidationDTO {
	return ValidationDTO{Valid: v.Valid, Reason: string(v.Reason)}
}
