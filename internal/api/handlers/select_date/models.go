package select_date

import (
	"github.com/m04kA/SMC-ReservationEngine/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	selectDate "github.com/m04kA/SMC-ReservationEngine/internal/usecase/select_date"
)

// SelectDateRequest HTTP request model
type SelectDateRequest struct {
	Candidate string                `json:"candidate"` // "2025-03-12"
	Selection handlers.SelectionDTO `json:"selection"`
}

// SelectDateResponse HTTP response model
type SelectDateResponse struct {
	Selection       handlers.SelectionDTO  `json:"selection"`
	Accepted        bool                   `json:"accepted"`
	CandidateStatus string                 `json:"candidateStatus"`
	Validation      handlers.ValidationDTO `json:"validation"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SelectDateRequest) ToUseCaseRequest(serviceID string) (*selectDate.Request, error) {
	candidate, err := domain.ParseDate(r.Candidate)
	if err != nil {
		return nil, err
	}

	current, err := r.Selection.ToDomain()
	if err != nil {
		return nil, err
	}

	return &selectDate.Request{
		ServiceID: serviceID,
		Candidate: candidate,
		Current:   current,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *selectDate.Response) *SelectDateResponse {
	return &SelectDateResponse{
		Selection:       handlers.FromSelection(resp.Selection),
		Accepted:        resp.Accepted,
		CandidateStatus: string(resp.CandidateStatus),
		Validation:      handlers.FromValidation(resp.Validation),
	}
}
