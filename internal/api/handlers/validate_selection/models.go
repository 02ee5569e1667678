package validate_selection

import (
	"github.com/m04kA/SMC-ReservationEngine/internal/api/handlers"
	validateSelection "github.com/m04kA/SMC-ReservationEngine/internal/usecase/validate_selection"
)

// ValidateSelectionResponse HTTP response model
type ValidateSelectionResponse struct {
	handlers.ValidationDTO
	PricePerDay float64 `json:"pricePerDay"`
	TotalDays   int     `json:"totalDays"`
	TotalPrice  float64 `json:"totalPrice"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validateSelection.Response) *ValidateSelectionResponse {
	return &ValidateSelectionResponse{
		ValidationDTO: handlers.FromValidation(resp.Validation),
		PricePerDay:   resp.PricePerDay,
		TotalDays:     resp.TotalDays,
		TotalPrice:    resp.TotalPrice,
	}
}
