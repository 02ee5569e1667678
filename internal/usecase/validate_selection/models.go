package validate_selection

import "github.com/m04kA/SMC-ReservationEngine/internal/domain"

// Request выбор дат для проверки
type Request struct {
	ServiceID string
	Selection domain.DateSelection
}

// Response результат проверки и предварительная стоимость
type Response struct {
	Validation  domain.RangeValidation
	PricePerDay float64
	TotalDays   int     // 0, если диапазон не прошёл проверку
	TotalPrice  float64 // TotalDays * PricePerDay
}
