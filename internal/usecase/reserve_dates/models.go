package reserve_dates

import (
	"time"

	sessionModels "github.com/m04kA/SMC-ReservationEngine/internal/service/sessions/models"
)

// Request модель запроса на резервирование дат
type Request struct {
	ServiceID string
	StartDate time.Time
	EndDate   time.Time
}

// Response запущенная сессия подтверждения
type Response struct {
	Reservation *sessionModels.Status
	PricePerDay float64
}
