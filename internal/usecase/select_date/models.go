package select_date

import (
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

// Request клик по дате при текущем выборе
type Request struct {
	ServiceID string
	Candidate time.Time
	Current   domain.DateSelection
}

// Response новый выбор и результат его проверки
type Response struct {
	Selection       domain.DateSelection
	Accepted        bool             // false - клик отклонён, выбор не изменился
	CandidateStatus domain.DayStatus // Статус кликнутого дня
	Validation      domain.RangeValidation
}
