package confirm_reservation

import (
	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	sessionModels "github.com/m04kA/SMC-ReservationEngine/internal/service/sessions/models"
)

// Request модель запроса на подтверждение резерва
type Request struct {
	ServiceID     string
	ReservationID string
}

// Response результат подтверждения
type Response struct {
	Reservation *sessionModels.Status
	Hold        domain.ReservationHold // Резерв в том виде, в каком его вернул каталог

	// LateConfirm true, если сессия истекла, пока запрос был в пути
	// Каталог при этом подтвердил резерв, его ответ считается окончательным
	LateConfirm bool
}
