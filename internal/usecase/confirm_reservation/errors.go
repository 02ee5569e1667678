package confirm_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда сессия резерва не найдена
	ErrReservationNotFound = errors.New("confirm_reservation: reservation not found")

	// ErrNotActive возвращается, когда сессия уже подтверждена, отменена или истекла
	ErrNotActive = errors.New("confirm_reservation: reservation is not active")

	// ErrConfirmRejected возвращается, когда каталог отказал в подтверждении
	ErrConfirmRejected = errors.New("confirm_reservation: confirmation rejected by catalog")

	// ErrCatalogUnavailable возвращается, когда каталог услуг недоступен
	ErrCatalogUnavailable = errors.New("confirm_reservation: catalog unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_reservation: internal error")
)
