package reserve_dates

import (
	"errors"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("reserve_dates: service not found")

	// ErrServiceInactive возвращается, когда услуга снята с публикации
	ErrServiceInactive = errors.New("reserve_dates: service is not active")

	// ErrInvalidRange возвращается, когда диапазон не прошёл локальную проверку
	ErrInvalidRange = errors.New("reserve_dates: invalid date range")

	// ErrDatesUnavailable возвращается, когда каталог сообщил, что даты уже заняты
	ErrDatesUnavailable = errors.New("reserve_dates: dates are no longer available")

	// ErrReserveRejected возвращается, когда каталог отклонил запрос резервирования
	ErrReserveRejected = errors.New("reserve_dates: reservation rejected by catalog")

	// ErrCatalogUnavailable возвращается, когда каталог услуг недоступен
	ErrCatalogUnavailable = errors.New("reserve_dates: catalog unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_dates: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_dates: internal error")
)

// RangeError отказ локальной проверки диапазона с причиной
type RangeError struct {
	Reason domain.SelectionFailureReason
}

func (e *RangeError) Error() string {
	return ErrInvalidRange.Error() + ": " + string(e.Reason)
}

func (e *RangeError) Unwrap() error {
	return ErrInvalidRange
}
