package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("catalog client: service not found")

	// ErrReservationNotFound возвращается, когда резерв не найден (истёк или уже отменён)
	ErrReservationNotFound = errors.New("catalog client: reservation not found")

	// ErrConflict возвращается, когда даты уже заняты или резерв в неподходящем статусе
	ErrConflict = errors.New("catalog client: conflict")

	// ErrRejected возвращается, когда каталог отклонил запрос как некорректный
	ErrRejected = errors.New("catalog client: request rejected")

	// ErrInvalidResponse возвращается при некорректном ответе от каталога
	ErrInvalidResponse = errors.New("catalog client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalog client: internal error")
)
