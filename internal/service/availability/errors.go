package availability

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("availability.service: service not found")

	// ErrCatalogUnavailable возвращается, когда каталог не ответил или ответил некорректно
	ErrCatalogUnavailable = errors.New("availability.service: catalog unavailable")
)
