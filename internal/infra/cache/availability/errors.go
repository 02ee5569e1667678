package availability

import "errors"

var (
	// ErrCacheMiss возвращается, когда месяц отсутствует в кэше
	ErrCacheMiss = errors.New("availability.cache: miss")

	// ErrCache возвращается при ошибках работы с Redis
	ErrCache = errors.New("availability.cache: redis error")

	// ErrDecode возвращается, когда закэшированное значение не удалось разобрать
	ErrDecode = errors.New("availability.cache: failed to decode value")
)
