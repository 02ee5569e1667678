package reservation

import "errors"

var (
	// ErrSessionNotFound возвращается, когда запись сессии не найдена
	ErrSessionNotFound = errors.New("reservation.repository: session not found")

	// ErrSessionExists возвращается при повторной записи той же сессии
	ErrSessionExists = errors.New("reservation.repository: session already exists")

	// ErrAlreadyFinished возвращается при попытке завершить уже завершённую сессию
	ErrAlreadyFinished = errors.New("reservation.repository: session already finished")

	// ErrInvalidState возвращается при попытке записать недопустимое состояние
	ErrInvalidState = errors.New("reservation.repository: invalid session state")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
