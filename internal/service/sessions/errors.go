package sessions

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена ни в реестре, ни в журнале
	ErrSessionNotFound = errors.New("sessions.service: session not found")

	// ErrSessionExists возвращается при повторном запуске сессии того же резерва
	ErrSessionExists = errors.New("sessions.service: session already exists")

	// ErrSessionNotActive возвращается, когда сессия уже завершена
	ErrSessionNotActive = errors.New("sessions.service: session is not active")

	// ErrInvalidHold возвращается, когда по резерву нельзя запустить отсчёт
	ErrInvalidHold = errors.New("sessions.service: invalid reservation hold")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("sessions.service: internal error")
)
