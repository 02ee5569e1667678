package list_service_reservations

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-ReservationEngine/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	"github.com/m04kA/SMC-ReservationEngine/internal/service/sessions/models"
)

const (
	defaultLimit = 50
	maxLimit     = 500

	stateFinished = "finished"
)

// ListQuery разобранные query параметры списка
type ListQuery struct {
	States []domain.SessionState
	Limit  uint64
}

// ParseQuery разбирает state и limit
// state=finished раскрывается во все терминальные состояния
func ParseQuery(stateStr, limitStr string) (*ListQuery, error) {
	q := &ListQuery{Limit: defaultLimit}

	switch state := domain.SessionState(stateStr); {
	case stateStr == "":
	case stateStr == stateFinished:
		q.States = domain.FinishedStates
	case state == domain.SessionActive || state.IsTerminal():
		q.States = []domain.SessionState{state}
	default:
		return nil, fmt.Errorf("unknown state %q", stateStr)
	}

	if limitStr != "" {
		limit, err := strconv.ParseUint(limitStr, 10, 64)
		if err != nil || limit == 0 {
			return nil, fmt.Errorf("invalid limit %q", limitStr)
		}
		if limit > maxLimit {
			limit = maxLimit
		}
		q.Limit = limit
	}

	return q, nil
}

// ReservationListResponse HTTP response model
type ReservationListResponse struct {
	ServiceID    string                          `json:"serviceId"`
	Reservations []*handlers.ReservationResponse `json:"reservations"`
	Total        int                             `json:"total"`
}

// FromStatuses конвертирует статусы сессий в HTTP response
func FromStatuses(serviceID string, statuses []*models.Status) *ReservationListResponse {
	items := make([]*handlers.ReservationResponse, 0, len(statuses))
	for _, s := range statuses {
		items = append(items, handlers.FromStatus(s))
	}
	return &ReservationListResponse{
		ServiceID:    serviceID,
		Reservations: items,
		Total:        len(items),
	}
}
