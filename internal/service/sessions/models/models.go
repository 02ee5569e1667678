package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	engine "github.com/m04kA/SMC-ReservationEngine/internal/engine/reservation"
)

// Status состояние сессии резервирования вместе с данными резерва
type Status struct {
	ReservationID    string
	ServiceID        string
	StartDate        time.Time
	EndDate          time.Time
	TotalPrice       float64
	TotalDays        int
	State            domain.SessionState
	HoldStatus       domain.HoldStatus
	RemainingSeconds int
	Countdown        string // MM:SS
	Urgent           bool
	CreatedAt        time.Time
	ExpiresAt        time.Time
	FinishedAt       *time.Time

	// Live true, если сессия находится в реестре текущего процесса
	Live bool
}

// FromSession строит статус по живой сессии
func FromSession(hold domain.ReservationHold, snap engine.Snapshot) *Status {
	return &Status{
		ReservationID:    hold.ID,
		ServiceID:        hold.ServiceID,
		StartDate:        hold.StartDate,
		EndDate:          hold.EndDate,
		TotalPrice:       hold.TotalPrice,
		TotalDays:        hold.TotalDays(),
		State:            snap.State,
		HoldStatus:       snap.State.HoldStatus(),
		RemainingSeconds: snap.Remaining,
		Countdown:        snap.Countdown.String(),
		Urgent:           snap.State == domain.SessionActive && snap.Countdown.Urgent,
		CreatedAt:        hold.CreatedAt,
		ExpiresAt:        hold.ExpiresAt,
		FinishedAt:       snap.FinishedAt,
		Live:             true,
	}
}

// FromRecord строит статус по записи журнала
func FromRecord(rec *domain.SessionRecord) *Status {
	hold := domain.ReservationHold{StartDate: rec.StartDate, EndDate: rec.EndDate}
	countdown := engine.NewCountdown(rec.RemainingSeconds)

	return &Status{
		ReservationID:    rec.ReservationID,
		ServiceID:        rec.ServiceID,
		StartDate:        rec.StartDate,
		EndDate:          rec.EndDate,
		TotalPrice:       rec.TotalPrice,
		TotalDays:        hold.TotalDays(),
		State:            rec.State,
		HoldStatus:       rec.State.HoldStatus(),
		RemainingSeconds: rec.RemainingSeconds,
		Countdown:        countdown.String(),
		Urgent:           false,
		CreatedAt:        rec.CreatedAt,
		ExpiresAt:        rec.ExpiresAt,
		FinishedAt:       rec.FinishedAt,
		Live:             false,
	}
}
