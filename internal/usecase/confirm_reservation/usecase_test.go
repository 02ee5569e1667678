package confirm_reservation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	catalogClient "github.com/m04kA/SMC-ReservationEngine/internal/integrations/catalog"
	sessionsService "github.com/m04kA/SMC-ReservationEngine/internal/service/sessions"
	sessionModels "github.com/m04kA/SMC-ReservationEngine/internal/service/sessions/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeSessions struct {
	hold         domain.ReservationHold
	state        domain.SessionState
	holdErr      error
	lateExpiry   bool
	confirmCalls int
	beginErr     error
	inFlight     int
	ended        []bool
}

func (f *fakeSessions) BeginConfirm(string) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	f.inFlight++
	return nil
}

func (f *fakeSessions) EndConfirm(_ string, upstreamConfirmed bool) {
	f.inFlight--
	f.ended = append(f.ended, upstreamConfirmed)
}

func (f *fakeSessions) Hold(string) (domain.ReservationHold, domain.SessionState, error) {
	if f.holdErr != nil {
		return domain.ReservationHold{}, "", f.holdErr
	}
	return f.hold, f.state, nil
}

func (f *fakeSessions) Confirm(string, *domain.ReservationHold) (bool, error) {
	f.confirmCalls++
	if f.lateExpiry {
		f.state = domain.SessionExpired
		return false, nil
	}
	f.state = domain.SessionConfirmed
	return true, nil
}

func (f *fakeSessions) Get(_ context.Context, id string) (*sessionModels.Status, error) {
	return &sessionModels.Status{ReservationID: id, State: f.state, Live: true}, nil
}

type fakeCatalog struct {
	err      error
	calls    int
	sessions *fakeSessions
	inFlight int
}

func (f *fakeCatalog) Confirm(_ context.Context, serviceID, reservationID string) (*domain.ReservationHold, error) {
	f.calls++
	if f.sessions != nil {
		f.inFlight = f.sessions.inFlight
	}
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ReservationHold{ID: reservationID, ServiceID: serviceID, Status: domain.HoldConfirmed, TotalPrice: 600}, nil
}

func newFakes() (*fakeSessions, *fakeCatalog) {
	sessions := &fakeSessions{
		hold:  domain.ReservationHold{ID: "res-1", ServiceID: "svc-1", Status: domain.HoldHeld},
		state: domain.SessionActive,
	}
	return sessions, &fakeCatalog{sessions: sessions}
}

var req = &Request{ServiceID: "svc-1", ReservationID: "res-1"}

func TestExecute_Success(t *testing.T) {
	sessions, catalog := newFakes()

	resp, err := NewUseCase(sessions, catalog, nopLogger{}).Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionConfirmed, resp.Reservation.State)
	assert.Equal(t, domain.HoldConfirmed, resp.Hold.Status)
	assert.False(t, resp.LateConfirm)

	assert.Equal(t, 1, catalog.inFlight, "catalog called with confirm mark set")
	assert.Zero(t, sessions.inFlight)
	assert.Equal(t, []bool{true}, sessions.ended)
}

func TestExecute_ExpiredWhileInFlight(t *testing.T) {
	sessions, catalog := newFakes()
	sessions.lateExpiry = true

	resp, err := NewUseCase(sessions, catalog, nopLogger{}).Execute(context.Background(), req)
	require.NoError(t, err, "catalog result is returned")
	assert.True(t, resp.LateConfirm)
	assert.Equal(t, domain.HoldConfirmed, resp.Hold.Status)
	assert.Equal(t, domain.SessionExpired, resp.Reservation.State)
}

func TestExecute_NotActive(t *testing.T) {
	for _, state := range domain.FinishedStates {
		t.Run(string(state), func(t *testing.T) {
			sessions, catalog := newFakes()
			sessions.state = state

			_, err := NewUseCase(sessions, catalog, nopLogger{}).Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrNotActive)
			assert.Zero(t, catalog.calls)
			assert.Zero(t, sessions.confirmCalls)
		})
	}
}

func TestExecute_CatalogFailureKeepsSessionActive(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"timeout", catalogClient.ErrInternal, ErrCatalogUnavailable},
		{"bad response", catalogClient.ErrInvalidResponse, ErrCatalogUnavailable},
		{"hold gone", catalogClient.ErrReservationNotFound, ErrConfirmRejected},
		{"conflict", catalogClient.ErrConflict, ErrConfirmRejected},
		{"rejected", catalogClient.ErrRejected, ErrConfirmRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions, catalog := newFakes()
			catalog.err = tt.err

			_, err := NewUseCase(sessions, catalog, nopLogger{}).Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, sessions.confirmCalls)
			assert.Equal(t, domain.SessionActive, sessions.state)
			assert.Equal(t, []bool{false}, sessions.ended, "refusal reported to sessions")
			assert.Zero(t, sessions.inFlight)
		})
	}
}

func TestExecute_LookupErrors(t *testing.T) {
	sessions, catalog := newFakes()
	uc := NewUseCase(sessions, catalog, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: "svc-2", ReservationID: "res-1"})
	assert.ErrorIs(t, err, ErrReservationNotFound)

	sessions.holdErr = sessionsService.ErrSessionNotFound
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrReservationNotFound)

	sessions.holdErr = errors.New("boom")
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, catalog.calls)
}

func TestExecute_ConfirmMarkUnavailable(t *testing.T) {
	sessions, catalog := newFakes()
	sessions.beginErr = sessionsService.ErrSessionNotFound

	_, err := NewUseCase(sessions, catalog, nopLogger{}).Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.Zero(t, catalog.calls)
	assert.Empty(t, sessions.ended)
}
