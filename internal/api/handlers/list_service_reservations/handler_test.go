package list_service_reservations

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	"github.com/m04kA/SMC-ReservationEngine/internal/service/sessions/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeSessions struct {
	states []domain.SessionState
	limit  uint64
	err    error
}

func (f *fakeSessions) ListByService(_ context.Context, _ string, states []domain.SessionState, limit uint64) ([]*models.Status, error) {
	f.states, f.limit = states, limit
	return []*models.Status{{ReservationID: "res-1", State: domain.SessionExpired}}, f.err
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name      string
		state     string
		limit     string
		want      *ListQuery
		wantError bool
	}{
		{"defaults", "", "", &ListQuery{Limit: defaultLimit}, false},
		{"single state", "active", "10", &ListQuery{States: []domain.SessionState{domain.SessionActive}, Limit: 10}, false},
		{"finished expands", "finished", "", &ListQuery{States: domain.FinishedStates, Limit: defaultLimit}, false},
		{"limit capped", "", "10000", &ListQuery{Limit: maxLimit}, false},
		{"unknown state", "pending", "", nil, true},
		{"zero limit", "", "0", nil, true},
		{"negative limit", "", "-1", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuery(tt.state, tt.limit)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandle(t *testing.T) {
	svc := &fakeSessions{}
	h := NewHandler(svc, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/services/svc-1/reservations?state=finished&limit=5", nil)
	req = mux.SetURLVars(req, map[string]string{"serviceId": "svc-1"})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.FinishedStates, svc.states)
	assert.Equal(t, uint64(5), svc.limit)
	assert.Contains(t, rec.Body.String(), `"total":1`)

	svc.err = errors.New("db down")
	rec = httptest.NewRecorder()
	h.Handle(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
