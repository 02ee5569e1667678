package reservation

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db, "node-a"), mock
}

func sampleRecord() *domain.SessionRecord {
	created := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	return &domain.SessionRecord{
		ReservationID:    "res-42",
		ServiceID:        "svc-1",
		StartDate:        time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2025, 3, 25, 0, 0, 0, 0, time.UTC),
		TotalPrice:       600,
		State:            domain.SessionActive,
		RemainingSeconds: 300,
		CreatedAt:        created,
		ExpiresAt:        created.Add(5 * time.Minute),
	}
}

func sessionRows(recs ...*domain.SessionRecord) *sqlmock.Rows {
	rows := sqlmock.NewRows(sessionColumns)
	for _, rec := range recs {
		var finished interface{}
		if rec.FinishedAt != nil {
			finished = *rec.FinishedAt
		}
		rows.AddRow(rec.ReservationID, rec.ServiceID, rec.StartDate, rec.EndDate, rec.TotalPrice,
			string(rec.State), rec.RemainingSeconds, rec.CreatedAt, rec.ExpiresAt, finished)
	}
	return rows
}

func TestCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	rec := sampleRecord()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reservation_sessions (reservation_id,service_id,start_date,end_date,total_price,state,remaining_seconds,created_at,expires_at,finished_at,instance_id) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)")).
		WithArgs("res-42", "svc-1", rec.StartDate, rec.EndDate, 600.0, "active", 300, rec.CreatedAt, rec.ExpiresAt, nil, "node-a").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), rec))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Duplicate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO reservation_sessions").
		WillReturnError(&pq.Error{Code: pqUniqueViolation})

	err := repo.Create(context.Background(), sampleRecord())
	assert.ErrorIs(t, err, ErrSessionExists)
}

func TestCreate_ExecError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO reservation_sessions").WillReturnError(errors.New("connection reset"))

	err := repo.Create(context.Background(), sampleRecord())
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestFinish(t *testing.T) {
	repo, mock := newMockRepo(t)
	finished := time.Date(2025, 3, 10, 12, 3, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE reservation_sessions SET state = $1, remaining_seconds = $2, finished_at = $3, updated_at = NOW() WHERE reservation_id = $4 AND state = $5")).
		WithArgs("confirmed", 120, finished, "res-42", "active").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Finish(context.Background(), "res-42", domain.SessionConfirmed, 120, finished))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFinish_AlreadyFinished(t *testing.T) {
	repo, mock := newMockRepo(t)
	rec := sampleRecord()
	rec.State = domain.SessionExpired

	mock.ExpectExec("UPDATE reservation_sessions").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM reservation_sessions WHERE reservation_id").
		WithArgs("res-42").
		WillReturnRows(sessionRows(rec))

	err := repo.Finish(context.Background(), "res-42", domain.SessionConfirmed, 10, time.Now())
	assert.ErrorIs(t, err, ErrAlreadyFinished)
}

func TestFinish_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE reservation_sessions").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM reservation_sessions").
		WillReturnRows(sqlmock.NewRows(sessionColumns))

	err := repo.Finish(context.Background(), "res-404", domain.SessionCancelled, 10, time.Now())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestFinish_RejectsActiveState(t *testing.T) {
	repo, _ := newMockRepo(t)

	err := repo.Finish(context.Background(), "res-42", domain.SessionActive, 10, time.Now())
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestExpireOrphaned(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE reservation_sessions SET state = $1, finished_at = $2, updated_at = NOW() WHERE instance_id = $3 AND state = $4")).
		WithArgs("expired", now, "node-a", "active").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.ExpireOrphaned(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpireOrphaned_ScopedToInstance(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	now := time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)

	for _, instance := range []string{"node-a", "node-b"} {
		mock.ExpectExec(regexp.QuoteMeta("WHERE instance_id = $3 AND state = $4")).
			WithArgs("expired", now, instance, "active").
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	for _, instance := range []string{"node-a", "node-b"} {
		n, err := NewRepository(db, instance).ExpireOrphaned(context.Background(), now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	rec := sampleRecord()
	finished := rec.CreatedAt.Add(time.Minute)
	rec.State = domain.SessionCancelled
	rec.FinishedAt = &finished

	mock.ExpectQuery(regexp.QuoteMeta("SELECT reservation_id, service_id, start_date, end_date, total_price, state, remaining_seconds, created_at, expires_at, finished_at FROM reservation_sessions WHERE reservation_id = $1")).
		WithArgs("res-42").
		WillReturnRows(sessionRows(rec))

	got, err := repo.GetByID(context.Background(), "res-42")
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM reservation_sessions").
		WillReturnRows(sqlmock.NewRows(sessionColumns))

	_, err := repo.GetByID(context.Background(), "res-404")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestListByService(t *testing.T) {
	repo, mock := newMockRepo(t)
	first := sampleRecord()
	second := sampleRecord()
	second.ReservationID = "res-43"

	mock.ExpectQuery(regexp.QuoteMeta("SELECT reservation_id, service_id, start_date, end_date, total_price, state, remaining_seconds, created_at, expires_at, finished_at FROM reservation_sessions WHERE service_id = $1 AND state IN ($2,$3) ORDER BY created_at DESC LIMIT 20")).
		WithArgs("svc-1", "active", "confirmed").
		WillReturnRows(sessionRows(first, second))

	got, err := repo.ListByService(context.Background(), "svc-1",
		[]domain.SessionState{domain.SessionActive, domain.SessionConfirmed}, 20)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "res-43", got[1].ReservationID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByService_NoFilter(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reservation_sessions WHERE service_id = $1 ORDER BY created_at DESC")).
		WithArgs("svc-1").
		WillReturnRows(sqlmock.NewRows(sessionColumns))

	got, err := repo.ListByService(context.Background(), "svc-1", nil, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
