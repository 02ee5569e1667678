package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	"github.com/m04kA/SMC-ReservationEngine/pkg/psqlbuilder"
)

const (
	tableName = "reservation_sessions"

	// pqUniqueViolation код ошибки PostgreSQL при нарушении уникальности
	pqUniqueViolation = "23505"
)

var sessionColumns = []string{
	"reservation_id",
	"service_id",
	"start_date",
	"end_date",
	"total_price",
	"state",
	"remaining_seconds",
	"created_at",
	"expires_at",
	"finished_at",
}

// instanceColumn владелец записи: экземпляр сервиса, который ведёт отсчёт
const instanceColumn = "instance_id"

// Repository журнал сессий резервирования
type Repository struct {
	db         DBExecutor
	instanceID string
}

// NewRepository создает новый экземпляр репозитория сессий
// instanceID помечает записи этого экземпляра, восстановление после рестарта трогает только их
func NewRepository(db DBExecutor, instanceID string) *Repository {
	return &Repository{db: db, instanceID: instanceID}
}

// Create записывает запущенную сессию
func (r *Repository) Create(ctx context.Context, rec *domain.SessionRecord) error {
	columns := append(append([]string(nil), sessionColumns...), instanceColumn)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(columns...).
		Values(
			rec.ReservationID,
			rec.ServiceID,
			rec.StartDate,
			rec.EndDate,
			rec.TotalPrice,
			rec.State,
			rec.RemainingSeconds,
			rec.CreatedAt,
			rec.ExpiresAt,
			rec.FinishedAt,
			r.instanceID,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return fmt.Errorf("%w: reservation_id=%s", ErrSessionExists, rec.ReservationID)
		}
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Finish фиксирует терминальное состояние активной сессии
// Уже завершённая сессия не перезаписывается
func (r *Repository) Finish(ctx context.Context, reservationID string, state domain.SessionState, remaining int, finishedAt time.Time) error {
	if !state.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrInvalidState, state)
	}

	query, args, err := psqlbuilder.Update(tableName).
		Set("state", state).
		Set("remaining_seconds", remaining).
		Set("finished_at", finishedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"reservation_id": reservationID, "state": domain.SessionActive}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Finish - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Finish - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Finish - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Различаем "нет записи" и "уже завершена"
		if _, err := r.GetByID(ctx, reservationID); err != nil {
			return err
		}
		return ErrAlreadyFinished
	}

	return nil
}

// ExpireOrphaned помечает истёкшими активные сессии этого экземпляра
// Вызывается при старте: счётчики предыдущего процесса не восстанавливаются,
// сессии других экземпляров не трогаются
func (r *Repository) ExpireOrphaned(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := psqlbuilder.Update(tableName).
		Set("state", domain.SessionExpired).
		Set("finished_at", now).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"state": domain.SessionActive, instanceColumn: r.instanceID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ExpireOrphaned - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireOrphaned - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireOrphaned - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// GetByID получает запись сессии по ID резерва
func (r *Repository) GetByID(ctx context.Context, reservationID string) (*domain.SessionRecord, error) {
	query, args, err := psqlbuilder.Select(sessionColumns...).
		From(tableName).
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rec, err := scanSession(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan session: %v", ErrScanRow, err)
	}

	return rec, nil
}

// ListByService получает сессии услуги, сначала новые
// Пустой states означает все состояния
func (r *Repository) ListByService(ctx context.Context, serviceID string, states []domain.SessionState, limit uint64) ([]*domain.SessionRecord, error) {
	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From(tableName).
		Where(squirrel.Eq{"service_id": serviceID}).
		OrderBy("created_at DESC")

	// Фильтрация по состояниям, если указаны
	if len(states) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"state": states})
	}
	if limit > 0 {
		selectBuilder = selectBuilder.Limit(limit)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByService - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByService - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.SessionRecord, 0)
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByService - scan row: %v", ErrScanRow, err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByService - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (*domain.SessionRecord, error) {
	var rec domain.SessionRecord
	var state string
	var finishedAt sql.NullTime

	err := row.Scan(
		&rec.ReservationID,
		&rec.ServiceID,
		&rec.StartDate,
		&rec.EndDate,
		&rec.TotalPrice,
		&state,
		&rec.RemainingSeconds,
		&rec.CreatedAt,
		&rec.ExpiresAt,
		&finishedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.State = domain.SessionState(state)
	if finishedAt.Valid {
		t := finishedAt.Time
		rec.FinishedAt = &t
	}

	return &rec, nil
}
