package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/pkg/metrics"
)

// DBExecutor интерфейс выполнения запросов
// Реализуется *sql.DB и *DB
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

const (
	statusOK    = "ok"
	statusError = "error"

	// DefaultStatsInterval период сбора статистики connection pool
	DefaultStatsInterval = 15 * time.Second
)

// DB обёртка над *sql.DB, замеряющая длительность запросов
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// Wrap оборачивает соединение без сбора статистики пула
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	return &DB{db: db, metrics: m}
}

// WrapWithDefault оборачивает соединение и запускает сбор статистики пула
// Сбор останавливается при закрытии stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, dbName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m)
	go collectPoolStats(db, m, dbName, DefaultStatsInterval, stopCh)
	return wrapped
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe("exec", start, err)
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe("query", start, err)
	return rows, err
}

// QueryRowContext замеряет только отправку запроса, ошибка сканирования не учитывается
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe("query_row", start, row.Err())
	return row
}

func (d *DB) observe(operation string, start time.Time, err error) {
	status := statusOK
	if err != nil && err != sql.ErrNoRows {
		status = statusError
	}
	d.metrics.DBQueryDuration.WithLabelValues(operation, status).Observe(time.Since(start).Seconds())
}

func collectPoolStats(db *sql.DB, m *metrics.Metrics, dbName string, interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		recordPoolStats(db.Stats(), m, dbName)
		select {
		case <-stopCh:
			return
		case <-ticker.C:
		}
	}
}

func recordPoolStats(stats sql.DBStats, m *metrics.Metrics, dbName string) {
	m.DBOpenConnections.WithLabelValues(dbName).Set(float64(stats.OpenConnections))
	m.DBInUseConnections.WithLabelValues(dbName).Set(float64(stats.InUse))
	m.DBIdleConnections.WithLabelValues(dbName).Set(float64(stats.Idle))
	m.DBWaitCount.WithLabelValues(dbName).Set(float64(stats.WaitCount))
}
