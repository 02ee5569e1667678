package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	// Сессии резервирования
	SessionsStarted  *prometheus.CounterVec
	SessionsFinished *prometheus.CounterVec
	SessionsActive   *prometheus.GaugeVec

	// Кэш доступности
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	// Внешний каталог
	CatalogRequestDuration *prometheus.HistogramVec
}

// New регистрирует метрики в реестре по умолчанию
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),

		DBOpenConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBInUseConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBIdleConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBWaitCount: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),

		SessionsStarted: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_sessions_started_total",
			Help:        "Total number of started reservation sessions",
			ConstLabels: constLabels,
		}, []string{}),

		SessionsFinished: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_sessions_finished_total",
			Help:        "Total number of finished reservation sessions by final state",
			ConstLabels: constLabels,
		}, []string{"state"}),

		SessionsActive: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "reservation_sessions_active",
			Help:        "Number of sessions awaiting confirmation",
			ConstLabels: constLabels,
		}, []string{}),

		CacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_cache_hits_total",
			Help:        "Availability cache hits",
			ConstLabels: constLabels,
		}, []string{}),

		CacheMisses: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_cache_misses_total",
			Help:        "Availability cache misses",
			ConstLabels: constLabels,
		}, []string{}),

		CatalogRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "catalog_request_duration_seconds",
			Help:        "Catalog API request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation", "status"}),
	}
}

// SessionStarted учитывает новую сессию
func (m *Metrics) SessionStarted() {
	m.SessionsStarted.WithLabelValues().Inc()
	m.SessionsActive.WithLabelValues().Inc()
}

// SessionFinished учитывает завершение сессии с итоговым состоянием
func (m *Metrics) SessionFinished(state string) {
	m.SessionsFinished.WithLabelValues(state).Inc()
	m.SessionsActive.WithLabelValues().Dec()
}

// CacheHit учитывает попадание в кэш
func (m *Metrics) CacheHit() {
	m.CacheHits.WithLabelValues().Inc()
}

// CacheMiss учитывает промах кэша
func (m *Metrics) CacheMiss() {
	m.CacheMisses.WithLabelValues().Inc()
}
