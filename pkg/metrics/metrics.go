package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics набор метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках передаём nil
type Metrics struct {
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	bookingsCreated   *prometheus.CounterVec
	bookingsCancelled prometheus.Counter
	bookingsMoved     prometheus.Counter
	ruleViolations    *prometheus.CounterVec

	registerer prometheus.Registerer
	service    string
}

// New создает метрики и регистрирует их в глобальном реестре
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		bookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Number of hourly booking records created",
			ConstLabels: labels,
		}, []string{"type"}),
		bookingsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_cancelled_total",
			Help:        "Number of hourly booking records cancelled",
			ConstLabels: labels,
		}),
		bookingsMoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_moved_total",
			Help:        "Number of hourly booking records relocated",
			ConstLabels: labels,
		}),
		ruleViolations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_rule_violations_total",
			Help:        "Rejected booking requests by rule",
			ConstLabels: labels,
		}, []string{"rule"}),
		registerer: reg,
		service:    serviceName,
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.bookingsCreated,
		m.bookingsCancelled,
		m.bookingsMoved,
		m.ruleViolations,
	)

	return m
}

// RegisterDB регистрирует сборщик статистики пула соединений
func (m *Metrics) RegisterDB(db *sql.DB, dbName string) {
	if m == nil || db == nil {
		return
	}
	m.registerer.MustRegister(collectors.NewDBStatsCollector(db, dbName))
}

// ObserveHTTP фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) BookingsCreated(bookingType string, n int) {
	if m == nil {
		return
	}
	m.bookingsCreated.WithLabelValues(bookingType).Add(float64(n))
}

func (m *Metrics) BookingsCancelled(n int) {
	if m == nil {
		return
	}
	m.bookingsCancelled.Add(float64(n))
}

func (m *Metrics) BookingsMoved(n int) {
	if m == nil {
		return
	}
	m.bookingsMoved.Add(float64(n))
}

func (m *Metrics) RuleViolation(rule string) {
	if m == nil {
		return
	}
	m.ruleViolations.WithLabelValues(rule).Inc()
}
