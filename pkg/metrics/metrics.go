package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса.
// Все методы безопасны для вызова на nil (метрики выключены).
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge

	SlotsGeneratedTotal         prometheus.Counter
	SlotGenerationFailuresTotal prometheus.Counter
	BookingsCreatedTotal        prometheus.Counter
	BookingConflictsTotal       prometheus.Counter
	BookingsCancelledTotal      prometheus.Counter
}

// New создает метрики и регистрирует их в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),
		SlotsGeneratedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "slots_generated_total",
			Help:        "Number of slots created by range regeneration",
			ConstLabels: constLabels,
		}),
		SlotGenerationFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "slot_generation_failures_total",
			Help:        "Number of event types skipped during range regeneration",
			ConstLabels: constLabels,
		}),
		BookingsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Number of confirmed bookings",
			ConstLabels: constLabels,
		}),
		BookingConflictsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Number of booking attempts rejected because the slot was taken",
			ConstLabels: constLabels,
		}),
		BookingsCancelledTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_cancelled_total",
			Help:        "Number of cancelled bookings",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.SlotsGeneratedTotal,
		m.SlotGenerationFailuresTotal,
		m.BookingsCreatedTotal,
		m.BookingConflictsTotal,
		m.BookingsCancelledTotal,
	)

	return m
}

// ObserveSlotsGenerated учитывает результат регенерации по одному типу события
func (m *Metrics) ObserveSlotsGenerated(created int, failed bool) {
	if m == nil {
		return
	}
	if failed {
		m.SlotGenerationFailuresTotal.Inc()
		return
	}
	m.SlotsGeneratedTotal.Add(float64(created))
}

// ObserveBookingCreated учитывает подтвержденное бронирование
func (m *Metrics) ObserveBookingCreated() {
	if m == nil {
		return
	}
	m.BookingsCreatedTotal.Inc()
}

// ObserveBookingConflict учитывает попытку забронировать занятый слот
func (m *Metrics) ObserveBookingConflict() {
	if m == nil {
		return
	}
	m.BookingConflictsTotal.Inc()
}

// ObserveBookingCancelled учитывает отмену бронирования
func (m *Metrics) ObserveBookingCancelled() {
	if m == nil {
		return
	}
	m.BookingsCancelledTotal.Inc()
}
