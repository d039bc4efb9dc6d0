package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	BookingDecisions    *prometheus.CounterVec
	LedgerReserveTotal  *prometheus.CounterVec
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "path"}),

		BookingDecisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_decisions_total",
			Help:        "Booking admission decisions by outcome",
			ConstLabels: constLabels,
		}, []string{"decision", "reason"}),

		LedgerReserveTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "ledger_reserve_attempts_total",
			Help:        "Capacity reservation attempts against the booking ledger",
			ConstLabels: constLabels,
		}, []string{"scope", "outcome"}),
	}
}

// ObserveDecision учитывает решение о допуске бронирования
func (m *Metrics) ObserveDecision(admitted bool, reason string) {
	decision := "admitted"
	if !admitted {
		decision = "rejected"
	}
	m.BookingDecisions.WithLabelValues(decision, reason).Inc()
}

// ObserveReserve учитывает попытку условного резервирования в леджере
func (m *Metrics) ObserveReserve(scope string, reserved bool) {
	outcome := "reserved"
	if !reserved {
		outcome = "refused"
	}
	m.LedgerReserveTotal.WithLabelValues(scope, outcome).Inc()
}
