package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	transactionsTotal    *prometheus.CounterVec
	transactionDuration  prometheus.Histogram
	conversionsTotal     *prometheus.CounterVec
	conversionDuration   prometheus.Histogram
	circuitBreakerState  *prometheus.GaugeVec
	authenticationEvents *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		transactionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_total",
				Help: "Total number of transaction writes by operation, type and status",
			},
			[]string{"operation", "type", "status"},
		),
		transactionDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "transaction_create_duration_milliseconds",
				Help:    "Transaction create duration in milliseconds, conversion included",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		conversionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "currency_conversions_total",
				Help: "Total number of currency conversion attempts by outcome",
			},
			[]string{"status"},
		),
		conversionDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "currency_conversion_duration_milliseconds",
				Help:    "Exchange-rate API call duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 14),
			},
		),
		circuitBreakerState: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
			},
			[]string{"service"},
		),
		authenticationEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	txType := tags["type"]

	switch name {
	case "transaction.created.success":
		m.transactionsTotal.WithLabelValues("create", txType, "success").Inc()
	case "transaction.created.failed":
		m.transactionsTotal.WithLabelValues("create", txType, "failed").Inc()
	case "transaction.deleted.success":
		m.transactionsTotal.WithLabelValues("delete", txType, "success").Inc()
	case "transaction.deleted.failed":
		m.transactionsTotal.WithLabelValues("delete", txType, "failed").Inc()
	case "currency.conversion.success":
		m.conversionsTotal.WithLabelValues("success").Inc()
	case "currency.conversion.failed":
		m.conversionsTotal.WithLabelValues("failed").Inc()
	case "currency.conversion.rejected":
		m.conversionsTotal.WithLabelValues("rejected").Inc()
		m.circuitBreakerState.WithLabelValues("exchange_rate_api").Set(1)
	case "authentication_event":
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEvents.WithLabelValues(eventType).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "transaction.create":
		m.transactionDuration.Observe(float64(duration.Milliseconds()))
	case "currency.conversion":
		m.conversionDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	if name == "circuit_breaker.state" {
		service := tags["service"]
		if service == "" {
			service = "exchange_rate_api"
		}
		m.circuitBreakerState.WithLabelValues(service).Set(value)
	}
}
