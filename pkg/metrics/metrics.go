package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all shipping document metrics
type Metrics struct {
	serviceName string
	registry    *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Generation run metrics
	GenerationRunsTotal   *prometheus.CounterVec
	GenerationRunDuration *prometheus.HistogramVec
	RunStageFailures      *prometheus.CounterVec

	// Document metrics
	DocumentsRendered  *prometheus.CounterVec
	LabelPagesRendered *prometheus.CounterVec

	// Order database metrics
	DBOperations        *prometheus.CounterVec
	DBOperationDuration *prometheus.HistogramVec
	ShipmentUpdates     *prometheus.CounterVec

	// Kafka metrics
	KafkaEventsPublished *prometheus.CounterVec
	KafkaPublishDuration *prometheus.HistogramVec
}

// Config holds metrics configuration
type Config struct {
	ServiceName string
	Namespace   string
	Subsystem   string
}

// DefaultConfig returns default metrics configuration
func DefaultConfig(serviceName string) *Config {
	return &Config{
		ServiceName: serviceName,
		Namespace:   "shipping",
		Subsystem:   serviceName,
	}
}

// New creates a new Metrics instance
func New(config *Config) *Metrics {
	registry := prometheus.NewRegistry()

	// Register standard Go metrics
	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m := &Metrics{
		serviceName: config.ServiceName,
		registry:    registry,
	}

	// HTTP metrics
	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"service", "method", "path"},
	)

	m.HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests currently being processed",
			ConstLabels: prometheus.Labels{"service": config.ServiceName},
		},
	)

	// Generation run metrics
	m.GenerationRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "generation_runs_total",
			Help:      "Total number of BOL generation runs by terminal status",
		},
		[]string{"service", "carrier", "status"},
	)

	m.GenerationRunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "generation_run_duration_seconds",
			Help:      "End-to-end BOL generation run duration in seconds",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"service", "carrier"},
	)

	m.RunStageFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "run_stage_failures_total",
			Help:      "Total number of run failures by stage and error code",
		},
		[]string{"service", "stage", "code"},
	)

	// Document metrics
	m.DocumentsRendered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "documents_rendered_total",
			Help:      "Total number of rendered documents by kind",
		},
		[]string{"service", "kind"},
	)

	m.LabelPagesRendered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "label_pages_rendered_total",
			Help:      "Total number of rendered label pages",
		},
		[]string{"service", "carrier"},
	)

	// Order database metrics
	m.DBOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "db_operations_total",
			Help:      "Total number of order database operations",
		},
		[]string{"service", "table", "operation", "status"},
	)

	m.DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "db_operation_duration_seconds",
			Help:      "Order database operation duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"service", "table", "operation"},
	)

	m.ShipmentUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "shipment_updates_total",
			Help:      "Total number of per-order shipment write-backs",
		},
		[]string{"service", "status"},
	)

	// Kafka metrics
	m.KafkaEventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "kafka_events_published_total",
			Help:      "Total number of Kafka events published",
		},
		[]string{"service", "topic", "event_type", "status"},
	)

	m.KafkaPublishDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "kafka_publish_duration_seconds",
			Help:      "Kafka publish duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"service", "topic"},
	)

	// Register all metrics
	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.GenerationRunsTotal,
		m.GenerationRunDuration,
		m.RunStageFailures,
		m.DocumentsRendered,
		m.LabelPagesRendered,
		m.DBOperations,
		m.DBOperationDuration,
		m.ShipmentUpdates,
		m.KafkaEventsPublished,
		m.KafkaPublishDuration,
	)

	return m
}

// Handler returns an HTTP handler for metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Registry returns the prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	statusStr := strconv.Itoa(status)
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, statusStr).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// RecordGenerationRun records a finished generation run
func (m *Metrics) RecordGenerationRun(carrier, status string, duration time.Duration) {
	m.GenerationRunsTotal.WithLabelValues(m.serviceName, carrier, status).Inc()
	m.GenerationRunDuration.WithLabelValues(m.serviceName, carrier).Observe(duration.Seconds())
}

// RecordRunStageFailure records a run failure at a given pipeline stage
func (m *Metrics) RecordRunStageFailure(stage, code string) {
	m.RunStageFailures.WithLabelValues(m.serviceName, stage, code).Inc()
}

// RecordDocumentRendered records a rendered document
func (m *Metrics) RecordDocumentRendered(kind string) {
	m.DocumentsRendered.WithLabelValues(m.serviceName, kind).Inc()
}

// RecordLabelPages records rendered label pages
func (m *Metrics) RecordLabelPages(carrier string, count int) {
	m.LabelPagesRendered.WithLabelValues(m.serviceName, carrier).Add(float64(count))
}

// RecordDBOperation records an order database operation
func (m *Metrics) RecordDBOperation(table, operation string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	m.DBOperations.WithLabelValues(m.serviceName, table, operation, status).Inc()
	m.DBOperationDuration.WithLabelValues(m.serviceName, table, operation).Observe(duration.Seconds())
}

// RecordShipmentUpdate records a per-order shipment write-back
func (m *Metrics) RecordShipmentUpdate(success bool) {
	status := "applied"
	if !success {
		status = "failed"
	}
	m.ShipmentUpdates.WithLabelValues(m.serviceName, status).Inc()
}

// RecordKafkaPublish records a Kafka publish event
func (m *Metrics) RecordKafkaPublish(topic, eventType string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	m.KafkaEventsPublished.WithLabelValues(m.serviceName, topic, eventType, status).Inc()
	m.KafkaPublishDuration.WithLabelValues(m.serviceName, topic).Observe(duration.Seconds())
}

// IncrementHTTPRequestsInFlight increments in-flight requests
func (m *Metrics) IncrementHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// DecrementHTTPRequestsInFlight decrements in-flight requests
func (m *Metrics) DecrementHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}
