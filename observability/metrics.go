// Package observability implements rdsengine.Hooks with Prometheus
// counters and OpenTelemetry spans, so a host application can plug in
// metrics/tracing without the core engine depending on either library.
// Grounded on the teacher's pkg/middleware/metrics.go (MetricsOption
// configuration shape) and pkg/middleware/otel.go (span-per-event
// instrumentation).
package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rds-dev/rdscom/rdsframe"
)

const defaultTracerName = "rdscom"

// Config configures the metrics/tracing Hooks implementation.
type Config struct {
	// Namespace is the Prometheus metrics namespace (default "rdscom").
	Namespace string

	// Registry is the Prometheus registerer to use (default
	// prometheus.DefaultRegisterer).
	Registry prometheus.Registerer

	// TracerName names the OTel tracer (default "rdscom").
	TracerName string
}

// Option configures Config.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(ns string) Option { return func(c *Config) { c.Namespace = ns } }

// WithRegistry sets the Prometheus registerer.
func WithRegistry(r prometheus.Registerer) Option { return func(c *Config) { c.Registry = r } }

// WithTracerName sets the OTel tracer name.
func WithTracerName(name string) Option { return func(c *Config) { c.TracerName = name } }

func defaultConfig() Config {
	return Config{
		Namespace:  "rdscom",
		Registry:   prometheus.DefaultRegisterer,
		TracerName: defaultTracerName,
	}
}

// Hooks implements rdsengine.Hooks, recording Prometheus counters and
// emitting an OTel span per received/sent frame.
type Hooks struct {
	tracer trace.Tracer

	framesSent      prometheus.Counter
	framesReceived  prometheus.Counter
	framesDropped   *prometheus.CounterVec
	retries         prometheus.Counter
	acksExhausted   prometheus.Counter
}

// New builds a Hooks instance, registering its Prometheus collectors.
func New(opts ...Option) *Hooks {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)
	return &Hooks{
		tracer: otel.Tracer(cfg.TracerName),
		framesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "frames_sent_total",
			Help:      "Total frames written to the channel.",
		}),
		framesReceived: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "frames_received_total",
			Help:      "Total frames successfully parsed and dispatched.",
		}),
		framesDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "frames_dropped_total",
			Help:      "Total inbound frames dropped, by reason.",
		}, []string{"reason"}),
		retries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "retries_total",
			Help:      "Total request retransmissions.",
		}),
		acksExhausted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "acks_exhausted_total",
			Help:      "Total requests dropped after exhausting their retry budget.",
		}),
	}
}

// OnSend records a sent-frame counter and a short span describing it.
func (h *Hooks) OnSend(msg rdsframe.Message) {
	h.framesSent.Inc()
	_, span := h.tracer.Start(context.Background(), "rdscom.send")
	span.SetAttributes(
		attribute.Int("rdscom.schema_id", int(msg.Header.SchemaID)),
		attribute.String("rdscom.kind", msg.Header.Kind.String()),
		attribute.Int("rdscom.sequence", int(msg.Header.Sequence)),
	)
	span.End()
}

// OnReceive records a received-frame counter and a short span.
func (h *Hooks) OnReceive(msg rdsframe.Message) {
	h.framesReceived.Inc()
	_, span := h.tracer.Start(context.Background(), "rdscom.receive")
	span.SetAttributes(
		attribute.Int("rdscom.schema_id", int(msg.Header.SchemaID)),
		attribute.String("rdscom.kind", msg.Header.Kind.String()),
		attribute.Int("rdscom.sequence", int(msg.Header.Sequence)),
	)
	span.End()
}

// OnDrop records a dropped-frame counter by reason.
func (h *Hooks) OnDrop(reason string) {
	h.framesDropped.WithLabelValues(reason).Inc()
	_, span := h.tracer.Start(context.Background(), "rdscom.drop")
	span.SetStatus(codes.Error, reason)
	span.End()
}

// OnRetry records a retry counter.
func (h *Hooks) OnRetry(sequence uint16, attempt uint8) {
	h.retries.Inc()
	_, span := h.tracer.Start(context.Background(), "rdscom.retry")
	span.SetAttributes(
		attribute.Int("rdscom.sequence", int(sequence)),
		attribute.Int("rdscom.attempt", int(attempt)),
	)
	span.End()
}

// OnAckExhausted records an ack-exhaustion counter.
func (h *Hooks) OnAckExhausted(sequence uint16) {
	h.acksExhausted.Inc()
	_, span := h.tracer.Start(context.Background(), "rdscom.ack_exhausted")
	span.SetAttributes(attribute.Int("rdscom.sequence", int(sequence)))
	span.SetStatus(codes.Error, "ack exhausted")
	span.End()
}
