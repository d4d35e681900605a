// Package metrics exposes packet and connection counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Config struct {
	// Namespace is the metrics namespace (default: "mcwire").
	Namespace string

	// Buckets are the histogram buckets for frame sizes in bytes.
	Buckets []float64

	// Registry receives the collectors.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

type Option func(*Config)

func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "mcwire",
		Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is safe for concurrent use. A nil *Metrics records nothing, so
// callers that run without metrics need no checks.
type Metrics struct {
	decoded     *prometheus.CounterVec
	encoded     *prometheus.CounterVec
	errors      *prometheus.CounterVec
	frameBytes  *prometheus.HistogramVec
	connections prometheus.Gauge
}

func New(opts ...Option) *Metrics {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		decoded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "packets_decoded_total",
			Help:      "Total number of packets decoded",
		}, []string{"flow", "packet"}),

		encoded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "packets_encoded_total",
			Help:      "Total number of packets encoded",
		}, []string{"flow", "packet"}),

		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "decode_errors_total",
			Help:      "Total number of frames that failed to decode, by error kind",
		}, []string{"flow", "kind"}),

		frameBytes: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "frame_bytes",
			Help:      "Size of frames read and written, without the length prefix",
			Buckets:   config.Buckets,
		}, []string{"flow"}),

		connections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: config.Namespace,
			Name:      "active_connections",
			Help:      "Number of open connections",
		}),
	}
}

func (m *Metrics) Decoded(flow, packet string, size int) {
	if m == nil {
		return
	}
	m.decoded.WithLabelValues(flow, packet).Inc()
	m.frameBytes.WithLabelValues(flow).Observe(float64(size))
}

func (m *Metrics) Encoded(flow, packet string, size int) {
	if m == nil {
		return
	}
	m.encoded.WithLabelValues(flow, packet).Inc()
	m.frameBytes.WithLabelValues(flow).Observe(float64(size))
}

func (m *Metrics) DecodeError(flow, kind string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(flow, kind).Inc()
}

func (m *Metrics) ConnOpened() {
	if m == nil {
		return
	}
	m.connections.Inc()
}

func (m *Metrics) ConnClosed() {
	if m == nil {
		return
	}
	m.connections.Dec()
}
