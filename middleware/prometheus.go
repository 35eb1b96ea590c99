package middleware

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fxsml/siggn"
)

// PrometheusConfig configures the Prometheus collectors.
type PrometheusConfig struct {
	// Namespace of the metric names. Defaults to "siggn".
	Namespace string `yaml:"namespace"`
	// Subsystem of the metric names. Optional.
	Subsystem string `yaml:"subsystem"`
	// Bus is added as constant label "bus" when set.
	Bus string `yaml:"bus"`
	// Buckets of the duration histogram. Defaults to prometheus.DefBuckets.
	Buckets []float64 `yaml:"buckets"`
	// Registerer defaults to prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer `yaml:"-"`
}

// Prometheus exports publish metrics:
//
//	{ns}_published_total{type,outcome}      counter
//	{ns}_delivered_listeners_total{type}    counter
//	{ns}_publish_duration_seconds{type}     histogram
type Prometheus struct {
	published *prometheus.CounterVec
	listeners *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewPrometheus creates and registers the collectors. Collectors that are
// already registered with identical descriptors are reused, so several buses
// can share one configuration.
func NewPrometheus(cfg PrometheusConfig) (*Prometheus, error) {
	if cfg.Namespace == "" {
		cfg.Namespace = "siggn"
	}
	if len(cfg.Buckets) == 0 {
		cfg.Buckets = prometheus.DefBuckets
	}
	reg := cfg.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	var constLabels prometheus.Labels
	if cfg.Bus != "" {
		constLabels = prometheus.Labels{"bus": cfg.Bus}
	}

	published, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "published_total",
		Help:        "Total number of published messages by type and outcome.",
		ConstLabels: constLabels,
	}, []string{"type", "outcome"}))
	if err != nil {
		return nil, err
	}
	listeners, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "delivered_listeners_total",
		Help:        "Total number of listener invocations by message type.",
		ConstLabels: constLabels,
	}, []string{"type"}))
	if err != nil {
		return nil, err
	}
	duration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "publish_duration_seconds",
		Help:        "Duration of publishes including middleware and delivery.",
		ConstLabels: constLabels,
		Buckets:     cfg.Buckets,
	}, []string{"type"}))
	if err != nil {
		return nil, err
	}

	return &Prometheus{
		published: published,
		listeners: listeners,
		duration:  duration,
	}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	var zero C
	return zero, err
}

// Observe records m. It is a MetricsCollector.
func (p *Prometheus) Observe(m *Metrics) {
	p.published.WithLabelValues(m.Type, string(m.Outcome())).Inc()
	if m.Listeners > 0 {
		p.listeners.WithLabelValues(m.Type).Add(float64(m.Listeners))
	}
	p.duration.WithLabelValues(m.Type).Observe(m.Duration.Seconds())
}

// Instrument records every publish in p.
func Instrument[M siggn.Message](p *Prometheus) siggn.Middleware[M] {
	return MetricsMiddleware[M](p.Observe)
}
