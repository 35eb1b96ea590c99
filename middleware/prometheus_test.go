package middleware_test

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fxsml/siggn/internal/test"
	"github.com/fxsml/siggn/middleware"
)

func TestPrometheus(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	p, err := middleware.NewPrometheus(middleware.PrometheusConfig{Bus: "test", Registerer: reg})
	require.NoError(t, err)

	bus := newBus(t)
	bus.Use(middleware.Instrument[test.CounterMsg](p))
	bus.Use(middleware.Validate[test.CounterMsg]())
	bus.Use(middleware.DropTypes[test.CounterMsg](test.TypeDecrement))
	bus.Subscribe("a", test.TypeIncrement, func(context.Context, test.CounterMsg) {})

	publish[test.CounterMsg](t, bus, test.Increment{Value: 1})
	publish[test.CounterMsg](t, bus, test.Increment{Value: 2})
	publish[test.CounterMsg](t, bus, test.Decrement{Value: 1})
	require.Error(t, bus.Publish(context.Background(), test.Increment{Value: -1}))

	expected := `
# HELP siggn_published_total Total number of published messages by type and outcome.
# TYPE siggn_published_total counter
siggn_published_total{bus="test",outcome="delivered",type="increment_count"} 2
siggn_published_total{bus="test",outcome="dropped",type="decrement_count"} 1
siggn_published_total{bus="test",outcome="failed",type="increment_count"} 1
# HELP siggn_delivered_listeners_total Total number of listener invocations by message type.
# TYPE siggn_delivered_listeners_total counter
siggn_delivered_listeners_total{bus="test",type="increment_count"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"siggn_published_total", "siggn_delivered_listeners_total"))

	assert.Equal(t, uint64(3), histogramCount(t, reg, "siggn_publish_duration_seconds", test.TypeIncrement))
	assert.Equal(t, uint64(1), histogramCount(t, reg, "siggn_publish_duration_seconds", test.TypeDecrement))
}

func TestPrometheus_SharedRegisterer(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	cfg := middleware.PrometheusConfig{Namespace: "app", Subsystem: "events", Registerer: reg}
	first, err := middleware.NewPrometheus(cfg)
	require.NoError(t, err)
	second, err := middleware.NewPrometheus(cfg)
	require.NoError(t, err)

	a, b := newBus(t), newBus(t)
	a.Use(middleware.Instrument[test.CounterMsg](first))
	b.Use(middleware.Instrument[test.CounterMsg](second))

	publish[test.CounterMsg](t, a, test.Increment{Value: 1})
	publish[test.CounterMsg](t, b, test.Increment{Value: 1})

	expected := `
# HELP app_events_published_total Total number of published messages by type and outcome.
# TYPE app_events_published_total counter
app_events_published_total{outcome="delivered",type="increment_count"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "app_events_published_total"))
}

func histogramCount(t *testing.T, g prometheus.Gatherer, name, typ string) uint64 {
	t.Helper()
	families, err := g.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if labelValue(m, "type") == typ {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func labelValue(m *dto.Metric, name string) string {
	for _, l := range m.GetLabel() {
		if l.GetName() == name {
			return l.GetValue()
		}
	}
	return ""
}
