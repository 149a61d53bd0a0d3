package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/presenters"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/sim"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	require.NotNil(t, m.Counter)
	return m.GetCounter().GetValue()
}

func histogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	require.True(t, ok, "observer %T does not implement prometheus.Metric", o)
	var m dto.Metric
	require.NoError(t, metric.Write(&m))
	require.NotNil(t, m.Histogram)
	return m.GetHistogram().GetSampleCount()
}

func TestNavigationFinished(t *testing.T) {
	p := New(WithRegistry(prometheus.NewRegistry()))

	p.NavigationFinished(router.OpExecute, 10*time.Millisecond, nil)
	p.NavigationFinished(router.OpExecute, 20*time.Millisecond, router.ErrNoHistory)
	p.NavigationFinished(router.OpBack, time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, counterValue(t, p.navigations.WithLabelValues("execute", ResultSuccess)))
	assert.Equal(t, 1.0, counterValue(t, p.navigations.WithLabelValues("execute", ResultError)))
	assert.Equal(t, 1.0, counterValue(t, p.errors.WithLabelValues("execute", "no_history")))
	assert.Equal(t, 1.0, counterValue(t, p.errors.WithLabelValues("back", "unknown")))
	assert.Equal(t, uint64(2), histogramCount(t, p.duration.WithLabelValues("execute")))
}

func TestRegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := New(WithRegistry(reg), WithNamespace("app"), WithSubsystem("nav"))
	p.OverlappingNavigation(router.OpAppend)

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "app_nav_overlapping_navigations_total")
}

func TestObservesRouter(t *testing.T) {
	p := New(WithRegistry(prometheus.NewRegistry()))

	w := sim.NewWindow()
	ctx := presenters.Seed(router.NewContext())
	ctx.RegisterSegment(router.NewSegment(route.ID("home"), route.ID("root"), w.Loader())).
		RegisterSegment(router.NewSegment(route.ID("detail"), route.ID("push"), w.Loader()))
	r := router.New(ctx, router.WithWindow(w), router.WithObserver(p))

	done := func(_ router.Result, err error) { require.NoError(t, err) }
	r.Execute(context.Background(), route.MustSequence("home", "detail"), done)
	r.Pop(context.Background(), done)

	assert.Equal(t, 1.0, counterValue(t, p.presented.WithLabelValues("detail")))
	assert.Equal(t, 1.0, counterValue(t, p.dismissed.WithLabelValues("detail")))
	assert.Equal(t, 1.0, counterValue(t, p.navigations.WithLabelValues("pop", ResultSuccess)))
}
