package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	out := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, lp := range m.GetLabel() {
				key += "/" + lp.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				out[key] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out
}

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveQuery("search")
	m.ObserveQuery("search")
	m.ObserveQuery("booking")
	m.ObserveSearchFailure("invalid_location")
	m.ObserveSynthesized("plumber", 3)
	m.ObserveSynthesized("plumber", 0)
	m.ObserveReload(nil)
	m.ObserveReload(errors.New("boom"))
	m.ObserveRespond(2 * time.Millisecond)

	got := gather(t, reg)
	assert.Equal(t, 2.0, got["sahayak_queries_total/search"])
	assert.Equal(t, 1.0, got["sahayak_queries_total/booking"])
	assert.Equal(t, 1.0, got["sahayak_search_failures_total/invalid_location"])
	assert.Equal(t, 3.0, got["sahayak_synthesized_providers_total/plumber"])
	assert.Equal(t, 1.0, got["sahayak_catalog_reloads_total/ok"])
	assert.Equal(t, 1.0, got["sahayak_catalog_reloads_total/error"])
	assert.Equal(t, 1.0, got["sahayak_respond_duration_seconds"])
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveQuery("search")
		m.ObserveSearchFailure("x")
		m.ObserveSynthesized("gym", 2)
		m.ObserveReload(nil)
		m.ObserveRespond(time.Second)
	})
}
