// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gathered(t *testing.T) map[string]float64 {
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				values[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[mf.GetName()] += m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				values[mf.GetName()] += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return values
}

func TestNoopMetrics(t *testing.T) {
	m := defaultNoopMetrics()
	m.GetOrCreateCountMeter("noop").Add(1)
	m.GetOrCreateGaugeMeter("noop").Set(1)
	m.GetOrCreateHistogramVecMeter("noop", []string{"a"}, nil).ObserveWithLabels(1, map[string]string{"a": "b"})

	rec := httptest.NewRecorder()
	m.GetOrCreateHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 404, rec.Code)
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	count := Counter("count1")
	countVec := CounterVec("countVec1", []string{"status"})
	gauge := LazyLoadGauge("gauge1")
	hist := Histogram("hist1", BucketWeight)
	histVec := LazyLoadHistogramVec("histVec1", []string{"code"}, BucketHTTPReqs)

	count.Add(2)
	Counter("count1").Add(3)
	countVec.AddWithLabel(1, map[string]string{"status": "ok"})
	countVec.AddWithLabel(4, map[string]string{"status": "reverted"})
	gauge().Set(10)
	gauge().Add(-3)
	hist.Observe(30_000)
	hist.Observe(60_000)
	histVec().ObserveWithLabels(5, map[string]string{"code": "200"})

	values := gathered(t)
	assert.Equal(t, float64(5), values["bullchain_count1"])
	assert.Equal(t, float64(5), values["bullchain_countVec1"])
	assert.Equal(t, float64(7), values["bullchain_gauge1"])
	assert.Equal(t, float64(2), values["bullchain_hist1"])
	assert.Equal(t, float64(1), values["bullchain_histVec1"])

	rec := httptest.NewRecorder()
	HTTPHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "bullchain_count1 5")
}
