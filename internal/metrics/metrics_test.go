package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	t.Parallel()

	m := New(prometheus.NewRegistry())

	m.ObserveSource("rss", "network", 10*time.Millisecond)
	m.ObserveSource("rss", "network", 10*time.Millisecond)
	m.ObserveSource("api", "ok", time.Millisecond)
	m.WidgetLoaded("api")
	m.WidgetLoaded("")
	m.ContactSubmitted("ok")
	m.ObserveHTTP("GET", "/api/videos", 200, time.Millisecond)

	require.Equal(t, 2.0, testutil.ToFloat64(m.sourceAttempts.WithLabelValues("rss", "network")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.sourceAttempts.WithLabelValues("api", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.widgetLoads.WithLabelValues("failed")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.contacts.WithLabelValues("ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/videos", "200")))
}

func TestMetrics_NilSafe(t *testing.T) {
	t.Parallel()

	var m *Metrics
	require.NotPanics(t, func() {
		m.ObserveSource("rss", "ok", time.Second)
		m.WidgetLoaded("rss")
		m.ContactSubmitted("ok")
		m.ObserveHTTP("GET", "/", 200, time.Second)
	})
}
