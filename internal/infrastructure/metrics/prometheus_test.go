package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Contadores(t *testing.T) {
	r := New()
	r.NotificationResult("email", "ok")
	r.NotificationResult("email", "ok")
	r.NotificationResult("push", "expired")
	r.SweepRun("ok")
	r.SweepAlert("VENCIDO")
	r.SweepDuration(120 * time.Millisecond)
	r.HTTPRequest("GET", "/api/pedidos", 200, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.notifications.WithLabelValues("email", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.notifications.WithLabelValues("push", "expired")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.sweepRuns.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.sweepAlerts.WithLabelValues("VENCIDO")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.httpRequests.WithLabelValues("GET", "/api/pedidos", "200")))

	count, err := testutil.GatherAndCount(r.Gatherer(), "pedidos_sweep_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRegistry_Handler(t *testing.T) {
	r := New()
	r.SweepRun("locked")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `pedidos_sweep_runs_total{result="locked"} 1`), body)
	assert.Contains(t, body, "go_goroutines")
}
