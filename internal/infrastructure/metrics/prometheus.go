// Package metrics contadores Prometheus de notificaciones, barrido y API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/pedidos-api/internal/application/notifications"
	"github.com/jhoicas/pedidos-api/internal/application/sweep"
)

var (
	_ notifications.Metrics = (*Registry)(nil)
	_ sweep.Metrics         = (*Registry)(nil)
)

const namespace = "pedidos"

// Registry registro propio (sin el global) con todas las series de la app.
type Registry struct {
	reg           *prometheus.Registry
	notifications *prometheus.CounterVec
	sweepRuns     *prometheus.CounterVec
	sweepAlerts   *prometheus.CounterVec
	sweepDuration prometheus.Histogram
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// New registra las series y los collectors de proceso y runtime.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Entregas de notificaciones por canal y resultado (ok, error, expired).",
		}, []string{"channel", "result"}),
		sweepRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_runs_total",
			Help:      "Ejecuciones del barrido de vencimientos por resultado (ok, error, locked).",
		}, []string{"result"}),
		sweepAlerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_alerts_total",
			Help:      "Alertas emitidas por el barrido, por tipo.",
		}, []string{"type"}),
		sweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweep_duration_seconds",
			Help:      "Duración del barrido de una empresa.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por método, ruta y status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.notifications, r.sweepRuns, r.sweepAlerts, r.sweepDuration,
		r.httpRequests, r.httpDuration,
	)
	return r
}

// NotificationResult cuenta una entrega.
func (r *Registry) NotificationResult(channel, result string) {
	r.notifications.WithLabelValues(channel, result).Inc()
}

// SweepRun cuenta una ejecución del barrido.
func (r *Registry) SweepRun(result string) {
	r.sweepRuns.WithLabelValues(result).Inc()
}

// SweepAlert cuenta una alerta emitida.
func (r *Registry) SweepAlert(alertType string) {
	r.sweepAlerts.WithLabelValues(alertType).Inc()
}

// SweepDuration observa la duración del barrido.
func (r *Registry) SweepDuration(d time.Duration) {
	r.sweepDuration.Observe(d.Seconds())
}

// HTTPRequest registra una petición atendida.
func (r *Registry) HTTPRequest(method, route string, status int, d time.Duration) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler exposición en formato Prometheus.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Gatherer para pruebas.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}
