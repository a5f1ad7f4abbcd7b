package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus collectors.
type PrometheusRecorder struct {
	gatherer prometheus.Gatherer

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	fallbacksTotal  *prometheus.CounterVec
	exchanges       prometheus.Histogram
}

// NewPrometheusRecorder registers the interview collectors on a fresh registry.
func NewPrometheusRecorder() *PrometheusRecorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &PrometheusRecorder{
		gatherer: reg,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interviu_generation_requests_total",
				Help: "Total number of generation requests by provider, model and status",
			},
			[]string{"provider", "model", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "interviu_generation_duration_seconds",
				Help:    "Duration of generation requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider", "model"},
		),
		fallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interviu_fallbacks_total",
				Help: "Total number of fallback substitutions by kind",
			},
			[]string{"kind"},
		),
		exchanges: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "interviu_interview_exchanges",
				Help:    "Number of exchanges in finalized interviews",
				Buckets: prometheus.LinearBuckets(1, 1, 10),
			},
		),
	}
}

func (p *PrometheusRecorder) ObserveGeneration(provider, model string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	p.requestsTotal.WithLabelValues(provider, model, status).Inc()
	p.requestDuration.WithLabelValues(provider, model).Observe(duration.Seconds())
}

func (p *PrometheusRecorder) IncFallback(kind string) {
	p.fallbacksTotal.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) ObserveFinalized(exchanges int) {
	p.exchanges.Observe(float64(exchanges))
}

// Handler exposes the recorder's registry in the Prometheus text format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{})
}
