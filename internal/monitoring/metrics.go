package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	model "github.com/bsgreeks/greeks-validator/internal/artifact/model"
	httputil "github.com/bsgreeks/greeks-validator/pkg/httputil"
)

const namespace = "greeks"

// Metrics prometheus collectors of the results API
type Metrics struct {
	reqCount        *prometheus.CounterVec
	reqDuration     *prometheus.HistogramVec
	bytesServed     *prometheus.CounterVec
	manifestEntries *prometheus.GaugeVec
	buildInfo       *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		reqCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests processed.",
			},
			[]string{"method", "route", "status"},
		),
		reqDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		bytesServed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "artifact_bytes_served_total",
				Help:      "Bytes of artifact content written to clients.",
			},
			[]string{"kind"},
		),
		manifestEntries: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "manifest_entries",
				Help:      "Number of artifacts found by the last manifest listing.",
			},
			[]string{"kind"},
		),
		buildInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "build_info",
				Help:      "Always 1, labelled with the running version and host.",
			},
			[]string{"version", "hostname"},
		),
	}

	reg.MustRegister(m.reqCount, m.reqDuration, m.bytesServed, m.manifestEntries, m.buildInfo)

	return m
}

// Middleware records count and duration per route template
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := httputil.NewStatusRecorder(w)
		next.ServeHTTP(rec, r)

		route := RouteName(r)
		m.reqCount.WithLabelValues(r.Method, route, strconv.Itoa(rec.Status)).Inc()
		m.reqDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// ObserveManifest publishes the size of a manifest listing
func (m *Metrics) ObserveManifest(manifest model.Manifest) {
	m.manifestEntries.WithLabelValues(string(model.KindCSV)).Set(float64(len(manifest.CSV)))
	m.manifestEntries.WithLabelValues(string(model.KindPNG)).Set(float64(len(manifest.Plots)))
}

// AddBytesServed counts artifact bytes written for name
func (m *Metrics) AddBytesServed(name string, n int64) {
	kind, ok := model.KindOf(name)
	if !ok {
		kind = "other"
	}
	m.bytesServed.WithLabelValues(string(kind)).Add(float64(n))
}

// SetBuildInfo exposes the running version
func (m *Metrics) SetBuildInfo(version string) {
	if version == "" {
		version = "dev"
	}
	m.buildInfo.WithLabelValues(version, GetHostname()).Set(1)
}

// RouteName returns the mux path template of the matched route so that
// metric and log labels stay bounded.
func RouteName(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return "unmatched"
	}
	tpl, err := route.GetPathTemplate()
	if err != nil {
		return "unmatched"
	}
	return tpl
}
