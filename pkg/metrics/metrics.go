package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the application
type Registry struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Topology metrics
	ConnectAttemptsTotal *prometheus.CounterVec
	NetworksByKind       *prometheus.GaugeVec
	PeerMergesTotal      prometheus.Counter
	MemberMovesTotal     prometheus.Counter
	TopologyClearsTotal  prometheus.Counter

	// BV metrics
	TaxCalculationsTotal prometheus.Counter

	// Persistence metrics
	SavesTotal *prometheus.CounterVec
	LoadsTotal *prometheus.CounterVec
}

// NewRegistry creates a registry with all metrics registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "c3net_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "c3net_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"method", "path"},
	)

	r.ConnectAttemptsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "c3net_topology_connect_attempts_total",
			Help: "Connection attempts by outcome and rejection reason",
		},
		[]string{"outcome", "reason"},
	)

	r.NetworksByKind = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "c3net_topology_networks",
			Help: "Current number of network records by kind",
		},
		[]string{"kind"},
	)

	r.PeerMergesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "c3net_topology_peer_merges_total",
			Help: "Total number of peer network merges",
		},
	)

	r.MemberMovesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "c3net_topology_member_moves_total",
			Help: "Total number of members re-homed between networks",
		},
	)

	r.TopologyClearsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "c3net_topology_clears_total",
			Help: "Total number of full topology clears",
		},
	)

	r.TaxCalculationsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "c3net_bv_tax_calculations_total",
			Help: "Total number of BV tax calculations served",
		},
	)

	r.SavesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "c3net_force_saves_total",
			Help: "Force saves by status",
		},
		[]string{"status"},
	)

	r.LoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "c3net_force_loads_total",
			Help: "Force loads by status",
		},
		[]string{"status"},
	)

	return r
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordConnectAttempt records one topology connection attempt. The reason
// label is empty for accepted connections.
func (r *Registry) RecordConnectAttempt(valid bool, reason string) {
	outcome := "accepted"
	if !valid {
		outcome = "rejected"
	} else {
		reason = ""
	}
	r.ConnectAttemptsTotal.WithLabelValues(outcome, reason).Inc()
}

// UpdateNetworkCounts refreshes the per-kind network gauges.
func (r *Registry) UpdateNetworkCounts(peerNets, masterNets int) {
	r.NetworksByKind.WithLabelValues("peer").Set(float64(peerNets))
	r.NetworksByKind.WithLabelValues("master").Set(float64(masterNets))
}

// Handler returns an HTTP handler exposing the registry in Prometheus format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying prometheus registry, mainly for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
