// Package metrics provides Prometheus metrics for the onboarding service.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ruteri/kyc-onboarding-backend/common"
)

var (
	// AdminCredentialRefreshTotal counts admin credential refreshes by result.
	AdminCredentialRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: common.PackageName,
			Name:      "admin_credential_refresh_total",
			Help:      "Total number of admin credential pair refreshes",
		},
		[]string{"result"},
	)

	// AdminCredentialCacheHitsTotal counts requests served from the persisted pair.
	AdminCredentialCacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: common.PackageName,
			Name:      "admin_credential_cache_hits_total",
			Help:      "Total number of admin credential requests served without refresh",
		},
	)

	// OnboardingHandshakeTotal counts handshakes by result and the last stage reached.
	OnboardingHandshakeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: common.PackageName,
			Name:      "onboarding_handshake_total",
			Help:      "Total number of onboarding handshakes",
		},
		[]string{"result", "stage"},
	)

	// UpstreamRequestDuration measures calls to the identity providers.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: common.PackageName,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of identity provider requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)
)

// RecordRefresh records the outcome of an admin credential refresh.
func RecordRefresh(err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	AdminCredentialRefreshTotal.WithLabelValues(result).Inc()
}

// RecordCacheHit records a request served by the persisted pair.
func RecordCacheHit() {
	AdminCredentialCacheHitsTotal.Inc()
}

// RecordHandshake records a finished handshake and the stage it ended in.
func RecordHandshake(stage string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	OnboardingHandshakeTotal.WithLabelValues(result, stage).Inc()
}

// ObserveUpstream records the duration of one upstream call.
func ObserveUpstream(op string, start time.Time) {
	UpstreamRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// MetricsServer exposes the default registry on its own listener.
type MetricsServer struct {
	srv *http.Server
}

func New(listenAddr string) (*MetricsServer, error) {
	mux := chi.NewRouter()
	mux.Handle("/metrics", promhttp.Handler())

	return &MetricsServer{
		srv: &http.Server{
			Addr:              listenAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

func (m *MetricsServer) ListenAndServe() error {
	return m.srv.ListenAndServe()
}

func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}
