// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package metrics holds Prometheus instrumentation for the atlas server.
//
// Registration is lazy: metrics register on first use, so importing the
// package from tests carries no cost and no duplicate-registration panics.
package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type serverMetrics struct {
	once sync.Once

	toolInvocations *prometheus.CounterVec
	remoteRequests  *prometheus.CounterVec
	remoteDuration  *prometheus.HistogramVec
}

var m serverMetrics

func (s *serverMetrics) init() {
	s.once.Do(func() {
		s.toolInvocations = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "atlas_tool_invocations_total",
			Help: "Tool invocations by tool name and outcome.",
		}, []string{"tool", "status"})

		s.remoteRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "atlas_remote_requests_total",
			Help: "Remote HTTP requests by endpoint and status code (0 = network failure).",
		}, []string{"endpoint", "code"})

		s.remoteDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "atlas_remote_request_seconds",
			Help:    "Remote HTTP request duration by endpoint.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"})

		prometheus.MustRegister(s.toolInvocations, s.remoteRequests, s.remoteDuration)
	})
}

// ObserveTool records one tool invocation and its outcome.
func ObserveTool(tool string, failed bool) {
	m.init()
	status := "ok"
	if failed {
		status = "error"
	}
	m.toolInvocations.WithLabelValues(tool, status).Inc()
}

// ObserveRemote records one remote HTTP request. Wire it to
// confluence.Client.Observe.
func ObserveRemote(endpoint string, status int, elapsed time.Duration) {
	m.init()
	m.remoteRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	m.remoteDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	m.init()
	return promhttp.Handler()
}

// Serve exposes /metrics on addr. It blocks; run it in a goroutine. Errors
// are logged, not fatal: metrics are an observability aid, losing them must
// not take the tool server down.
func Serve(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics listener stopped", "addr", addr, "error", err)
	}
}
