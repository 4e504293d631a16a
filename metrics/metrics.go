// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Pipeline metrics
	UploadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dayvibe_uploads_total",
			Help: "Total number of voice recordings uploaded and transcribed",
		},
	)

	AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dayvibe_analyses_total",
			Help: "Total number of analyses generated by source (model or fallback)",
		},
		[]string{"source"},
	)

	SignupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dayvibe_signups_total",
			Help: "Total number of signup attempts by outcome",
		},
		[]string{"outcome"},
	)

	// API metrics
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dayvibe_api_requests_total",
			Help: "Total number of API requests by method and status",
		},
		[]string{"method", "status"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dayvibe_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

func init() {
	prometheus.MustRegister(
		UploadsTotal,
		AnalysesTotal,
		SignupsTotal,
		APIRequestsTotal,
		APIRequestDuration,
	)
}

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
