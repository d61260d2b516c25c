package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsTotal counts handled HTTP requests
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "github_assistant_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"route", "method", "status"},
	)

	// requestDuration measures request latency
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "github_assistant_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"route"},
	)

	// cacheLookups counts response cache hits and misses
	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "github_assistant_cache_lookups_total",
			Help: "Total number of response cache lookups by endpoint and result",
		},
		[]string{"endpoint", "result"},
	)
)
