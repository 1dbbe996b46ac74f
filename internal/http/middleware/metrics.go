package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics carry the coinpanel namespace so they stay distinguishable from
// the parent panel's own series when both are scraped.
var (
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "coinpanel",
			Name:      "rate_limiter_requests_total",
			Help:      "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "coinpanel",
			Name:      "rate_limiter_blocked_total",
			Help:      "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(RLRequests)
	prometheus.MustRegister(RLBlocked)
}
