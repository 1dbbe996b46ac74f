package renewal

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Sweeps = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "coinpanel",
			Name:      "renewal_sweeps_total",
			Help:      "Completed renewal sweeps",
		},
	)
	Suspensions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "coinpanel",
			Name:      "renewal_suspensions_total",
			Help:      "Servers suspended for lapsed renewal windows",
		},
	)
	SweepErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "coinpanel",
			Name:      "renewal_sweep_errors_total",
			Help:      "Store or panel API errors during sweeps",
		},
	)
	Renewals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "coinpanel",
			Name:      "renewal_manual_total",
			Help:      "Manual renewal attempts by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(Sweeps)
	prometheus.MustRegister(Suspensions)
	prometheus.MustRegister(SweepErrors)
	prometheus.MustRegister(Renewals)
}
