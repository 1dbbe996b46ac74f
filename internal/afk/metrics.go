package afk

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "coinpanel",
			Name:      "afk_connections_active",
			Help:      "Open AFK websocket connections",
		},
	)
	CoinTicks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "coinpanel",
			Name:      "afk_coin_ticks_total",
			Help:      "Successful coin credits across all AFK connections",
		},
	)
	RejectedConnections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "coinpanel",
			Name:      "afk_connections_rejected_total",
			Help:      "AFK connections closed at open time",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(ActiveConnections)
	prometheus.MustRegister(CoinTicks)
	prometheus.MustRegister(RejectedConnections)
}
