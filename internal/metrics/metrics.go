// Package metrics holds the Prometheus collectors of the ledger server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "groupledger"

var (
	RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rpc_requests_total",
		Help:      "Connect RPCs handled, by procedure and status code.",
	}, []string{"procedure", "code"})

	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rpc_duration_seconds",
		Help:      "Connect RPC latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure"})

	BalanceComputations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "balance_computations_total",
		Help:      "Balance sheet computations, by result.",
	}, []string{"result"})

	SettlementTransfers = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "settlement_transfers",
		Help:      "Number of transfers suggested per settlement computation.",
		Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
	})

	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "RPCs rejected by the per-client rate limit, by procedure.",
	}, []string{"procedure"})

	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Ledger events handed to the publisher, by type and result.",
	}, []string{"type", "result"})
)

// ObserveBalances records the outcome of one balance computation.
func ObserveBalances(transfers int, err error) {
	if err != nil {
		BalanceComputations.WithLabelValues("error").Inc()
		return
	}
	BalanceComputations.WithLabelValues("ok").Inc()
	SettlementTransfers.Observe(float64(transfers))
}

// ObserveEvent records the outcome of one event publish.
func ObserveEvent(eventType string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	EventsPublished.WithLabelValues(eventType, result).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
