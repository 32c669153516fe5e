// Package metrics exposes Prometheus instrumentation for the tripsplit server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector the server records into.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// RPC calls by procedure and result code ("ok" on success)
	RPCRequests *prometheus.CounterVec

	// RPC latency by procedure
	RPCLatency *prometheus.HistogramVec

	// Transfers produced per settlement computation
	SettlementTransfers prometheus.Histogram

	UsersRegistered prometheus.Counter
	ReceiptsCreated prometheus.Counter
}

// New creates a Metrics instance registered with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RPCRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tripsplit_rpc_requests_total",
			Help: "Total RPC calls by procedure and result code",
		}, []string{"procedure", "code"}),

		RPCLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tripsplit_rpc_duration_seconds",
			Help:    "Duration of RPC calls by procedure",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"procedure"}),

		SettlementTransfers: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "tripsplit_settlement_transfers",
			Help:    "Number of transfers produced per settlement computation",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),

		UsersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "tripsplit_users_registered_total",
			Help: "Total number of accounts registered",
		}),

		ReceiptsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "tripsplit_receipts_created_total",
			Help: "Total number of receipts recorded",
		}),
	}
}

// ObserveRPC records one finished RPC call.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	if m != nil {
		m.RPCRequests.WithLabelValues(procedure, code).Inc()
		m.RPCLatency.WithLabelValues(procedure).Observe(d.Seconds())
	}
}

// ObserveSettlements records the size of a computed settlement plan.
func (m *Metrics) ObserveSettlements(n int) {
	if m != nil {
		m.SettlementTransfers.Observe(float64(n))
	}
}

// IncrementUsersRegistered counts a new account.
func (m *Metrics) IncrementUsersRegistered() {
	if m != nil {
		m.UsersRegistered.Inc()
	}
}

// IncrementReceiptsCreated counts a new receipt.
func (m *Metrics) IncrementReceiptsCreated() {
	if m != nil {
		m.ReceiptsCreated.Inc()
	}
}
