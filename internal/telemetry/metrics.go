package telemetry

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RPCTotal counts dispatched requests by operation name.
	RPCTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docstore_rpc_total",
		Help: "Requests dispatched to the datastore service, by operation.",
	}, []string{"op"})

	// RoundTrips counts continuation round trips of read operations.
	RoundTrips = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docstore_read_round_trips_total",
		Help: "Lookup/query round trips, including continuations.",
	}, []string{"op"})

	// QueuedMutations counts mutations diverted into a transaction queue.
	QueuedMutations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docstore_txn_queued_mutations_total",
		Help: "Mutations queued for an external transaction commit.",
	})
)

func Expose(port int) {
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		_ = http.ListenAndServe(fmt.Sprintf(":%d", port), nil)
	}()
}
