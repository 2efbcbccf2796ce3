// Package metrics provides Prometheus metrics for long-running
// HyperMinHash sketch servers (the CLI's "serve" mode).
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ItemsAdded counts the total number of items added to a sketch, by
	// sketch name.
	ItemsAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hyperminhash_items_added_total",
			Help: "Total number of items added to a sketch",
		},
		[]string{"sketch"},
	)

	// CardinalityEstimate reports the most recently computed cardinality
	// estimate for a sketch.
	CardinalityEstimate = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hyperminhash_cardinality_estimate",
			Help: "Most recent cardinality estimate for a sketch",
		},
		[]string{"sketch"},
	)

	// MergesTotal counts merges performed, by sketch name.
	MergesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hyperminhash_merges_total",
			Help: "Total number of merges performed on a sketch",
		},
		[]string{"sketch"},
	)
)

// RecordAdd increments the item counter and refreshes the cardinality
// gauge for sketch after an Add call.
func RecordAdd(sketch string, cardinality uint64) {
	ItemsAdded.WithLabelValues(sketch).Inc()
	CardinalityEstimate.WithLabelValues(sketch).Set(float64(cardinality))
}

// RecordMerge increments the merge counter and refreshes the cardinality
// gauge for sketch after a Merge call.
func RecordMerge(sketch string, cardinality uint64) {
	MergesTotal.WithLabelValues(sketch).Inc()
	CardinalityEstimate.WithLabelValues(sketch).Set(float64(cardinality))
}

// Server exposes /metrics over HTTP for scraping.
type Server struct {
	server *http.Server
}

// NewServer creates a metrics server listening on addr.
func NewServer(addr string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{
		server: &http.Server{
			Addr:    addr,
			Handler: mux,
		},
	}
}

// Start runs the metrics server in the background.
func (s *Server) Start() error {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			println("metrics server error:", err.Error())
		}
	}()
	return nil
}

// Stop gracefully stops the metrics server.
func (s *Server) Stop() error {
	return s.server.Close()
}
