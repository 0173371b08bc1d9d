// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Webhook outcomes.
const (
	OutcomeOK            = "ok"
	OutcomeInvalidFormat = "invalid_format"
	OutcomeError         = "error"
	OutcomeNoPayload     = "no_payload"
)

// Ingestion entry results.
const (
	EntryLoaded        = "loaded"
	EntrySkippedWindow = "skipped_window"
	EntryEmpty         = "empty"
)

var (
	WebhookUpdates = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "momentum",
		Name:      "webhook_updates_total",
		Help:      "Inbound chat updates by collection and outcome.",
	}, []string{"collection", "outcome"})

	PairsResolved = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "momentum",
		Name:      "pairs_resolved_total",
		Help:      "Pairs resolved and written to the document store.",
	}, []string{"collection"})

	IngestEntries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "momentum",
		Name:      "ingest_entries_total",
		Help:      "Tracked pair entries handled by the ingestion job.",
	}, []string{"result"})

	IngestRows = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "momentum",
		Name:      "ingest_rows_total",
		Help:      "Snapshot rows appended to the warehouse.",
	})

	PriceAPIRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "momentum",
		Name:      "price_api_requests_total",
		Help:      "Requests to the price API by HTTP status (or \"error\").",
	}, []string{"status"})
)

var registerOnce sync.Once

// MustRegisterMetrics registers all collectors with the default registry. Safe to call more than once.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(WebhookUpdates, PairsResolved, IngestEntries, IngestRows, PriceAPIRequests)
	})
}
