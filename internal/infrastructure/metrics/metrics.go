package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus collectors for the invoice service and the payer runtime. All
// collectors register on the default registry so /metrics needs no extra
// wiring.
var (
	InvoicesIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tapinvoice_invoices_issued_total",
		Help: "Number of invoices signed and persisted",
	})

	InvoicesServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tapinvoice_invoices_served_total",
		Help: "Invoice lookups by outcome",
	}, []string{"outcome"})

	SettlementAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tapinvoice_settlement_attempts_total",
		Help: "Settlement attempts by network and outcome",
	}, []string{"network", "outcome"})

	SettlementDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tapinvoice_settlement_duration_seconds",
		Help:    "Wall time from transaction submission to mined receipt",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
	})
)
