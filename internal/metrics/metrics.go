package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, path and status code
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks request latency by method and path
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// QuotationPdfsGenerated counts rendered quotation PDFs
	QuotationPdfsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quotation_pdfs_generated_total",
			Help: "Total number of quotation PDFs generated",
		},
	)

	// QuotationEmailsSent counts quotation email dispatch attempts by outcome
	QuotationEmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quotation_emails_total",
			Help: "Total number of quotation emails by outcome",
		},
		[]string{"status"},
	)
)
