// Package metrics exposes Prometheus counters/histograms for the
// pipeline's stages and an optional /metrics HTTP endpoint, grounded on
// internal/server/metrics.go's promauto-registered CounterVec/HistogramVec
// pattern in the teacher repository.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DocumentsProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "votershield_documents_processed_total",
			Help: "Total number of documents processed, by terminal status",
		},
		[]string{"status"}, // completed, failed, incomplete
	)

	PagesRenderedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "votershield_pages_rendered_total",
			Help: "Total number of PDF pages rasterized to JPEG",
		},
	)

	OCRJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "votershield_ocr_jobs_total",
			Help: "Total number of tesseract invocations, by outcome",
		},
		[]string{"outcome"}, // ok, failed
	)

	MarkerSplitsLowCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "votershield_marker_splits_low_total",
			Help: "Total number of voter-grid pages whose marker split fell below the expected threshold",
		},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "votershield_stage_duration_seconds",
			Help:    "Per-document, per-stage wall-clock duration",
			Buckets: []float64{.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"stage"}, // render, crop, ocr, extract
	)
)
