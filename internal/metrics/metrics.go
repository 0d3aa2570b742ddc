// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

// Package metrics provides Prometheus instrumentation for the learning
// engine: training throughput, idempotent skips, batch reprocessing
// progress, and suggestion latency per recommendation domain.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Training Metrics
	SessionsTrained = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ludolog_sessions_trained_total",
			Help: "Total number of finalized sessions trained into the model",
		},
	)

	SessionsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ludolog_sessions_skipped_total",
			Help: "Total number of already-processed sessions skipped by the processing log",
		},
	)

	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ludolog_training_duration_seconds",
			Help:    "Duration of single-record training transactions in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	TrainingErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ludolog_training_errors_total",
			Help: "Total number of training transactions rolled back on error",
		},
	)

	EntitiesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ludolog_entities_created_total",
			Help: "Total number of entities lazily created during training",
		},
		[]string{"kind"},
	)

	// Batch Reprocessing Metrics
	ReprocessChunks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ludolog_reprocess_chunks_total",
			Help: "Total number of batch reprocessing chunks committed",
		},
	)

	ReprocessDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ludolog_reprocess_duration_seconds",
			Help:    "Duration of full history reprocessing runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
	)

	// Suggestion Metrics
	SuggestionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ludolog_suggestion_requests_total",
			Help: "Total number of suggestion requests",
		},
		[]string{"domain"},
	)

	SuggestionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ludolog_suggestion_duration_seconds",
			Help:    "Suggestion scoring latency in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"domain"},
	)
)
