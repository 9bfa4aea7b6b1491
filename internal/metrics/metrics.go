// Package metrics exposes Prometheus counters for the pipeline. Everything
// is registered on the default registry and served from the status server's
// /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RunsTotal counts evaluation runs by window ("T90", "T30") and outcome
	// ("ok", "error", "skipped").
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron",
		Name:      "runs_total",
		Help:      "Evaluation runs by window and outcome.",
	}, []string{"window", "outcome"})

	// PicksSurfaced counts picks that cleared selection, by market.
	PicksSurfaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron",
		Name:      "picks_surfaced_total",
		Help:      "Picks that cleared selection, by market.",
	}, []string{"market"})

	// NotifyFailures counts failed notification dispatches by event type
	// ("picks", "board", "scrape").
	NotifyFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron",
		Name:      "notify_failures_total",
		Help:      "Failed notification dispatches by event type.",
	}, []string{"event"})

	// CollectErrors counts collector failures by source ("oddsapi", "scraper",
	// "schedule").
	CollectErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron",
		Name:      "collect_errors_total",
		Help:      "Collector failures by source.",
	}, []string{"source"})

	// OddsCacheHits counts snapshot cache hits and misses.
	OddsCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron",
		Name:      "odds_cache_total",
		Help:      "Odds snapshot cache lookups by result (hit, miss).",
	}, []string{"result"})

	// EvalDuration tracks how long one full evaluation run takes.
	EvalDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gridiron",
		Name:      "eval_duration_seconds",
		Help:      "Duration of one full evaluation run.",
		Buckets:   prometheus.DefBuckets,
	})
)
