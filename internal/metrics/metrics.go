// Package metrics defines Prometheus metrics for the price tracker bot.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ptb"

// Sweep metrics.
var (
	SweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sweep_duration_seconds",
		Help:      "Duration of price sweep cycles in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	SweepItemsChecked = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweep_items_checked_total",
		Help:      "Total number of tracking items checked across sweeps.",
	})

	SweepErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweep_errors_total",
		Help:      "Total number of sweep-wide failures.",
	})

	SweepSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweep_skipped_total",
		Help:      "Total number of sweep triggers skipped because one was still running.",
	})
)

// Fetch metrics.
var (
	FetchNoPriceTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_no_price_total",
		Help:      "Total number of fetches that yielded no usable price.",
	})
)

// Notification metrics.
var (
	NotificationsSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of price drop notifications sent.",
	})

	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of notification send failures.",
	})
)
