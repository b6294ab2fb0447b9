package stats

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Job metrics
var (
	JobsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "banner_bot_jobs_total",
			Help: "Total number of successfully processed videos",
		},
	)

	JobErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "banner_bot_job_errors_total",
			Help: "Total number of failed processing attempts",
		},
	)

	JobDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "banner_bot_job_duration_seconds",
			Help:    "End-to-end job duration in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 180, 300, 600},
		},
	)

	JobsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "banner_bot_jobs_in_flight",
			Help: "Number of jobs currently downloading or transcoding",
		},
	)

	LargestFileBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "banner_bot_largest_file_bytes",
			Help: "Largest input file size seen since start",
		},
	)
)

// Download metrics
var (
	DownloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "banner_bot_downloads_total",
			Help: "Total number of media downloads by result",
		},
		[]string{"result"},
	)
)
