package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the instrumentation for the HTTP surface.
type metrics struct {
	registry *prometheus.Registry

	resolutions        prometheus.Counter
	resolutionDuration prometheus.Histogram
	diagnostics        *prometheus.CounterVec
	progressWrites     prometheus.Counter
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	return &metrics{
		registry: reg,
		resolutions: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: "waymark",
			Name:      "resolutions_total",
			Help:      "Number of journey resolution passes served.",
		}),
		resolutionDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Namespace: "waymark",
			Name:      "resolution_duration_seconds",
			Help:      "Wall time of a full resolution pass including store reads.",
			Buckets:   prometheus.DefBuckets,
		}),
		diagnostics: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "waymark",
			Name:      "diagnostics_total",
			Help:      "Definition diagnostics surfaced by resolution passes.",
		}, []string{"code"}),
		progressWrites: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: "waymark",
			Name:      "progress_writes_total",
			Help:      "Number of accepted progress records.",
		}),
	}
}
