package staging

import (
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"

	"github.com/stagecraft/stagectl/pkg/metrics"
)

var (
	// Transitions spend nearly all their time waiting for the server
	// to finish rule evaluation; minutes are routine for a close.
	transitionDuration = prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
		Namespace: "stagectl",
		Subsystem: "staging",
		Name:      "transition_duration_seconds",
		Help:      "Duration of staging transitions, in seconds.",
		Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600, 1200},
	}, []string{metrics.LabelOperation, metrics.LabelSuccess})

	pollCount = prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
		Namespace: "stagectl",
		Subsystem: "staging",
		Name:      "poll_attempts",
		Help:      "Number of state polls needed to confirm a transition.",
		Buckets:   []float64{1, 2, 3, 5, 8, 10, 15, 20, 30},
	}, []string{metrics.LabelOperation})
)
