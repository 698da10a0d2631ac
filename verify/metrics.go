package verify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var eventProcessDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name: "agegate_event_duration_sec",
	Help: "Total duration of verification event processing",
}, []string{"type"})

var eventProcessCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "agegate_event_processed",
	Help: "Number of events processed",
}, []string{"type"})

var eventErrorCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "agegate_event_errors",
	Help: "Number of events which failed processing",
}, []string{"type"})

var reviewPostCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "agegate_reviews_posted",
	Help: "Number of review artifacts posted to the review channel",
})

var reviewVerdictCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "agegate_review_verdicts",
	Help: "Number of staff verdicts on review artifacts",
}, []string{"verdict"})

var cooldownRejectCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "agegate_cooldown_rejections",
	Help: "Number of verify requests rejected by the decline cooldown",
})

var dmFailureCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "agegate_dm_failures",
	Help: "Number of direct messages which could not be delivered",
})
