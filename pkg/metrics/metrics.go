package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PassesCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "bolosign", Name: "passes_completed_total", Help: "Number of completed compositing passes."},
	)
	PassesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "bolosign", Name: "passes_failed_total", Help: "Number of failed compositing passes by stage."},
		[]string{"stage"},
	)
	FieldsComposited = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "bolosign", Name: "fields_composited_total", Help: "Number of fields drawn into documents by field type."},
		[]string{"type"},
	)
	FieldsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "bolosign", Name: "fields_skipped_total", Help: "Number of fields skipped by reason."},
		[]string{"reason"},
	)
	ArtifactBytes = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "bolosign", Name: "artifact_bytes_total", Help: "Total bytes of signed artifacts written."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "bolosign", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "bolosign", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(PassesCompleted)
	reg.MustRegister(PassesFailed)
	reg.MustRegister(FieldsComposited)
	reg.MustRegister(FieldsSkipped)
	reg.MustRegister(ArtifactBytes)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
