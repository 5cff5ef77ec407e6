// Package metrics exposes Prometheus instrumentation for the resolution
// engine: resolution outcomes, per-provider attempts, cache events and
// rate-limit denials.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder owns the collectors. One instance is shared by the resolving,
// caching and limiting layers.
type Recorder struct {
	resolutions      *prometheus.CounterVec
	providerAttempts *prometheus.CounterVec
	cacheEvents      *prometheus.CounterVec
	rateLimited      prometheus.Counter
	duration         prometheus.Histogram
}

// NewRecorder registers the collectors on the given registry.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lyrica_resolutions_total",
			Help: "Completed resolutions by outcome (success, not_found, planning_error).",
		}, []string{"outcome", "mode"}),
		providerAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lyrica_provider_attempts_total",
			Help: "Provider attempts by provider and outcome.",
		}, []string{"provider", "outcome"}),
		cacheEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lyrica_cache_events_total",
			Help: "Cache lookups by event (hit, miss).",
		}, []string{"event"}),
		rateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "lyrica_rate_limited_total",
			Help: "Requests denied by the rate limiter.",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lyrica_resolution_duration_seconds",
			Help:    "Wall time of full resolutions, cache hits excluded.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// NewDefaultRecorder registers on the default Prometheus registry.
func NewDefaultRecorder() *Recorder {
	return NewRecorder(prometheus.DefaultRegisterer)
}

func (r *Recorder) Resolution(outcome, mode string, elapsed time.Duration) {
	r.resolutions.WithLabelValues(outcome, mode).Inc()
	r.duration.Observe(elapsed.Seconds())
}

func (r *Recorder) ProviderAttempt(provider, outcome string) {
	r.providerAttempts.WithLabelValues(provider, outcome).Inc()
}

func (r *Recorder) CacheHit()  { r.cacheEvents.WithLabelValues("hit").Inc() }
func (r *Recorder) CacheMiss() { r.cacheEvents.WithLabelValues("miss").Inc() }

func (r *Recorder) RateLimited() { r.rateLimited.Inc() }
