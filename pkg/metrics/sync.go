package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SyncMetrics records synchronization activity for a storefront view: poll
// cycles against the remote catalog and change signals received from other
// views.
type SyncMetrics struct {
	pollDuration *prometheus.HistogramVec
	pollFailure  *prometheus.CounterVec
	signals      *prometheus.CounterVec
	refreshes    *prometheus.CounterVec
}

// NewSyncMetrics registers the sync metrics on the provided registerer. A nil
// registerer yields a no-op recorder.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	if reg == nil {
		return &SyncMetrics{}
	}
	pollDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sync_poll_duration_seconds",
		Help:    "Duration of polling refresh cycles in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"view"})
	pollFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_poll_failures",
		Help: "Polling refresh cycles that ended in error.",
	}, []string{"view"})
	signals := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_signals_received",
		Help: "Key-changed signals delivered to this view.",
	}, []string{"key"})
	refreshes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_view_refreshes",
		Help: "View refreshes triggered by signals or polls.",
	}, []string{"view"})
	reg.MustRegister(pollDuration, pollFailure, signals, refreshes)
	return &SyncMetrics{
		pollDuration: pollDuration,
		pollFailure:  pollFailure,
		signals:      signals,
		refreshes:    refreshes,
	}
}

// ObservePoll records the duration of one polling cycle.
func (s *SyncMetrics) ObservePoll(view string, duration time.Duration) {
	if s == nil || s.pollDuration == nil {
		return
	}
	s.pollDuration.WithLabelValues(view).Observe(duration.Seconds())
}

// IncPollFailure counts a failed polling cycle.
func (s *SyncMetrics) IncPollFailure(view string) {
	if s == nil || s.pollFailure == nil {
		return
	}
	s.pollFailure.WithLabelValues(view).Inc()
}

// IncSignal counts a delivered key-changed signal.
func (s *SyncMetrics) IncSignal(key string) {
	if s == nil || s.signals == nil {
		return
	}
	s.signals.WithLabelValues(key).Inc()
}

// IncRefresh counts a view refresh.
func (s *SyncMetrics) IncRefresh(view string) {
	if s == nil || s.refreshes == nil {
		return
	}
	s.refreshes.WithLabelValues(view).Inc()
}
