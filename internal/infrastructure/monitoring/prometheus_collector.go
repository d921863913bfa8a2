package monitoring

import (
	"time"

	"costream/internal/core/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusCollector struct {
	sessionsActiveTotal   prometheus.Gauge
	phaseTransitionsTotal *prometheus.CounterVec
	platformAttemptsTotal *prometheus.CounterVec
	coordinationDuration  prometheus.Histogram
	subscribersTotal      *prometheus.GaugeVec
}

func NewPrometheusCollector() *PrometheusCollector {
	return &PrometheusCollector{
		sessionsActiveTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "costream_sessions_active_total",
			Help: "Number of active coordination sessions",
		}),

		phaseTransitionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "costream_phase_transitions_total",
			Help: "Total number of session phase transitions",
		}, []string{"phase"}),

		platformAttemptsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "costream_platform_attempts_total",
			Help: "Total number of platform coordination attempts by outcome",
		}, []string{"platform", "status"}),

		coordinationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "costream_coordination_pass_duration_seconds",
			Help:    "Duration of full platform coordination passes",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),

		subscribersTotal: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "costream_event_subscribers",
			Help: "Number of status subscribers per event",
		}, []string{"event_id"}),
	}
}

func (p *PrometheusCollector) RecordSessionStarted() {
	p.sessionsActiveTotal.Inc()
}

func (p *PrometheusCollector) RecordSessionClosed() {
	p.sessionsActiveTotal.Dec()
}

func (p *PrometheusCollector) RecordPhaseTransition(phase domain.SessionPhase) {
	p.phaseTransitionsTotal.WithLabelValues(string(phase)).Inc()
}

func (p *PrometheusCollector) RecordPlatformAttempt(platform domain.PlatformID, status domain.PlatformStatus) {
	p.platformAttemptsTotal.WithLabelValues(string(platform), string(status)).Inc()
}

func (p *PrometheusCollector) RecordCoordinationPass(elapsed time.Duration) {
	p.coordinationDuration.Observe(elapsed.Seconds())
}

func (p *PrometheusCollector) SetSubscriberCount(eventID domain.EventID, count int) {
	p.subscribersTotal.WithLabelValues(string(eventID)).Set(float64(count))
}
