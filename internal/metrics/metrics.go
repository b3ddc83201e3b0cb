// Package metrics exposes Prometheus instruments for the server.
//
// Every Metrics value owns its registry, so tests and multiple servers in one
// process never collide on registration.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oshokin/timedeck/internal/domain/effect"
)

const namespace = "timedeck"

// Metrics holds the server instruments.
type Metrics struct {
	registry *prometheus.Registry

	ticks            prometheus.Counter
	alarmRings       prometheus.Counter
	timerFinishes    prometheus.Counter
	laps             prometheus.Counter
	playbackFailures *prometheus.CounterVec
	eventFailures    prometheus.Counter
	alarms           prometheus.Gauge
	timerRemaining   prometheus.Gauge
	stopwatchRunning prometheus.Gauge
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New creates and registers the instruments on a fresh registry together
// with the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Total clock ticks evaluated.",
		}),
		alarmRings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alarm_rings_total",
			Help:      "Total alarms that started ringing.",
		}),
		timerFinishes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "timer_finishes_total",
			Help:      "Total countdowns that reached zero.",
		}),
		laps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stopwatch_laps_total",
			Help:      "Total stopwatch laps recorded.",
		}),
		playbackFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playback_failures_total",
			Help:      "Total failed playback requests by channel.",
		}, []string{"channel"}),
		eventFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_publish_failures_total",
			Help:      "Total events that could not be published.",
		}),
		alarms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "alarms_configured",
			Help:      "Number of configured alarms.",
		}),
		timerRemaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "timer_remaining_seconds",
			Help:      "Remaining countdown time at the last tick.",
		}),
		stopwatchRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stopwatch_running",
			Help:      "1 while the stopwatch is running.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Histogram of HTTP request durations by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ticks,
		m.alarmRings,
		m.timerFinishes,
		m.laps,
		m.playbackFailures,
		m.eventFailures,
		m.alarms,
		m.timerRemaining,
		m.stopwatchRunning,
		m.httpRequests,
		m.httpDuration,
	)

	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Tick counts one evaluated tick.
func (m *Metrics) Tick() { m.ticks.Inc() }

// AlarmRang counts an alarm that started ringing.
func (m *Metrics) AlarmRang() { m.alarmRings.Inc() }

// TimerFinished counts a countdown that reached zero.
func (m *Metrics) TimerFinished() { m.timerFinishes.Inc() }

// Lap counts a stopwatch lap.
func (m *Metrics) Lap() { m.laps.Inc() }

// PlaybackFailed counts a failed playback request.
func (m *Metrics) PlaybackFailed(e effect.Effect, _ error) {
	m.playbackFailures.WithLabelValues(string(e.Channel)).Inc()
}

// EventFailed counts an event that could not be published.
func (m *Metrics) EventFailed() { m.eventFailures.Inc() }

// SetAlarms records the number of configured alarms.
func (m *Metrics) SetAlarms(n int) { m.alarms.Set(float64(n)) }

// SetTimerRemaining records the remaining countdown time.
func (m *Metrics) SetTimerRemaining(d time.Duration) { m.timerRemaining.Set(d.Seconds()) }

// SetStopwatchRunning records whether the stopwatch runs.
func (m *Metrics) SetStopwatchRunning(running bool) {
	v := 0.0
	if running {
		v = 1
	}

	m.stopwatchRunning.Set(v)
}

// statusRecorder captures the response status for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

// WriteHeader records the status before delegating.
func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// Instrument wraps next, recording request count and duration under route.
func (m *Metrics) Instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		m.httpRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
