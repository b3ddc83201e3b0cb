package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/timedeck/internal/domain/effect"
)

// TestMetrics_Counters checks the instruments move as expected.
func TestMetrics_Counters(t *testing.T) {
	t.Parallel()

	m := New()
	m.Tick()
	m.Tick()
	m.AlarmRang()
	m.TimerFinished()
	m.Lap()
	m.EventFailed()
	m.PlaybackFailed(effect.Stop(effect.ChannelAlarm), errors.New("x"))
	m.SetAlarms(3)
	m.SetTimerRemaining(90 * time.Second)
	m.SetStopwatchRunning(true)

	require.InDelta(t, 2, testutil.ToFloat64(m.ticks), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.alarmRings), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.playbackFailures.WithLabelValues("alarm")), 0)
	require.InDelta(t, 3, testutil.ToFloat64(m.alarms), 0)
	require.InDelta(t, 90, testutil.ToFloat64(m.timerRemaining), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.stopwatchRunning), 0)

	m.SetStopwatchRunning(false)
	require.InDelta(t, 0, testutil.ToFloat64(m.stopwatchRunning), 0)
}

// TestMetrics_Handler exposes registered series and per-instance registries do not collide.
func TestMetrics_Handler(t *testing.T) {
	t.Parallel()

	m := New()
	_ = New()

	h := m.Instrument("/teapot", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/teapot", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "timedeck_ticks_total")
	require.Contains(t, rec.Body.String(), `timedeck_http_requests_total{route="/teapot",status="418"} 1`)
	require.NotNil(t, m.Registry())
}
