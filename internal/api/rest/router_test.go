package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oshokin/timedeck/internal/api/grpc/timedeck"
	"github.com/oshokin/timedeck/internal/domain/alarm"
	"github.com/oshokin/timedeck/internal/domain/countdown"
	"github.com/oshokin/timedeck/internal/domain/stopwatch"
	"github.com/oshokin/timedeck/internal/domain/worldclock"
	"github.com/oshokin/timedeck/internal/metrics"
)

// fakeSource serves fixed views.
type fakeSource struct {
	now     time.Time
	entries []alarm.Entry
	ringing *alarm.Entry
	board   *worldclock.Board
}

func newFakeSource() *fakeSource {
	wake := alarm.Entry{ID: 1, Time: alarm.NewTimeOfDay(7, 30), Label: "Wake Up", Enabled: true}

	return &fakeSource{
		now:     time.Date(2024, time.May, 4, 7, 30, 0, 0, time.UTC),
		entries: []alarm.Entry{wake},
		ringing: &wake,
		board:   worldclock.NewBoard(time.UTC, worldclock.NewZoneDB()),
	}
}

func (f *fakeSource) Status(context.Context) timedeck.Status {
	return timedeck.Status{
		Now:       f.now,
		Stopwatch: stopwatch.New().Snapshot(f.now),
		Timer:     countdown.New("").Snapshot(f.now),
		Alarms:    f.entries,
		Ringing:   f.ringing,
		World:     f.board.Readings(f.now),
	}
}

func (f *fakeSource) Alarms(context.Context) ([]alarm.Entry, *alarm.Entry) {
	return f.entries, f.ringing
}

func (f *fakeSource) World(context.Context) ([]worldclock.Reading, worldclock.Settings) {
	return f.board.Readings(f.now), f.board.Settings()
}

// newTestServer starts the router on an httptest server.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(NewRouter(newFakeSource(), metrics.New(), zap.NewNop().Sugar(), "0.3.0"))
	t.Cleanup(srv.Close)

	return srv
}

// get fetches path and returns the status code and body.
func get(t *testing.T, srv *httptest.Server, path string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL+path, nil)
	require.NoError(t, err)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, body
}

// TestRouter_Views checks the JSON views.
func TestRouter_Views(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	code, body := get(t, srv, "/healthz")
	require.Equal(t, http.StatusOK, code)
	require.JSONEq(t, `{"status":"ok","version":"0.3.0"}`, string(body))

	code, body = get(t, srv, "/v1/alarms")
	require.Equal(t, http.StatusOK, code)

	var alarms timedeck.ListAlarmsResponse
	require.NoError(t, json.Unmarshal(body, &alarms))
	require.Len(t, alarms.Alarms, 1)
	require.Equal(t, "07:30 AM", alarms.Alarms[0].Time12)
	require.NotNil(t, alarms.Ringing)

	code, body = get(t, srv, "/v1/world")
	require.Equal(t, http.StatusOK, code)

	var world timedeck.WorldResponse
	require.NoError(t, json.Unmarshal(body, &world))
	require.Len(t, world.Cities, 4)
	require.Equal(t, "Local Time", world.Cities[0].Name)
	require.True(t, world.Settings.ShowOffset)

	code, body = get(t, srv, "/v1/status")
	require.Equal(t, http.StatusOK, code)

	var status timedeck.StatusResponse
	require.NoError(t, json.Unmarshal(body, &status))
	require.Equal(t, "0.3.0", status.Version)
	require.Equal(t, "Setup", status.Timer.Phase)
	require.Equal(t, "00:00.00", status.Stopwatch.Display)
}

// TestRouter_Metrics verifies requests are counted and exposed.
func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	code, _ := get(t, srv, "/healthz")
	require.Equal(t, http.StatusOK, code)

	code, body := get(t, srv, "/metrics")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, string(body), `timedeck_http_requests_total{route="/healthz",status="200"} 1`)
}

// TestRouter_ReadOnly verifies unknown routes and write methods are rejected.
func TestRouter_ReadOnly(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	code, _ := get(t, srv, "/v1/nothing")
	require.Equal(t, http.StatusNotFound, code)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, srv.URL+"/v1/alarms", nil)
	require.NoError(t, err)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
