// Package rest serves the read-only HTTP surface: health, Prometheus metrics
// and JSON views of the status, alarms and world clock board.
package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/oshokin/timedeck/internal/api/grpc/timedeck"
	"github.com/oshokin/timedeck/internal/domain/alarm"
	"github.com/oshokin/timedeck/internal/domain/worldclock"
	"github.com/oshokin/timedeck/internal/metrics"
)

// Source provides the views served over HTTP.
type Source interface {
	Status(ctx context.Context) timedeck.Status
	Alarms(ctx context.Context) ([]alarm.Entry, *alarm.Entry)
	World(ctx context.Context) ([]worldclock.Reading, worldclock.Settings)
}

// handler serves the JSON views.
type handler struct {
	source  Source
	version string
}

// NewRouter builds the routes, instrumented with m and wrapped with panic
// recovery and access logging through log.
func NewRouter(source Source, m *metrics.Metrics, log *zap.SugaredLogger, version string) http.Handler {
	h := &handler{source: source, version: version}

	r := mux.NewRouter()

	r.Handle("/healthz", m.Instrument("/healthz", http.HandlerFunc(h.health))).Methods(http.MethodGet)
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	r.Handle("/v1/status", m.Instrument("/v1/status", http.HandlerFunc(h.status))).Methods(http.MethodGet)
	r.Handle("/v1/alarms", m.Instrument("/v1/alarms", http.HandlerFunc(h.alarms))).Methods(http.MethodGet)
	r.Handle("/v1/world", m.Instrument("/v1/world", http.HandlerFunc(h.world))).Methods(http.MethodGet)

	base := log.Desugar()
	access := zap.NewStdLog(base.Named("http")).Writer()

	recovery, err := zap.NewStdLogAt(base.Named("http"), zap.ErrorLevel)
	if err != nil {
		recovery = zap.NewStdLog(base)
	}

	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(recovery),
		handlers.PrintRecoveryStack(true),
	)(handlers.CombinedLoggingHandler(access, r))
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": h.version})
}

func (h *handler) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, timedeck.NewStatusResponse(h.source.Status(r.Context()), h.version))
}

func (h *handler) alarms(w http.ResponseWriter, r *http.Request) {
	entries, ringing := h.source.Alarms(r.Context())

	resp := timedeck.ListAlarmsResponse{Alarms: timedeck.NewAlarms(entries)}
	if ringing != nil {
		a := timedeck.NewAlarm(*ringing)
		resp.Ringing = &a
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) world(w http.ResponseWriter, r *http.Request) {
	readings, settings := h.source.World(r.Context())

	writeJSON(w, http.StatusOK, timedeck.WorldResponse{
		Cities:   timedeck.NewCityReadings(readings),
		Settings: timedeck.NewWorldClockSettings(settings),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
