package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	api "github.com/oshokin/timedeck/internal/api/grpc/timedeck"
	"github.com/oshokin/timedeck/internal/api/rest"
	"github.com/oshokin/timedeck/internal/clock"
	"github.com/oshokin/timedeck/internal/config"
	"github.com/oshokin/timedeck/internal/discovery"
	"github.com/oshokin/timedeck/internal/events"
	"github.com/oshokin/timedeck/internal/logger"
	"github.com/oshokin/timedeck/internal/metrics"
	"github.com/oshokin/timedeck/internal/playback"
	"github.com/oshokin/timedeck/internal/repository/kv"
	"github.com/oshokin/timedeck/internal/repository/settings"
	"github.com/oshokin/timedeck/internal/version"
)

// Options controls the timedeck-server process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// StateFile overrides the storage path from the configuration.
	StateFile string
	// LogLevel overrides the log level from the configuration.
	LogLevel string
	// AllowMultiple skips the single-instance check.
	AllowMultiple bool
}

const (
	// eventQueueSize bounds the events waiting for the broker.
	eventQueueSize = 64
	// shutdownTimeout bounds the HTTP server shutdown.
	shutdownTimeout = 5 * time.Second
)

// ErrNoServerAddress indicates missing server configuration.
var ErrNoServerAddress = errors.New("no server address configured")

// Run starts the engines, the gRPC API and the optional HTTP surface, and
// blocks until ctx is canceled or the gRPC server stops.
//
//nolint:funlen,cyclop // Linear start-up sequence; splitting it hides the shutdown order.
func Run(ctx context.Context, opts *Options) error {
	// Load configuration first to get server settings.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if opts.StateFile != "" {
		cfg.Storage.Path = opts.StateFile
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	logger.Configure(cfg.LogLevel, cfg.LogFormat)

	// Background loops stop with ctx, also when Serve fails.
	ctx, cancel := context.WithCancel(logger.WithName(ctx, "timedeck-server"))
	defer cancel()

	if !opts.AllowMultiple {
		if err = ensureSingleInstance(); err != nil {
			return err
		}
	}

	// Determine listen address: CLI argument overrides config port extraction.
	listenAddress, err := resolveListenAddress(cfg.ServerAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	store, err := kv.Open(cfg.Storage)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.ErrorKV(ctx, "Failed to close storage", "error", closeErr)
		}
	}()

	player, closePlayer, err := newPlayer(cfg.Playback)
	if err != nil {
		return fmt.Errorf("initialise playback: %w", err)
	}

	defer closePlayer()

	m := metrics.New()

	queue, err := newEventQueue(ctx, cfg, m)
	if err != nil {
		return fmt.Errorf("initialise events: %w", err)
	}

	defer func() {
		if closeErr := queue.Close(); closeErr != nil {
			logger.ErrorKV(ctx, "Failed to close event publisher", "error", closeErr)
		}
	}()

	svc := newService(ctx, dependencies{
		clock:    clock.Real{},
		location: cfg.Location(),
		repo:     settings.NewStoreRepository(store),
		player:   player,
		events:   queue,
		metrics:  m,
	})

	// Setup TCP listener for gRPC server.
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	grpcServer := grpc.NewServer()
	api.RegisterTimeDeckServer(grpcServer, api.NewServer(svc, version.Version))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	ticker := clock.NewTicker(clock.Real{}, cfg.TickInterval)
	// The tick loop runs several times a second; its debug output is dropped.
	tickCtx := logger.AtLeast(logger.WithName(ctx, "tick"), zapcore.InfoLevel)

	tickDone := make(chan struct{})

	go func() {
		defer close(tickDone)

		ticker.Run(tickCtx, svc.Tick)
	}()

	httpServer := startHTTP(ctx, cfg.HTTPAddress, svc, m)

	if cfg.Discovery.Enabled {
		advertiser, advErr := discovery.Advertise(cfg.Discovery.Instance, tcpPort(lis.Addr()), version.Version)
		if advErr != nil {
			logger.WarnKV(ctx, "mDNS advertisement unavailable", "error", advErr)
		} else {
			defer advertiser.Shutdown()
		}
	}

	logger.InfoKV(
		ctx,
		"Timedeck server listening",
		"listen_address", lis.Addr().String(),
		"http_address", cfg.HTTPAddress,
		"storage", cfg.Storage.Driver,
		"tick_interval", cfg.TickInterval.String(),
	)

	// Done channel is closed after GracefulStop finishes to ensure we block
	// until the server fully stops before returning.
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down")
		healthServer.Shutdown()
		grpcServer.GracefulStop()

		if httpServer != nil {
			shutdownCtx, stop := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer stop()

			if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
				logger.ErrorKV(ctx, "HTTP shutdown failed", "error", shutdownErr)
			}
		}

		close(done)
	}()

	serveErr := grpcServer.Serve(lis)

	// The tick loop must be gone before the deferred queue close.
	cancel()
	<-done
	<-tickDone

	if serveErr != nil && !errors.Is(serveErr, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", serveErr)
	}

	logger.Info(ctx, "Timedeck server stopped")

	return nil
}

// newPlayer builds the configured playback sink and its cleanup.
func newPlayer(cfg config.Playback) (playback.Player, func(), error) {
	if cfg.Mode != config.PlaybackCommand {
		return playback.LogPlayer{}, func() {}, nil
	}

	player, err := playback.NewCommandPlayer(cfg.Command)
	if err != nil {
		return nil, nil, err
	}

	return player, func() { _ = player.Close() }, nil
}

// newEventQueue starts the event queue in front of MQTT, or of a no-op
// publisher when no broker is configured.
func newEventQueue(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*events.Queue, error) {
	var publisher events.Publisher = events.NopPublisher{}

	if cfg.MQTT.Broker != "" {
		mqttPublisher, err := events.NewMQTTPublisher(cfg.MQTT, cfg.Timeout)
		if err != nil {
			return nil, err
		}

		publisher = mqttPublisher
	}

	queue := events.NewQueue(publisher, eventQueueSize, func(events.Event, error) {
		m.EventFailed()
	})
	queue.Start(logger.WithName(ctx, "events"))

	return queue, nil
}

// startHTTP serves the read-only HTTP surface when an address is configured.
func startHTTP(ctx context.Context, address string, svc *service, m *metrics.Metrics) *http.Server {
	if address == "" {
		return nil
	}

	ctx = logger.WithName(ctx, "http")

	server := &http.Server{
		Addr:              address,
		Handler:           rest.NewRouter(svc, m, logger.FromContext(ctx), version.Version),
		ReadHeaderTimeout: shutdownTimeout,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorKV(ctx, "HTTP server failed", "error", err)
		}
	}()

	return server
}

// tcpPort returns the port of a TCP address, or 0.
func tcpPort(addr net.Addr) int {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.Port
	}

	return 0
}

// resolveListenAddress determines the listen address for the gRPC server.
// If override is provided, uses it directly. Otherwise extracts port from configAddr.
func resolveListenAddress(configAddr, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if configAddr == "" {
		return "", ErrNoServerAddress
	}

	_, port, err := net.SplitHostPort(configAddr)
	if err != nil {
		return "", fmt.Errorf("invalid server address format %q: %w", configAddr, err)
	}

	// Port-only address binds on all interfaces.
	return ":" + port, nil
}
