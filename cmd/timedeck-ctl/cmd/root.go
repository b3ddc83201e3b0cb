package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	api "github.com/oshokin/timedeck/internal/api/grpc/timedeck"
	"github.com/oshokin/timedeck/internal/config"
	"github.com/oshokin/timedeck/internal/domain/actor"
	"github.com/oshokin/timedeck/internal/logger"
	"github.com/oshokin/timedeck/internal/service/common"
	"github.com/oshokin/timedeck/internal/version"
)

// deckClient is the part of common.Client the commands use.
type deckClient interface {
	Healthy(ctx context.Context) (bool, error)
	Status(ctx context.Context) (*api.StatusResponse, error)
	Stopwatch(ctx context.Context, a *actor.Actor, action api.StopwatchAction) (*api.StopwatchResponse, error)
	Timer(ctx context.Context, a *actor.Actor, action api.TimerAction, value string) (*api.TimerResponse, error)
	AddAlarm(ctx context.Context, a *actor.Actor, req *api.AddAlarmRequest) (*api.AlarmResponse, error)
	ListAlarms(ctx context.Context) (*api.ListAlarmsResponse, error)
	ToggleAlarm(ctx context.Context, a *actor.Actor, id int64) (*api.AlarmResponse, error)
	DeleteAlarm(ctx context.Context, a *actor.Actor, id int64) (*api.AlarmResponse, error)
	DismissAlarm(ctx context.Context, a *actor.Actor) (*api.AlarmResponse, error)
	World(ctx context.Context, a *actor.Actor, req *api.WorldRequest) (*api.WorldResponse, error)
	Close() error
}

// session holds the global flags and the connection shared by every
// command of one process, including all lines of an interactive shell.
type session struct {
	// configPath to the configuration YAML file.
	configPath string
	// serverAddress overrides the server address from the configuration.
	serverAddress string
	// discover locates the server over mDNS instead of using an address.
	discover bool

	client deckClient
	actor  *actor.Actor
}

// connect dials the server once and detects the calling actor.
func (s *session) connect(ctx context.Context) (deckClient, error) {
	if s.client != nil {
		return s.client, nil
	}

	cfg, err := config.Load(s.configPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	// Command output owns stdout; logs go to stderr.
	level, ok := logger.ParseLogLevel(cfg.LogLevel)
	if !ok {
		level = zapcore.WarnLevel
	}

	logger.SetLogger(logger.New(level, logger.ParseFormat(cfg.LogFormat), os.Stderr))

	a, err := actor.Detect()
	if err != nil {
		return nil, fmt.Errorf("detect actor: %w", err)
	}

	var client *common.Client

	if s.discover {
		c, found, dialErr := common.DialDiscovered(ctx, cfg.Timeout, common.WithCallTimeout(cfg.Timeout))
		if dialErr != nil {
			return nil, fmt.Errorf("discover server: %w", dialErr)
		}

		client = c

		logger.InfoKV(ctx, "Discovered server", "instance", found.Instance, "address", found.Address(), "version", found.Version)
	} else {
		serverAddress := cfg.ServerAddress
		if s.serverAddress != "" {
			serverAddress = s.serverAddress
		}

		client, err = common.Dial(ctx, serverAddress, common.WithCallTimeout(cfg.Timeout))
		if err != nil {
			return nil, fmt.Errorf("dial server: %w", err)
		}

		logger.DebugKV(ctx, "Dialed server", "server_address", serverAddress)
	}

	s.client = client
	s.actor = a

	return client, nil
}

// close releases the connection, if any.
func (s *session) close() {
	if s.client == nil {
		return
	}

	_ = s.client.Close()
	s.client = nil
}

// newRootCommand builds the timedeck-ctl command tree bound to s.
func newRootCommand(s *session) *cobra.Command {
	root := &cobra.Command{
		Use:   "timedeck-ctl",
		Short: "Control a timedeck server.",
		Long: `Drives the stopwatch, countdown timer, alarms and world clock board of a
timedeck server over gRPC.

The server address is read from the configuration file unless --server is given.
With --discover the first server advertised over mDNS on the local network is used.
Run "timedeck-ctl shell" for an interactive prompt that keeps one connection open.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().
		StringVarP(&s.configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	root.PersistentFlags().StringVarP(&s.serverAddress, "server", "a", "", "server address, overrides configuration")
	root.PersistentFlags().BoolVar(&s.discover, "discover", false, "locate the server over mDNS")

	addCommands(root, s)
	root.AddCommand(newShellCommand(s))
	version.AttachCobraVersionCommand(root)

	return root
}

// addCommands attaches the commands shared by the CLI and the shell.
func addCommands(root *cobra.Command, s *session) {
	root.AddCommand(
		newStatusCommand(s),
		newWatchCommand(s),
		newStopwatchCommand(s),
		newTimerCommand(s),
		newAlarmCommand(s),
		newWorldCommand(s),
	)
}

// Execute runs the timedeck-ctl CLI and exits with non-zero status on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)

	s := new(session)
	err := newRootCommand(s).ExecuteContext(ctx)

	s.close()
	stop()

	if err != nil {
		os.Exit(1)
	}
}
