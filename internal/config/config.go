package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"
	// Embedded zone database so IANA names resolve on hosts without tzdata.
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by timedeck-server and timedeck-ctl.
type Config struct {
	// ServerAddress is the gRPC address the server listens on and the client dials.
	ServerAddress string `yaml:"server_addr"`
	// HTTPAddress is the address of the read-only HTTP status and metrics surface.
	// Empty disables the HTTP server.
	HTTPAddress string `yaml:"http_addr"`
	// Timeout is the duration for network operations and RPC calls.
	Timeout time.Duration `yaml:"timeout"`
	// TickInterval is the period of the clock tick source driving the engines.
	TickInterval time.Duration `yaml:"tick_interval"`
	// Timezone is the IANA zone treated as local by the world clock board.
	// Empty means the process local zone.
	Timezone string `yaml:"timezone"`
	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
	// LogFormat selects console or json log output.
	LogFormat string `yaml:"log_format"`
	// Storage configures the key/value store for persisted settings.
	Storage Storage `yaml:"storage"`
	// Playback configures the audio side-effect sink.
	Playback Playback `yaml:"playback"`
	// MQTT configures event publishing. An empty broker disables it.
	MQTT MQTT `yaml:"mqtt"`
	// Discovery configures mDNS advertisement of the server.
	Discovery Discovery `yaml:"discovery"`
}

// Storage selects and locates the key/value store.
type Storage struct {
	// Driver is "file" (JSON document) or "sqlite".
	Driver string `yaml:"driver"`
	// Path is the file or database location.
	Path string `yaml:"path"`
}

// Playback configures how sounds are played.
type Playback struct {
	// Mode is "log" (headless, only logs requests) or "command" (runs an audio player).
	Mode string `yaml:"mode"`
	// Command overrides the platform audio player; the sound file path is appended.
	Command string `yaml:"command"`
}

// MQTT holds broker settings for event publishing.
type MQTT struct {
	// Broker is the broker URL, e.g. tcp://127.0.0.1:1883.
	Broker string `yaml:"broker"`
	// TopicPrefix is prepended to every event topic.
	TopicPrefix string `yaml:"topic_prefix"`
	// ClientID identifies this server to the broker.
	ClientID string `yaml:"client_id"`
}

// Discovery controls mDNS advertisement.
type Discovery struct {
	// Enabled turns advertisement on.
	Enabled bool `yaml:"enabled"`
	// Instance is the advertised instance name.
	Instance string `yaml:"instance"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "timedeck-settings.yaml"

	// DefaultStateFilename is the default location of the key/value store.
	DefaultStateFilename = "timedeck-state.json"

	// DefaultServerAddress is used when no gRPC address is configured.
	DefaultServerAddress = "127.0.0.1:7450"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultTickInterval matches the refresh cycle of a wall clock display.
	DefaultTickInterval = 200 * time.Millisecond

	// MinTickInterval bounds the tick source from below.
	MinTickInterval = 10 * time.Millisecond

	// DefaultTopicPrefix is the MQTT topic prefix for events.
	DefaultTopicPrefix = "timedeck"

	// DefaultInstance is the advertised mDNS instance name.
	DefaultInstance = "timedeck"

	// DefaultFilePermissions is the default file permission for config and state files.
	DefaultFilePermissions = 0o600
	// DefaultDirPermissions is used for directories created to hold state files.
	DefaultDirPermissions = 0o750

	// StorageFile stores settings in a single JSON document.
	StorageFile = "file"
	// StorageSQLite stores settings in an SQLite table.
	StorageSQLite = "sqlite"

	// PlaybackLog only logs playback requests.
	PlaybackLog = "log"
	// PlaybackCommand plays sounds through an OS audio command.
	PlaybackCommand = "command"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownStorage is returned for unsupported storage drivers.
	errUnknownStorage = errors.New("unknown storage driver")
	// errUnknownPlayback is returned for unsupported playback modes.
	errUnknownPlayback = errors.New("unknown playback mode")
	// errUnknownTimezone is returned when the configured zone cannot be loaded.
	errUnknownTimezone = errors.New("unknown timezone")
)

// Default returns a validated configuration with every default applied.
func Default() *Config {
	cfg := new(Config)

	// Defaults never fail validation.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates it.
// A missing file yields the default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(filepath.Clean(path)), DefaultDirPermissions); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills defaults for empty fields.
//
//nolint:cyclop // A flat list of defaults reads better than helpers.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.ServerAddress == "" {
		cfg.ServerAddress = DefaultServerAddress
	}

	if _, _, err := net.SplitHostPort(cfg.ServerAddress); err != nil {
		return fmt.Errorf("invalid server address: %w", err)
	}

	if cfg.HTTPAddress != "" {
		if _, _, err := net.SplitHostPort(cfg.HTTPAddress); err != nil {
			return fmt.Errorf("invalid http address: %w", err)
		}
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}

	if cfg.TickInterval < MinTickInterval {
		cfg.TickInterval = MinTickInterval
	}

	if cfg.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Timezone); err != nil {
			return fmt.Errorf("%w %q: %w", errUnknownTimezone, cfg.Timezone, err)
		}
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
	}

	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	switch cfg.Storage.Driver {
	case "":
		cfg.Storage.Driver = StorageFile
	case StorageFile, StorageSQLite:
	default:
		return fmt.Errorf("%w: %s", errUnknownStorage, cfg.Storage.Driver)
	}

	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStateFilename
	}

	cfg.Playback.Mode = strings.ToLower(strings.TrimSpace(cfg.Playback.Mode))
	switch cfg.Playback.Mode {
	case "":
		cfg.Playback.Mode = PlaybackLog
	case PlaybackLog, PlaybackCommand:
	default:
		return fmt.Errorf("%w: %s", errUnknownPlayback, cfg.Playback.Mode)
	}

	if cfg.MQTT.TopicPrefix == "" {
		cfg.MQTT.TopicPrefix = DefaultTopicPrefix
	}

	if cfg.Discovery.Instance == "" {
		cfg.Discovery.Instance = DefaultInstance
	}

	return nil
}

// Location resolves the configured local zone.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}

	return loc
}
