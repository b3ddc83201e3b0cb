package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks defaults and format validations for Config.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Empty config gets every default.
	cfg := new(Config)
	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultServerAddress, cfg.ServerAddress)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
	require.Equal(t, DefaultTickInterval, cfg.TickInterval)
	require.Equal(t, StorageFile, cfg.Storage.Driver)
	require.Equal(t, DefaultStateFilename, cfg.Storage.Path)
	require.Equal(t, PlaybackLog, cfg.Playback.Mode)
	require.Equal(t, DefaultTopicPrefix, cfg.MQTT.TopicPrefix)

	// Bad socket.
	require.Error(t, Validate(&Config{ServerAddress: "no-port"}))
	require.Error(t, Validate(&Config{HTTPAddress: "no-port"}))

	// Unknown driver and playback mode.
	require.Error(t, Validate(&Config{Storage: Storage{Driver: "redis"}}))
	require.Error(t, Validate(&Config{Playback: Playback{Mode: "speaker"}}))

	// Unknown zone.
	require.Error(t, Validate(&Config{Timezone: "Mars/Olympus_Mons"}))

	// Tick interval is bounded from below.
	cfg = &Config{TickInterval: time.Millisecond}
	require.NoError(t, Validate(cfg))
	require.Equal(t, MinTickInterval, cfg.TickInterval)

	// Nil config.
	require.Error(t, Validate(nil))
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	cfg := &Config{
		ServerAddress: "127.0.0.1:50051",
		HTTPAddress:   "127.0.0.1:50052",
		TickInterval:  time.Second,
		Timezone:      "Europe/London",
		Storage:       Storage{Driver: "SQLite", Path: "state.db"},
		MQTT:          MQTT{Broker: "tcp://127.0.0.1:1883"},
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.ServerAddress, loaded.ServerAddress)
	require.Equal(t, cfg.HTTPAddress, loaded.HTTPAddress)
	require.Equal(t, time.Second, loaded.TickInterval)
	require.Equal(t, StorageSQLite, loaded.Storage.Driver)
	require.Equal(t, "tcp://127.0.0.1:1883", loaded.MQTT.Broker)
	require.Equal(t, "Europe/London", loaded.Location().String())

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

// TestLoad_MissingFileYieldsDefaults verifies a missing settings file is not an error.
func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultServerAddress, cfg.ServerAddress)
	require.Equal(t, time.Local, cfg.Location())
}

// TestLoad_Malformed verifies broken YAML is reported.
func TestLoad_Malformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_addr: ["), DefaultFilePermissions))

	_, err := Load(path)
	require.Error(t, err)
}
