// Package config defines the settings used by timedeck-server and timedeck-ctl
// and provides helpers to load, validate and save them in YAML format.
//
// Validate fills defaults, so a zero Config becomes a working local setup:
// gRPC on 127.0.0.1:7450, file storage, log-only playback, no MQTT.
package config
