package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/oshokin/timedeck/internal/config"
)

// qos is "at least once"; duplicate notifications are harmless.
const qos = 1

var (
	// errBrokerRequired is returned when no broker URL is configured.
	errBrokerRequired = errors.New("mqtt broker must be provided")
	// errTimeout is returned when the broker does not acknowledge in time.
	errTimeout = errors.New("mqtt operation timed out")
)

// MQTTPublisher publishes events to an MQTT broker.
type MQTTPublisher struct {
	client  mqtt.Client
	prefix  string
	timeout time.Duration
}

// NewMQTTPublisher connects to the configured broker.
func NewMQTTPublisher(cfg config.MQTT, timeout time.Duration) (*MQTTPublisher, error) {
	if cfg.Broker == "" {
		return nil, errBrokerRequired
	}

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "timedeck-" + uuid.NewString()[:8]
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(clientID).
		SetConnectTimeout(timeout).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)

	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Broker, errTimeout)
	}

	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Broker, err)
	}

	return newMQTTPublisher(client, cfg.TopicPrefix, timeout), nil
}

func newMQTTPublisher(client mqtt.Client, prefix string, timeout time.Duration) *MQTTPublisher {
	return &MQTTPublisher{
		client:  client,
		prefix:  strings.TrimSuffix(prefix, "/"),
		timeout: timeout,
	}
}

// Topic returns the topic for kind.
func (p *MQTTPublisher) Topic(kind Kind) string {
	return p.prefix + "/" + strings.ReplaceAll(string(kind), ".", "/")
}

// Publish sends e and waits for the broker acknowledgement.
func (p *MQTTPublisher) Publish(_ context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	token := p.client.Publish(p.Topic(e.Kind), qos, false, payload)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("publish %s: %w", e.Kind, errTimeout)
	}

	if err = token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", e.Kind, err)
	}

	return nil
}

// Close disconnects from the broker, allowing in-flight messages to drain.
func (p *MQTTPublisher) Close() error {
	p.client.Disconnect(uint(p.timeout.Milliseconds()))

	return nil
}
