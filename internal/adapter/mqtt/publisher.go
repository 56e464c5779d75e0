package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sparkshift/internal/core/domain"
	"sparkshift/internal/core/port"
	"sparkshift/internal/events"
	imqtt "sparkshift/internal/mqtt"
	"sparkshift/internal/util"

	"go.uber.org/zap"
)

const publishTimeout = 2 * time.Second

// Client is the subset of the broker client the publisher needs.
type Client interface {
	imqtt.StateTopics
	HADiscoveryTopic() string
	Publish(topic string, payload any, qos byte, retain bool, timeout time.Duration) error
	PublishAsync(topic string, payload any, qos byte, retain bool, continuation func(error), timeout time.Duration)
}

// StatePublisher mirrors every cycle report to the broker.
type StatePublisher struct {
	client    Client
	device    events.Device
	discovery bool
	logger    *zap.Logger
}

func NewStatePublisher(client Client, baseTopic string, discovery bool, logger *zap.Logger) *StatePublisher {
	return &StatePublisher{
		client:    client,
		device:    events.BridgeDevice(baseTopic),
		discovery: discovery,
		logger:    util.ComponentLogger("mqtt", logger),
	}
}

// Online announces the bridge and, when enabled, the Home Assistant
// discovery configs. Called on every (re)connection.
func (p *StatePublisher) Online() error {
	if err := p.client.Publish(p.client.BridgeStateTopic(), imqtt.MQTT_PAYLOAD_ONLINE, 0, true, publishTimeout); err != nil {
		return fmt.Errorf("could not publish bridge state: %w", err)
	}
	if !p.discovery {
		return nil
	}
	return p.publishDiscovery()
}

func (p *StatePublisher) publishDiscovery() error {
	sensors := append(events.BridgeSensors(p.device), events.SiteSensors(p.device)...)
	var errs []error
	for _, sensor := range sensors {
		msg := imqtt.GenericSensorToHADiscoveryMessage(p.client, sensor)
		payload, err := json.Marshal(msg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		topic := imqtt.HADiscoverySensorTopic(p.client.HADiscoveryTopic(), sensor)
		p.logger.Debug("mqtt: publish discovery", zap.String("topic", topic))
		if err := p.client.Publish(topic, payload, 0, true, publishTimeout); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("could not publish discovery: %w", err)
	}
	return nil
}

// ObserveCycle does not wait for the broker, so a reconnecting client never
// stretches the control cycle. Publish failures are logged.
func (p *StatePublisher) ObserveCycle(_ context.Context, report domain.CycleReport) error {
	payload, err := json.Marshal(report.Document())
	if err != nil {
		return err
	}
	p.client.PublishAsync(p.client.StateTopic(), payload, 0, false, func(err error) {
		if err != nil {
			p.logger.Warn("mqtt: could not publish state", zap.Error(err))
		}
	}, publishTimeout)
	return nil
}

func (p *StatePublisher) Offline() error {
	return p.client.Publish(p.client.BridgeStateTopic(), imqtt.MQTT_PAYLOAD_OFFLINE, 0, true, publishTimeout)
}

// ensure interface compliance
var _ port.CycleObserver = (*StatePublisher)(nil)
