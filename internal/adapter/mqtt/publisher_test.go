package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"sparkshift/internal/core/domain"
	"sparkshift/internal/events"
	imqtt "sparkshift/internal/mqtt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type message struct {
	topic   string
	payload any
	retain  bool
}

type fakeClient struct {
	messages []message
	err      error
	// continuations of async publishes, run by the test
	pending []func(error)
}

func (c *fakeClient) BridgeStateTopic() string { return "sparkshift/bridge/state" }
func (c *fakeClient) StateTopic() string       { return "sparkshift/state" }
func (c *fakeClient) HADiscoveryTopic() string { return "homeassistant" }

func (c *fakeClient) Publish(topic string, payload any, qos byte, retain bool, timeout time.Duration) error {
	c.messages = append(c.messages, message{topic: topic, payload: payload, retain: retain})
	return c.err
}

func (c *fakeClient) PublishAsync(topic string, payload any, qos byte, retain bool, continuation func(error), timeout time.Duration) {
	c.messages = append(c.messages, message{topic: topic, payload: payload, retain: retain})
	c.pending = append(c.pending, continuation)
}

func TestOnlineWithoutDiscovery(t *testing.T) {

	client := &fakeClient{}
	pub := NewStatePublisher(client, "sparkshift", false, zap.NewNop())

	require.NoError(t, pub.Online())
	require.Len(t, client.messages, 1)
	assert.Equal(t, message{topic: "sparkshift/bridge/state", payload: imqtt.MQTT_PAYLOAD_ONLINE, retain: true}, client.messages[0])

	require.NoError(t, pub.Offline())
	assert.Equal(t, imqtt.MQTT_PAYLOAD_OFFLINE, client.messages[1].payload)
}

func TestOnlineWithDiscovery(t *testing.T) {

	client := &fakeClient{}
	pub := NewStatePublisher(client, "sparkshift", true, zap.NewNop())
	require.NoError(t, pub.Online())

	dev := events.BridgeDevice("sparkshift")
	expected := 1 + len(events.BridgeSensors(dev)) + len(events.SiteSensors(dev))
	require.Len(t, client.messages, expected)

	for _, m := range client.messages[1:] {
		assert.True(t, strings.HasPrefix(m.topic, "homeassistant/"), m.topic)
		assert.True(t, strings.HasSuffix(m.topic, "/config"), m.topic)
		assert.True(t, m.retain)

		var cfg imqtt.HADiscoveryConfig
		require.NoError(t, json.Unmarshal(m.payload.([]byte), &cfg))
		assert.Equal(t, "sparkshift/bridge/state", cfg.AvTopic)
	}
}

func TestObserveCyclePublishesState(t *testing.T) {

	client := &fakeClient{}
	pub := NewStatePublisher(client, "sparkshift", false, zap.NewNop())

	report := domain.CycleReport{
		Status: domain.SystemStatus{PowerExcess: 950, ChargingMode: domain.ChargeModeAuto},
		Rounds: 2,
		Mean:   900,
	}
	require.NoError(t, pub.ObserveCycle(context.Background(), report))
	require.Len(t, client.messages, 1)
	assert.Equal(t, "sparkshift/state", client.messages[0].topic)
	assert.False(t, client.messages[0].retain)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(client.messages[0].payload.([]byte), &doc))
	assert.EqualValues(t, 950, doc["power_excess"])
	assert.EqualValues(t, 900, doc["power_excess_mean"])
	assert.Equal(t, "Auto", doc["charge_mode_name"])
	assert.NotContains(t, doc, "decision")
}

func TestPublishErrors(t *testing.T) {

	client := &fakeClient{err: errors.New("MQTT publish timed out")}
	pub := NewStatePublisher(client, "sparkshift", true, zap.NewNop())

	assert.Error(t, pub.Online())
}

func TestObserveCycleDoesNotWaitForBroker(t *testing.T) {

	core, logs := observer.New(zapcore.WarnLevel)
	client := &fakeClient{}
	pub := NewStatePublisher(client, "sparkshift", false, zap.New(core))

	// returns before the broker acknowledged anything
	require.NoError(t, pub.ObserveCycle(context.Background(), domain.CycleReport{}))
	require.Len(t, client.pending, 1)
	assert.Zero(t, logs.Len())

	client.pending[0](errors.New("MQTT publish timed out"))
	assert.Equal(t, 1, logs.FilterMessage("mqtt: could not publish state").Len())
}
