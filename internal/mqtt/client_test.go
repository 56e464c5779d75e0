package mqtt

import (
	"encoding/json"
	"testing"

	"sparkshift/internal/events"
	"sparkshift/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopics(t *testing.T) {

	assert := assert.New(t)

	cfg := util.LoadTestConfig()
	client := CreateMQTTClient(&cfg, OptsFromConfig(&cfg), nil, nil)

	assert.Equal("sparkshift/bridge/state", client.BridgeStateTopic())
	assert.Equal("sparkshift/state", client.StateTopic())
	assert.Equal("homeassistant", client.HADiscoveryTopic())
}

func TestWillMessage(t *testing.T) {

	cfg := util.LoadTestConfig()
	opts := OptsFromConfig(&cfg)

	assert.True(t, opts.WillEnabled)
	assert.True(t, opts.WillRetained)
	assert.Equal(t, "sparkshift/bridge/state", opts.WillTopic)
	assert.Equal(t, MQTT_PAYLOAD_OFFLINE, string(opts.WillPayload))
	assert.Empty(t, opts.Username, "credentials only set when both are configured")
}

func TestHADiscoveryMessages(t *testing.T) {

	require := require.New(t)

	cfg := util.LoadTestConfig()
	client := CreateMQTTClient(&cfg, OptsFromConfig(&cfg), nil, nil)
	dev := events.BridgeDevice(cfg.MQTT.BaseTopic)

	bridge := events.BridgeSensors(dev)[0]
	msg := GenericSensorToHADiscoveryMessage(client, bridge)
	assert.Equal(t, client.BridgeStateTopic(), msg.StateTopic)
	assert.Equal(t, MQTT_PAYLOAD_ONLINE, msg.PayloadOn)
	assert.Empty(t, msg.ValueTemplate)

	var excess, charging events.GenericSensor
	for _, s := range events.SiteSensors(dev) {
		switch s.Id {
		case events.SENSOR_ID_POWER_EXCESS:
			excess = s
		case events.SENSOR_ID_CHARGING:
			charging = s
		}
	}

	msg = GenericSensorToHADiscoveryMessage(client, excess)
	assert.Equal(t, "sparkshift/state", msg.StateTopic)
	assert.Equal(t, "{{ value_json.power_excess }}", msg.ValueTemplate)
	assert.Equal(t, "W", msg.UnitOfMeasurement)
	assert.Equal(t, "sparkshift/bridge/state", msg.AvTopic)
	assert.Equal(t, "homeassistant/sensor/"+dev.Id+"/power_excess/config", HADiscoverySensorTopic(client.HADiscoveryTopic(), excess))

	msg = GenericSensorToHADiscoveryMessage(client, charging)
	assert.Equal(t, MQTT_PAYLOAD_ON, msg.PayloadOn)
	assert.Equal(t, MQTT_PAYLOAD_OFF, msg.PayloadOff)

	raw, err := json.Marshal(msg)
	require.NoError(err)
	assert.Contains(t, string(raw), `"identifiers":["`+dev.Id+`"]`)
	assert.Contains(t, string(raw), `"platform":"mqtt"`)
	assert.Contains(t, string(raw), `"manufacturer":"Sparkshift"`)
}
