package util

import (
	"sparkshift/internal/config"

	"go.uber.org/zap"
)

func LoadTestConfig() config.Config {
	return config.Config{
		LogLevel: zap.DebugLevel,
		GX: config.DeviceConfig{
			Host:   "-.-.-.-",
			Port:   502,
			UnitId: 100,
		},
		EVCS: config.DeviceConfig{
			Host:   "-.-.-.-",
			Port:   502,
			UnitId: 255,
		},
		ModbusTimeoutMillis: 5000,
		PowerExcessMin:      1400,
		AveragingSecs:       60,
		SleepSecs:           10,
		MQTT: config.MQTTConfig{
			Host:              "localhost",
			Port:              1883,
			BaseTopic:         "sparkshift",
			HADiscoveryEnable: true,
			HADiscoveryTopic:  "homeassistant",
		},
		Health: config.HealthConfig{
			MaxMissedCycles: 3,
		},
		Port: 8080,
	}
}
