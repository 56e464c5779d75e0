package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	LogLevel zapcore.Level `mapstructure:"-"`
	GX       DeviceConfig  `mapstructure:"gx"`
	EVCS     DeviceConfig  `mapstructure:"evcs"`
	// Response timeout for every Modbus request
	ModbusTimeoutMillis uint32 `mapstructure:"modbus_timeout_millis"`

	PowerExcessMin int32  `mapstructure:"power_excess_min"`
	AveragingSecs  uint32 `mapstructure:"averaging_secs"`
	SleepSecs      uint32 `mapstructure:"sleep_secs"`
	Debug          bool   `mapstructure:"-"`
	DryRun         bool   `mapstructure:"-"`

	MQTT    MQTTConfig   `mapstructure:"mqtt"`
	Health  HealthConfig `mapstructure:"health"`
	Port    uint         `mapstructure:"port"`
	HttpLog bool         `mapstructure:"http_log"`
}

type DeviceConfig struct {
	Host   string
	Port   uint
	UnitId uint8 `mapstructure:"unit_id"`
}

type HealthConfig struct {
	MaxMissedCycles uint32 `mapstructure:"max_missed_cycles"`
}

type MQTTConfig struct {
	Host              string
	Port              int
	Username          string
	Password          string
	BaseTopic         string `mapstructure:"base_topic"`
	HADiscoveryEnable bool   `mapstructure:"ha_discovery_enable"`
	HADiscoveryTopic  string `mapstructure:"ha_discovery_topic"`
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.SleepSecs) * time.Second
}

func (c *Config) AveragingWindow() time.Duration {
	return time.Duration(c.AveragingSecs) * time.Second
}

func (c *Config) ModbusTimeout() time.Duration {
	return time.Duration(c.ModbusTimeoutMillis) * time.Millisecond
}

// HealthMaxAge is the longest time without a successful cycle before the
// controller is reported unhealthy.
func (c *Config) HealthMaxAge() time.Duration {
	return time.Duration(c.Health.MaxMissedCycles) * c.PollInterval()
}

func (c *Config) MQTTEnabled() bool {
	return c.MQTT.Host != ""
}

// legacy environment names for the required keys
var requiredEnv = []struct {
	key string
	env string
}{
	{"gx.host", "GX_HOST"},
	{"gx.port", "GX_PORT"},
	{"evcs.host", "EVCS_HOST"},
	{"evcs.port", "EVCS_PORT"},
	{"power_excess_min", "POWER_EXCESS_MIN"},
	{"averaging_secs", "AVERAGING_SECS"},
	{"sleep_secs", "SLEEP_SECS"},
	{"debug", "SPARKSHIFT_DEBUG"},
	{"dryrun", "SPARKSHIFT_DRYRUN"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("gx.unit_id", 100)
	v.SetDefault("evcs.unit_id", 255)
	v.SetDefault("modbus_timeout_millis", 5000)
	v.SetDefault("mqtt.host", "")
	v.SetDefault("mqtt.port", 1883)
	v.SetDefault("mqtt.username", "")
	v.SetDefault("mqtt.password", "")
	v.SetDefault("mqtt.base_topic", "sparkshift")
	v.SetDefault("mqtt.ha_discovery_enable", false)
	v.SetDefault("mqtt.ha_discovery_topic", "homeassistant")
	v.SetDefault("port", 0)
	v.SetDefault("http_log", false)
	v.SetDefault("health.max_missed_cycles", 3)
}

// Load reads the configuration from the environment and, when CONFIG_FILE
// points to an existing file, from that file.
func Load(v *viper.Viper) (*Config, error) {

	setDefaults(v)

	for _, r := range requiredEnv {
		if err := v.BindEnv(r.key, r.env); err != nil {
			return nil, err
		}
	}
	v.SetEnvPrefix("sparkshift")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	if cfgFile := os.Getenv("CONFIG_FILE"); cfgFile != "" {
		if _, err := os.Stat(cfgFile); err == nil {
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("could not read config file %s: %w", cfgFile, err)
			}
		}
	}

	var missing []string
	for _, r := range requiredEnv {
		if !v.IsSet(r.key) {
			missing = append(missing, r.env)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.Debug = flag(v.GetString("debug"))
	cfg.DryRun = flag(v.GetString("dryrun"))
	cfg.LogLevel = parseLogLevel(v.GetString("log_level"))
	if cfg.Debug {
		cfg.LogLevel = zap.DebugLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var ErrMissingConfig = errors.New("missing required configuration")

// Validate checks bounds and normalizes MQTT topics.
func (c *Config) Validate() error {
	if c.GX.Host == "" || c.GX.Port == 0 {
		return errors.New("config param gx.host and gx.port are required")
	}
	if c.EVCS.Host == "" || c.EVCS.Port == 0 {
		return errors.New("config param evcs.host and evcs.port are required")
	}
	if c.PowerExcessMin == 0 {
		return errors.New("config param power_excess_min must be non-zero")
	}
	if c.AveragingSecs == 0 {
		return errors.New("config param averaging_secs should be > 0")
	}
	if c.SleepSecs == 0 {
		return errors.New("config param sleep_secs should be > 0")
	}
	if c.ModbusTimeoutMillis == 0 {
		return errors.New("config param modbus_timeout_millis should be > 0")
	}
	// the per-cycle status line is logged at info
	if c.LogLevel > zap.InfoLevel {
		return fmt.Errorf("config param log_level %q would hide the status line, use info or lower", c.LogLevel)
	}
	if c.Health.MaxMissedCycles == 0 {
		return errors.New("config param health.max_missed_cycles should be > 0")
	}

	if c.MQTTEnabled() {
		baseTopic, err := CheckMQTTTopic(c.MQTT.BaseTopic)
		if err != nil {
			return errors.New("invalid base topic. can only contain letters, numbers and underscores")
		}
		c.MQTT.BaseTopic = baseTopic

		haTopic, err := CheckMQTTTopic(c.MQTT.HADiscoveryTopic)
		if err != nil {
			return errors.New("invalid homeassistant discovery topic. can only contain letters, numbers and underscores")
		}
		c.MQTT.HADiscoveryTopic = haTopic
	}
	return nil
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	if c.MQTT.Username != "" {
		c.MQTT.Username = "*redacted*"
	}
	if c.MQTT.Password != "" {
		c.MQTT.Password = "*redacted*"
	}
	return c
}

func flag(s string) bool {
	return s == "1" || strings.EqualFold(s, "true")
}

func parseLogLevel(level string) zapcore.Level {
	switch level {
	case "trace":
		return zap.DebugLevel
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "error":
		return zap.ErrorLevel
	case "warn":
		return zap.WarnLevel
	case "fatal":
		return zap.FatalLevel
	default:
		return zap.InfoLevel
	}
}

func CheckMQTTTopic(baseTopic string) (string, error) {
	// check and fix base topic
	lowerBaseTopic := strings.ToLower(baseTopic)
	baseTopicRegexp := regexp.MustCompile("^[a-z0-9_]+$")
	matches := baseTopicRegexp.FindAllStringSubmatch(lowerBaseTopic, 1)
	if len(matches) <= 0 {
		return "", errors.New("invalid topic. can only contain letters, numbers and underscores")
	}
	return lowerBaseTopic, nil
}
