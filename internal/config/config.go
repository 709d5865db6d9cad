package config

import (
	"fmt"
	"time"

	"grain_dryer/internal/models"

	"github.com/spf13/viper"
)

// Config is the process-lifetime configuration. Threshold bounds, the
// polling interval and the STABLE suppression window are all overridable
// via configs/config.yml or environment variables without code changes.
type Config struct {
	Port string `mapstructure:"port"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	DB struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"db"`

	Thresholds models.Thresholds `mapstructure:"thresholds"`

	Stream struct {
		PollIntervalMS int `mapstructure:"poll_interval_ms"`
	} `mapstructure:"stream"`

	Stabilizer struct {
		WindowSeconds int `mapstructure:"window_seconds"`
	} `mapstructure:"stabilizer"`

	MQTT struct {
		Enabled  bool   `mapstructure:"enabled"`
		Broker   string `mapstructure:"broker"`
		Topic    string `mapstructure:"topic"`
		ClientID string `mapstructure:"client_id"`
	} `mapstructure:"mqtt"`

	Push struct {
		Enabled  bool   `mapstructure:"enabled"`
		Region   string `mapstructure:"region"`
		TopicArn string `mapstructure:"topic_arn"`
	} `mapstructure:"push"`
}

// PollInterval returns the live re-broadcast period.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Stream.PollIntervalMS) * time.Millisecond
}

// StableWindow returns the minimum gap between STABLE notifications.
func (c *Config) StableWindow() time.Duration {
	return time.Duration(c.Stabilizer.WindowSeconds) * time.Second
}

func setDefaults() {
	viper.SetDefault("port", "8080")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("db.path", "dryer.db")

	def := models.DefaultThresholds()
	viper.SetDefault("thresholds.temperature_max", def.TemperatureMax)
	viper.SetDefault("thresholds.temperature_min", def.TemperatureMin)
	viper.SetDefault("thresholds.humidity_max", def.HumidityMax)
	viper.SetDefault("thresholds.moisture1_target", def.Moisture1Target)
	viper.SetDefault("thresholds.moisture1_min", def.Moisture1Min)
	viper.SetDefault("thresholds.moisture2_target", def.Moisture2Target)
	viper.SetDefault("thresholds.moisture2_min", def.Moisture2Min)
	viper.SetDefault("thresholds.weight1_max", def.Weight1Max)
	viper.SetDefault("thresholds.weight2_max", def.Weight2Max)

	viper.SetDefault("stream.poll_interval_ms", 5000)
	viper.SetDefault("stabilizer.window_seconds", 3600)

	viper.SetDefault("mqtt.enabled", false)
	viper.SetDefault("mqtt.broker", "tcp://localhost:1883")
	viper.SetDefault("mqtt.topic", "dryer/readings")
	viper.SetDefault("mqtt.client_id", "grain-dryer-backend")

	viper.SetDefault("push.enabled", false)
	viper.SetDefault("push.region", "us-east-1")
	viper.SetDefault("push.topic_arn", "")
}

// Load reads configs/config.yml plus matching environment variables and
// resolves the full configuration. A missing config file is tolerated;
// defaults then apply.
func Load() (*Config, error) {
	viper.AddConfigPath("configs")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}
