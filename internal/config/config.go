package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	al "antarctica_live"
	"antarctica_live/internal/readings"

	"github.com/spf13/viper"
)

const envPrefix = "ANTARCTICA"

// Config is the full process configuration.
type Config struct {
	Port string `mapstructure:"port"`
	Log  struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	DB struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"db"`
	Dashboard Dashboard `mapstructure:"dashboard"`
	Relay     Relay     `mapstructure:"relay"`
}

// Dashboard holds the constants of the rolling readings store.
type Dashboard struct {
	Title           string        `mapstructure:"title"`
	SourceURL       string        `mapstructure:"source_url"`
	UpdateInterval  time.Duration `mapstructure:"update_interval"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	DequeSize       int           `mapstructure:"deque_size"`
	LowC            float64       `mapstructure:"low_c"`
	HighC           float64       `mapstructure:"high_c"`
	TimestampFormat string        `mapstructure:"timestamp_format"`
}

// Readings converts the dashboard section into a store config.
func (d Dashboard) Readings() readings.Config {
	return readings.Config{
		Capacity:        d.DequeSize,
		LowC:            d.LowC,
		HighC:           d.HighC,
		TimestampLayout: d.TimestampFormat,
	}
}

// Relay configures optional forwarding of new readings.
type Relay struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	QueueSize int           `mapstructure:"queue_size"`
	MQTT      struct {
		Broker   string `mapstructure:"broker"`
		Topic    string `mapstructure:"topic"`
		ClientID string `mapstructure:"client_id"`
		QoS      byte   `mapstructure:"qos"`
	} `mapstructure:"mqtt"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		Topic   string   `mapstructure:"topic"`
	} `mapstructure:"kafka"`
}

// Enabled reports whether at least one sink is configured.
func (r Relay) Enabled() bool {
	return strings.TrimSpace(r.MQTT.Broker) != "" || len(r.Kafka.Brokers) > 0
}

// Load reads config.yml from the given directories (if present), overlays
// ANTARCTICA_* environment variables and validates the result.
func Load(paths ...string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", al.DefaultPort)
	v.SetDefault("log.level", "info")
	v.SetDefault("db.path", ":memory:")

	v.SetDefault("dashboard.title", al.DefaultTitle)
	v.SetDefault("dashboard.source_url", al.DefaultSourceURL)
	v.SetDefault("dashboard.update_interval", al.DefaultUpdateInterval)
	v.SetDefault("dashboard.idle_timeout", al.DefaultIdleTimeout)
	v.SetDefault("dashboard.deque_size", al.DefaultDequeSize)
	v.SetDefault("dashboard.low_c", al.DefaultLowC)
	v.SetDefault("dashboard.high_c", al.DefaultHighC)
	v.SetDefault("dashboard.timestamp_format", al.DefaultTimestampLayout)

	v.SetDefault("relay.timeout", 2*time.Second)
	v.SetDefault("relay.queue_size", 64)
	v.SetDefault("relay.mqtt.broker", "")
	v.SetDefault("relay.mqtt.topic", "antarctica/readings")
	v.SetDefault("relay.mqtt.client_id", "antarctica-live")
	v.SetDefault("relay.mqtt.qos", 0)
	v.SetDefault("relay.kafka.brokers", []string{})
	v.SetDefault("relay.kafka.topic", "antarctica.readings")
}

// Validate rejects settings the store or server cannot run with.
func (c Config) Validate() error {
	if c.Dashboard.UpdateInterval <= 0 {
		return fmt.Errorf("dashboard.update_interval must be positive, got %s", c.Dashboard.UpdateInterval)
	}
	if c.Dashboard.IdleTimeout < 0 || (c.Dashboard.IdleTimeout > 0 && c.Dashboard.IdleTimeout < c.Dashboard.UpdateInterval) {
		return fmt.Errorf("dashboard.idle_timeout must be 0 (never reap) or at least update_interval, got %s", c.Dashboard.IdleTimeout)
	}
	if _, err := readings.New(c.Dashboard.Readings()); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	if c.Relay.MQTT.QoS > 2 {
		return fmt.Errorf("relay.mqtt.qos must be 0, 1 or 2, got %d", c.Relay.MQTT.QoS)
	}
	if c.Relay.Timeout <= 0 {
		return fmt.Errorf("relay.timeout must be positive, got %s", c.Relay.Timeout)
	}
	// Deliveries run one after another; a slower sink would fall behind the ticks.
	if c.Relay.Enabled() && c.Relay.Timeout >= c.Dashboard.UpdateInterval {
		return fmt.Errorf("relay.timeout (%s) must be shorter than dashboard.update_interval (%s)",
			c.Relay.Timeout, c.Dashboard.UpdateInterval)
	}
	if c.Relay.QueueSize <= 0 {
		return fmt.Errorf("relay.queue_size must be positive, got %d", c.Relay.QueueSize)
	}
	return nil
}
