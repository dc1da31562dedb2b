package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	HTTP     HTTPConfig     `yaml:"http"`
	Stream   StreamConfig   `yaml:"stream"`
	Roles    RolesConfig    `yaml:"roles"`
	Tracing  TracingConfig  `yaml:"tracing"`

	// ReportingBufferSize caps the in-memory reporting view.
	ReportingBufferSize int `yaml:"reporting_buffer_size"`

	// SubscriptionTTL is the garbage-collection window for stale clients.
	SubscriptionTTL Duration `yaml:"subscription_ttl"`
}

// Duration accepts Go duration syntax ("24h", "90m") in the config file.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}

	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type PostgresConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	Addr string `yaml:"addr"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type StreamConfig struct {
	// ChangeTopic is the Redis stream the change-capture feed publishes to.
	ChangeTopic string `yaml:"change_topic"`

	// ConsumerGroup identifies this service on the change stream.
	ConsumerGroup string `yaml:"consumer_group"`
}

type RolesConfig struct {
	// Viewer is the database role column grants are resolved against.
	Viewer string `yaml:"viewer"`

	// Subscriber is the database role the oracle impersonates, with the
	// subscriber's user id set as a session claim next to it.
	Subscriber string `yaml:"subscriber"`
}

type TracingConfig struct {
	JaegerEndpoint string `yaml:"jaeger_endpoint"`
}

// Load reads the YAML config file, then lets environment variables override
// the connection endpoints so the same file works across environments.
func Load(path string) (*Config, error) {
	var config Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	overrideFromEnv(&config.Postgres.URL, "POSTGRES_URL")
	overrideFromEnv(&config.Redis.Addr, "REDIS_ADDR")
	overrideFromEnv(&config.HTTP.Addr, "HTTP_ADDR")
	overrideFromEnv(&config.Tracing.JaegerEndpoint, "JAEGER_ENDPOINT")

	config.applyDefaults()

	if config.Postgres.URL == "" {
		return nil, fmt.Errorf("postgres url is not configured")
	}
	if config.Redis.Addr == "" {
		return nil, fmt.Errorf("redis address is not configured")
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.Stream.ChangeTopic == "" {
		c.Stream.ChangeTopic = "wal.changes"
	}
	if c.Stream.ConsumerGroup == "" {
		c.Stream.ConsumerGroup = "svc-changegate"
	}
	if c.Roles.Viewer == "" {
		c.Roles.Viewer = "authenticated"
	}
	if c.Roles.Subscriber == "" {
		c.Roles.Subscriber = "authenticated"
	}
	if c.ReportingBufferSize == 0 {
		c.ReportingBufferSize = 256
	}
	if c.SubscriptionTTL == 0 {
		c.SubscriptionTTL = Duration(24 * time.Hour)
	}
}

func overrideFromEnv(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}
