package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultHTTPAddress     = ":8080"
	defaultRequestTimeout  = 10 * time.Second
	defaultFlightsCacheTTL = 60
	defaultEnrichmentLimit = 8
	defaultShutdownTimeout = 5 * time.Second
	defaultSagaEventsTopic = "gateway.saga-events"
	defaultWorkerGroupID   = "gateway-notifications"
	defaultLoggerEnv       = "development"
	defaultRateLimitTTL    = 10 * time.Minute
)

type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Services   ServicesConfig   `yaml:"services"`
	Redis      RedisConfig      `yaml:"redis"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Logger     LoggerConfig     `yaml:"logger"`
	Aggregator AggregatorConfig `yaml:"aggregator"`
}

type HTTPConfig struct {
	Address            string          `yaml:"address"`
	GinMode            string          `yaml:"gin_mode"`
	ReadTimeout        time.Duration   `yaml:"read_timeout"`
	WriteTimeout       time.Duration   `yaml:"write_timeout"`
	ShutdownTimeout    time.Duration   `yaml:"shutdown_timeout"`
	CORSAllowedOrigins []string        `yaml:"cors_allowed_origins"`
	RateLimit          RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig is a per-caller token bucket. Zero RPS disables it.
type RateLimitConfig struct {
	RPS   float64       `yaml:"rps"`
	Burst int           `yaml:"burst"`
	TTL   time.Duration `yaml:"idle_ttl"`
}

func (r RateLimitConfig) Enabled() bool {
	return r.RPS > 0
}

type ServicesConfig struct {
	FlightURL      string        `yaml:"flight_url"`
	TicketURL      string        `yaml:"ticket_url"`
	BonusURL       string        `yaml:"bonus_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type RedisConfig struct {
	Addr            string `yaml:"addr"`
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	FlightsCacheTTL int    `yaml:"flights_cache_ttl_seconds"`
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

func (r RedisConfig) CacheTTL() time.Duration {
	return time.Duration(r.FlightsCacheTTL) * time.Second
}

type KafkaConfig struct {
	Brokers         []string `yaml:"brokers"`
	SagaEventsTopic string   `yaml:"saga_events_topic"`
	GroupID         string   `yaml:"group_id"`
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type LoggerConfig struct {
	Env   string `yaml:"env"`
	Level string `yaml:"level"`
}

type AggregatorConfig struct {
	EnrichmentConcurrency int `yaml:"enrichment_concurrency"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = defaultHTTPAddress
	}
	if c.HTTP.ReadTimeout <= 0 {
		c.HTTP.ReadTimeout = 2 * defaultRequestTimeout
	}
	if c.HTTP.WriteTimeout <= 0 {
		// a purchase makes up to six sequential downstream calls
		c.HTTP.WriteTimeout = 7 * defaultRequestTimeout
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		c.HTTP.ShutdownTimeout = defaultShutdownTimeout
	}
	if c.HTTP.RateLimit.Enabled() {
		if c.HTTP.RateLimit.Burst <= 0 {
			c.HTTP.RateLimit.Burst = int(c.HTTP.RateLimit.RPS) + 1
		}
		if c.HTTP.RateLimit.TTL <= 0 {
			c.HTTP.RateLimit.TTL = defaultRateLimitTTL
		}
	}
	if c.Services.RequestTimeout <= 0 {
		c.Services.RequestTimeout = defaultRequestTimeout
	}
	if c.Redis.FlightsCacheTTL <= 0 {
		c.Redis.FlightsCacheTTL = defaultFlightsCacheTTL
	}
	if c.Kafka.SagaEventsTopic == "" {
		c.Kafka.SagaEventsTopic = defaultSagaEventsTopic
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = defaultWorkerGroupID
	}
	if c.Logger.Env == "" {
		c.Logger.Env = defaultLoggerEnv
	}
	if c.Aggregator.EnrichmentConcurrency <= 0 {
		c.Aggregator.EnrichmentConcurrency = defaultEnrichmentLimit
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Services.FlightURL == "" {
		errs = append(errs, errors.New("services.flight_url is required"))
	}
	if c.Services.TicketURL == "" {
		errs = append(errs, errors.New("services.ticket_url is required"))
	}
	if c.Services.BonusURL == "" {
		errs = append(errs, errors.New("services.bonus_url is required"))
	}
	switch c.HTTP.GinMode {
	case "", "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("http.gin_mode %q is not one of debug, release, test", c.HTTP.GinMode))
	}
	return errors.Join(errs...)
}
