package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"claims/internal/platform/env"
	"claims/internal/platform/postgres"
	"claims/internal/pricing"
)

// Audit sinks selectable through AUDIT_SINK.
const (
	AuditSinkPostgres = "postgres"
	AuditSinkKafka    = "kafka"
	AuditSinkMemory   = "memory"
)

// Config is the full service configuration.
type Config struct {
	Server    Server
	Log       Log
	Database  postgres.Config
	Audit     Audit
	Kafka     Kafka
	Redis     RedisConfig
	RateLimit RateLimit
	Premium   Premium
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
}

type Log struct {
	Level  string
	Format string
}

// Audit configures the background audit pipeline.
type Audit struct {
	// Sink defaults to postgres when a database is configured and memory
	// otherwise.
	Sink string
	// PersistTimeout bounds each persistence attempt; zero leaves it unbounded.
	PersistTimeout time.Duration
	// DrainTimeout is how long shutdown waits for queued audits to persist.
	DrainTimeout time.Duration
}

type Kafka struct {
	Brokers           []string
	Topic             string
	Partitions        int
	ReplicationFactor int
}

// RedisConfig is optional; an empty URL means Redis is not used.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RateLimit configures per-client write throttling. Zero RequestsPerSecond
// disables it.
type RateLimit struct {
	RequestsPerSecond float64
	Burst             int
	Window            time.Duration
}

type Premium struct {
	BaseDayRate decimal.Decimal
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Log: Log{Level: "info", Format: "json"},
		Database: postgres.Config{
			PingTimeout:     2 * time.Second,
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			ConnMaxIdleTime: 5 * time.Minute,
		},
		Audit: Audit{
			DrainTimeout: 5 * time.Second,
		},
		Kafka: Kafka{
			Topic:             "claims.audit",
			Partitions:        3,
			ReplicationFactor: 1,
		},
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		RateLimit: RateLimit{
			RequestsPerSecond: 20,
			Burst:             40,
			Window:            time.Second,
		},
		Premium: Premium{BaseDayRate: pricing.DefaultBaseDayRate},
	}
}

// Load builds the configuration from defaults, the optional YAML file named
// by CLAIMS_CONFIG_FILE, then environment variables, in that order. A .env
// file in the working directory seeds variables that are not already set.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	if path := os.Getenv("CLAIMS_CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if cfg.Audit.Sink == "" {
		cfg.Audit.Sink = AuditSinkMemory
		if cfg.UsesDatabase() {
			cfg.Audit.Sink = AuditSinkPostgres
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// fileConfig is the YAML layout. Only keys present in the file override
// the defaults.
type fileConfig struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Audit struct {
		Sink           string `yaml:"sink"`
		PersistTimeout string `yaml:"persist_timeout"`
		DrainTimeout   string `yaml:"drain_timeout"`
	} `yaml:"audit"`
	Kafka struct {
		Brokers []string `yaml:"brokers"`
		Topic   string   `yaml:"topic"`
	} `yaml:"kafka"`
	RateLimit struct {
		RequestsPerSecond *float64 `yaml:"requests_per_second"`
		Burst             *int     `yaml:"burst"`
	} `yaml:"rate_limit"`
	Premium struct {
		BaseDayRate string `yaml:"base_day_rate"`
	} `yaml:"premium"`
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Server.Addr != "" {
		c.Server.Addr = fc.Server.Addr
	}
	if fc.Log.Level != "" {
		c.Log.Level = fc.Log.Level
	}
	if fc.Log.Format != "" {
		c.Log.Format = fc.Log.Format
	}
	if fc.Audit.Sink != "" {
		c.Audit.Sink = fc.Audit.Sink
	}
	if fc.Audit.PersistTimeout != "" {
		if c.Audit.PersistTimeout, err = time.ParseDuration(fc.Audit.PersistTimeout); err != nil {
			return fmt.Errorf("parse audit.persist_timeout: %w", err)
		}
	}
	if fc.Audit.DrainTimeout != "" {
		if c.Audit.DrainTimeout, err = time.ParseDuration(fc.Audit.DrainTimeout); err != nil {
			return fmt.Errorf("parse audit.drain_timeout: %w", err)
		}
	}
	if len(fc.Kafka.Brokers) > 0 {
		c.Kafka.Brokers = fc.Kafka.Brokers
	}
	if fc.Kafka.Topic != "" {
		c.Kafka.Topic = fc.Kafka.Topic
	}
	if fc.RateLimit.RequestsPerSecond != nil {
		c.RateLimit.RequestsPerSecond = *fc.RateLimit.RequestsPerSecond
	}
	if fc.RateLimit.Burst != nil {
		c.RateLimit.Burst = *fc.RateLimit.Burst
	}
	if fc.Premium.BaseDayRate != "" {
		if c.Premium.BaseDayRate, err = decimal.NewFromString(fc.Premium.BaseDayRate); err != nil {
			return fmt.Errorf("parse premium.base_day_rate: %w", err)
		}
	}
	return nil
}

func (c *Config) applyEnv() error {
	var err error

	c.Server.Addr = env.String("CLAIMS_ADDR", c.Server.Addr)
	if c.Server.ShutdownTimeout, err = env.Duration("CLAIMS_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout); err != nil {
		return err
	}
	c.Log.Level = env.String("LOG_LEVEL", c.Log.Level)
	c.Log.Format = env.String("LOG_FORMAT", c.Log.Format)

	c.Database.URL = env.String("DATABASE_URL", c.Database.URL)
	if c.Database.PingTimeout, err = env.Duration("DATABASE_PING_TIMEOUT", c.Database.PingTimeout); err != nil {
		return err
	}
	if c.Database.MaxOpenConns, err = env.Int("DATABASE_MAX_OPEN_CONNS", c.Database.MaxOpenConns); err != nil {
		return err
	}
	if c.Database.MaxIdleConns, err = env.Int("DATABASE_MAX_IDLE_CONNS", c.Database.MaxIdleConns); err != nil {
		return err
	}
	if c.Database.ConnMaxLifetime, err = env.Duration("DATABASE_CONN_MAX_LIFETIME", c.Database.ConnMaxLifetime); err != nil {
		return err
	}
	if c.Database.ConnMaxIdleTime, err = env.Duration("DATABASE_CONN_MAX_IDLE_TIME", c.Database.ConnMaxIdleTime); err != nil {
		return err
	}

	c.Audit.Sink = strings.ToLower(env.String("AUDIT_SINK", c.Audit.Sink))
	if c.Audit.PersistTimeout, err = env.Duration("AUDIT_PERSIST_TIMEOUT", c.Audit.PersistTimeout); err != nil {
		return err
	}
	if c.Audit.DrainTimeout, err = env.Duration("AUDIT_DRAIN_TIMEOUT", c.Audit.DrainTimeout); err != nil {
		return err
	}

	c.Kafka.Brokers = env.List("KAFKA_BROKERS", c.Kafka.Brokers)
	c.Kafka.Topic = env.String("KAFKA_AUDIT_TOPIC", c.Kafka.Topic)
	if c.Kafka.Partitions, err = env.Int("KAFKA_AUDIT_PARTITIONS", c.Kafka.Partitions); err != nil {
		return err
	}
	if c.Kafka.ReplicationFactor, err = env.Int("KAFKA_AUDIT_REPLICATION_FACTOR", c.Kafka.ReplicationFactor); err != nil {
		return err
	}

	c.Redis.URL = env.String("REDIS_URL", c.Redis.URL)
	if c.Redis.PoolSize, err = env.Int("REDIS_POOL_SIZE", c.Redis.PoolSize); err != nil {
		return err
	}

	if c.RateLimit.RequestsPerSecond, err = env.Float("RATE_LIMIT_RPS", c.RateLimit.RequestsPerSecond); err != nil {
		return err
	}
	if c.RateLimit.Burst, err = env.Int("RATE_LIMIT_BURST", c.RateLimit.Burst); err != nil {
		return err
	}

	if c.Premium.BaseDayRate, err = env.Decimal("PREMIUM_BASE_DAY_RATE", c.Premium.BaseDayRate); err != nil {
		return err
	}
	return nil
}

// Validate rejects configurations the service cannot start with. The
// database settings are only checked when a URL is set; without one the
// service runs on in-memory stores.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("CLAIMS_ADDR must not be empty")
	}
	if !c.Premium.BaseDayRate.IsPositive() {
		return errors.New("PREMIUM_BASE_DAY_RATE must be positive")
	}
	if c.Database.URL != "" {
		if err := c.Database.Validate(); err != nil {
			return err
		}
	}

	switch c.Audit.Sink {
	case AuditSinkMemory:
	case AuditSinkPostgres:
		if c.Database.URL == "" {
			return errors.New("AUDIT_SINK=postgres requires DATABASE_URL")
		}
	case AuditSinkKafka:
		if len(c.Kafka.Brokers) == 0 {
			return errors.New("AUDIT_SINK=kafka requires KAFKA_BROKERS")
		}
		if c.Kafka.Topic == "" {
			return errors.New("KAFKA_AUDIT_TOPIC must not be empty")
		}
	default:
		return fmt.Errorf("unknown AUDIT_SINK %q", c.Audit.Sink)
	}

	if c.Audit.PersistTimeout < 0 {
		return errors.New("AUDIT_PERSIST_TIMEOUT must be >= 0")
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		return errors.New("RATE_LIMIT_RPS must be >= 0")
	}
	if c.RateLimit.RequestsPerSecond > 0 && c.RateLimit.Burst < 1 {
		return errors.New("RATE_LIMIT_BURST must be >= 1 when rate limiting is enabled")
	}
	return nil
}

// UsesDatabase reports whether covers and claims are stored in Postgres.
func (c Config) UsesDatabase() bool {
	return c.Database.URL != ""
}
