package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go-hris-workflow/internal/events"
	"go-hris-workflow/internal/shared/connection"
	"go-hris-workflow/internal/workflow"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Workflow   WorkflowConfig   `mapstructure:"workflow"`
	Document   DocumentConfig   `mapstructure:"document"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	SideEffect SideEffectConfig `mapstructure:"side_effect"`
	Logger     LoggerConfig     `mapstructure:"logger"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host       string `mapstructure:"host"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	Name       string `mapstructure:"name"`
	Port       string `mapstructure:"port"`
	SSLMode    string `mapstructure:"sslmode"`
	MaxRetries int    `mapstructure:"max_retries"`
	// LockTimeout bounds how long a transition waits for the request row.
	LockTimeout time.Duration `mapstructure:"lock_timeout"`
	// TransactionTimeout bounds a whole transition while it holds the row.
	TransactionTimeout time.Duration `mapstructure:"transaction_timeout"`
}

func (c DatabaseConfig) Postgres() connection.PostgresConfig {
	return connection.PostgresConfig{
		Host:     c.Host,
		User:     c.User,
		Password: c.Password,
		Name:     c.Name,
		Port:     c.Port,
		SSLMode:  c.SSLMode,
	}
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	OrgTTL   time.Duration `mapstructure:"org_ttl"`
}

type KafkaConfig struct {
	Brokers       []string `mapstructure:"brokers"`
	Topic         string   `mapstructure:"topic"`
	Partitions    int      `mapstructure:"partitions"`
	ConsumerGroup string   `mapstructure:"consumer_group"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type WorkflowConfig struct {
	// FallbackAdministrationDepartmentID and FallbackHRDepartmentID are used
	// when the org chart names neither department in a recognised spelling.
	FallbackAdministrationDepartmentID string `mapstructure:"fallback_administration_department_id"`
	FallbackHRDepartmentID             string `mapstructure:"fallback_hr_department_id"`
}

// FallbackDepartmentIDs drops unset entries.
func (c WorkflowConfig) FallbackDepartmentIDs() map[workflow.Department]string {
	out := map[workflow.Department]string{}
	if c.FallbackAdministrationDepartmentID != "" {
		out[workflow.DepartmentAdministration] = c.FallbackAdministrationDepartmentID
	}
	if c.FallbackHRDepartmentID != "" {
		out[workflow.DepartmentHR] = c.FallbackHRDepartmentID
	}
	return out
}

type DocumentConfig struct {
	Dir string `mapstructure:"dir"`
}

type RateLimitConfig struct {
	TransitionsPerSecond float64 `mapstructure:"transitions_per_second"`
	TransitionBurst      int     `mapstructure:"transition_burst"`
	PerIPPerSecond       float64 `mapstructure:"per_ip_per_second"`
	PerIPBurst           int     `mapstructure:"per_ip_burst"`
}

type SideEffectConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type LoggerConfig struct {
	Development bool `mapstructure:"development"`
}

// Load reads path when given, then lets environment variables override it.
// Keys map to upper-case names with dots turned into underscores
// (SIDE_EFFECT_TIMEOUT), except the ones bindEnvVars names explicitly.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Kafka.Brokers = splitBrokers(cfg.Kafka.Brokers)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_retries", 5)
	v.SetDefault("database.lock_timeout", 2*time.Second)
	v.SetDefault("database.transaction_timeout", 5*time.Second)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.org_ttl", 60*time.Second)

	v.SetDefault("kafka.topic", events.RequestNotificationTopic)
	v.SetDefault("kafka.partitions", 3)
	v.SetDefault("kafka.consumer_group", "hris-workflow-notifications")

	v.SetDefault("document.dir", "generated_documents")

	v.SetDefault("rate_limit.transitions_per_second", 2)
	v.SetDefault("rate_limit.transition_burst", 5)
	v.SetDefault("rate_limit.per_ip_per_second", 20)
	v.SetDefault("rate_limit.per_ip_burst", 40)

	v.SetDefault("side_effect.timeout", 30*time.Second)
	v.SetDefault("logger.development", true)
}

// bindEnvVars keeps the variable names the deployment already uses.
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("database.host", "DB_HOST")
	_ = v.BindEnv("database.user", "DB_USER")
	_ = v.BindEnv("database.password", "DB_PASSWORD")
	_ = v.BindEnv("database.name", "DB_NAME")
	_ = v.BindEnv("database.port", "DB_PORT")
	_ = v.BindEnv("database.sslmode", "DB_SSLMODE")
	_ = v.BindEnv("database.lock_timeout", "DB_LOCK_TIMEOUT")
	_ = v.BindEnv("database.transaction_timeout", "DB_TRANSACTION_TIMEOUT")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("redis.org_ttl", "ORG_CACHE_TTL")
	_ = v.BindEnv("kafka.brokers", "KAFKA_BROKERS", "KAFKA_BROKER")
	_ = v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	_ = v.BindEnv("workflow.fallback_administration_department_id", "FALLBACK_ADMINISTRATION_DEPARTMENT_ID")
	_ = v.BindEnv("workflow.fallback_hr_department_id", "FALLBACK_HR_DEPARTMENT_ID")
	_ = v.BindEnv("document.dir", "DOCUMENT_DIR")
}

// splitBrokers accepts both a list and a single comma separated value.
func splitBrokers(in []string) []string {
	var out []string
	for _, item := range in {
		for _, b := range strings.Split(item, ",") {
			if b = strings.TrimSpace(b); b != "" {
				out = append(out, b)
			}
		}
	}
	return out
}

func (c *Config) Validate() error {
	if c.Database.Name == "" {
		return errors.New("database.name is required")
	}
	if c.Database.User == "" {
		return errors.New("database.user is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if len(c.Kafka.Brokers) == 0 {
		return errors.New("kafka.brokers is required")
	}
	if c.Database.LockTimeout < 0 {
		return errors.New("database.lock_timeout must not be negative")
	}
	if c.Database.TransactionTimeout > 0 && c.Database.TransactionTimeout <= c.Database.LockTimeout {
		return errors.New("database.transaction_timeout must exceed database.lock_timeout")
	}
	if c.RateLimit.TransitionBurst <= 0 {
		return errors.New("rate_limit.transition_burst must be positive")
	}
	return nil
}
