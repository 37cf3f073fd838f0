package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"compliance-audit-trail/internal/core/domain"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
	Audit    AuditConfig    `mapstructure:"audit"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// Channel is the pub/sub channel prefix for trail notifications.
	Channel string `mapstructure:"channel"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// AuditConfig is the file/env shape of the trail's runtime configuration.
type AuditConfig struct {
	RetentionYears      int      `mapstructure:"retention_years"`
	EnableHashing       bool     `mapstructure:"enable_hashing"`
	EnableAnonymization bool     `mapstructure:"enable_anonymization"`
	CriticalActions     []string `mapstructure:"critical_actions"`
	ExcludedFields      []string `mapstructure:"excluded_fields"`
	MaxEntriesPerQuery  int      `mapstructure:"max_entries_per_query"`
	AnonymizationSalt   string   `mapstructure:"anonymization_salt"`
}

// ToTrailConfig converts the file/env shape into the domain configuration.
func (a AuditConfig) ToTrailConfig() domain.TrailConfig {
	actions := make([]domain.Action, len(a.CriticalActions))
	for i, s := range a.CriticalActions {
		actions[i] = domain.Action(strings.ToUpper(s))
	}
	return domain.TrailConfig{
		RetentionYears:      a.RetentionYears,
		EnableHashing:       a.EnableHashing,
		EnableAnonymization: a.EnableAnonymization,
		CriticalActions:     actions,
		ExcludedFields:      a.ExcludedFields,
		MaxEntriesPerQuery:  a.MaxEntriesPerQuery,
		AnonymizationSalt:   a.AnonymizationSalt,
	}
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: CAT_ (Compliance Audit
// Trail). Nested keys use underscore: CAT_DATABASE_HOST, CAT_REDIS_PORT, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := domain.DefaultTrailConfig()

	// Defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "audit_trail")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.channel", "audit")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("audit.retention_years", defaults.RetentionYears)
	v.SetDefault("audit.enable_hashing", defaults.EnableHashing)
	v.SetDefault("audit.enable_anonymization", defaults.EnableAnonymization)
	v.SetDefault("audit.critical_actions", actionStrings(defaults.CriticalActions))
	v.SetDefault("audit.excluded_fields", defaults.ExcludedFields)
	v.SetDefault("audit.max_entries_per_query", defaults.MaxEntriesPerQuery)
	v.SetDefault("audit.anonymization_salt", defaults.AnonymizationSalt)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: CAT_DATABASE_HOST -> database.host
	v.SetEnvPrefix("CAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func actionStrings(actions []domain.Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = string(a)
	}
	return out
}
