// Package config loads service settings from defaults, an optional config
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Snapshot  SnapshotConfig  `mapstructure:"snapshot"`
	Inventory InventoryConfig `mapstructure:"inventory"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	EventLog  EventLogConfig  `mapstructure:"eventlog"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type RedisConfig struct {
	// Addr empty disables Redis; caches and the event log stay in process.
	Addr   string `mapstructure:"addr"`
	Prefix string `mapstructure:"prefix"`
}

type SnapshotConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type InventoryConfig struct {
	LowStockThreshold int `mapstructure:"low_stock_threshold"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`

	// AdminPassword, when set, makes serve create the admin user if it is missing.
	AdminPassword string `mapstructure:"admin_password"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type EventLogConfig struct {
	MaxEntries int `mapstructure:"max_entries"`
}

const envPrefix = "INVENTORY"

// SetDefaults registers every key with its default so that environment
// variables are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("database.url", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.prefix", "inventory:")
	v.SetDefault("snapshot.ttl", 30*time.Second)
	v.SetDefault("inventory.low_stock_threshold", 10)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 15*time.Minute)
	v.SetDefault("auth.admin_password", "")
	v.SetDefault("ratelimit.rps", 5.0)
	v.SetDefault("ratelimit.burst", 10)
	v.SetDefault("eventlog.max_entries", 1000)
}

// New returns a viper instance wired for INVENTORY_* env vars. DATABASE_URL
// and REDIS_ADDR are honoured without the prefix as well.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("database.url", envPrefix+"_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("redis.addr", envPrefix+"_REDIS_ADDR", "REDIS_ADDR")

	return v
}

// Load reads the optional config file and decodes the result.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Inventory.LowStockThreshold < 0 {
		errs = append(errs, errors.New("inventory.low_stock_threshold must be zero or positive"))
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("ratelimit.rps and ratelimit.burst must be positive"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	return errors.Join(errs...)
}
