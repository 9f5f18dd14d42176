package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log       Logger    `mapstructure:"logger"`
	DB        Database  `mapstructure:"database"`
	API       API       `mapstructure:"api"`
	Auth      Auth      `mapstructure:"auth"`
	Scheduler Scheduler `mapstructure:"scheduler"`
	Cache     Cache     `mapstructure:"cache"`
	Analytics Analytics `mapstructure:"analytics"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port           int           `mapstructure:"port"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	RateLimit      float64       `mapstructure:"rate_limit"`
	RateBurst      int           `mapstructure:"rate_burst"`

	// per-user limit for the stateless calculator
	CalculateRateLimit float64 `mapstructure:"calculate_rate_limit"`
	CalculateRateBurst int     `mapstructure:"calculate_rate_burst"`
}

// Auth configures verification of the identity provider's access tokens.
type Auth struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

type Scheduler struct {
	SnapshotCron    string        `mapstructure:"snapshot_cron"`
	MaxConcurrency  int           `mapstructure:"max_concurrency"`
	TimeoutDuration time.Duration `mapstructure:"timeout_duration"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

type Analytics struct {
	DefaultRange string `mapstructure:"default_range"`
	PageSize     int    `mapstructure:"page_size"`
	MaxPageSize  int    `mapstructure:"max_page_size"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	// keys without a meaningful default are still registered so that
	// AutomaticEnv can fill them during Unmarshal
	for _, key := range []string{"database.host", "database.user", "database.password", "database.name",
		"database.time_zone", "database.conn_max_lifetime", "auth.jwt_secret", "auth.issuer"} {
		v.SetDefault(key, "")
	}
	v.SetDefault("database.max_idle_conns", 0)
	v.SetDefault("database.max_open_conns", 0)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.log_level", "Warn")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.request_timeout", 15*time.Second)
	v.SetDefault("api.rate_limit", 10)
	v.SetDefault("api.rate_burst", 30)
	v.SetDefault("api.calculate_rate_limit", 1)
	v.SetDefault("api.calculate_rate_burst", 5)
	v.SetDefault("scheduler.snapshot_cron", "0 0 * * *")
	v.SetDefault("scheduler.max_concurrency", 4)
	v.SetDefault("scheduler.timeout_duration", 10*time.Minute)
	v.SetDefault("cache.default_expiration", 5*time.Minute)
	v.SetDefault("cache.cleanup_interval", 10*time.Minute)
	v.SetDefault("analytics.default_range", "30d")
	v.SetDefault("analytics.page_size", 10)
	v.SetDefault("analytics.max_page_size", 100)
}

// Load reads config.yaml from the working directory, then lets environment
// variables (DATABASE_HOST, AUTH_JWT_SECRET, ...) override it. A .env file is
// loaded into the environment first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AddConfigPath(".")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		fmt.Println("No config file loaded, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
