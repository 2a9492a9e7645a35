package app

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the console.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`
	AppRateLimit      int           `envconfig:"APP_RATE_LIMIT" default:"120"`
	AppLanguage       string        `envconfig:"APP_LANGUAGE" default:"zh-Hans"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	// RedisAddr enables the dashboard cache when set.
	RedisAddr string `envconfig:"REDIS_ADDR"`

	DashboardCacheTTL     time.Duration `envconfig:"DASHBOARD_CACHE_TTL" default:"1m"`
	DashboardTodayOrders  int64         `envconfig:"DASHBOARD_TODAY_ORDERS" default:"112893"`
	DashboardTotalRevenue float64       `envconfig:"DASHBOARD_TOTAL_REVENUE" default:"93000"`

	UsersLenientStatus bool `envconfig:"USERS_LENIENT_STATUS" default:"false"`
	AuditCapacity      int  `envconfig:"AUDIT_CAPACITY" default:"100"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.AppRateLimit < 1 {
		return nil, errors.New("rate limit must be positive")
	}
	if cfg.AuditCapacity < 1 {
		return nil, errors.New("audit capacity must be positive")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
