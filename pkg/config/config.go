package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Store        StoreConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string        `envconfig:"FRIENDSOFALL_APP_ENV" default:"dev"`
	Port         string        `envconfig:"FRIENDSOFALL_APP_PORT" default:"8080"`
	LogLevel     string        `envconfig:"FRIENDSOFALL_LOG_LEVEL" default:"info"`
	LogWarnStack bool          `envconfig:"FRIENDSOFALL_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string      `envconfig:"FRIENDSOFALL_CORS_ORIGINS" default:"*"`
	ShutdownWait time.Duration `envconfig:"FRIENDSOFALL_SHUTDOWN_TIMEOUT" default:"10s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig selects the key-value medium backing the menu, cart, orders and feedback.
type StoreConfig struct {
	Backend string `envconfig:"FRIENDSOFALL_STORE_BACKEND" default:"memory"`
	FileDir string `envconfig:"FRIENDSOFALL_STORE_FILE_DIR" default:"./data"`
}

// NormalizedBackend lowercases and trims the configured backend name. Empty means memory.
func (s StoreConfig) NormalizedBackend() string {
	backend := strings.ToLower(strings.TrimSpace(s.Backend))
	if backend == "" {
		return StoreBackendMemory
	}
	return backend
}

type DBConfig struct {
	DSN    string `envconfig:"FRIENDSOFALL_DB_DSN"`
	Driver string `envconfig:"FRIENDSOFALL_DB_DRIVER" default:"sqlite"`

	MaxOpenConns    int           `envconfig:"FRIENDSOFALL_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"FRIENDSOFALL_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"FRIENDSOFALL_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FRIENDSOFALL_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FRIENDSOFALL_REDIS_URL"`
	Address      string        `envconfig:"FRIENDSOFALL_REDIS_ADDR"`
	Password     string        `envconfig:"FRIENDSOFALL_REDIS_PASSWORD"`
	DB           int           `envconfig:"FRIENDSOFALL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FRIENDSOFALL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FRIENDSOFALL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FRIENDSOFALL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FRIENDSOFALL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FRIENDSOFALL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	AdminDashboard         bool `envconfig:"FRIENDSOFALL_FEATURE_ADMIN_DASHBOARD" default:"true"`
	StrictOrderTransitions bool `envconfig:"FRIENDSOFALL_FEATURE_STRICT_ORDER_TRANSITIONS" default:"false"`
	AutoMigrate            bool `envconfig:"FRIENDSOFALL_AUTO_MIGRATE" default:"false"`
}

func (c *Config) validate() error {
	switch c.Store.NormalizedBackend() {
	case StoreBackendMemory:
	case StoreBackendFile:
		if strings.TrimSpace(c.Store.FileDir) == "" {
			return fmt.Errorf("%s is required for the file store", EnvStoreFileDir)
		}
	case StoreBackendSQLite:
		if c.DB.DSN == "" {
			c.DB.DSN = "friendsofall.db"
		}
		c.DB.Driver = StoreBackendSQLite
	case StoreBackendPostgres:
		if c.DB.DSN == "" {
			return fmt.Errorf("%s is required for the postgres store", EnvDBDSN)
		}
		c.DB.Driver = StoreBackendPostgres
	case StoreBackendRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("either %s or %s is required for the redis store", EnvRedisURL, EnvRedisAddr)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvStoreBackend, c.Store.Backend)
	}
	return nil
}
