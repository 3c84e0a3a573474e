package config

const EnvPrefix = "FRIENDSOFALL"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	StoreBackendMemory   = "memory"
	StoreBackendFile     = "file"
	StoreBackendSQLite   = "sqlite"
	StoreBackendPostgres = "postgres"
	StoreBackendRedis    = "redis"
)

const (
	EnvAppEnv       = "FRIENDSOFALL_APP_ENV"
	EnvPort         = "FRIENDSOFALL_APP_PORT"
	EnvLogLevel     = "FRIENDSOFALL_LOG_LEVEL"
	EnvStoreBackend = "FRIENDSOFALL_STORE_BACKEND"
	EnvStoreFileDir = "FRIENDSOFALL_STORE_FILE_DIR"
	EnvDBDSN        = "FRIENDSOFALL_DB_DSN"
	EnvDBDriver     = "FRIENDSOFALL_DB_DRIVER"
	EnvRedisURL     = "FRIENDSOFALL_REDIS_URL"
	EnvRedisAddr    = "FRIENDSOFALL_REDIS_ADDR"

	EnvFeatureAdminDashboard = "FRIENDSOFALL_FEATURE_ADMIN_DASHBOARD"
	EnvFeatureStrictOrders   = "FRIENDSOFALL_FEATURE_STRICT_ORDER_TRANSITIONS"
	EnvAutoMigrate           = "FRIENDSOFALL_AUTO_MIGRATE"
)
