package config

const (
	EnvPrefix = "RENTALHUB"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv      = "RENTALHUB_APP_ENV"
	EnvPort        = "RENTALHUB_APP_PORT"
	EnvLogLevel    = "RENTALHUB_LOG_LEVEL"
	EnvAppTimezone = "RENTALHUB_APP_TIMEZONE"

	EnvDBDSN      = "RENTALHUB_DB_DSN"
	EnvDBDriver   = "RENTALHUB_DB_DRIVER"
	EnvDBHost     = "RENTALHUB_DB_HOST"
	EnvDBPort     = "RENTALHUB_DB_PORT"
	EnvDBUser     = "RENTALHUB_DB_USER"
	EnvDBPassword = "RENTALHUB_DB_PASSWORD"
	EnvDBName     = "RENTALHUB_DB_NAME"

	EnvRedisURL = "RENTALHUB_REDIS_URL"

	EnvIdempotencyTTL = "RENTALHUB_IDEMPOTENCY_TTL"

	EnvRateLimitWriteWindow  = "RENTALHUB_RATE_LIMIT_WRITE_WINDOW"
	EnvRateLimitWriteIPLimit = "RENTALHUB_RATE_LIMIT_WRITE_IP_LIMIT"

	EnvCronCompletionSchedule = "RENTALHUB_CRON_COMPLETION_SCHEDULE"
	EnvCronLockTTL            = "RENTALHUB_CRON_LOCK_TTL"

	EnvUseSQLite   = "RENTALHUB_USE_SQLITE"
	EnvAutoMigrate = "RENTALHUB_AUTO_MIGRATE"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
