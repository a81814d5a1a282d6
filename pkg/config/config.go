package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	Idempotency  IdempotencyConfig
	RateLimit    RateLimitConfig
	CORS         CORSConfig
	Cron         CronConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DBDriverSQLite
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if _, err := cfg.App.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"RENTALHUB_APP_ENV" required:"true"`
	Port         string `envconfig:"RENTALHUB_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"RENTALHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RENTALHUB_LOG_WARN_STACK" default:"false"`
	Timezone     string `envconfig:"RENTALHUB_APP_TIMEZONE" default:"UTC"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// Location returns the calendar used to decide what "today" is for bookings.
func (a AppConfig) Location() (*time.Location, error) {
	name := strings.TrimSpace(a.Timezone)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", EnvAppTimezone, name, err)
	}
	return loc, nil
}

type ServiceConfig struct {
	Kind string `envconfig:"RENTALHUB_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"RENTALHUB_DB_DSN"`
	Driver string `envconfig:"RENTALHUB_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"RENTALHUB_DB_HOST"`
	LegacyPort     int    `envconfig:"RENTALHUB_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"RENTALHUB_DB_USER"`
	LegacyPassword string `envconfig:"RENTALHUB_DB_PASSWORD"`
	LegacyName     string `envconfig:"RENTALHUB_DB_NAME"`
	LegacySSLMode  string `envconfig:"RENTALHUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"RENTALHUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RENTALHUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RENTALHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RENTALHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	SlowQueryThreshold time.Duration `envconfig:"RENTALHUB_DB_SLOW_QUERY_THRESHOLD" default:"500ms"`
}

// IsSQLite reports whether the sqlite dialector should be used.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"RENTALHUB_REDIS_URL" required:"true"`
	Address      string        `envconfig:"RENTALHUB_REDIS_ADDR"`
	Password     string        `envconfig:"RENTALHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"RENTALHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RENTALHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RENTALHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RENTALHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RENTALHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RENTALHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"RENTALHUB_IDEMPOTENCY_TTL" default:"24h"`
}

type RateLimitConfig struct {
	WriteWindow  time.Duration `envconfig:"RENTALHUB_RATE_LIMIT_WRITE_WINDOW" default:"1m"`
	WriteIPLimit int           `envconfig:"RENTALHUB_RATE_LIMIT_WRITE_IP_LIMIT" default:"120"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"RENTALHUB_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

type CronConfig struct {
	CompletionSchedule string        `envconfig:"RENTALHUB_CRON_COMPLETION_SCHEDULE" default:"0 15 0 * * *"`
	LockTTL            time.Duration `envconfig:"RENTALHUB_CRON_LOCK_TTL" default:"30m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"RENTALHUB_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"RENTALHUB_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required when using sqlite", EnvDBDSN)
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
