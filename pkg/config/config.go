package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Admin        AdminConfig
	Storefront   StorefrontConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TELTECH_APP_ENV" required:"true"`
	Port         string `envconfig:"TELTECH_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TELTECH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TELTECH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TELTECH_DB_DSN"`
	Driver string `envconfig:"TELTECH_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"TELTECH_DB_HOST"`
	Port     int    `envconfig:"TELTECH_DB_PORT" default:"5432"`
	User     string `envconfig:"TELTECH_DB_USER"`
	Password string `envconfig:"TELTECH_DB_PASSWORD"`
	Name     string `envconfig:"TELTECH_DB_NAME"`
	SSLMode  string `envconfig:"TELTECH_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TELTECH_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TELTECH_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TELTECH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TELTECH_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TELTECH_REDIS_URL"`
	Address      string        `envconfig:"TELTECH_REDIS_ADDR"`
	Password     string        `envconfig:"TELTECH_REDIS_PASSWORD"`
	DB           int           `envconfig:"TELTECH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TELTECH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TELTECH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TELTECH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TELTECH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TELTECH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"TELTECH_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"TELTECH_JWT_ISSUER" default:"teltech"`
	ExpirationMinutes int    `envconfig:"TELTECH_JWT_EXPIRATION_MINUTES" default:"60"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"TELTECH_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"TELTECH_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"TELTECH_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"TELTECH_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"TELTECH_ARGON_KEY_LEN" default:"32"`
}

// AdminConfig seeds the dev admin account. Ignored outside dev.
type AdminConfig struct {
	Email    string `envconfig:"TELTECH_ADMIN_EMAIL"`
	Password string `envconfig:"TELTECH_ADMIN_PASSWORD"`
}

// StorefrontConfig drives the storefront view process.
type StorefrontConfig struct {
	Mode         string        `envconfig:"TELTECH_STOREFRONT_MODE" default:"local"`
	APIBaseURL   string        `envconfig:"TELTECH_STOREFRONT_API_URL" default:"http://localhost:5000"`
	PollInterval time.Duration `envconfig:"TELTECH_STOREFRONT_POLL_INTERVAL" default:"10s"`
	ViewName     string        `envconfig:"TELTECH_STOREFRONT_VIEW_NAME" default:"storefront"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"TELTECH_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"TELTECH_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
