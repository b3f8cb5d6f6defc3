package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Checkout     CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Checkout.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env                string   `envconfig:"CHECKOUT_APP_ENV" required:"true"`
	Port               string   `envconfig:"CHECKOUT_APP_PORT" required:"true"`
	LogLevel           string   `envconfig:"CHECKOUT_LOG_LEVEL" default:"info"`
	LogWarnStack       bool     `envconfig:"CHECKOUT_LOG_WARN_STACK" default:"false"`
	CORSAllowedOrigins []string `envconfig:"CHECKOUT_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"CHECKOUT_DB_DSN"`

	LegacyHost     string `envconfig:"CHECKOUT_DB_HOST"`
	LegacyPort     int    `envconfig:"CHECKOUT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CHECKOUT_DB_USER"`
	LegacyPassword string `envconfig:"CHECKOUT_DB_PASSWORD"`
	LegacyName     string `envconfig:"CHECKOUT_DB_NAME"`
	LegacySSLMode  string `envconfig:"CHECKOUT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CHECKOUT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CHECKOUT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CHECKOUT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CHECKOUT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CHECKOUT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CHECKOUT_REDIS_ADDR"`
	Password     string        `envconfig:"CHECKOUT_REDIS_PASSWORD"`
	DB           int           `envconfig:"CHECKOUT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CHECKOUT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CHECKOUT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CHECKOUT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CHECKOUT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CHECKOUT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CHECKOUT_AUTO_MIGRATE" default:"false"`
}

type CheckoutConfig struct {
	// CommissionRate is the platform fee applied to the services subtotal.
	CommissionRate    decimal.Decimal `envconfig:"CHECKOUT_COMMISSION_RATE" default:"0.15"`
	PaymentSessionTTL time.Duration   `envconfig:"CHECKOUT_PAYMENT_SESSION_TTL" default:"30m"`
	IdempotencyTTL    time.Duration   `envconfig:"CHECKOUT_IDEMPOTENCY_TTL" default:"24h"`
}

// OverridesCommissionRate reports whether the configured rate differs from
// the standard platform fee.
func (c CheckoutConfig) OverridesCommissionRate() bool {
	return !c.CommissionRate.Equal(decimal.RequireFromString(DefaultCommissionRate))
}

func (c CheckoutConfig) validate() error {
	rate := c.CommissionRate
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be between 0 and 1, got %s", EnvCommissionRate, rate)
	}
	if c.PaymentSessionTTL <= 0 {
		return fmt.Errorf("%s must be positive", EnvPaymentSessionTTL)
	}
	if c.IdempotencyTTL < 0 {
		return fmt.Errorf("%s must not be negative", EnvIdempotencyTTL)
	}
	return nil
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
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
