package config

// Struct tags carry the full variable names; envconfig falls back to them.
const EnvPrefix = "CHECKOUT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DefaultCommissionRate = "0.15"
)

const (
	EnvAppEnv            = "CHECKOUT_APP_ENV"
	EnvPort              = "CHECKOUT_APP_PORT"
	EnvLogLevel          = "CHECKOUT_LOG_LEVEL"
	EnvDBDSN             = "CHECKOUT_DB_DSN"
	EnvDBHost            = "CHECKOUT_DB_HOST"
	EnvDBUser            = "CHECKOUT_DB_USER"
	EnvDBName            = "CHECKOUT_DB_NAME"
	EnvRedisURL          = "CHECKOUT_REDIS_URL"
	EnvAutoMigrate       = "CHECKOUT_AUTO_MIGRATE"
	EnvCommissionRate    = "CHECKOUT_COMMISSION_RATE"
	EnvPaymentSessionTTL = "CHECKOUT_PAYMENT_SESSION_TTL"
	EnvIdempotencyTTL    = "CHECKOUT_IDEMPOTENCY_TTL"
	EnvCORSOrigins       = "CHECKOUT_CORS_ALLOWED_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
