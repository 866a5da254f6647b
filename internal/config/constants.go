package config

import "time"

// Environment variable names
const (
	EnvPort              = "PORT"
	EnvLogLevel          = "LOG_LEVEL"
	EnvLogFormat         = "LOG_FORMAT"
	EnvLogAddSource      = "LOG_ADD_SOURCE"
	EnvLogDir            = "LOG_DIR"
	EnvEnvironment       = "ENVIRONMENT"
	EnvServiceName       = "SERVICE_NAME"
	EnvVersion           = "VERSION"
	EnvAPIKey            = "API_KEY"
	EnvTrustedProxies    = "TRUSTED_PROXIES"
	EnvStorageDriver     = "STORAGE_DRIVER"
	EnvDataDir           = "DATA_DIR"
	EnvSQLitePath        = "SQLITE_PATH"
	EnvDatabaseURL       = "DATABASE_URL"
	EnvDBUser            = "DB_USER"
	EnvDBPassword        = "DB_PASSWORD"
	EnvDBHost            = "DB_HOST"
	EnvDBPort            = "DB_PORT"
	EnvDBName            = "DB_NAME"
	EnvDBMaxConns        = "DB_MAX_CONNS"
	EnvDBMaxConnIdle     = "DB_MAX_CONN_IDLE"
	EnvDBMaxConnLifetime = "DB_MAX_CONN_LIFETIME"
	EnvTickInterval      = "TICK_INTERVAL"
	EnvAutoSaveInterval  = "AUTOSAVE_INTERVAL"
	EnvProgressInterval  = "PROGRESS_INTERVAL"
	EnvWorkers           = "WORKERS"
	EnvJobQueueSize      = "JOB_QUEUE_SIZE"
	EnvShutdownTimeout   = "SHUTDOWN_TIMEOUT"
)

// Defaults
const (
	DefaultPort              = 8080
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultEnvironment       = "dev"
	DefaultServiceName       = "idlefarm"
	DefaultVersion           = "dev"
	DefaultStorageDriver     = "file"
	DefaultDataDir           = "data"
	DefaultSQLitePath        = "data/idlefarm.db"
	DefaultDBUser            = "postgres"
	DefaultDBPassword        = "postgres"
	DefaultDBHost            = "localhost"
	DefaultDBPort            = "5432"
	DefaultDBName            = "idlefarm"
	DefaultDBMaxConns        = 5
	DefaultDBMaxConnIdle     = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
	DefaultTickInterval      = time.Second
	DefaultAutoSaveInterval  = time.Minute
	DefaultProgressInterval  = 100 * time.Millisecond
	DefaultWorkers           = 2
	DefaultJobQueueSize      = 16
	DefaultShutdownTimeout   = 10 * time.Second
)

// EnvironmentProduction turns missing-secret warnings into errors
const EnvironmentProduction = "production"

// Example values shipped in .env.example
const (
	ExampleDBPassword = "change_this_secure_password"
	ExampleAPIKey     = "generate_with_openssl_rand_hex_32"
)

// Error and warning messages
const (
	ErrMsgInvalidValue   = "invalid %s value %q: %w"
	ErrMsgInvalidConfig  = "invalid configuration"
	ErrMsgAPIKeyRequired = "API_KEY must be set in production"
	WarnMsgExampleDBPass = "DB_PASSWORD appears to be using the example value - please use a secure password"
	WarnMsgExampleAPIKey = "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32"
	WarnMsgNoAPIKey      = "API_KEY is not set - the API is open to anyone who can reach it"
	WarnMsgDefaultDBPass = "DB_PASSWORD is the default - set a real password for shared databases"
)
