// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/idlefarm/internal/logger"
	"github.com/osse101/idlefarm/internal/storage"
)

// Config holds the application configuration
type Config struct {
	Port           int    `validate:"min=1,max=65535"`
	LogLevel       string `validate:"oneof=debug info warn warning error"`
	LogFormat      string `validate:"oneof=text json"`
	LogAddSource   bool
	LogDir         string // session log files are written here when set
	Environment    string `validate:"required"`
	ServiceName    string `validate:"required"`
	Version        string
	APIKey         string // API key for authentication, empty disables it
	TrustedProxies []string

	StorageDriver string `validate:"oneof=memory file sqlite postgres"`
	DataDir       string `validate:"required_if=StorageDriver file"`
	SQLitePath    string `validate:"required_if=StorageDriver sqlite"`

	DatabaseURL       string
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int           `validate:"min=1"`
	DBMaxConnIdle     time.Duration `validate:"gt=0"`
	DBMaxConnLifetime time.Duration `validate:"gt=0"`

	TickInterval     time.Duration `validate:"gt=0"`
	AutoSaveInterval time.Duration `validate:"gt=0"`
	ProgressInterval time.Duration `validate:"gt=0"`
	Workers          int           `validate:"min=1"`
	JobQueueSize     int           `validate:"min=1"`
	ShutdownTimeout  time.Duration `validate:"gt=0"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()
	return fromEnv()
}

// LoadFiles is Load with explicit env files. Missing files are an error here.
func LoadFiles(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		return nil, fmt.Errorf("failed to load env files: %w", err)
	}
	return fromEnv()
}

func fromEnv() (*Config, error) {
	p := &parser{}

	cfg := &Config{
		Port:              p.intVar(EnvPort, DefaultPort),
		LogLevel:          strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:         strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		LogAddSource:      p.boolVar(EnvLogAddSource, false),
		LogDir:            getEnv(EnvLogDir, ""),
		Environment:       getEnv(EnvEnvironment, DefaultEnvironment),
		ServiceName:       getEnv(EnvServiceName, DefaultServiceName),
		Version:           getEnv(EnvVersion, DefaultVersion),
		APIKey:            getEnv(EnvAPIKey, ""),
		TrustedProxies:    getEnvAsList(EnvTrustedProxies),
		StorageDriver:     strings.ToLower(getEnv(EnvStorageDriver, DefaultStorageDriver)),
		DataDir:           getEnv(EnvDataDir, DefaultDataDir),
		SQLitePath:        getEnv(EnvSQLitePath, DefaultSQLitePath),
		DatabaseURL:       getEnv(EnvDatabaseURL, ""),
		DBUser:            getEnv(EnvDBUser, DefaultDBUser),
		DBPassword:        getEnv(EnvDBPassword, DefaultDBPassword),
		DBHost:            getEnv(EnvDBHost, DefaultDBHost),
		DBPort:            getEnv(EnvDBPort, DefaultDBPort),
		DBName:            getEnv(EnvDBName, DefaultDBName),
		DBMaxConns:        p.intVar(EnvDBMaxConns, DefaultDBMaxConns),
		DBMaxConnIdle:     p.durationVar(EnvDBMaxConnIdle, DefaultDBMaxConnIdle),
		DBMaxConnLifetime: p.durationVar(EnvDBMaxConnLifetime, DefaultDBMaxConnLifetime),
		TickInterval:      p.durationVar(EnvTickInterval, DefaultTickInterval),
		AutoSaveInterval:  p.durationVar(EnvAutoSaveInterval, DefaultAutoSaveInterval),
		ProgressInterval:  p.durationVar(EnvProgressInterval, DefaultProgressInterval),
		Workers:           p.intVar(EnvWorkers, DefaultWorkers),
		JobQueueSize:      p.intVar(EnvJobQueueSize, DefaultJobQueueSize),
		ShutdownTimeout:   p.durationVar(EnvShutdownTimeout, DefaultShutdownTimeout),
	}
	if p.err != nil {
		return nil, p.err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping blanks
func getEnvAsList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parser keeps the first conversion error so Load reports one bad variable at a time
type parser struct {
	err error
}

func (p *parser) fail(key, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf(ErrMsgInvalidValue, key, value, err)
	}
}

func (p *parser) intVar(key string, defaultValue int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, raw, err)
		return defaultValue
	}
	return v
}

func (p *parser) durationVar(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(key, raw, err)
		return defaultValue
	}
	return v
}

func (p *parser) boolVar(key string, defaultValue bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(key, raw, err)
		return defaultValue
	}
	return v
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// Storage returns the settings for storage.Open
func (c *Config) Storage() storage.Config {
	return storage.Config{
		Driver:          c.StorageDriver,
		DataDir:         c.DataDir,
		SQLitePath:      c.SQLitePath,
		DatabaseURL:     c.GetDBConnString(),
		MaxConns:        c.DBMaxConns,
		MaxConnIdleTime: c.DBMaxConnIdle,
		MaxConnLifetime: c.DBMaxConnLifetime,
	}
}

// Logger returns the settings for logger.InitLogger
func (c *Config) Logger() logger.Config {
	return logger.NewConfig(c.LogLevel, c.LogFormat, c.ServiceName, c.Version, c.Environment, c.LogAddSource)
}
