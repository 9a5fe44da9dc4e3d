package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress            string
	DatabaseURI           string
	RoutingServiceAddress string
	JWTSecret             string
	TokenTTL              time.Duration
	KafkaBrokers          []string
	KafkaTopic            string
	QuotePollInterval     time.Duration
	WorkerPoolSize        int
	QuoteBatchSize        int
	ShutdownTimeout       time.Duration
	TaxMode               string
	AdminLogin            string
	AdminPassword         string
	LogLevel              string
}

// Tax modes understood by the invoice composer.
const (
	TaxModeApplied = "applied"
	TaxModeExempt  = "exempt"
)

const (
	defaultRunAddress        = ":8080"
	defaultJWTSecret         = "change-me-in-production"
	defaultTokenTTL          = 24 * time.Hour
	defaultKafkaTopic        = "freight.events"
	defaultQuotePollInterval = 5 * time.Second
	defaultWorkerPoolSize    = 4
	defaultQuoteBatchSize    = 16
	defaultShutdownTimeout   = 10 * time.Second
	defaultTaxMode           = TaxModeApplied
	defaultLogLevel          = "info"
	defaultEnvFile           = ".env"
)

// Load parses configuration from flags, environment variables and an optional .env file.
// Real environment variables take precedence over values from the file.
func Load() (*Config, error) {
	lookup := envLookup(os.LookupEnv)
	fileValues, err := readEnvFile(getString(lookup, "ENV_FILE", defaultEnvFile))
	if err != nil {
		return nil, err
	}
	return load(os.Args[1:], chain(lookup, mapLookup(fileValues)))
}

type envLookup func(string) (string, bool)

func mapLookup(values map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func chain(lookups ...envLookup) envLookup {
	return func(key string) (string, bool) {
		for _, l := range lookups {
			if v, ok := l(key); ok && v != "" {
				return v, true
			}
		}
		return "", false
	}
}

func readEnvFile(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return values, nil
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:            getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:           getString(lookup, "DATABASE_URI", ""),
		RoutingServiceAddress: getString(lookup, "ROUTING_SERVICE_ADDRESS", ""),
		JWTSecret:             getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:              getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		KafkaTopic:            getString(lookup, "KAFKA_TOPIC", defaultKafkaTopic),
		QuotePollInterval:     getDuration(lookup, "QUOTE_POLL_INTERVAL", defaultQuotePollInterval),
		WorkerPoolSize:        getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		QuoteBatchSize:        getInt(lookup, "QUOTE_BATCH_SIZE", defaultQuoteBatchSize),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		TaxMode:               getString(lookup, "TAX_MODE", defaultTaxMode),
		AdminLogin:            getString(lookup, "ADMIN_LOGIN", ""),
		AdminPassword:         getString(lookup, "ADMIN_PASSWORD", ""),
		LogLevel:              getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("freightdesk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.QuotePollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		kafkaBrokers       = getString(lookup, "KAFKA_BROKERS", "")
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RoutingServiceAddress, "r", cfg.RoutingServiceAddress, "Routing service base URL (optional)")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&kafkaBrokers, "kafka-brokers", kafkaBrokers, "Comma separated Kafka brokers (optional)")
	fs.StringVar(&cfg.KafkaTopic, "kafka-topic", cfg.KafkaTopic, "Kafka topic for workflow events")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent quote workers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between quote polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.QuoteBatchSize, "poll-batch", cfg.QuoteBatchSize, "Maximum loads per quoting batch")
	fs.StringVar(&cfg.TaxMode, "tax-mode", cfg.TaxMode, "Invoice tax mode: applied or exempt")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.QuotePollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	cfg.KafkaBrokers = splitList(kafkaBrokers)

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.QuoteBatchSize <= 0 {
		cfg.QuoteBatchSize = defaultQuoteBatchSize
	}

	if cfg.QuotePollInterval <= 0 {
		cfg.QuotePollInterval = defaultQuotePollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	cfg.TaxMode = strings.ToLower(strings.TrimSpace(cfg.TaxMode))
	if cfg.TaxMode != TaxModeApplied && cfg.TaxMode != TaxModeExempt {
		return nil, fmt.Errorf("unknown tax mode %q", cfg.TaxMode)
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if (cfg.AdminLogin == "") != (cfg.AdminPassword == "") {
		return nil, fmt.Errorf("admin login and password must be provided together")
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
