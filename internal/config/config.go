package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	BackendGorm = "gorm"
	BackendSQLX = "sqlx"

	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds everything the server and the seeder read from the environment.
type Config struct {
	AppEnv string
	Port   string

	DBDriver   string
	SQLiteDSN  string
	PGHost     string
	PGPort     string
	PGUser     string
	PGPassword string
	PGDB       string

	LookupBackend string

	CacheDriver       string
	CacheTTL          time.Duration
	CacheWarmInterval time.Duration
	RedisHost         string
	RedisPort         string
	RedisPassword     string

	RateLimitRPS   float64
	RateLimitBurst int

	CORSAllowedOrigins []string

	DatasetPath string
	SeedOnStart bool

	SentryDSN string
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:        getenv("APP_ENV", "development"),
		Port:          getenv("PORT", "3000"),
		DBDriver:      strings.ToLower(getenv("DB_DRIVER", DriverSQLite)),
		SQLiteDSN:     getenv("SQLITE_DSN", "file::memory:?cache=shared"),
		PGHost:        getenv("PG_HOST", "localhost"),
		PGPort:        getenv("PG_PORT", "5432"),
		PGUser:        os.Getenv("PG_USER"),
		PGPassword:    os.Getenv("PG_PASSWORD"),
		PGDB:          os.Getenv("PG_DB"),
		LookupBackend: strings.ToLower(getenv("LOOKUP_BACKEND", BackendGorm)),
		CacheDriver:   strings.ToLower(getenv("CACHE_DRIVER", CacheMemory)),
		RedisHost:     getenv("REDIS_HOST", "localhost"),
		RedisPort:     getenv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		DatasetPath:   os.Getenv("DATASET_PATH"),
		SentryDSN:     os.Getenv("SENTRY_DSN"),
	}

	ttl, err := strconv.Atoi(getenv("CACHE_TTL_SECONDS", "300"))
	if err != nil || ttl < 0 {
		return nil, fmt.Errorf("invalid CACHE_TTL_SECONDS: %q", os.Getenv("CACHE_TTL_SECONDS"))
	}
	cfg.CacheTTL = time.Duration(ttl) * time.Second

	warm, err := strconv.Atoi(getenv("CACHE_WARM_INTERVAL_SECONDS", "0"))
	if err != nil || warm < 0 {
		return nil, fmt.Errorf("invalid CACHE_WARM_INTERVAL_SECONDS: %q", os.Getenv("CACHE_WARM_INTERVAL_SECONDS"))
	}
	cfg.CacheWarmInterval = time.Duration(warm) * time.Second

	cfg.RateLimitRPS, err = strconv.ParseFloat(getenv("RATE_LIMIT_RPS", "0"), 64)
	if err != nil || cfg.RateLimitRPS < 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %q", os.Getenv("RATE_LIMIT_RPS"))
	}

	cfg.RateLimitBurst, err = strconv.Atoi(getenv("RATE_LIMIT_BURST", "5"))
	if err != nil || cfg.RateLimitBurst < 1 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %q", os.Getenv("RATE_LIMIT_BURST"))
	}

	cfg.SeedOnStart, err = strconv.ParseBool(getenv("SEED_ON_START", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_ON_START: %q", os.Getenv("SEED_ON_START"))
	}

	for _, origin := range strings.Split(getenv("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.LookupBackend {
	case BackendGorm, BackendSQLX:
	default:
		return fmt.Errorf("unsupported LOOKUP_BACKEND %q", c.LookupBackend)
	}

	switch c.CacheDriver {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("unsupported CACHE_DRIVER %q", c.CacheDriver)
	}

	if c.DBDriver == DriverPostgres && (c.PGUser == "" || c.PGDB == "") {
		return fmt.Errorf("PG_USER and PG_DB are required when DB_DRIVER=postgres")
	}
	return nil
}

// PostgresDSN builds the connection string used by both gorm and sqlx.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDB)
}

// RedisAddr returns host:port for the redis client.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
