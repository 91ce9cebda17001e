package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	DB        DBConfig
	Redis     RedisConfig
	AMQP      AMQPConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Booking   BookingConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port            string        `envconfig:"PORT" required:"true"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// memory is meant for local demos; every restart loses state.
type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"postgres"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
	// Upper bound for waiting on a professional row lock.
	LockTimeout time.Duration `envconfig:"DB_LOCK_TIMEOUT" default:"3s"`
}

// Empty Addr disables the snapshot cache.
type RedisConfig struct {
	Addr        string        `envconfig:"REDIS_ADDR"`
	Password    string        `envconfig:"REDIS_PASSWORD"`
	DB          int           `envconfig:"REDIS_DB" default:"0"`
	SnapshotTTL time.Duration `envconfig:"REDIS_SNAPSHOT_TTL" default:"24h"`
}

// Empty URL falls back to the log-only payout gateway.
type AMQPConfig struct {
	URL      string `envconfig:"AMQP_URL"`
	Exchange string `envconfig:"AMQP_EXCHANGE" default:"salon.payouts"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Retry-After,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// Tokens are issued by the external identity provider; only the shared
// secret is needed here.
type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
	Issuer string `envconfig:"JWT_ISSUER"`
}

type BookingConfig struct {
	Timeout        time.Duration `envconfig:"BOOKING_TIMEOUT" default:"5s"`
	IdempotencyTTL time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`
	// How far NextAvailable searches before giving up.
	SearchHorizon time.Duration `envconfig:"BOOKING_SEARCH_HORIZON" default:"336h"`
}

type RateLimitConfig struct {
	PublicPerMinute int `envconfig:"PUBLIC_RATE_PER_MIN" default:"30"`
	PublicBurst     int `envconfig:"PUBLIC_RATE_BURST" default:"10"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if cfg.Store.Driver != StoreDriverPostgres && cfg.Store.Driver != StoreDriverMemory {
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
	if cfg.Store.Driver == StoreDriverPostgres && (cfg.DB.User == "" || cfg.DB.DBName == "") {
		return Config{}, fmt.Errorf("DB_USER and DB_NAME are required for the postgres store")
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8889", // Test port
			ShutdownTimeout: 5 * time.Second,
		},
		Store: StoreConfig{Driver: StoreDriverMemory},
		DB: DBConfig{
			Host:        "localhost",
			Port:        "15433", // Test DB port
			User:        "test",
			Password:    "test",
			DBName:      "test_db",
			SSLMode:     "disable",
			TimeZone:    "UTC",
			MaxConns:    10,
			LockTimeout: 2 * time.Second,
		},
		AMQP: AMQPConfig{Exchange: "salon.payouts"},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret: "test-secret",
		},
		Booking: BookingConfig{
			Timeout:        2 * time.Second,
			IdempotencyTTL: time.Hour,
			SearchHorizon:  14 * 24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			PublicPerMinute: 600,
			PublicBurst:     100,
		},
	}
}
