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
	Server     ServerConfig
	DB         DBConfig
	CORS       CORSConfig
	Log        LogConfig
	JWT        JWTConfig
	Compliance ComplianceConfig
	Booking    BookingConfig
	Outbox     OutboxConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	// postgres or memory
	Driver   string `envconfig:"STORAGE_DRIVER" default:"postgres"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Location"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Riyadh"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"10800"` // 3*60*60
}

// JWTConfig verifies bearer tokens issued by the identity service.
type JWTConfig struct {
	Secret string        `envconfig:"JWT_SECRET" required:"true"`
	Issuer string        `envconfig:"JWT_ISSUER" default:""`
	TTL    time.Duration `envconfig:"JWT_TTL" default:"1h"`
}

type ComplianceConfig struct {
	// http or static
	Mode    string        `envconfig:"COMPLIANCE_MODE" default:"http"`
	BaseURL string        `envconfig:"COMPLIANCE_BASE_URL" default:"http://localhost:8090"`
	Timeout time.Duration `envconfig:"COMPLIANCE_TIMEOUT" default:"3s"`
}

type BookingConfig struct {
	GeofenceRadiusKm      float64 `envconfig:"GEOFENCE_RADIUS_KM" default:"0.5"`
	FareBase              float64 `envconfig:"FARE_BASE" default:"150"`
	FarePerKm             float64 `envconfig:"FARE_PER_KM" default:"2.5"`
	RatePerKm             float64 `envconfig:"RATE_PER_KM" default:"1.2"`
	ImbalanceThresholdPct float64 `envconfig:"IMBALANCE_THRESHOLD_PCT" default:"30"`
}

type OutboxConfig struct {
	PollInterval time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"1s"`
	BatchSize    int           `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`
	MaxAttempts  int           `envconfig:"OUTBOX_MAX_ATTEMPTS" default:"10"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c *DBConfig) UseMemory() bool {
	return c.Driver == "memory"
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if !cfg.DB.UseMemory() && (cfg.DB.User == "" || cfg.DB.DBName == "") {
		return Config{}, fmt.Errorf("DB_USER and DB_NAME are required when STORAGE_DRIVER=%s", cfg.DB.Driver)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Driver:   "postgres",
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 5,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Riyadh",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 10800,
		},
		JWT: JWTConfig{
			Secret: "test-secret",
			TTL:    time.Hour,
		},
		Compliance: ComplianceConfig{
			Mode:    "static",
			Timeout: 3 * time.Second,
		},
		Booking: BookingConfig{
			GeofenceRadiusKm:      0.5,
			FareBase:              150,
			FarePerKm:             2.5,
			RatePerKm:             1.2,
			ImbalanceThresholdPct: 30,
		},
		Outbox: OutboxConfig{
			PollInterval: time.Second,
			BatchSize:    100,
			MaxAttempts:  10,
		},
	}
}
