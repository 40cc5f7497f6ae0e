package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection,
//   gateway credentials), security settings
// - default: Values common across all environments (timeouts, intervals)
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Gateway  GatewayConfig
	Checkout CheckoutConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"America/Sao_Paulo"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone   string `envconfig:"LOG_TIMEZONE" default:"America/Sao_Paulo"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// GatewayConfig carries the platform's own PSP credential plus the webhook
// secrets used to verify inbound payment notifications per provider.
type GatewayConfig struct {
	BaseURL                string        `envconfig:"GATEWAY_BASE_URL" default:"https://api.pagar.me/core/v5"`
	PlatformAPIKey         string        `envconfig:"GATEWAY_PLATFORM_API_KEY" required:"true"`
	RequestTimeout         time.Duration `envconfig:"GATEWAY_REQUEST_TIMEOUT" default:"10s"`
	PlatformWebhookSecret  string        `envconfig:"GATEWAY_PLATFORM_WEBHOOK_SECRET" required:"true"`
	OrganizerWebhookSecret string        `envconfig:"GATEWAY_ORGANIZER_WEBHOOK_SECRET" required:"true"`
	PixExpirationSeconds   int           `envconfig:"GATEWAY_PIX_EXPIRATION_SECONDS" default:"1800"`
}

type CheckoutConfig struct {
	ReservationTTL time.Duration `envconfig:"CHECKOUT_RESERVATION_TTL" default:"30m"`
}

type WorkerConfig struct {
	SweepInterval   time.Duration `envconfig:"WORKER_SWEEP_INTERVAL" default:"1m"`
	SweepBatchSize  int           `envconfig:"WORKER_SWEEP_BATCH_SIZE" default:"100"`
	NotifyInterval  time.Duration `envconfig:"WORKER_NOTIFY_INTERVAL" default:"5s"`
	NotifyBatchSize int           `envconfig:"WORKER_NOTIFY_BATCH_SIZE" default:"50"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	// Missing .env is fine; real environments inject variables directly.
	_ = godotenv.Load()

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "America/Sao_Paulo",
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "America/Sao_Paulo",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "24h",
		},
		Gateway: GatewayConfig{
			BaseURL:                "http://localhost:18089",
			PlatformAPIKey:         "sk_test_platform",
			RequestTimeout:         2 * time.Second,
			PlatformWebhookSecret:  "whsec_platform_test",
			OrganizerWebhookSecret: "whsec_organizer_test",
			PixExpirationSeconds:   1800,
		},
		Checkout: CheckoutConfig{
			ReservationTTL: 30 * time.Minute,
		},
		Worker: WorkerConfig{
			SweepInterval:   time.Second,
			SweepBatchSize:  100,
			NotifyInterval:  time.Second,
			NotifyBatchSize: 50,
		},
	}
}
