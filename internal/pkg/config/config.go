package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timeouts, standard settings)
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Payment  PaymentConfig
	Shipping ShippingConfig
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
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type PaymentConfig struct {
	// Mode "fake" approves card captures locally; anything else goes through
	// the Stripe-style HTTP gateway at BaseURL.
	Mode      string        `envconfig:"PAYMENT_MODE" default:"fake"`
	BaseURL   string        `envconfig:"PAYMENT_BASE_URL" default:"https://api.stripe.com"`
	SecretKey string        `envconfig:"PAYMENT_SECRET_KEY" default:""`
	Timeout   time.Duration `envconfig:"PAYMENT_TIMEOUT" default:"10s"`
}

type ShippingConfig struct {
	CEPBaseURL      string        `envconfig:"SHIPPING_CEP_BASE_URL" default:"https://viacep.com.br"`
	GeocodeBaseURL  string        `envconfig:"SHIPPING_GEOCODE_BASE_URL" default:"https://nominatim.openstreetmap.org"`
	Timeout         time.Duration `envconfig:"SHIPPING_TIMEOUT" default:"8s"`
	BaseFeeCents    int64         `envconfig:"SHIPPING_BASE_FEE_CENTS" default:"990"`
	PerKmRateCents  int64         `envconfig:"SHIPPING_PER_KM_RATE_CENTS" default:"250"`
	FreeRadiusKm    float64       `envconfig:"SHIPPING_FREE_RADIUS_KM" default:"5"`
	GeocodeUserTag  string        `envconfig:"SHIPPING_GEOCODE_USER_TAG" default:"shophub-app"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
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
		},
		Log: LogConfig{
			Level: "error", // Error level only for tests
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Payment: PaymentConfig{
			Mode:    "fake",
			Timeout: 2 * time.Second,
		},
		Shipping: ShippingConfig{
			Timeout:        2 * time.Second,
			BaseFeeCents:   990,
			PerKmRateCents: 250,
			FreeRadiusKm:   5,
			GeocodeUserTag: "shophub-test",
		},
	}
}
