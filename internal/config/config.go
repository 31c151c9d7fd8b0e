package config

import (
	"strings" // For splitting CORS origins
	"time"    // For token lifetime

	"github.com/joho/godotenv"             // For loading .env files
	"github.com/kelseyhightower/envconfig" // For decoding environment variables
	"github.com/pkg/errors"                // For wrapping errors
)

// Config holds the application configuration
type Config struct {
	AppPort    string        `envconfig:"APP_PORT" default:"4000"`          // Application port
	DBUser     string        `envconfig:"DB_USER" default:"root"`           // Database user
	DBPassword string        `envconfig:"DB_PASSWORD"`                      // Database password
	DBHost     string        `envconfig:"DB_HOST" default:"127.0.0.1"`      // Database host
	DBPort     string        `envconfig:"DB_PORT" default:"3306"`           // Database port
	DBName     string        `envconfig:"DB_NAME" default:"donation_system"` // Database name
	JWTSecret  string        `envconfig:"JWT_SECRET" required:"true"`       // JWT secret key
	TokenTTL   time.Duration `envconfig:"TOKEN_TTL" default:"24h"`          // Lifetime of issued tokens
	RedisAddr  string        `envconfig:"REDIS_ADDR"`                       // Redis server address, empty disables caching
	RedisPass  string        `envconfig:"REDIS_PASS"`                       // Redis password
	RedisDB    int           `envconfig:"REDIS_DB" default:"0"`             // Redis database number
	IsProd     bool          `envconfig:"IS_PROD" default:"false"`          // Is production environment
	BasePath   string        `envconfig:"BASE_PATH" default:"/api/v1"`      // Prefix of every API route
	CORSOrigin string        `envconfig:"CORS_ORIGINS" default:"*"`         // Comma separated allowed origins

	// Optional first foundation and admin, created by the migrate command
	BootstrapFoundation    string `envconfig:"BOOTSTRAP_FOUNDATION"`
	BootstrapAdminUser     string `envconfig:"BOOTSTRAP_ADMIN_USER"`
	BootstrapAdminPassword string `envconfig:"BOOTSTRAP_ADMIN_PASSWORD"`
}

// LoadConfig loads configuration from the environment, after applying a .env file if present
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if cfg.JWTSecret == "" { // envconfig accepts a set but empty variable
		return nil, errors.New("load config: JWT_SECRET must not be empty")
	}
	if !strings.HasPrefix(cfg.BasePath, "/") {
		cfg.BasePath = "/" + cfg.BasePath
	}
	cfg.BasePath = strings.TrimRight(cfg.BasePath, "/")
	return &cfg, nil
}

// DSN is the MySQL Data Source Name for the configured database
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName +
		"?charset=utf8mb4&parseTime=true&loc=UTC"
}

// CORSOrigins splits CORS_ORIGINS into its trimmed, non-empty entries
func (c *Config) CORSOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// HasBootstrap reports whether a bootstrap foundation and admin are configured
func (c *Config) HasBootstrap() bool {
	return c.BootstrapFoundation != "" && c.BootstrapAdminUser != "" && c.BootstrapAdminPassword != ""
}
