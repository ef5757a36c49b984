package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerAddr    string   `env:"SERVER_ADDR" envDefault:":8080"`
	GinMode       string   `env:"GIN_MODE" envDefault:"debug"`
	DBDriver      string   `env:"DB_DRIVER" envDefault:"sqlite"`
	DBPath        string   `env:"DB_PATH" envDefault:"dashboard.db"`
	DBHost        string   `env:"DB_HOST" envDefault:"localhost"`
	DBPort        string   `env:"DB_PORT" envDefault:"3306"`
	DBUser        string   `env:"DB_USER" envDefault:"dashboard"`
	DBPassword    string   `env:"DB_PASSWORD" envDefault:"dashboard"`
	DBName        string   `env:"DB_NAME" envDefault:"agile_dashboard"`
	RedisAddr     string   `env:"REDIS_ADDR"` // empty = cookie-backed sessions
	SessionSecret string   `env:"SESSION_SECRET" envDefault:"default-secret-key-change-me"`
	CORSOrigins   []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	LoginRate     float64  `env:"LOGIN_RATE_PER_SECOND" envDefault:"1"`
	LoginBurst    int      `env:"LOGIN_BURST" envDefault:"5"`
}

// Load reads configuration from environment variables. A .env file is
// optional and only used for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
