package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"menu-api/internal/logger"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Address     string `env:"ADDRESS" envDefault:":8080"`
	GinMode     string `env:"GIN_MODE" envDefault:"release"`
	StoreDriver string `env:"STORE_DRIVER" envDefault:"mongo"`
	MongoURI    string `env:"MONGO_URI"`
	DBName      string `env:"DB_NAME" envDefault:"menu"`

	JWTSecret string        `env:"JWT_SECRET,required"`
	JWTExpire time.Duration `env:"JWT_EXPIRE" envDefault:"24h"`

	SuperAdminUsername string `env:"SUPER_ADMIN_USERNAME,required"`
	SuperAdminPassword string `env:"SUPER_ADMIN_PASSWORD,required"`

	RedisURL string        `env:"REDIS_URL"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	Log logger.Config
}

// Load reads .env when present and parses the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Println(".env not loaded:", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	// PORT wins over ADDRESS, as on most PaaS hosts.
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Address = ":" + port
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreMongo:
		if strings.TrimSpace(c.MongoURI) == "" {
			return errors.New("MONGO_URI is required when STORE_DRIVER=mongo")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if strings.TrimSpace(c.SuperAdminUsername) == "" || c.SuperAdminPassword == "" {
		return errors.New("SUPER_ADMIN_USERNAME and SUPER_ADMIN_PASSWORD must not be empty")
	}
	if c.JWTExpire <= 0 {
		return errors.New("JWT_EXPIRE must be positive")
	}
	return nil
}
