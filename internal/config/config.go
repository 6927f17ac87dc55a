package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DBMaxOpenConns int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns int    `mapstructure:"DB_MAX_IDLE_CONNS"`
	MigrateOnStart bool   `mapstructure:"MIGRATE_ON_START"`

	RedisURL string `mapstructure:"REDIS_URL"`

	JWTSecret        string        `mapstructure:"JWT_SECRET"`
	JWTAccessExpiry  time.Duration `mapstructure:"JWT_ACCESS_EXPIRY"`
	JWTRefreshExpiry time.Duration `mapstructure:"JWT_REFRESH_EXPIRY"`

	MinIOEndpoint       string `mapstructure:"MINIO_ENDPOINT"`
	MinIOPublicEndpoint string `mapstructure:"MINIO_PUBLIC_ENDPOINT"`
	MinIOAccessKey      string `mapstructure:"MINIO_ACCESS_KEY"`
	MinIOSecretKey      string `mapstructure:"MINIO_SECRET_KEY"`
	MinIOBucket         string `mapstructure:"MINIO_BUCKET"`
	MinIOUseSSL         bool   `mapstructure:"MINIO_USE_SSL"`
	MinIOPublicUseSSL   bool   `mapstructure:"MINIO_PUBLIC_USE_SSL"`

	CORSOrigins string `mapstructure:"CORS_ORIGINS"`

	ResendAPIKey string `mapstructure:"RESEND_API_KEY"`
	FromEmail    string `mapstructure:"FROM_EMAIL"`
	Domain       string `mapstructure:"DOMAIN"`

	CatalogPreviewSize int           `mapstructure:"CATALOG_PREVIEW_SIZE"`
	SearchCacheTTL     time.Duration `mapstructure:"SEARCH_CACHE_TTL"`
	DefaultLocale      string        `mapstructure:"DEFAULT_LOCALE"`
}

var defaults = map[string]interface{}{
	"PORT":        "8080",
	"ENVIRONMENT": "development",
	"LOG_LEVEL":   "info",

	"DATABASE_URL":      "",
	"DB_MAX_OPEN_CONNS": 25,
	"DB_MAX_IDLE_CONNS": 5,
	"MIGRATE_ON_START":  true,

	"REDIS_URL": "redis://localhost:6379",

	"JWT_SECRET":         "",
	"JWT_ACCESS_EXPIRY":  15 * time.Minute,
	"JWT_REFRESH_EXPIRY": 7 * 24 * time.Hour,

	"MINIO_ENDPOINT":        "localhost:9000",
	"MINIO_PUBLIC_ENDPOINT": "",
	"MINIO_ACCESS_KEY":      "minioadmin",
	"MINIO_SECRET_KEY":      "minioadmin",
	"MINIO_BUCKET":          "annonsplats-avatars",
	"MINIO_USE_SSL":         false,
	"MINIO_PUBLIC_USE_SSL":  true,

	"CORS_ORIGINS": "http://localhost:3000",

	"RESEND_API_KEY": "",
	"FROM_EMAIL":     "noreply@example.com",
	"DOMAIN":         "localhost:3000",

	"CATALOG_PREVIEW_SIZE": 5,
	"SEARCH_CACHE_TTL":     2 * time.Minute,
	"DEFAULT_LOCALE":       "en",
}

// Load reads configuration from the environment and an optional config.yaml
// in the working directory or ./configs. Environment variables win.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.MinIOPublicEndpoint == "" {
		cfg.MinIOPublicEndpoint = cfg.MinIOEndpoint
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.CatalogPreviewSize < 1 {
		c.CatalogPreviewSize = 5
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
