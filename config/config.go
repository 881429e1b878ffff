package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Optimizer OptimizerConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig holds Postgres connection settings
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN builds the Postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per second per client IP
	Burst int `mapstructure:"burst"`
}

// OptimizerConfig holds the diet model constants
type OptimizerConfig struct {
	MinProducts     int     `mapstructure:"min_products"`
	MinPortionGrams float64 `mapstructure:"min_portion_grams"`
	MaxPortionGrams float64 `mapstructure:"max_portion_grams"`
	MaxSolverNodes  int     `mapstructure:"max_solver_nodes"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/nutrimize/")

	// Environment variable settings (NUTRIMIZE_SERVER_PORT -> server.port)
	v.SetEnvPrefix("NUTRIMIZE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "nutrimize")
	v.SetDefault("database.name", "nutrimize")
	v.SetDefault("database.sslmode", "disable")

	// Cache defaults (global catalog snapshot)
	v.SetDefault("cache.ttl", "5m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 10)
	v.SetDefault("ratelimit.burst", 20)

	// Optimizer defaults. The diversity floor is 10 distinct products.
	v.SetDefault("optimizer.min_products", 10)
	v.SetDefault("optimizer.min_portion_grams", 50)
	v.SetDefault("optimizer.max_portion_grams", 400)
	v.SetDefault("optimizer.max_solver_nodes", 100000)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Database.Name == "" {
		return fmt.Errorf("database name is required (set NUTRIMIZE_DATABASE_NAME)")
	}

	if config.Optimizer.MinProducts < 1 {
		return fmt.Errorf("optimizer.min_products must be at least 1, got: %d", config.Optimizer.MinProducts)
	}

	if config.Optimizer.MinPortionGrams <= 0 || config.Optimizer.MaxPortionGrams <= 0 {
		return fmt.Errorf("optimizer portion bounds must be positive")
	}

	if config.Optimizer.MinPortionGrams >= config.Optimizer.MaxPortionGrams {
		return fmt.Errorf("optimizer.min_portion_grams (%v) must be below optimizer.max_portion_grams (%v)",
			config.Optimizer.MinPortionGrams, config.Optimizer.MaxPortionGrams)
	}

	return nil
}
