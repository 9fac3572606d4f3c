package config

import (
	"errors"
	"fmt"
	"os"

	"hostelhunt/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Backup     BackupConfig     `yaml:"backup"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
	API        APIConfig        `yaml:"api"`
	Catalog    CatalogConfig    `yaml:"catalog"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type APIConfig struct {
	HTTP         APIHTTPConfig      `yaml:"http"`
	RateLimit    APIRateLimitConfig `yaml:"rate_limit"`
	ClientCookie string             `yaml:"client_cookie"`
	// EnforceRoles gates owner and admin endpoints on the session role.
	EnforceRoles bool `yaml:"enforce_roles"`
}

type APIHTTPConfig struct {
	Port int `yaml:"port"`
}

type APIRateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
	// StateTTL is the lifetime of client slots in seconds.
	StateTTL int `yaml:"state_ttl"`
	// ConnectAttempts bounds startup retries before falling back to memory.
	ConnectAttempts int `yaml:"connect_attempts"`
}

type BackupConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Schedule      string `yaml:"schedule"`
	RetentionDays int    `yaml:"retention_days"`
	StoragePath   string `yaml:"storage_path"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type CatalogConfig struct {
	FallbackOwnerEmail string        `yaml:"fallback_owner_email"`
	Pricing            PricingConfig `yaml:"pricing"`
}

// PricingConfig describes how a hostel price is derived from its room count.
type PricingConfig struct {
	Base      float64 `yaml:"base"`
	PerRoom   float64 `yaml:"per_room"`
	FlatPrice float64 `yaml:"flat_price"`
}

func Load(configPath string) (*Config, error) {
	// .env is optional
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Предварительная замена переменных окружения в YAML
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("database path is required")
	}

	if c.Catalog.FallbackOwnerEmail == "" {
		return errors.New("catalog fallback owner email is required")
	}

	return ValidatePricing(c.Catalog.Pricing)
}

func ValidatePricing(p PricingConfig) error {
	if p.Base < 0 || p.PerRoom < 0 || p.FlatPrice < 0 {
		return fmt.Errorf("pricing values must not be negative: base=%v per_room=%v flat_price=%v", p.Base, p.PerRoom, p.FlatPrice)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "hostelhunt"
	}
	if c.API.HTTP.Port == 0 {
		c.API.HTTP.Port = 8080
	}
	if c.API.ClientCookie == "" {
		c.API.ClientCookie = "hh_client"
	}
	if c.API.RateLimit.RPS == 0 {
		c.API.RateLimit.RPS = models.RateLimitRPS
	}
	if c.API.RateLimit.Burst == 0 {
		c.API.RateLimit.Burst = models.RateLimitBurst
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.Redis.StateTTL == 0 {
		c.Redis.StateTTL = models.DefaultStateTTL
	}
	if c.Redis.ConnectAttempts == 0 {
		c.Redis.ConnectAttempts = 3
	}

	// Catalog defaults
	if c.Catalog.FallbackOwnerEmail == "" {
		c.Catalog.FallbackOwnerEmail = models.DefaultFallbackOwnerEmail
	}
	if c.Catalog.Pricing.Base == 0 {
		c.Catalog.Pricing.Base = models.DefaultBasePrice
	}
	if c.Catalog.Pricing.PerRoom == 0 {
		c.Catalog.Pricing.PerRoom = models.DefaultPricePerRoom
	}
	if c.Catalog.Pricing.FlatPrice == 0 {
		c.Catalog.Pricing.FlatPrice = models.DefaultFlatPrice
	}
}
