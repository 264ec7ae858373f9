package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Engine  EngineConfig  `yaml:"engine" envconfig:"ENGINE"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"json"`
}

// EngineConfig contains report engine defaults.
type EngineConfig struct {
	LowStockThreshold float64 `yaml:"low_stock_threshold" envconfig:"LOW_STOCK_THRESHOLD" default:"100"`
	TopN              int     `yaml:"top_n" envconfig:"TOP_N" default:"10"`
}

// PathsConfig locates the three table sources and the report output
// directory. Source files may be CSV dumps or SQLite database files; the
// loader picks the reader from the extension.
type PathsConfig struct {
	DataDir       string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ReportsDir    string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports"`
	CustomersFile string `yaml:"customers_file" envconfig:"CUSTOMERS_FILE" default:"CUSTOMERS.csv"`
	InventoryFile string `yaml:"inventory_file" envconfig:"INVENTORY_FILE" default:"INVENTORY.csv"`
	SalesFile     string `yaml:"sales_file" envconfig:"SALES_FILE" default:"SALES.csv"`
}

// CustomersPath returns the full path of the customers source.
func (p PathsConfig) CustomersPath() string {
	return filepath.Join(p.DataDir, p.CustomersFile)
}

// InventoryPath returns the full path of the inventory source.
func (p PathsConfig) InventoryPath() string {
	return filepath.Join(p.DataDir, p.InventoryFile)
}

// SalesPath returns the full path of the sales source.
func (p PathsConfig) SalesPath() string {
	return filepath.Join(p.DataDir, p.SalesFile)
}

// ReportPath returns the full path of a report output file.
func (p PathsConfig) ReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// Load loads configuration from environment variables layered over an
// optional YAML config file.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fileCfg, err := loadFromFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
			cfg = *fileCfg
		}
	}

	// Environment variables win over the file; envconfig also fills
	// defaults for everything still unset.
	if err := envconfig.Process("RETAIL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Engine.TopN < 1 {
		return fmt.Errorf("invalid top_n: %d", c.Engine.TopN)
	}
	if c.Engine.LowStockThreshold < 0 {
		return fmt.Errorf("invalid low_stock_threshold: %g", c.Engine.LowStockThreshold)
	}
	if c.Paths.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid logging format: %q", c.Logging.Format)
	}
	return nil
}
