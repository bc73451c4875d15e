// Package config loads and validates the pipeline configuration from
// environment variables (FX_ prefix) with an optional YAML file overlay, and
// resolves the per-stage snapshot paths.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Provider ProviderConfig `yaml:"provider" envconfig:"PROVIDER"`
	Engine   EngineConfig   `yaml:"engine" envconfig:"ENGINE"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
}

// ProviderConfig configures the market-data terminal adapter.
type ProviderConfig struct {
	BaseURL      string        `yaml:"base_url" envconfig:"BASE_URL" validate:"required,url"`
	Timeout      time.Duration `yaml:"timeout" envconfig:"TIMEOUT" validate:"gt=0"`
	RateLimitRPS float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" validate:"gt=0"`
	RateBurst    int           `yaml:"rate_burst" envconfig:"RATE_BURST" validate:"gt=0"`
	SkipPull     bool          `yaml:"skip_pull" envconfig:"SKIP_PULL"`
}

// EngineConfig configures the return computation.
type EngineConfig struct {
	// EndDate is the inclusive cutoff applied to the merged panel,
	// formatted 2006-01-02. Empty disables truncation.
	EndDate string `yaml:"end_date" envconfig:"END_DATE" validate:"omitempty,datetime=2006-01-02"`
	// Strict fails the calc stage when a canonical currency column is
	// missing after normalization instead of letting the gap flow through.
	Strict bool `yaml:"strict" envconfig:"STRICT"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration.
type PathsConfig struct {
	DataDir   string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
}

// ServerConfig contains HTTP server configuration for the web surface.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Provider: ProviderConfig{
			BaseURL:      "http://localhost:9600",
			Timeout:      30 * time.Second,
			RateLimitRPS: 5,
			RateBurst:    5,
		},
		Engine: EngineConfig{
			EndDate: "",
			Strict:  true,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stdout",
			FilePath: "logs/fxreturns.log",
		},
		Paths: PathsConfig{
			DataDir:   "_data",
			OutputDir: "_output",
		},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// FX_CONFIG_FILE (if set and present), then environment variables, then
// validation.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("FX_CONFIG_FILE"); path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process("FX", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// EndDate parses the configured cutoff. A zero time means no truncation.
func (c *Config) EndDate() (time.Time, error) {
	if c.Engine.EndDate == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", c.Engine.EndDate)
}

// ResolvePaths builds the Paths helper from the configured directories.
func (c *Config) ResolvePaths() *Paths {
	return NewPaths(c.Paths.DataDir, c.Paths.OutputDir)
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
