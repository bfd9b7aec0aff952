package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// MaxSearchPages is the hard ceiling on catalog pages read per question.
const MaxSearchPages = 5

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Listings ListingsConfig `yaml:"listings"`
	Search   SearchConfig   `yaml:"search"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int    `yaml:"port"`
	Host           string `yaml:"host"`
	GinMode        string `yaml:"gin_mode"`
	AllowedOrigins string `yaml:"allowed_origins"`
}

// ListingsConfig holds the upstream catalog API configuration
type ListingsConfig struct {
	BaseURL     string               `yaml:"base_url"`
	BearerToken string               `yaml:"bearer_token"`
	Cookie      string               `yaml:"cookie"`
	Timeout     time.Duration        `yaml:"timeout"`
	RateLimit   float64              `yaml:"rate_limit"` // requests per second, 0 disables
	RateBurst   int                  `yaml:"rate_burst"`
	Breaker     CircuitBreakerConfig `yaml:"circuit_breaker"`
}

// CircuitBreakerConfig holds circuit breaker settings for upstream calls
type CircuitBreakerConfig struct {
	MaxRequests      uint32        `yaml:"max_requests"`
	Interval         time.Duration `yaml:"interval"`
	Timeout          time.Duration `yaml:"timeout"`
	FailureThreshold uint32        `yaml:"failure_threshold"`
}

// SearchConfig holds search-related configuration
type SearchConfig struct {
	MaxPages    int `yaml:"max_pages"`
	PerPage     int `yaml:"per_page"`
	ResultLimit int `yaml:"result_limit"`
}

// OpenAIConfig holds OpenAI-compatible API configuration
type OpenAIConfig struct {
	APIKey          string        `yaml:"api_key"`
	APIBase         string        `yaml:"api_base"`
	ChatModel       string        `yaml:"chat_model"`
	ChatTemperature float64       `yaml:"chat_temperature"`
	Timeout         time.Duration `yaml:"timeout"`
	Enabled         bool          `yaml:"-"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing is set.
// The upstream bearer token has no default and must be provided.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           3000,
			Host:           "0.0.0.0",
			GinMode:        "release",
			AllowedOrigins: "*",
		},
		Listings: ListingsConfig{
			BaseURL:   "https://imobiliariadiamond.com.br/wp-json/imob/v1/imoveis",
			Timeout:   15 * time.Second,
			RateLimit: 5,
			RateBurst: 1,
			Breaker: CircuitBreakerConfig{
				MaxRequests:      1,
				Interval:         time.Minute,
				Timeout:          30 * time.Second,
				FailureThreshold: 5,
			},
		},
		Search: SearchConfig{
			MaxPages:    3,
			PerPage:     20,
			ResultLimit: 20,
		},
		OpenAI: OpenAIConfig{
			APIBase:         "https://api.openai.com/v1",
			ChatModel:       "gpt-4o-mini",
			ChatTemperature: 0.2,
			Timeout:         30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from an optional YAML file (CONFIG_FILE) and then
// from environment variables, which take precedence, and validates it.
func Load() (*Config, error) {
	cfg, err := Read(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read builds the configuration from defaults, the YAML file at path (if
// any) and the environment, without validating it.
func Read(path string) (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnvAsInt("PORT", getEnvAsInt("SERVER_PORT", cfg.Server.Port))
	cfg.Server.Host = getEnv("SERVER_HOST", cfg.Server.Host)
	cfg.Server.GinMode = getEnv("GIN_MODE", cfg.Server.GinMode)
	cfg.Server.AllowedOrigins = getEnv("CORS_ALLOWED_ORIGINS", cfg.Server.AllowedOrigins)

	cfg.Listings.BaseURL = getEnv("LISTINGS_API_URL", cfg.Listings.BaseURL)
	// BEARER_TOKEN and COOKIE are the names older deployments use
	cfg.Listings.BearerToken = getEnv("LISTINGS_API_TOKEN", getEnv("BEARER_TOKEN", cfg.Listings.BearerToken))
	cfg.Listings.Cookie = getEnv("LISTINGS_API_COOKIE", getEnv("COOKIE", cfg.Listings.Cookie))
	cfg.Listings.Timeout = getEnvAsDuration("LISTINGS_API_TIMEOUT", cfg.Listings.Timeout)
	cfg.Listings.RateLimit = getEnvAsFloat("LISTINGS_API_RATE_LIMIT", cfg.Listings.RateLimit)
	cfg.Listings.RateBurst = getEnvAsInt("LISTINGS_API_RATE_BURST", cfg.Listings.RateBurst)
	cfg.Listings.Breaker.FailureThreshold = uint32(getEnvAsInt("LISTINGS_CB_FAILURE_THRESHOLD", int(cfg.Listings.Breaker.FailureThreshold)))
	cfg.Listings.Breaker.Timeout = getEnvAsDuration("LISTINGS_CB_TIMEOUT", cfg.Listings.Breaker.Timeout)

	cfg.Search.MaxPages = getEnvAsInt("BUSCAR_MAX_PAGINAS", cfg.Search.MaxPages)
	cfg.Search.PerPage = getEnvAsInt("BUSCAR_POR_PAGINA", cfg.Search.PerPage)
	cfg.Search.ResultLimit = getEnvAsInt("SEARCH_RESULT_LIMIT", cfg.Search.ResultLimit)
	if cfg.Search.MaxPages > MaxSearchPages {
		cfg.Search.MaxPages = MaxSearchPages
	}

	cfg.OpenAI.APIKey = getEnv("OPENAI_API_KEY", cfg.OpenAI.APIKey)
	cfg.OpenAI.APIBase = getEnv("OPENAI_BASE_URL", getEnv("OPENAI_API_BASE", cfg.OpenAI.APIBase))
	cfg.OpenAI.ChatModel = getEnv("OPENAI_MODEL", cfg.OpenAI.ChatModel)
	cfg.OpenAI.ChatTemperature = getEnvAsFloat("OPENAI_CHAT_TEMPERATURE", cfg.OpenAI.ChatTemperature)
	cfg.OpenAI.Timeout = getEnvAsDuration("OPENAI_TIMEOUT", cfg.OpenAI.Timeout)
	cfg.OpenAI.Enabled = cfg.OpenAI.APIKey != ""

	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("LOG_FORMAT", cfg.Logging.Format)
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Listings.BaseURL == "" {
		errs = append(errs, errors.New("listings base URL is required (LISTINGS_API_URL)"))
	}
	if c.Listings.BearerToken == "" {
		errs = append(errs, errors.New("listings bearer token is required (LISTINGS_API_TOKEN)"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid server port %d", c.Server.Port))
	}
	if c.Search.MaxPages < 1 || c.Search.MaxPages > MaxSearchPages {
		errs = append(errs, fmt.Errorf("search max pages must be between 1 and %d, got %d", MaxSearchPages, c.Search.MaxPages))
	}
	if c.Search.PerPage < 1 || c.Search.PerPage > 100 {
		errs = append(errs, fmt.Errorf("search per page must be between 1 and 100, got %d", c.Search.PerPage))
	}
	if c.Search.ResultLimit < 1 {
		errs = append(errs, fmt.Errorf("search result limit must be positive, got %d", c.Search.ResultLimit))
	}
	if c.Listings.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("listings rate limit cannot be negative, got %v", c.Listings.RateLimit))
	}
	return errors.Join(errs...)
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	// Plain integers are seconds
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("Warning: Invalid duration value for %s, using default %s", key, defaultValue)
	return defaultValue
}
