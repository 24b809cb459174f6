package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/nicheroot/wizard-backend/internal/entity"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Model backend configuration
	LLMCfg LLMConfig `envPrefix:"LLM_"`

	// Ephemeral store configuration
	StoreCfg StoreConfig `envPrefix:"STORE_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// Dimension catalog (loaded from JSON file)
	Dimensions []entity.Dimension

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (optional, only the telegram-bot binary reads it)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// LLMConfig holds the model backend settings. The API key is the one secret
// of the system and is never echoed back in responses or logs.
type LLMConfig struct {
	APIKey  string `env:"API_KEY,notEmpty"`
	BaseURL string `env:"BASE_URL"`

	QuestionModel  string  `env:"QUESTION_MODEL" envDefault:"gpt-4o-mini"`
	BlueprintModel string  `env:"BLUEPRINT_MODEL" envDefault:"gpt-4.1-mini"`
	Temperature    float32 `env:"TEMPERATURE" envDefault:"0.55"`

	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
}

// StoreConfig holds TTLs for the in-memory session and blueprint stores.
// There is no durable persistence: a process restart drops all sessions,
// mirroring the ephemeral browser storage this backend replaces.
type StoreConfig struct {
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	BlueprintTTL    time.Duration `env:"BLUEPRINT_TTL" envDefault:"24h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN,notEmpty"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT" envDefault:"30"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int    `env:"RATE_LIMIT_BURST" envDefault:"5"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
}

// dimensionCatalog represents the structure of dimensions.json
type dimensionCatalog struct {
	Dimensions []entity.Dimension `json:"dimensions"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Load the dimension catalog from JSON file
	if err := loadDimensions(cfg); err != nil {
		return nil, fmt.Errorf("load dimensions: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.LLMCfg.Temperature < 0 || cfg.LLMCfg.Temperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2, got %v", cfg.LLMCfg.Temperature)
	}

	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		return fmt.Errorf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute)
	}

	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		return fmt.Errorf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout)
	}

	return nil
}

// defaultDimensions is the compiled-in catalog, used when dimensions.json
// is absent. The order is the interview order.
var defaultDimensions = []entity.Dimension{
	{ID: "lifestyle_pace", Label: "Business pace and lifestyle alignment"},
	{ID: "skills_vs_capital", Label: "Skill-driven vs capital-driven approach"},
	{ID: "involvement_level", Label: "Active involvement vs strategic oversight"},
	{ID: "digital_vs_physical", Label: "Digital-first vs physical/local business"},
	{ID: "risk_profile", Label: "Innovative vs proven business model"},
	{ID: "solo_vs_social", Label: "Solo work vs client-facing work"},
}

func loadDimensions(cfg *Config) error {
	catalogPath := filepath.Join("internal", "config", "dimensions.json")

	if _, err := os.Stat(catalogPath); os.IsNotExist(err) {
		fmt.Printf("Warning: dimension catalog not found at %s, using default catalog\n", catalogPath)
		cfg.Dimensions = defaultDimensions
		return nil
	}

	data, err := os.ReadFile(catalogPath)
	if err != nil {
		return fmt.Errorf("read dimension catalog: %w", err)
	}

	var catalog dimensionCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return fmt.Errorf("parse dimension catalog JSON: %w", err)
	}

	if len(catalog.Dimensions) != entity.MaxSteps {
		return fmt.Errorf("dimension catalog must contain exactly %d dimensions, got %d", entity.MaxSteps, len(catalog.Dimensions))
	}

	cfg.Dimensions = catalog.Dimensions

	fmt.Printf("Loaded %d dimensions from %s\n", len(cfg.Dimensions), catalogPath)
	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
