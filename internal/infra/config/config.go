package config

import (
	"fmt"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	RecordStorePostgREST = "postgrest"
	RecordStorePostgres  = "postgres"

	ChatPlatformDiscord  = "discord"
	ChatPlatformTelegram = "telegram"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Timezone decides what "today" means. It is never the host's local zone.
	Timezone       string        `envconfig:"TIMEZONE" default:"America/Chicago"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"20s"`
	Schedule       string        `envconfig:"SCHEDULE"` // empty: run once and exit

	RecordStore            string `envconfig:"RECORD_STORE" default:"postgrest"`
	SupabaseURL            string `envconfig:"SUPABASE_URL"`
	SupabaseServiceRoleKey string `envconfig:"SUPABASE_SERVICE_ROLE_KEY"`
	DatabaseURL            string `envconfig:"DATABASE_URL"`

	ChatPlatform      string  `envconfig:"CHAT_PLATFORM" default:"discord"`
	DiscordBotToken   string  `envconfig:"DISCORD_BOT_TOKEN"`
	DiscordAPIBase    string  `envconfig:"DISCORD_API_BASE" default:"https://discord.com/api/v9"`
	DiscordPublicKey  string  `envconfig:"DISCORD_PUBLIC_KEY"`
	TelegramToken     string  `envconfig:"TELEGRAM_TOKEN"`
	TelegramAPIURL    string  `envconfig:"TELEGRAM_API_URL" default:"https://api.telegram.org"`
	TelegramRateLimit float64 `envconfig:"TELEGRAM_RATE_LIMIT" default:"25"` // messages per second

	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`
}

// Load reads configuration from environment variables and .env file (if present).
// Required secrets are checked separately by ValidateJob and ValidateInteractions
// since each binary needs a different set.
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.Environment = strings.ToLower(cfg.Environment)
	cfg.RecordStore = strings.ToLower(cfg.RecordStore)
	cfg.ChatPlatform = strings.ToLower(cfg.ChatPlatform)
	cfg.SupabaseURL = strings.TrimRight(cfg.SupabaseURL, "/")

	// time.LoadLocation("") is UTC, which would silently move "today".
	if cfg.Timezone == "" {
		return nil, fmt.Errorf("TIMEZONE must not be empty")
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}

	return cfg, nil
}

// Location returns the fixed timezone of the job. Load has already validated it.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ValidateJob checks the secrets of the reminder job: the bot credential first,
// then the record store.
func (c *AppConfig) ValidateJob() error {
	switch c.ChatPlatform {
	case ChatPlatformDiscord:
		if c.DiscordBotToken == "" {
			return requiredError("DISCORD_BOT_TOKEN")
		}
	case ChatPlatformTelegram:
		if c.TelegramToken == "" {
			return requiredError("TELEGRAM_TOKEN")
		}
	default:
		return fmt.Errorf("unsupported CHAT_PLATFORM %q", c.ChatPlatform)
	}
	return c.validateStore()
}

// ValidateInteractions checks the secrets of the interactions endpoint.
func (c *AppConfig) ValidateInteractions() error {
	if c.DiscordPublicKey == "" {
		return requiredError("DISCORD_PUBLIC_KEY")
	}
	return c.validateStore()
}

func (c *AppConfig) validateStore() error {
	switch c.RecordStore {
	case RecordStorePostgREST:
		if c.SupabaseURL == "" {
			return requiredError("SUPABASE_URL")
		}
		if c.SupabaseServiceRoleKey == "" {
			return requiredError("SUPABASE_SERVICE_ROLE_KEY")
		}
	case RecordStorePostgres:
		if c.DatabaseURL == "" {
			return requiredError("DATABASE_URL")
		}
	default:
		return fmt.Errorf("unsupported RECORD_STORE %q", c.RecordStore)
	}
	return nil
}

func requiredError(name string) error {
	return fmt.Errorf("%s is required", name)
}
