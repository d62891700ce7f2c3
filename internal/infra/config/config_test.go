package config_test

import (
	"os"
	"testing"
	"time"
	_ "time/tzdata"

	"birthday_reminder/internal/infra/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setEnv unsets every variable the loader reads, then applies vars. Unset, not empty:
// envconfig only falls back to a default when the variable is absent.
func setEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	for _, name := range []string{
		"LOG_LEVEL", "ENVIRONMENT", "TIMEZONE", "REQUEST_TIMEOUT", "SCHEDULE",
		"RECORD_STORE", "SUPABASE_URL", "SUPABASE_SERVICE_ROLE_KEY", "DATABASE_URL",
		"CHAT_PLATFORM", "DISCORD_BOT_TOKEN", "DISCORD_API_BASE", "TELEGRAM_RATE_LIMIT",
		"DISCORD_PUBLIC_KEY", "TELEGRAM_TOKEN", "TELEGRAM_API_URL", "LISTEN_ADDR",
	} {
		t.Setenv(name, "") // restores the original value on cleanup
		require.NoError(t, os.Unsetenv(name))
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

var jobEnv = map[string]string{
	"DISCORD_BOT_TOKEN":         "token",
	"SUPABASE_URL":              "https://example.supabase.co/",
	"SUPABASE_SERVICE_ROLE_KEY": "key",
}

func TestLoadDefaults(t *testing.T) {
	setEnv(t, jobEnv)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NoError(t, cfg.ValidateJob())

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "America/Chicago", cfg.Timezone)
	assert.Equal(t, 20*time.Second, cfg.RequestTimeout)
	assert.Equal(t, config.RecordStorePostgREST, cfg.RecordStore)
	assert.Equal(t, config.ChatPlatformDiscord, cfg.ChatPlatform)
	assert.Equal(t, "https://discord.com/api/v9", cfg.DiscordAPIBase)
	assert.Equal(t, 25.0, cfg.TelegramRateLimit)
	assert.Equal(t, "https://example.supabase.co", cfg.SupabaseURL)
	assert.Empty(t, cfg.Schedule)
	assert.Equal(t, "America/Chicago", cfg.Location().String())
}

func TestValidateJobReportsFirstMissingSecret(t *testing.T) {
	tests := []struct {
		name    string
		missing string
		wantErr string
	}{
		{name: "bot token", missing: "DISCORD_BOT_TOKEN", wantErr: "DISCORD_BOT_TOKEN is required"},
		{name: "store url", missing: "SUPABASE_URL", wantErr: "SUPABASE_URL is required"},
		{name: "store key", missing: "SUPABASE_SERVICE_ROLE_KEY", wantErr: "SUPABASE_SERVICE_ROLE_KEY is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := map[string]string{}
			for k, v := range jobEnv {
				if k != tt.missing {
					vars[k] = v
				}
			}
			setEnv(t, vars)

			cfg, err := config.Load()
			require.NoError(t, err)
			assert.EqualError(t, cfg.ValidateJob(), tt.wantErr)
		})
	}
}

func TestValidateJobBotTokenCheckedFirst(t *testing.T) {
	setEnv(t, nil)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.EqualError(t, cfg.ValidateJob(), "DISCORD_BOT_TOKEN is required")
}

func TestValidateJobAlternativeBackends(t *testing.T) {
	setEnv(t, map[string]string{
		"CHAT_PLATFORM": "Telegram",
		"RECORD_STORE":  "postgres",
	})
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.EqualError(t, cfg.ValidateJob(), "TELEGRAM_TOKEN is required")

	setEnv(t, map[string]string{
		"CHAT_PLATFORM":  "telegram",
		"TELEGRAM_TOKEN": "tg",
		"RECORD_STORE":   "postgres",
	})
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.EqualError(t, cfg.ValidateJob(), "DATABASE_URL is required")

	t.Setenv("DATABASE_URL", "postgres://localhost/birthdays")
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.NoError(t, cfg.ValidateJob())
}

func TestValidateJobUnknownPlatform(t *testing.T) {
	setEnv(t, map[string]string{"CHAT_PLATFORM": "irc"})
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Error(t, cfg.ValidateJob())
}

func TestValidateInteractions(t *testing.T) {
	setEnv(t, map[string]string{
		"SUPABASE_URL":              "https://example.supabase.co",
		"SUPABASE_SERVICE_ROLE_KEY": "key",
	})
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.EqualError(t, cfg.ValidateInteractions(), "DISCORD_PUBLIC_KEY is required")

	t.Setenv("DISCORD_PUBLIC_KEY", "abcd")
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.NoError(t, cfg.ValidateInteractions())
}

func TestLoadRejectsBadValues(t *testing.T) {
	setEnv(t, map[string]string{"TIMEZONE": "Mars/Olympus"})
	_, err := config.Load()
	assert.Error(t, err)

	setEnv(t, map[string]string{"REQUEST_TIMEOUT": "soon"})
	_, err = config.Load()
	assert.Error(t, err)

	setEnv(t, map[string]string{"REQUEST_TIMEOUT": "0s"})
	_, err = config.Load()
	assert.Error(t, err)

	// set but empty does not fall back to the default zone
	setEnv(t, map[string]string{"TIMEZONE": ""})
	_, err = config.Load()
	assert.Error(t, err)
}
