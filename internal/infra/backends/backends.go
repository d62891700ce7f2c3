// Package backends picks the record store and chat platform implementations from config.
package backends

import (
	"context"
	"fmt"

	"birthday_reminder/internal/domain/birthday"
	"birthday_reminder/internal/domain/notifier"
	"birthday_reminder/internal/infra/config"
	idb "birthday_reminder/internal/infra/database"
	"birthday_reminder/internal/infra/discord"
	"birthday_reminder/internal/infra/postgrest"
	"birthday_reminder/internal/infra/telegram"
)

// NewRepository returns the configured record store and a func releasing its resources.
func NewRepository(ctx context.Context, cfg *config.AppConfig) (birthday.Repository, func(), error) {
	switch cfg.RecordStore {
	case config.RecordStorePostgREST:
		client := postgrest.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, cfg.RequestTimeout)
		return postgrest.NewBirthdayRepository(client), func() {}, nil
	case config.RecordStorePostgres:
		db, err := idb.NewPostgresConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return idb.NewPostgresBirthdayRepository(db, cfg.RequestTimeout), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported RECORD_STORE %q", cfg.RecordStore)
	}
}

// NewNotifier returns the configured chat platform client.
func NewNotifier(cfg *config.AppConfig) (notifier.Client, error) {
	switch cfg.ChatPlatform {
	case config.ChatPlatformDiscord:
		session, err := discord.NewSession(cfg.DiscordAPIBase, cfg.DiscordBotToken, cfg.RequestTimeout)
		if err != nil {
			return nil, err
		}
		return discord.NewDiscordgoAdapter(session), nil
	case config.ChatPlatformTelegram:
		bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramAPIURL, cfg.RequestTimeout)
		if err != nil {
			return nil, err
		}
		return telegram.NewTelebotAdapter(bot, cfg.TelegramRateLimit), nil
	default:
		return nil, fmt.Errorf("unsupported CHAT_PLATFORM %q", cfg.ChatPlatform)
	}
}
