// internal/infra/telegram/client.go
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements notifier.Client using the gopkg.in/telebot.v3 library.
// telebot does not throttle, so Send paces itself below Telegram's bot limits.
type TelebotAdapter struct {
	bot     *telebot.Bot
	limiter *rate.Limiter
}

// NewBot creates a send-only bot. Offline skips the getMe round trip since the job never polls.
func NewBot(token, apiURL string, timeout time.Duration) (*telebot.Bot, error) {
	b, err := telebot.NewBot(telebot.Settings{
		Token:   token,
		URL:     apiURL,
		Client:  &http.Client{Timeout: timeout},
		Offline: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return b, nil
}

// NewTelebotAdapter wraps b. messagesPerSecond <= 0 disables throttling.
func NewTelebotAdapter(b *telebot.Bot, messagesPerSecond float64) *TelebotAdapter {
	limit := rate.Inf
	if messagesPerSecond > 0 {
		limit = rate.Limit(messagesPerSecond)
	}
	return &TelebotAdapter{bot: b, limiter: rate.NewLimiter(limit, 1)}
}

// OpenDirectChannel returns the private chat id, which on Telegram equals the user id.
func (tba *TelebotAdapter) OpenDirectChannel(ctx context.Context, recipientID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := strconv.ParseInt(recipientID, 10, 64); err != nil {
		return "", fmt.Errorf("telegram recipient %q is not a numeric user id: %w", recipientID, err)
	}
	return recipientID, nil
}

// Send sends a text message to the specified chat.
func (tba *TelebotAdapter) Send(ctx context.Context, channelID, text string) error {
	if err := tba.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("telegram send: waiting for rate limiter: %w", err)
	}
	chatID, err := strconv.ParseInt(channelID, 10, 64)
	if err != nil {
		return fmt.Errorf("telegram chat id %q is not numeric: %w", channelID, err)
	}

	recipient := &telebot.User{ID: chatID} // For reminders, it's a direct user chat
	if _, err := tba.bot.Send(recipient, text, &telebot.SendOptions{ParseMode: telebot.ModeDefault}); err != nil {
		return fmt.Errorf("telegram send to %d failed: %w", chatID, err)
	}
	return nil
}
