package notifier

//go:generate mockgen -source=client.go -destination=../../mocks/notifiermock/client.go -package=notifiermock

import "context"

// Client delivers direct messages through a chat platform.
// Send is not idempotent: calling it twice delivers two messages.
type Client interface {
	// OpenDirectChannel creates or fetches the DM channel with the recipient.
	OpenDirectChannel(ctx context.Context, recipientID string) (string, error)
	Send(ctx context.Context, channelID, text string) error
}
