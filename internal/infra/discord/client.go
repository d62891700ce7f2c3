// Package discord implements the notifier on top of the discordgo REST session.
package discord

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/cockroachdb/errors"
)

// DefaultAPIBase is the REST root discordgo talks to.
var DefaultAPIBase = strings.TrimSuffix(discordgo.EndpointAPI, "/")

// APIError is returned for every non-2xx response.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discord %s failed: %d %s", e.Op, e.StatusCode, e.Body)
}

// DiscordgoAdapter implements notifier.Client using github.com/bwmarrin/discordgo.
// The session never opens a gateway connection; only REST calls are made.
type DiscordgoAdapter struct {
	session *discordgo.Session
}

// NewSession creates a REST-only bot session. A non-default apiBase redirects
// every request, which is how tests and proxies are wired in.
func NewSession(apiBase, botToken string, timeout time.Duration) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create discord session")
	}

	var transport http.RoundTripper = http.DefaultTransport
	apiBase = strings.TrimRight(apiBase, "/")
	if apiBase != "" && apiBase != DefaultAPIBase {
		base, err := url.Parse(apiBase)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid discord api base %q", apiBase)
		}
		transport = &rebaseTransport{base: base, next: transport}
	}
	s.Client = &http.Client{Timeout: timeout, Transport: transport}
	// 429s are still waited out by the session's own rate limiter.
	s.MaxRestRetries = 0
	return s, nil
}

func NewDiscordgoAdapter(s *discordgo.Session) *DiscordgoAdapter {
	return &DiscordgoAdapter{session: s}
}

// OpenDirectChannel creates (or fetches) the DM channel with the recipient.
func (a *DiscordgoAdapter) OpenDirectChannel(ctx context.Context, recipientID string) (string, error) {
	ch, err := a.session.UserChannelCreate(recipientID, discordgo.WithContext(ctx))
	if err != nil {
		return "", wrapError("create DM channel", err)
	}
	if ch == nil || ch.ID == "" {
		return "", errors.Newf("discord returned no channel id for recipient %s", recipientID)
	}
	return ch.ID, nil
}

func (a *DiscordgoAdapter) Send(ctx context.Context, channelID, text string) error {
	if _, err := a.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx)); err != nil {
		return wrapError("send message", err)
	}
	return nil
}

func wrapError(op string, err error) error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		return &APIError{
			Op:         op,
			StatusCode: restErr.Response.StatusCode,
			Body:       strings.TrimSpace(string(restErr.ResponseBody)),
		}
	}
	return errors.Wrapf(err, "discord %s", op)
}

// rebaseTransport moves requests aimed at discordgo.EndpointAPI onto base.
type rebaseTransport struct {
	base *url.URL
	next http.RoundTripper
}

func (t *rebaseTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rest, ok := strings.CutPrefix(req.URL.String(), discordgo.EndpointAPI)
	if !ok {
		return t.next.RoundTrip(req)
	}
	target, err := url.Parse(strings.TrimRight(t.base.String(), "/") + "/" + rest)
	if err != nil {
		return nil, err
	}
	out := req.Clone(req.Context())
	out.URL = target
	out.Host = target.Host
	return t.next.RoundTrip(out)
}
