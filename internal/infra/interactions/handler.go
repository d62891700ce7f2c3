// Package interactions serves the Discord interactions endpoint used to register birthdays
// with the /add slash command.
package interactions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"birthday_reminder/internal/app"
	"birthday_reminder/internal/domain/birthday"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	interactionPing    = 1
	interactionCommand = 2

	responsePong           = 1
	responseChannelMessage = 4

	// Visible only to the user who invoked the command.
	flagEphemeral = 1 << 6
)

type SignatureVerifier interface {
	Verify(signatureHex, timestamp string, body []byte) error
}

type Registrar interface {
	AddBirthday(ctx context.Context, owner birthday.OwnerID, name, mmdd string) (birthday.Birthday, error)
}

type Handler struct {
	verifier  SignatureVerifier
	registrar Registrar
	logger    *logrus.Entry
}

func NewHandler(v SignatureVerifier, r Registrar, logger *logrus.Entry) *Handler {
	return &Handler{verifier: v, registrar: r, logger: logger}
}

// RegisterRoutes mounts the endpoint on both / and /interactions.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.String(http.StatusMethodNotAllowed, "Method Not Allowed")
	})
	r.POST("/", h.Handle)
	r.POST("/interactions", h.Handle)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

type user struct {
	ID birthday.OwnerID `json:"id"`
}

type commandOption struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

type interaction struct {
	Type    int    `json:"type"`
	GuildID string `json:"guild_id"`
	Data    *struct {
		Name    string          `json:"name"`
		Options []commandOption `json:"options"`
	} `json:"data"`
	User   *user `json:"user"`
	Member *struct {
		User *user `json:"user"`
	} `json:"member"`
}

type responseData struct {
	Content string `json:"content"`
	Flags   int    `json:"flags,omitempty"`
}

type response struct {
	Type int           `json:"type"`
	Data *responseData `json:"data,omitempty"`
}

func (h *Handler) Handle(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, "Unreadable body")
		return
	}

	// Every interaction must be signed, PINGs included.
	err = h.verifier.Verify(c.GetHeader("X-Signature-Ed25519"), c.GetHeader("X-Signature-Timestamp"), body)
	if err != nil {
		h.logger.WithError(err).Warn("Rejected interaction")
		c.String(http.StatusUnauthorized, capitalize(err.Error()))
		return
	}

	var in interaction
	if err := json.Unmarshal(body, &in); err != nil {
		c.String(http.StatusBadRequest, "Invalid JSON")
		return
	}

	if in.Type == interactionPing {
		c.JSON(http.StatusOK, response{Type: responsePong})
		return
	}
	if in.Type != interactionCommand {
		reply(c, "Unsupported interaction type.", 0)
		return
	}
	if in.GuildID != "" {
		reply(c, "Please DM me to use this.", flagEphemeral)
		return
	}
	if in.Data == nil || in.Data.Name != "add" {
		reply(c, "Unknown command.", 0)
		return
	}

	name, mmdd := parseAddOptions(in.Data.Options)
	saved, err := h.registrar.AddBirthday(c.Request.Context(), in.ownerID(), name, mmdd)
	if err != nil {
		reply(c, replyForError(err), 0)
		return
	}
	reply(c, fmt.Sprintf("Saved %s's birthday as %s.", saved.Name, strings.TrimSpace(mmdd)), 0)
}

func (in *interaction) ownerID() birthday.OwnerID {
	if in.User != nil && in.User.ID != "" {
		return in.User.ID
	}
	if in.Member != nil && in.Member.User != nil {
		return in.Member.User.ID
	}
	return ""
}

func parseAddOptions(options []commandOption) (name, mmdd string) {
	for _, opt := range options {
		switch opt.Name {
		case "name":
			name = optionString(opt.Value)
		case "birthday":
			mmdd = optionString(opt.Value)
		}
	}
	return name, mmdd
}

func optionString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func replyForError(err error) string {
	switch {
	case errors.Is(err, birthday.ErrNameMissing):
		return "Missing name. Usage: /add <name> <birthday>"
	case errors.Is(err, birthday.ErrNameTooLong):
		return fmt.Sprintf("Name is too long (max %d characters).", birthday.MaxNameLength)
	case errors.Is(err, birthday.ErrBirthdayMissing):
		return "Missing birthday. Usage: /add <name> <birthday>"
	case errors.Is(err, app.ErrOwnerMissing):
		return "Missing user information."
	case errors.Is(err, birthday.ErrBadBirthdayFormat):
		return "Birthday must be in MM/DD format (example: 12/31)."
	case errors.Is(err, birthday.ErrDayOutOfRange):
		return "Invalid day for the given month."
	default:
		return "Failed to save birthday. Please try again."
	}
}

func reply(c *gin.Context, content string, flags int) {
	c.JSON(http.StatusOK, response{
		Type: responseChannelMessage,
		Data: &responseData{Content: content, Flags: flags},
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
