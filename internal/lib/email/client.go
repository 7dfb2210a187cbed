// Package email provides an email sending client.
//
// It uses Resend (resend-go) as the email provider. HTML templates
// are embedded into the binary and rendered with html/template.
package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/deppfellow/booking-api/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

// templates is parsed once; a broken template fails at startup, not per email.
var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// SenderName is shown as the display name of every outgoing email.
const SenderName = "Booking"

// sender is the part of the Resend API the client uses.
type sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Client wraps the Resend client and a logger.
type Client struct {
	sender sender
	from   string
	logger *zerolog.Logger
}

// NewClient creates an email Client.
//
// It initializes a Resend client with the API key from config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		sender: resend.NewClient(cfg.Integration.ResendAPIKey).Emails,
		from:   cfg.Integration.EmailFrom,
		logger: logger,
	}
}

// Render executes the named template with data.
func Render(templateName Template, data map[string]string) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, templateName.file(), data); err != nil {
		// pkg/errors.Wrapf adds context while preserving stack trace.
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}
	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to a single recipient.
func (c *Client) SendEmail(ctx context.Context, to, subject string, templateName Template, data map[string]string) error {
	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		// Resend may require a verified domain/address.
		From:    fmt.Sprintf("%s <%s>", SenderName, c.from),
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	resp, err := c.sender.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Debug().
		Str("template", string(templateName)).
		Str("email_id", resp.Id).
		Msg("email sent")

	return nil
}
