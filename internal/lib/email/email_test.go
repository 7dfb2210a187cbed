package email

import (
	"context"
	"errors"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (f *fakeSender) SendWithContext(_ context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, params)
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

func newTestClient(s sender) *Client {
	logger := zerolog.Nop()
	return &Client{sender: s, from: "hello@booking.test", logger: &logger}
}

func TestRender_PreviewDataCoversEveryTemplate(t *testing.T) {
	for name, data := range PreviewData {
		t.Run(string(name), func(t *testing.T) {
			html, err := Render(name, data)
			require.NoError(t, err)
			for _, value := range data {
				assert.Contains(t, html, value)
			}
		})
	}
}

func TestRender_EscapesData(t *testing.T) {
	html, err := Render(TemplateHostWelcome, map[string]string{
		"HostName": "<script>alert(1)</script>",
		"Username": "x",
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render(Template("missing"), nil)
	assert.Error(t, err)
}

func TestSendHostWelcomeEmail(t *testing.T) {
	fake := &fakeSender{}
	client := newTestClient(fake)

	err := client.SendHostWelcomeEmail(context.Background(), "maria@example.com", "Maria", "maria.lisbon")
	require.NoError(t, err)

	require.Len(t, fake.sent, 1)
	sent := fake.sent[0]
	assert.Equal(t, []string{"maria@example.com"}, sent.To)
	assert.Equal(t, "Booking <hello@booking.test>", sent.From)
	assert.Equal(t, "Welcome to Booking, Maria!", sent.Subject)
	assert.Contains(t, sent.Html, "maria.lisbon")
}

func TestSendEmail_ProviderError(t *testing.T) {
	client := newTestClient(&fakeSender{err: errors.New("rate limited")})

	err := client.SendHostWelcomeEmail(context.Background(), "maria@example.com", "Maria", "maria")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}
