package email

import "context"

// SendHostWelcomeEmail greets a newly registered host.
//
// Data keys must match what templates/host_welcome.html expects.
func (c *Client) SendHostWelcomeEmail(ctx context.Context, to, name, username string) error {
	data := map[string]string{
		"HostName": name,
		"Username": username,
	}

	return c.SendEmail(
		ctx,
		to,
		"Welcome to Booking, "+name+"!",
		TemplateHostWelcome,
		data,
	)
}
