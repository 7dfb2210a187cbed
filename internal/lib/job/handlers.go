package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// hostWelcomeSender is what the welcome task needs from the email client.
type hostWelcomeSender interface {
	SendHostWelcomeEmail(ctx context.Context, to, name, username string) error
}

// handleHostWelcomeTask decodes the payload and sends the welcome email.
// Returning an error makes Asynq mark the task failed and schedule a retry.
func (j *JobService) handleHostWelcomeTask(ctx context.Context, t *asynq.Task) error {
	var p HostWelcomePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// A malformed payload never gets better, don't retry it.
		return fmt.Errorf("failed to unmarshal host welcome payload: %v: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskHostWelcome).
		Str("to", p.To).
		Logger()

	logger.Info().Msg("Processing host welcome email task")

	if err := j.emails.SendHostWelcomeEmail(ctx, p.To, p.Name, p.Username); err != nil {
		logger.Error().Err(err).Msg("Failed to send host welcome email")
		return err
	}

	logger.Info().Msg("Successfully sent host welcome email")
	return nil
}
