package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handleWelcomeEmailTask sends the welcome email. Returning an error makes
// Asynq retry the task.
func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().Str("type", "welcome").Str("to", p.To).Logger()

	if j.email == nil {
		log.Info().Msg("Skipping welcome email, email is disabled")
		return nil
	}

	log.Info().Msg("Processing welcome email task")

	if err := j.email.SendWelcomeEmail(p.To, p.Username); err != nil {
		log.Error().Err(err).Msg("Failed to send welcome email")
		return err
	}

	log.Info().Msg("Successfully sent welcome email")
	return nil
}
