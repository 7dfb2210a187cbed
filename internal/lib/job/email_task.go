package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskHostWelcome is the job type name stored in Redis.
	// Asynq uses task type strings to route to handlers.
	TaskHostWelcome = "email:host_welcome"
)

// HostWelcomePayload is the JSON payload of the host welcome email task.
type HostWelcomePayload struct {
	To       string `json:"to"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// NewHostWelcomeTask constructs an Asynq task for sending the host welcome email.
//
// Options:
//   - MaxRetry(3): retry up to 3 times on failure
//   - Queue("default"): normal priority
//   - Timeout(30s): kill the task if handler runs longer than 30 seconds
func NewHostWelcomeTask(p HostWelcomePayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskHostWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
