package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: "default", Type: task.Type()}, nil
}

func (f *fakeEnqueuer) Close() error { return nil }

type fakeWelcomeSender struct {
	calls []HostWelcomePayload
	err   error
}

func (f *fakeWelcomeSender) SendHostWelcomeEmail(_ context.Context, to, name, username string) error {
	f.calls = append(f.calls, HostWelcomePayload{To: to, Name: name, Username: username})
	return f.err
}

func newTestJobService(e enqueuer, s hostWelcomeSender) *JobService {
	logger := zerolog.Nop()
	return &JobService{client: e, emails: s, logger: &logger}
}

func TestNewHostWelcomeTask(t *testing.T) {
	task, err := NewHostWelcomeTask(HostWelcomePayload{To: "a@b.c", Name: "Ana", Username: "ana"})
	require.NoError(t, err)

	assert.Equal(t, TaskHostWelcome, task.Type())

	var decoded HostWelcomePayload
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, "ana", decoded.Username)
}

func TestEnqueueHostWelcome(t *testing.T) {
	fake := &fakeEnqueuer{}
	j := newTestJobService(fake, nil)

	err := j.EnqueueHostWelcome(context.Background(), HostWelcomePayload{To: "a@b.c", Name: "Ana", Username: "ana"})
	require.NoError(t, err)
	require.Len(t, fake.tasks, 1)
	assert.Equal(t, TaskHostWelcome, fake.tasks[0].Type())

	failing := newTestJobService(&fakeEnqueuer{err: errors.New("redis down")}, nil)
	err = failing.EnqueueHostWelcome(context.Background(), HostWelcomePayload{To: "a@b.c"})
	assert.ErrorContains(t, err, "redis down")
}

func TestHostWelcomeTaskRouting(t *testing.T) {
	sender := &fakeWelcomeSender{}
	j := newTestJobService(&fakeEnqueuer{}, sender)

	task, err := NewHostWelcomeTask(HostWelcomePayload{To: "a@b.c", Name: "Ana", Username: "ana"})
	require.NoError(t, err)

	require.NoError(t, j.Mux().ProcessTask(context.Background(), task))
	require.Len(t, sender.calls, 1)
	assert.Equal(t, HostWelcomePayload{To: "a@b.c", Name: "Ana", Username: "ana"}, sender.calls[0])
}

func TestHandleHostWelcomeTask_Errors(t *testing.T) {
	t.Run("malformed payload is not retried", func(t *testing.T) {
		j := newTestJobService(&fakeEnqueuer{}, &fakeWelcomeSender{})

		err := j.handleHostWelcomeTask(context.Background(), asynq.NewTask(TaskHostWelcome, []byte("{")))
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})

	t.Run("send failure is returned for retry", func(t *testing.T) {
		j := newTestJobService(&fakeEnqueuer{}, &fakeWelcomeSender{err: errors.New("smtp")})

		task, err := NewHostWelcomeTask(HostWelcomePayload{To: "a@b.c"})
		require.NoError(t, err)

		err = j.handleHostWelcomeTask(context.Background(), task)
		require.Error(t, err)
		assert.NotErrorIs(t, err, asynq.SkipRetry)
	})
}
