package job

import (
	"fmt"

	"github.com/rs/zerolog"
)

// asynqLogger routes asynq's internal logs into zerolog.
type asynqLogger struct {
	logger *zerolog.Logger
}

func (l asynqLogger) Debug(args ...interface{}) {
	l.logger.Debug().Str("component", "asynq").Msg(fmt.Sprint(args...))
}

func (l asynqLogger) Info(args ...interface{}) {
	l.logger.Info().Str("component", "asynq").Msg(fmt.Sprint(args...))
}

func (l asynqLogger) Warn(args ...interface{}) {
	l.logger.Warn().Str("component", "asynq").Msg(fmt.Sprint(args...))
}

func (l asynqLogger) Error(args ...interface{}) {
	l.logger.Error().Str("component", "asynq").Msg(fmt.Sprint(args...))
}

// Fatal is only called by asynq on unrecoverable startup errors.
func (l asynqLogger) Fatal(args ...interface{}) {
	l.logger.Fatal().Str("component", "asynq").Msg(fmt.Sprint(args...))
}
