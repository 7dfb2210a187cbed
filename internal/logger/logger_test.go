package logger

import (
	"testing"

	"github.com/deppfellow/booking-api/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerServiceWithoutCredentials(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()

	ls := NewLoggerService(cfg)

	assert.Nil(t, ls.GetApplication())
	assert.False(t, ls.SentryEnabled())
	assert.NotPanics(t, ls.Shutdown)
}

func TestNewLoggerLevel(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "warn"

	logger := NewLogger(cfg)
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	cfg.Logging.Level = "nonsense"
	logger = NewLogger(cfg)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestWithTraceContextNilTransaction(t *testing.T) {
	base := zerolog.Nop()
	assert.Equal(t, base, WithTraceContext(base, nil))
}

func TestGetPgxTraceLogLevel(t *testing.T) {
	assert.Equal(t, tracelog.LogLevelDebug, GetPgxTraceLogLevel(zerolog.DebugLevel))
	assert.Equal(t, tracelog.LogLevelInfo, GetPgxTraceLogLevel(zerolog.InfoLevel))
	assert.Equal(t, tracelog.LogLevelError, GetPgxTraceLogLevel(zerolog.FatalLevel))
	assert.Equal(t, tracelog.LogLevelNone, GetPgxTraceLogLevel(zerolog.Disabled))
}
