package database

import (
	"context"
	"errors"
	"time"

	loggerConfig "github.com/deppfellow/booking-api/internal/logger"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger sends GORM's own log output to zerolog.
//
// Statements are not logged here (the pgx tracelog does that in local).
// Only failures and queries slower than SlowThreshold are reported.
type GormLogger struct {
	log           *zerolog.Logger
	level         gormlogger.LogLevel
	SlowThreshold time.Duration
}

// NewGormLogger builds a GORM logger on top of logger.
// A zero slowThreshold disables slow query reporting.
func NewGormLogger(logger *zerolog.Logger, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{
		log:           logger,
		level:         gormlogger.Warn,
		SlowThreshold: slowThreshold,
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

// loggerFor prefers the request-scoped logger stored in ctx.
func (l *GormLogger) loggerFor(ctx context.Context) *zerolog.Logger {
	return loggerConfig.FromContext(ctx, l.log)
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.loggerFor(ctx).Info().Msgf(msg, args...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.loggerFor(ctx).Warn().Msgf(msg, args...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.loggerFor(ctx).Error().Msgf(msg, args...)
	}
}

// Trace is called by GORM after every statement.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	logger := l.loggerFor(ctx)

	switch {
	// Record-not-found is an expected outcome, the service turns it into a 404.
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		logger.Error().
			Err(err).
			Str("sql", sql).
			Int64("rows", rows).
			Dur("elapsed", elapsed).
			Msg("gorm query failed")

	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		logger.Warn().
			Str("sql", sql).
			Int64("rows", rows).
			Dur("elapsed", elapsed).
			Dur("threshold", l.SlowThreshold).
			Msg("slow query")

	case l.level >= gormlogger.Info:
		sql, rows := fc()
		logger.Debug().
			Str("sql", sql).
			Int64("rows", rows).
			Dur("elapsed", elapsed).
			Msg("gorm query")
	}
}
