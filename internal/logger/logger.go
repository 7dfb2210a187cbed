// Package logger configures the application's logging,
// monitoring, and error reporting.
//
// It uses *zerolog* for logging, integrates with *New Relic*
// to forward logs, metrics and traces, and with *Sentry* to
// report server-side failures.
package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/deppfellow/booking-api/internal/config"
	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// timeFormat is shared by every console writer in this package.
const timeFormat = "2006-01-02 15:04:05"

// flushTimeout bounds how long Shutdown waits for pending telemetry.
const flushTimeout = 10 * time.Second

// LoggerService owns the process-wide telemetry clients.
//
// Both are optional: a missing New Relic license key leaves nrApp nil,
// a missing Sentry DSN leaves sentryEnabled false.
type LoggerService struct {
	nrApp         *newrelic.Application
	sentryEnabled bool
}

// NewLoggerService initializes New Relic and Sentry from the observability config.
//
// Initialization failures are printed and the corresponding client stays
// disabled; telemetry must never keep the API from starting.
func NewLoggerService(cfg *config.ObservabilityConfig) *LoggerService {
	service := &LoggerService{}

	if cfg.NewRelic.LicenseKey == "" {
		fmt.Println("New Relic license key not provided, skipping initialization")
	} else {
		configOptions := []newrelic.ConfigOption{
			newrelic.ConfigAppName(cfg.ServiceName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigAppLogForwardingEnabled(cfg.NewRelic.AppLogForwardingEnabled),
			newrelic.ConfigDistributedTracerEnabled(cfg.NewRelic.DistributedTracingEnabled),
		}

		if cfg.NewRelic.DebugLogging {
			configOptions = append(configOptions, newrelic.ConfigDebugLogger(os.Stdout))
		}

		app, err := newrelic.NewApplication(configOptions...)
		if err != nil {
			fmt.Printf("Failed to initialize New Relic: %v\n", err)
		} else {
			service.nrApp = app
			fmt.Printf("New Relic initialized for app: %s\n", cfg.ServiceName)
		}
	}

	if cfg.Sentry.DSN == "" {
		fmt.Println("Sentry DSN not provided, skipping initialization")
	} else {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Environment,
			Release:          cfg.ServiceName,
			AttachStacktrace: true,
			EnableTracing:    cfg.Sentry.TracesSampleRate > 0,
			TracesSampleRate: cfg.Sentry.TracesSampleRate,
			Debug:            cfg.Sentry.Debug,
		})
		if err != nil {
			fmt.Printf("Failed to initialize Sentry: %v\n", err)
		} else {
			service.sentryEnabled = true
		}
	}

	return service
}

// Shutdown flushes and stops the telemetry clients.
func (ls *LoggerService) Shutdown() {
	if ls == nil {
		return
	}
	if ls.nrApp != nil {
		ls.nrApp.Shutdown(flushTimeout)
	}
	if ls.sentryEnabled {
		sentry.Flush(flushTimeout)
	}
}

// GetApplication returns the New Relic application, nil when disabled.
func (ls *LoggerService) GetApplication() *newrelic.Application {
	if ls == nil {
		return nil
	}
	return ls.nrApp
}

// SentryEnabled reports whether errors are being sent to Sentry.
func (ls *LoggerService) SentryEnabled() bool {
	return ls != nil && ls.sentryEnabled
}

// NewLogger creates a logger without New Relic log forwarding.
func NewLogger(cfg *config.ObservabilityConfig) zerolog.Logger {
	return NewLoggerWithService(cfg, nil)
}

// NewLoggerWithService builds the application logger.
//
// Production with the json format writes JSON to stdout, forwarded to New Relic
// when it is enabled. Everything else gets the human-readable console writer
// and stack traces on errors.
func NewLoggerWithService(cfg *config.ObservabilityConfig, loggerService *LoggerService) zerolog.Logger {
	logLevel, err := zerolog.ParseLevel(cfg.GetLogLevel())
	if err != nil || logLevel == zerolog.NoLevel {
		logLevel = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = timeFormat
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	var writer io.Writer
	if cfg.IsProduction() && cfg.Logging.Format == "json" {
		writer = os.Stdout
		if loggerService != nil && loggerService.nrApp != nil {
			writer = zerologWriter.New(os.Stdout, loggerService.nrApp)
		}
	} else {
		writer = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: timeFormat}
	}

	logger := zerolog.New(writer).
		Level(logLevel).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Logger()

	if !cfg.IsProduction() {
		logger = logger.With().Stack().Logger()
	}

	return logger
}

// WithTraceContext adds New Relic trace.id and span.id to the logger.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}

	metadata := txn.GetTraceMetadata()

	return logger.With().
		Str("trace.id", metadata.TraceID).
		Str("span.id", metadata.SpanID).
		Logger()
}

// FromContext returns the request-scoped logger stored in ctx by the
// context middleware, or fallback when ctx carries none.
func FromContext(ctx context.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if ctxLogger := zerolog.Ctx(ctx); ctxLogger.GetLevel() != zerolog.Disabled {
		return ctxLogger
	}
	return fallback
}

// NewPgxLogger creates the logger used for SQL tracing in local development.
// JSON field values (query args) are pretty-printed.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: timeFormat,
		FormatFieldValue: func(i any) string {
			switch v := i.(type) {
			case string:
				if len(v) > 200 {
					return v[:200] + "..."
				}
				return v
			case []byte:
				var obj any
				if err := json.Unmarshal(v, &obj); err == nil {
					var pretty bytes.Buffer
					if err := json.Indent(&pretty, v, "", "    "); err == nil {
						return "\n" + pretty.String()
					}
				}
				return string(v)
			default:
				return fmt.Sprintf("%v", v)
			}
		},
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("component", "database").
		Logger()
}

// GetPgxTraceLogLevel maps a zerolog level onto the pgx tracelog level.
func GetPgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return tracelog.LogLevelError
	default:
		return tracelog.LogLevelNone
	}
}
