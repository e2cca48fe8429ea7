package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Log is the global logger instance
var Log *slog.Logger

// Init installs the global logger and returns a flush func to call before exit.
// Development: Text format with Debug level
// Production: JSON format with Info level
// Errors are also sent to Sentry when a DSN is given.
func Init(isDev bool, sentryDSN, environment string) func() {
	var handlers []slog.Handler

	if isDev {
		handlers = append(handlers, slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	} else {
		handlers = append(handlers, slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	flush := func() {}
	if sentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              sentryDSN,
			Environment:      environment,
			TracesSampleRate: 0.2,
		})
		if err != nil {
			slog.Warn("sentry init failed, continuing without it", "error", err)
		} else {
			handlers = append(handlers, slogsentry.Option{
				Level: slog.LevelError,
			}.NewSentryHandler())
			flush = func() { sentry.Flush(2 * time.Second) }
		}
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = slogmulti.Fanout(handlers...)
	} else {
		handler = handlers[0]
	}

	Log = slog.New(handler).With("env", environment)
	slog.SetDefault(Log)

	return flush
}
