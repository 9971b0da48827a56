package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Log is the global logger instance
var Log *slog.Logger

type Options struct {
	Dev         bool   // text output at debug level instead of JSON at info
	Service     string // attached to every record as "service"
	Environment string
	SentryDSN   string    // errors are forwarded to Sentry when set
	Output      io.Writer // defaults to stdout
}

var sentryEnabled bool

// Init builds the logger described by opts and installs it as the slog default.
func Init(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	handlers := []slog.Handler{newStdoutHandler(out, opts.Dev)}

	var sentryErr error
	if opts.SentryDSN != "" {
		sentryErr = sentry.Init(sentry.ClientOptions{
			Dsn:              opts.SentryDSN,
			Environment:      opts.Environment,
			TracesSampleRate: 1.0,
		})
		if sentryErr == nil {
			sentryEnabled = true
			handlers = append(handlers, slogsentry.Option{
				Level: slog.LevelError,
			}.NewSentryHandler())
		}
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = slogmulti.Fanout(handlers...)
	} else {
		handler = handlers[0]
	}

	Log = slog.New(handler)
	if opts.Service != "" {
		Log = Log.With("service", opts.Service)
	}
	slog.SetDefault(Log)

	if sentryErr != nil {
		Log.Warn("sentry disabled", "error", sentryErr)
	}

	return Log
}

// Flush waits for buffered Sentry events. Safe to call when Sentry is off.
func Flush() {
	if sentryEnabled {
		sentry.Flush(2 * time.Second)
	}
}

func newStdoutHandler(out io.Writer, dev bool) slog.Handler {
	if dev {
		return slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})
}
