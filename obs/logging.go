// Package obs provides logging and metrics for the rerate service.
package obs

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger configures a zerolog logger using the provided format and level.
// When file is set, JSON logs are also written to a rotating file.
func NewLogger(format, level, file string) zerolog.Logger {
	return newLogger(os.Stdout, format, level, file)
}

func newLogger(stdout io.Writer, format, level, file string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = stdout
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "console" || f == "text" {
		out = zerolog.ConsoleWriter{Out: stdout, TimeFormat: time.RFC3339}
	}
	if path := strings.TrimSpace(file); path != "" {
		out = io.MultiWriter(out, &lumberjack.Logger{
			Filename:   path,
			MaxSize:    20,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		})
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// RequestLogger records structured HTTP request logs and request metrics.
type RequestLogger struct {
	Logger  zerolog.Logger
	Metrics *Metrics
}

// Middleware is bound on the PocketBase router.
func (l RequestLogger) Middleware(e *core.RequestEvent) error {
	start := time.Now()
	err := e.Next()
	duration := time.Since(start)

	status := responseStatus(e, err)
	route := e.Request.Pattern
	if route == "" {
		route = unmatchedRoute
	}
	l.Metrics.ObserveRequest(e.Request.Method, route, status, duration)

	evt := l.Logger.Info()
	if err != nil || status >= 500 {
		evt = l.Logger.Error().Err(err)
	}
	evt.Str("method", e.Request.Method).
		Str("route", route).
		Str("path", e.Request.URL.Path).
		Int("status", status).
		Int64("duration_ms", duration.Milliseconds()).
		Msg("http_request")
	return err
}

// unmatchedRoute labels requests that did not go through a registered route.
const unmatchedRoute = "unmatched"

// responseStatus is the status the client receives. Errors returned up the
// chain are written by the router after the middleware returns, so their
// status is resolved the same way the router's error handler does.
func responseStatus(e *core.RequestEvent, err error) int {
	if status := e.Status(); status != 0 {
		return status
	}
	if err != nil {
		return router.ToApiError(err).Status
	}
	return 200
}
