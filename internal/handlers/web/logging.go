package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// requestLogFormatter sends chi request logs through slog. A nil logger
// means slog.Default at request time.
type requestLogFormatter struct {
	logger *slog.Logger
}

func (f *requestLogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	logger := f.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &requestLogEntry{
		logger: logger.With(
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"request_id", middleware.GetReqID(r.Context()),
		),
		ctx: r.Context(),
	}
}

type requestLogEntry struct {
	logger *slog.Logger
	ctx    context.Context
}

func (e *requestLogEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	level := slog.LevelInfo
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	e.logger.Log(e.ctx, level, "http request",
		"status", status,
		"bytes", bytes,
		"duration", elapsed,
	)
}

func (e *requestLogEntry) Panic(v interface{}, stack []byte) {
	e.logger.ErrorContext(e.ctx, "http handler panic",
		"panic", v,
		"stack", string(stack),
	)
}
