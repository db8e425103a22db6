// Package logger builds the structured loggers shared by the ledger services.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/diewo77/warung-ledger/internal/config"
	gormlogger "gorm.io/gorm/logger"
)

// New returns a logger tagged with service. Output goes to stderr.
func New(service string, cfg config.LogConfig) *slog.Logger {
	return NewWithWriter(os.Stderr, service, cfg)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, service string, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	var h slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With("service", service)
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Gorm adapts l to gorm's logger. SQL statements are only traced when debug is set.
func Gorm(l *slog.Logger, debug bool) gormlogger.Interface {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return gormlogger.New(gormWriter{l: l.With("component", "gorm")}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

type gormWriter struct{ l *slog.Logger }

func (w gormWriter) Printf(format string, args ...any) {
	w.l.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
