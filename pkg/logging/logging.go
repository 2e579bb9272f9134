// Package logging sets up the process-wide slog logger. Records go to a
// rotating file because the terminal belongs to the UI.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"opschat/pkg/config"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelTrace sits below debug and is used for full request/response payloads.
const LevelTrace = slog.Level(-8)

const defaultLogFile = "opschat.log"
const (
	maxLogSizeMB  = 5
	maxLogBackups = 5
	maxLogAgeDays = 14
)

// Session is the logging state of one opschat run. Every record carries
// the session ID so runs sharing a log file can be told apart.
type Session struct {
	Logger *slog.Logger
	ID     string
	Path   string

	closer io.Closer
}

// Init installs a logger writing to the file named by cfg (or the default
// under ~/.opschat/logs). When the directory cannot be created the returned
// session discards records and err is set; the session is never nil.
func Init(cfg config.Config) (*Session, error) {
	s := &Session{ID: uuid.NewString()}
	opts := &slog.HandlerOptions{
		Level:       parseLogLevel(cfg.LogLevel),
		ReplaceAttr: levelNames,
	}

	s.Path = strings.TrimSpace(cfg.LogFile)
	if s.Path == "" {
		s.Path = defaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		s.install(newHandler(cfg.LogFormat, io.Discard, opts))
		return s, err
	}

	writer := &lumberjack.Logger{
		Filename:   s.Path,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
		Compress:   true,
	}
	s.closer = writer
	s.install(newHandler(cfg.LogFormat, writer, opts))
	return s, nil
}

func (s *Session) install(h slog.Handler) {
	s.Logger = slog.New(h).With("session_id", s.ID)
	slog.SetDefault(s.Logger)
}

// Close releases the log file.
func (s *Session) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Trace logs payload-sized detail at LevelTrace.
func Trace(ctx context.Context, logger *slog.Logger, msg string, args ...any) {
	if logger == nil || !logger.Enabled(ctx, LevelTrace) {
		return
	}
	logger.Log(ctx, LevelTrace, msg, args...)
}

func defaultLogPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(homeDir) == "" {
		return filepath.Join(".opschat", "logs", defaultLogFile)
	}
	return filepath.Join(homeDir, ".opschat", "logs", defaultLogFile)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return LevelTrace
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

// levelNames prints LevelTrace as TRACE instead of DEBUG-4.
func levelNames(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 || a.Key != slog.LevelKey {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok && level == LevelTrace {
		a.Value = slog.StringValue("TRACE")
	}
	return a
}

func newHandler(format string, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	if strings.EqualFold(strings.TrimSpace(format), "text") {
		return slog.NewTextHandler(out, opts)
	}
	return slog.NewJSONHandler(out, opts)
}
