// Package logging provides zerolog loggers writing to a dated file, since
// the terminal itself belongs to the renderer while Buddy runs.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Stderr as Config.File logs to standard error instead of a file
const Stderr = "-"

// Config holds logger configuration
type Config struct {
	Dir     string    // default ~/.buddy/logs
	File    string    // default buddy_YYYY-MM-DD.log; Stderr for console
	Level   string    // debug, info, warn, error; default info
	Session string    // attached to every entry when set
	Writer  io.Writer // overrides Dir and File
}

// Logger wraps zerolog with the file it owns
type Logger struct {
	zlog zerolog.Logger
	file *os.File
	path string
}

// New opens the log destination and builds the root logger
func New(cfg Config) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	l := &Logger{}
	var out io.Writer
	switch {
	case cfg.Writer != nil:
		out = cfg.Writer
	case cfg.File == Stderr:
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}
	default:
		path, err := FilePath(cfg, time.Now())
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file, l.path, out = f, path, f
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp().Str("app", "buddy")
	if cfg.Session != "" {
		ctx = ctx.Str("session", cfg.Session)
	}
	l.zlog = ctx.Logger()
	return l, nil
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// FilePath resolves where New would write on the given day
func FilePath(cfg Config, day time.Time) (string, error) {
	dir := cfg.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve log dir: %w", err)
		}
		dir = filepath.Join(home, ".buddy", "logs")
	}
	name := cfg.File
	if name == "" {
		name = fmt.Sprintf("buddy_%s.log", day.Format("2006-01-02"))
	}
	return filepath.Join(dir, name), nil
}

// ParseLevel accepts zerolog level names; empty means info
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}

// Component returns a child logger tagged with component
func (l *Logger) Component(name string) zerolog.Logger {
	return l.zlog.With().Str("component", name).Logger()
}

// Zerolog returns the root logger
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zlog
}

// Path is the log file, empty for stderr or custom writers
func (l *Logger) Path() string {
	return l.path
}

// Close flushes and closes the log file if one was opened
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	if err := l.file.Sync(); err != nil {
		l.file.Close()
		return fmt.Errorf("sync log: %w", err)
	}
	return l.file.Close()
}
