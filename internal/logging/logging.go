// Package logging sets up the process-wide zerolog logger.
//
// The console TUI owns stdout, so log output goes to a rotating file under
// the config directory. Plain CLI commands can additionally mirror it to
// stderr with a console writer.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	log = zerolog.Nop()
	mu  sync.RWMutex
)

// Level is a textual log level as stored in config.json.
type Level string

const (
	LevelDebug    Level = "debug"
	LevelInfo     Level = "info"
	LevelWarn     Level = "warn"
	LevelError    Level = "error"
	LevelDisabled Level = "disabled"
)

// Config controls where and how much is logged.
type Config struct {
	Level Level
	// File is the log file path. Empty disables file output.
	File string
	// Console mirrors log lines to stderr in human-readable form.
	Console bool
	NoColor bool

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// DefaultConfig logs at info level to file only.
func DefaultConfig(file string) Config {
	return Config{
		Level:      LevelInfo,
		File:       file,
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}
}

// ParseLevel accepts the names used in config.json. Unknown names map to info.
func ParseLevel(s string) Level {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError, LevelDisabled:
		return l
	}
	return LevelInfo
}

// Init replaces the global logger. It is safe to call more than once; the
// last call wins.
func Init(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	if cfg.Level == LevelDisabled || (cfg.File == "" && !cfg.Console) {
		zerolog.SetGlobalLevel(zerolog.Disabled)
		log = zerolog.New(io.Discard)
		zerolog.DefaultContextLogger = &log
		return nil
	}

	var writers []io.Writer
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0700); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		})
	}
	if cfg.Console {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    cfg.NoColor,
		})
	}

	zerolog.SetGlobalLevel(zerologLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339

	log = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
	return nil
}

func zerologLevel(l Level) zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelDisabled:
		return zerolog.Disabled
	}
	return zerolog.InfoLevel
}

// Get returns the current global logger.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// WithComponent returns a sub-logger tagged with component.
func WithComponent(component string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log.With().Str("component", component).Logger()
}
