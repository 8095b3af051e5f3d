// Package logging owns the application's zerolog logger. The terminal
// belongs to the TUI, so records only ever go to a file.
package logging

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	logger  = zerolog.Nop()
	logFile *os.File
)

// Init opens path for appending and routes the logger to it at the given
// level. An unparseable level falls back to info. On error the logger is
// left disabled.
func Init(level, path string) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if path == "" {
		logger = zerolog.Nop()
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	logFile = f
	logger = zerolog.New(f).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	return nil
}

// Get returns the current logger. Before Init it discards everything.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetSession tags every later record with the run's session id so the
// records of concurrent instances sharing one file can be told apart.
func SetSession(id string) {
	mu.Lock()
	defer mu.Unlock()
	logger = logger.With().Str("session", id).Logger()
}

// Component returns a child logger tagged with a component name.
func Component(name string) zerolog.Logger {
	l := Get()
	return l.With().Str("component", name).Logger()
}

// Close flushes the log file and disables the logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	logger = zerolog.Nop()
}
