// Package logging provides category-based file logging for codepad.
// The TUI owns the terminal, so logs are written to files under
// <workspace>/.codepad/logs/ and never to stdout. When debug mode is off,
// every logger is a silent no-op.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category names a log stream; each category gets its own file.
type Category string

const (
	CategoryBoot       Category = "boot"       // Startup and shutdown
	CategoryEditor     Category = "editor"     // Editor events, qualifying edits
	CategoryStreak     Category = "streak"     // Streak transitions and milestones
	CategoryStore      Category = "store"      // Persistence operations
	CategoryReference  Category = "reference"  // Reference snapshot reloads
	CategoryPlayground Category = "playground" // TUI lifecycle
)

var (
	mu        sync.RWMutex
	loggers   = make(map[Category]*zap.SugaredLogger)
	logsDir   string
	debugMode bool
	level     zapcore.Level
)

// Initialize sets up the logging directory. When debug is false the whole
// package degrades to no-ops and no directory is created.
func Initialize(workspace string, debug bool, levelName string) error {
	if workspace == "" {
		return fmt.Errorf("workspace path required")
	}

	mu.Lock()
	defer mu.Unlock()

	debugMode = debug
	if err := level.Set(levelName); err != nil {
		level = zapcore.InfoLevel
	}
	if !debugMode {
		return nil
	}

	logsDir = filepath.Join(workspace, ".codepad", "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}
	return nil
}

// Get returns (or creates) the logger for a category. Returns a no-op
// logger when debug mode is off or the log file cannot be opened.
func Get(category Category) *zap.SugaredLogger {
	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	enabled := debugMode && logsDir != ""
	mu.RUnlock()

	if !enabled {
		return zap.NewNop().Sugar()
	}

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}

	// Date-prefixed file per category for easy rotation
	date := time.Now().Format("2006-01-02")
	path := filepath.Join(logsDir, fmt.Sprintf("%s_%s.log", date, category))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not open log file %s: %v\n", path, err)
		return zap.NewNop().Sugar()
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(file),
		level,
	)
	l := zap.New(core).Named(string(category)).Sugar()
	loggers[category] = l
	return l
}

// Sync flushes all open loggers. Call at shutdown.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	for _, l := range loggers {
		_ = l.Sync()
	}
	loggers = make(map[Category]*zap.SugaredLogger)
}
