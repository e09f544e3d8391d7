/*
 * corevm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package trace is the ambient logging surface used by every other package
// in this module, mirroring the role of jacobin/trace: a small set of
// package-level functions (Trace, Warning, Error) rather than a logger the
// caller has to thread through. Unlike jacobin/trace, which writes directly
// to stderr by hand, this wraps go.uber.org/zap's SugaredLogger.
package trace

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	logger *zap.SugaredLogger
)

// Init installs a production zap logger at the given level name
// ("debug", "info", "warn", "error"). It is safe to call more than once;
// the most recent call wins. If Init is never called, Trace/Warning/Error
// are no-ops, matching jacobin's behavior of only logging once globals are
// set up.
func Init(level string) error {
	var zl zap.AtomicLevel
	if err := zl.UnmarshalText([]byte(level)); err != nil {
		return err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zl
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	mu.Lock()
	logger = l.Sugar()
	mu.Unlock()
	return nil
}

// Trace logs an informational message, matching jacobin's trace.Trace.
func Trace(msg string) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		l.Info(msg)
	}
}

// Warning logs a warning, matching jacobin's trace.Warning.
func Warning(msg string) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		l.Warn(msg)
	}
}

// Error logs an error, matching jacobin's trace.Error.
func Error(msg string) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		l.Error(msg)
	}
}

// Sync flushes any buffered log entries. Call before process exit.
func Sync() {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		_ = l.Sync()
	}
}
