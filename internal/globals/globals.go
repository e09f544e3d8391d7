/*
 * corevm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package globals holds process-wide configuration, mirroring jacobin's
// globals package (GlobalValues / GetGlobalRef / InitGlobals).
package globals

import "sync"

// Global holds the process-wide configuration consulted by the decoder and
// runtime. Unlike jacobin, which keeps a single package-level struct
// protected by ad hoc access, this wraps it behind a mutex-guarded pointer
// so InitGlobals can be called idempotently from tests.
type Global struct {
	// CommandName is argv[0]-equivalent, used in diagnostics.
	CommandName string

	// Strict records whether strict mode was requested. No package in this
	// module reads it: strictness reaches the decoder as the strict argument
	// of classfile.LoadFile and registry.New, which selects DecodeStrict's
	// CP structural validation. Attribute-context legality is not checked
	// in either mode.
	Strict bool

	// DumpClassFiles mirrors the CLI's --dump-class-files/-d flag.
	DumpClassFiles bool

	// TraceClass is a per-class-load tracing flag. No package in this module
	// reads it; registry.Resolve traces every load regardless of its value.
	TraceClass bool
}

var (
	mu  sync.RWMutex
	ref *Global
)

// InitGlobals (re)initializes the global configuration for the named
// command, exactly as jacobin's globals.InitGlobals resets state between
// test runs.
func InitGlobals(commandName string) *Global {
	g := &Global{CommandName: commandName}
	mu.Lock()
	ref = g
	mu.Unlock()
	return g
}

// GetGlobalRef returns the current global configuration, lazily
// initializing it on first use.
func GetGlobalRef() *Global {
	mu.RLock()
	g := ref
	mu.RUnlock()
	if g != nil {
		return g
	}
	return InitGlobals("corevm")
}
