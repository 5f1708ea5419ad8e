package core

import (
	"log/slog"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(silentLogger())
}

func silentLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// SetLogger installs the logger shared by the raytracer packages. Passing
// nil restores the default, which drops every record.
//
//	core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
//	defer core.SetLogger(nil)
//
// Debug carries per-row progress, partition statistics and OBJ parsing
// details; Info marks render start and completion; Warn flags requests
// that will render slowly.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silentLogger()
	}
	current.Store(l)
}

// Logger returns the installed logger
func Logger() *slog.Logger {
	return current.Load()
}

// ComponentLogger returns the installed logger tagged with a component
// attribute, e.g. "renderer" or "loaders".
func ComponentLogger(component string) *slog.Logger {
	return current.Load().With("component", component)
}
