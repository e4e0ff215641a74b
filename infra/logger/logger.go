// Package logger provides the zerolog-backed implementation of the core
// logging contract.
package logger

import corelogger "github.com/vanditkanudia/gridgap/core/logger"

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}

// New returns a Logger for the given component. Output format and level are
// picked up from the APP_ENV and APP_LOG_LEVEL environment variables.
func New(component string) Logger {
	return NewZerologLogger(component)
}
