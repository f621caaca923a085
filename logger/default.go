package logger

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/philipp01105/jsonlog/core"
	"github.com/philipp01105/jsonlog/handler"
)

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

func init() {
	// Initialize default logger with a JSON stream handler on stdout
	h := handler.NewStreamHandler(handler.StreamConfig{})

	defaultLogger = NewBuilder().
		WithHandler(h).
		WithLevel(core.InfoLevel).
		WithCaller(true).
		Build()
}

// Default returns the default logger
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Package-level convenience functions using the default logger. They call
// the internal log method directly so caller capture resolves to the call
// site, the same frame depth as the Logger methods.

// Debug logs a debug message using the default logger
func Debug(msg string, extras ...core.Field) {
	l := Default()
	if core.DebugLevel < l.level {
		return
	}
	l.log(core.DebugLevel, msg, nil, extras, nil, nil)
}

// Info logs an info message using the default logger
func Info(msg string, extras ...core.Field) {
	l := Default()
	if core.InfoLevel < l.level {
		return
	}
	l.log(core.InfoLevel, msg, nil, extras, nil, nil)
}

// Warn logs a warning message using the default logger
func Warn(msg string, extras ...core.Field) {
	l := Default()
	if core.WarnLevel < l.level {
		return
	}
	l.log(core.WarnLevel, msg, nil, extras, nil, nil)
}

// Error logs an error message using the default logger
func Error(msg string, extras ...core.Field) {
	l := Default()
	if core.ErrorLevel < l.level {
		return
	}
	l.log(core.ErrorLevel, msg, nil, extras, nil, nil)
}

// Exception logs an error with the current stack using the default logger
func Exception(err error, msg string, extras ...core.Field) {
	l := Default()
	if core.ErrorLevel < l.level {
		return
	}
	var stack []byte
	if err != nil {
		stack = debug.Stack()
	}
	l.log(core.ErrorLevel, msg, nil, extras, err, stack)
}

// Fatal logs a fatal message using the default logger and exits the program
func Fatal(msg string, extras ...core.Field) {
	l := Default()
	l.log(core.FatalLevel, msg, nil, extras, nil, nil)
	osExit(1)
}

// Panic logs a panic message using the default logger and panics
func Panic(msg string, extras ...core.Field) {
	l := Default()
	l.log(core.PanicLevel, msg, nil, extras, nil, nil)
	panic(msg)
}

// Debugf logs a formatted debug message using the default logger
func Debugf(format string, args ...interface{}) {
	l := Default()
	if core.DebugLevel < l.level {
		return
	}
	l.log(core.DebugLevel, format, args, nil, nil, nil)
}

// Infof logs a formatted info message using the default logger
func Infof(format string, args ...interface{}) {
	l := Default()
	if core.InfoLevel < l.level {
		return
	}
	l.log(core.InfoLevel, format, args, nil, nil, nil)
}

// Warnf logs a formatted warning message using the default logger
func Warnf(format string, args ...interface{}) {
	l := Default()
	if core.WarnLevel < l.level {
		return
	}
	l.log(core.WarnLevel, format, args, nil, nil, nil)
}

// Errorf logs a formatted error message using the default logger
func Errorf(format string, args ...interface{}) {
	l := Default()
	if core.ErrorLevel < l.level {
		return
	}
	l.log(core.ErrorLevel, format, args, nil, nil, nil)
}

// Fatalf logs a formatted fatal message using the default logger and exits the program
func Fatalf(format string, args ...interface{}) {
	l := Default()
	l.log(core.FatalLevel, format, args, nil, nil, nil)
	osExit(1)
}

// Panicf logs a formatted panic message using the default logger and panics
func Panicf(format string, args ...interface{}) {
	l := Default()
	l.log(core.PanicLevel, format, args, nil, nil, nil)
	panic(fmt.Sprintf(format, args...))
}

// With creates a new logger with additional extras from the default logger
func With(extras ...core.Field) *Logger {
	return Default().With(extras...)
}

// Named creates a named child of the default logger
func Named(name string) *Logger {
	return Default().Named(name)
}
