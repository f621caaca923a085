package logger

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/philipp01105/jsonlog/core"
	"github.com/philipp01105/jsonlog/handler"
)

// osExit is a variable to allow overriding os.Exit in tests
var osExit = os.Exit

// Logger is the main logging interface (immutable)
type Logger struct {
	handler       handler.Handler
	level         core.Level
	name          string
	extras        []core.Field
	includeCaller bool
	callerSkip    int
	stackMin      core.Level
	stackEnabled  bool
	coarseClock   bool
	recycleRecord bool
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	handler       handler.Handler
	level         core.Level
	name          string
	extras        []core.Field
	includeCaller bool
	callerSkip    int
	stackMin      core.Level
	stackEnabled  bool
	coarseClock   bool
	recycleRecord bool
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		level:      core.InfoLevel, // Default level
		callerSkip: 3,              // Default skip for GetOrigin
	}
}

// WithHandler sets the handler
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.handler = h
	// Pre-compute recycleRecord to avoid interface assertion in Build()
	if rc, ok := h.(interface{ CanRecycleRecord() bool }); ok {
		b.recycleRecord = rc.CanRecycleRecord()
	} else {
		b.recycleRecord = false
	}
	return b
}

// WithLevel sets the log level
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithName sets the logger name stamped on every record
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithExtras adds default extras to all log records
func (b *Builder) WithExtras(extras ...core.Field) *Builder {
	b.extras = append(b.extras, extras...)
	return b
}

// WithCaller enables capturing the calling module, function and line
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// WithCallerSkip adjusts how many stack frames the caller capture skips.
// Wrappers that add a frame between the call site and the logger add one
// per layer.
func (b *Builder) WithCallerSkip(skip int) *Builder {
	b.callerSkip = skip
	return b
}

// WithStackTrace captures a goroutine stack on records at or above min
func (b *Builder) WithStackTrace(min core.Level) *Builder {
	b.stackEnabled = true
	b.stackMin = min
	return b
}

// WithCoarseClock stamps records from a cached clock refreshed every
// 500µs instead of calling time.Now() per record. Serialized timestamps
// keep millisecond precision either way.
func (b *Builder) WithCoarseClock(enabled bool) *Builder {
	b.coarseClock = enabled
	if enabled {
		core.StartCoarseClock()
	}
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	return &Logger{
		handler:       b.handler,
		level:         b.level,
		name:          b.name,
		extras:        b.extras,
		includeCaller: b.includeCaller,
		callerSkip:    b.callerSkip,
		stackMin:      b.stackMin,
		stackEnabled:  b.stackEnabled,
		coarseClock:   b.coarseClock,
		recycleRecord: b.recycleRecord,
	}
}

// With creates a new Logger with additional extras (immutable operation)
func (l *Logger) With(extras ...core.Field) *Logger {
	newExtras := make([]core.Field, len(l.extras)+len(extras))
	copy(newExtras, l.extras)
	copy(newExtras[len(l.extras):], extras)

	c := *l
	c.extras = newExtras
	return &c
}

// Named creates a new Logger whose name extends this one's with the given
// segment, joined by a dot (immutable operation)
func (l *Logger) Named(name string) *Logger {
	c := *l
	if l.name == "" {
		c.name = name
	} else {
		c.name = l.name + "." + name
	}
	return &c
}

// Log logs a message at the specified level
func (l *Logger) Log(level core.Level, msg string, extras ...core.Field) {
	// Level check optimization - exit early BEFORE any allocations
	if level < l.level {
		return
	}

	l.log(level, msg, nil, extras, nil, nil)
}

// Logf logs a template at the specified level. The template and its args
// travel on the record and render during formatting.
func (l *Logger) Logf(level core.Level, format string, args ...interface{}) {
	if level < l.level {
		return
	}

	l.log(level, format, args, nil, nil, nil)
}

// log is the internal logging method. Every public method calls it
// directly so caller capture sits at a fixed frame depth.
func (l *Logger) log(level core.Level, format string, args []interface{}, extras []core.Field, err error, errStack []byte) {
	// Handler check - exit if no handler (avoid any work)
	if l.handler == nil {
		return
	}

	// Get record from pool AFTER level check
	rec := core.GetRecord()
	if l.coarseClock {
		rec.Time = core.CoarseNow()
	} else {
		rec.Time = time.Now()
	}
	rec.Level = level
	rec.Logger = l.name
	rec.Format = format
	rec.Args = args
	rec.Err = err
	rec.ErrStack = errStack

	// Add logger's default extras
	if len(l.extras) > 0 {
		rec.Extras = append(rec.Extras, l.extras...)
	}

	// Add provided extras
	if len(extras) > 0 {
		rec.Extras = append(rec.Extras, extras...)
	}

	if l.includeCaller {
		if o := core.GetOrigin(l.callerSkip); o.Defined {
			rec.Module = o.Module
			rec.Function = o.Function
			rec.Line = o.Line
		}
	}

	if l.stackEnabled && level >= l.stackMin {
		rec.Stack = debug.Stack()
	}

	if herr := l.handler.Handle(rec); herr != nil {
		return
	}

	// Return record to pool if handler supports it
	if l.recycleRecord {
		core.PutRecord(rec)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, extras ...core.Field) {
	if core.DebugLevel < l.level {
		return
	}
	l.log(core.DebugLevel, msg, nil, extras, nil, nil)
}

// Info logs an info message
func (l *Logger) Info(msg string, extras ...core.Field) {
	if core.InfoLevel < l.level {
		return
	}
	l.log(core.InfoLevel, msg, nil, extras, nil, nil)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, extras ...core.Field) {
	if core.WarnLevel < l.level {
		return
	}
	l.log(core.WarnLevel, msg, nil, extras, nil, nil)
}

// Error logs an error message
func (l *Logger) Error(msg string, extras ...core.Field) {
	if core.ErrorLevel < l.level {
		return
	}
	l.log(core.ErrorLevel, msg, nil, extras, nil, nil)
}

// Exception logs an error-level message with the error and the current
// goroutine stack attached, so the record renders with an exception field.
// A nil err logs a plain error-level message.
func (l *Logger) Exception(err error, msg string, extras ...core.Field) {
	if core.ErrorLevel < l.level {
		return
	}
	var stack []byte
	if err != nil {
		stack = debug.Stack()
	}
	l.log(core.ErrorLevel, msg, nil, extras, err, stack)
}

// Fatal logs a fatal message and exits the program with os.Exit(1)
func (l *Logger) Fatal(msg string, extras ...core.Field) {
	l.log(core.FatalLevel, msg, nil, extras, nil, nil)
	osExit(1)
}

// Panic logs a panic message and panics
func (l *Logger) Panic(msg string, extras ...core.Field) {
	l.log(core.PanicLevel, msg, nil, extras, nil, nil)
	panic(msg)
}

// Debugf logs a debug template with args rendered during formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	if core.DebugLevel < l.level {
		return
	}
	l.log(core.DebugLevel, format, args, nil, nil, nil)
}

// Infof logs an info template with args rendered during formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	if core.InfoLevel < l.level {
		return
	}
	l.log(core.InfoLevel, format, args, nil, nil, nil)
}

// Warnf logs a warning template with args rendered during formatting
func (l *Logger) Warnf(format string, args ...interface{}) {
	if core.WarnLevel < l.level {
		return
	}
	l.log(core.WarnLevel, format, args, nil, nil, nil)
}

// Errorf logs an error template with args rendered during formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	if core.ErrorLevel < l.level {
		return
	}
	l.log(core.ErrorLevel, format, args, nil, nil, nil)
}

// Fatalf logs a fatal template and exits the program with os.Exit(1)
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.log(core.FatalLevel, format, args, nil, nil, nil)
	osExit(1)
}

// Panicf logs a panic template and panics with the rendered message
func (l *Logger) Panicf(format string, args ...interface{}) {
	l.log(core.PanicLevel, format, args, nil, nil, nil)
	panic(fmt.Sprintf(format, args...))
}

// Close closes the logger's handler
func (l *Logger) Close() error {
	if l.handler != nil {
		return l.handler.Close()
	}
	return nil
}
