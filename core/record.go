package core

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Record represents a single log event with all its metadata. The fixed
// fields below cover everything the framework manages itself; caller
// supplied key-value pairs travel in Extras, which preserves attach order
// so formatters can produce deterministic output.
type Record struct {
	Time   time.Time
	Level  Level
	Logger string

	// Format is the raw message template and Args its positional
	// arguments. Rendering is deferred to the formatter, which caches
	// the result in Message. A record without Args uses Format verbatim.
	Format  string
	Args    []any
	Message string

	// Call-site origin: source file base name without extension, bare
	// function name, and line number. Zero values mean "not captured".
	Module   string
	Function string
	Line     int

	// Err is a live error to report as an exception, with ErrStack the
	// stack captured when it was logged. ErrText carries pre-rendered
	// exception text for records that no longer hold the error value.
	Err      error
	ErrStack []byte
	ErrText  string

	// Stack holds a caller-requested stack dump, independent of errors.
	Stack []byte

	Extras []Field
}

// RenderMessage renders the message template with its arguments and caches
// the result on the record. This is the only mutation formatters perform.
// Templates without arguments pass through untouched, so a message like
// "progress: 100%" never trips the verb parser.
func (r *Record) RenderMessage() string {
	if len(r.Args) > 0 {
		r.Message = fmt.Sprintf(r.Format, r.Args...)
	} else {
		r.Message = r.Format
	}
	return r.Message
}

// internalAttrs holds the wire names of the record's own machinery.
// An extra carrying one of these names is framework bookkeeping that
// leaked into the attribute bag, not user data, and formatters skip it.
var internalAttrs = map[string]struct{}{
	"time":      {},
	"level":     {},
	"logger":    {},
	"format":    {},
	"args":      {},
	"message":   {},
	"module":    {},
	"function":  {},
	"line":      {},
	"err":       {},
	"err_stack": {},
	"err_text":  {},
	"stack":     {},
}

// IsInternalAttr reports whether name is reserved for the record's own
// machinery. Names starting with an underscore are implementation-private
// by convention and count as internal too.
func IsInternalAttr(name string) bool {
	if strings.HasPrefix(name, "_") {
		return true
	}
	_, ok := internalAttrs[name]
	return ok
}

// recordPool is a pool of Record objects to reduce allocations
var recordPool = sync.Pool{
	New: func() interface{} {
		return &Record{
			Extras: make([]Field, 0, 8), // Pre-allocate for 8 extras
		}
	},
}

// GetRecord retrieves a clean Record from the pool. The caller stamps
// Time; loggers pick their clock, bridges carry the source record's time.
func GetRecord() *Record {
	return recordPool.Get().(*Record)
}

// PutRecord returns a Record to the pool
func PutRecord(r *Record) {
	if r == nil {
		return
	}
	// Reset everything but keep the Extras capacity; GC handles
	// reference cleanup of Args, Err, and the stack slices.
	*r = Record{Extras: r.Extras[:0]}
	recordPool.Put(r)
}

// Origin describes where a log call originated.
type Origin struct {
	Module   string
	Function string
	Line     int
	Defined  bool
}

// GetOrigin captures the call site skip frames up the stack, as counted
// by runtime.Caller.
func GetOrigin(skip int) Origin {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Origin{}
	}

	fn := runtime.FuncForPC(pc)
	var funcName string
	if fn != nil {
		funcName = shortFuncName(fn.Name())
	}

	return Origin{
		Module:   moduleName(file),
		Function: funcName,
		Line:     line,
		Defined:  true,
	}
}

// OriginFromPC resolves a program counter captured elsewhere, such as the
// PC on a log/slog record.
func OriginFromPC(pc uintptr) Origin {
	if pc == 0 {
		return Origin{}
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	if frame.File == "" {
		return Origin{}
	}
	return Origin{
		Module:   moduleName(frame.File),
		Function: shortFuncName(frame.Function),
		Line:     frame.Line,
		Defined:  true,
	}
}

// moduleName reduces a source path to its file base name without the
// extension, e.g. "/a/b/server.go" becomes "server".
func moduleName(file string) string {
	return strings.TrimSuffix(filepath.Base(file), ".go")
}

// shortFuncName strips the package path and receiver from a fully
// qualified function name, e.g. "pkg/sub.(*T).handle" becomes "handle".
func shortFuncName(full string) string {
	if i := strings.LastIndexByte(full, '/'); i >= 0 {
		full = full[i+1:]
	}
	if i := strings.LastIndexByte(full, '.'); i >= 0 {
		full = full[i+1:]
	}
	return full
}
