package formatter

import (
	"bytes"
	"io"
	"sync"

	"github.com/philipp01105/jsonlog/core"
)

// Standard field names accepted by Config.Fields, in default order.
const (
	FieldTimestamp = "timestamp"
	FieldLevel     = "level"
	FieldLogger    = "logger"
	FieldMessage   = "message"
	FieldModule    = "module"
	FieldFunction  = "function"
	FieldLine      = "line"
)

// Output keys that are not standard fields but may appear in a record's
// serialized form.
const (
	ExceptionKey = "exception"
	StackInfoKey = "stack_info"
)

// DefaultFields returns the standard field names in their default order.
func DefaultFields() []string {
	return []string{
		FieldTimestamp,
		FieldLevel,
		FieldLogger,
		FieldMessage,
		FieldModule,
		FieldFunction,
		FieldLine,
	}
}

// Formatter defines the interface for log formatters
type Formatter interface {
	// Format serializes a log record into bytes
	Format(rec *core.Record) ([]byte, error)
}

// WriterFormatter is an optional interface that formatters can implement
// to write directly to a writer without intermediate byte slice allocation.
type WriterFormatter interface {
	// FormatTo serializes a log record and writes it directly to the writer
	FormatTo(rec *core.Record, w io.Writer) error
}

// BufferFormatter is an optional interface that formatters can implement
// to format directly into a caller-provided buffer, avoiding internal
// buffer pool overhead.
type BufferFormatter interface {
	// FormatRecord serializes a log record into the given buffer.
	FormatRecord(rec *core.Record, buf *bytes.Buffer)
}

// Config holds formatter configuration. The zero value selects all
// standard fields, the "timestamp" key, compact output, and raw UTF-8.
type Config struct {
	// Fields selects which standard fields to emit and in what order.
	// nil selects all standard fields; an empty non-nil slice selects
	// none. Unknown names are skipped, and a name listed twice keeps
	// the position of its first occurrence.
	Fields []string
	// TimestampKey is the output key for the timestamp field
	// (empty for "timestamp").
	TimestampKey string
	// Indent pretty-prints the output with that many spaces per nesting
	// level. Zero keeps everything on one compact line.
	Indent int
	// EnsureASCII escapes every non-ASCII character as a \uXXXX
	// sequence, so the output is plain ASCII regardless of input.
	EnsureASCII bool
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}
