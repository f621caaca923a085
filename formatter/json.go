package formatter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/philipp01105/jsonlog/core"
)

// timestampLayout renders ISO 8601 with exactly three fractional digits
// and an explicit numeric UTC offset, so midnight UTC comes out as
// "2024-01-01T00:00:00.000+00:00".
const timestampLayout = "2006-01-02T15:04:05.000-07:00"

// JSONFormatter serializes one record into one JSON object.
//
// The object is assembled in insertion order: the configured standard
// fields first, then the record's extras in attach order, then the
// exception and stack keys. A key written twice keeps the position of its
// first write and the value of its last, so output for a given record and
// config is fully deterministic. Format never returns an error for a
// well-formed record; values with no native JSON shape degrade to their
// textual form instead.
type JSONFormatter struct {
	Config
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(cfg Config) *JSONFormatter {
	if cfg.Fields == nil {
		cfg.Fields = DefaultFields()
	}
	if cfg.TimestampKey == "" {
		cfg.TimestampKey = FieldTimestamp
	}
	if cfg.Indent < 0 {
		cfg.Indent = 0
	}
	return &JSONFormatter{Config: cfg}
}

// Format serializes a record as JSON. The returned bytes carry no
// trailing newline; framing is the handler's job.
func (f *JSONFormatter) Format(rec *core.Record) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatJSONToBuffer(rec, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo serializes a record as JSON and writes it directly to the writer
func (f *JSONFormatter) FormatTo(rec *core.Record, w io.Writer) error {
	buf := getBuffer()

	f.formatJSONToBuffer(rec, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// FormatRecord serializes a record as JSON into the given buffer (implements BufferFormatter).
func (f *JSONFormatter) FormatRecord(rec *core.Record, buf *bytes.Buffer) {
	f.formatJSONToBuffer(rec, buf)
}

// outPool holds the scratch slices used to assemble the output object.
var outPool = sync.Pool{
	New: func() interface{} {
		s := make([]core.Field, 0, 16)
		return &s
	},
}

func (f *JSONFormatter) formatJSONToBuffer(rec *core.Record, buf *bytes.Buffer) {
	rec.RenderMessage()

	outp := outPool.Get().(*[]core.Field)
	out := f.assemble(rec, (*outp)[:0])

	w := jsonWriter{buf: buf, indent: f.Indent, ensureASCII: f.EnsureASCII}
	w.writeObject(out)

	*outp = out[:0]
	outPool.Put(outp)
}

// assemble builds the ordered list of output entries for a record. The
// slice stands in for an insertion-ordered object: upsert keeps the first
// position and the latest value when a key is written more than once.
func (f *JSONFormatter) assemble(rec *core.Record, out []core.Field) []core.Field {
	for _, name := range f.Fields {
		switch name {
		case FieldTimestamp:
			out = upsert(out, core.Field{
				Key:  f.TimestampKey,
				Type: core.StringType,
				Str:  rec.Time.UTC().Format(timestampLayout),
			})
		case FieldLevel:
			out = upsert(out, core.Field{Key: FieldLevel, Type: core.StringType, Str: rec.Level.String()})
		case FieldLogger:
			out = upsert(out, core.Field{Key: FieldLogger, Type: core.StringType, Str: rec.Logger})
		case FieldMessage:
			out = upsert(out, core.Field{Key: FieldMessage, Type: core.StringType, Str: rec.Message})
		case FieldModule:
			out = upsert(out, core.Field{Key: FieldModule, Type: core.StringType, Str: rec.Module})
		case FieldFunction:
			out = upsert(out, core.Field{Key: FieldFunction, Type: core.StringType, Str: rec.Function})
		case FieldLine:
			out = upsert(out, core.Field{Key: FieldLine, Type: core.IntType, Int64: int64(rec.Line)})
		}
		// Names that are not standard fields are skipped.
	}

	for _, extra := range rec.Extras {
		if core.IsInternalAttr(extra.Key) {
			continue
		}
		out = upsert(out, extra)
	}

	if rec.Err != nil {
		out = upsert(out, core.Field{Key: ExceptionKey, Type: core.StringType, Str: renderException(rec)})
	} else if rec.ErrText != "" {
		out = upsert(out, core.Field{Key: ExceptionKey, Type: core.StringType, Str: rec.ErrText})
	}

	if len(rec.Stack) > 0 {
		out = upsert(out, core.Field{
			Key:  StackInfoKey,
			Type: core.StringType,
			Str:  strings.TrimRight(string(rec.Stack), "\n"),
		})
	}

	return out
}

// upsert writes f into out under its key: an existing entry is replaced
// in place, otherwise f is appended. Latest write wins, first position
// is kept.
func upsert(out []core.Field, f core.Field) []core.Field {
	for i := range out {
		if out[i].Key == f.Key {
			out[i] = f
			return out
		}
	}
	return append(out, f)
}

// renderException builds the exception text for a live error: the error's
// Go type and message, one "caused by" line per wrapped cause, then the
// stack captured when the error was logged. Trailing whitespace is
// trimmed so the text embeds cleanly in a JSON string.
func renderException(rec *core.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%T: %v", rec.Err, rec.Err)
	for cause := errors.Unwrap(rec.Err); cause != nil; cause = errors.Unwrap(cause) {
		fmt.Fprintf(&b, "\ncaused by: %T: %v", cause, cause)
	}
	if len(rec.ErrStack) > 0 {
		b.WriteByte('\n')
		b.Write(rec.ErrStack)
	}
	return strings.TrimRight(b.String(), " \t\r\n")
}
