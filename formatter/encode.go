package formatter

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/philipp01105/jsonlog/core"
)

// jsonWriter encodes an ordered field list as a JSON object. It builds
// the bytes manually so key order survives, something the reflection
// based encoders cannot guarantee, and handles the two output modes:
// compact single line and indented.
type jsonWriter struct {
	buf         *bytes.Buffer
	indent      int
	ensureASCII bool
}

func (w *jsonWriter) writeObject(fields []core.Field) {
	if len(fields) == 0 {
		w.buf.WriteString("{}")
		return
	}
	w.buf.WriteByte('{')
	for i := range fields {
		if i > 0 {
			w.buf.WriteByte(',')
		}
		w.newlineIndent(1)
		w.writeString(fields[i].Key)
		w.buf.WriteByte(':')
		if w.indent > 0 {
			w.buf.WriteByte(' ')
		}
		w.writeValue(fields[i], 1)
	}
	w.newlineIndent(0)
	w.buf.WriteByte('}')
}

// writeValue encodes a field value. Fixed-slot types encode directly via
// strconv's Append functions; AnyType goes through writeAny.
func (w *jsonWriter) writeValue(f core.Field, depth int) {
	switch f.Type {
	case core.StringType:
		w.writeString(f.Str)
	case core.IntType, core.Int64Type:
		w.buf.Write(strconv.AppendInt(w.buf.AvailableBuffer(), f.Int64, 10))
	case core.Float64Type:
		w.writeFloat(f.Float64)
	case core.BoolType:
		w.buf.Write(strconv.AppendBool(w.buf.AvailableBuffer(), f.Int64 == 1))
	case core.TimeType:
		w.buf.WriteByte('"')
		w.buf.Write(time.Unix(0, f.Int64).AppendFormat(w.buf.AvailableBuffer(), time.RFC3339Nano))
		w.buf.WriteByte('"')
	case core.DurationType:
		w.buf.Write(strconv.AppendInt(w.buf.AvailableBuffer(), f.Int64, 10))
	case core.ErrorType:
		w.writeString(f.Str)
	case core.AnyType:
		w.writeAny(f.Any, depth)
	default:
		w.writeString(f.StringValue())
	}
}

// writeAny encodes an arbitrary value. JSON-native shapes encode as
// themselves; everything else degrades to its textual form, so encoding
// never fails no matter what a caller attached.
func (w *jsonWriter) writeAny(v interface{}, depth int) {
	switch val := v.(type) {
	case nil:
		w.buf.WriteString("null")
	case string:
		w.writeString(val)
	case bool:
		w.buf.Write(strconv.AppendBool(w.buf.AvailableBuffer(), val))
	case int:
		w.buf.Write(strconv.AppendInt(w.buf.AvailableBuffer(), int64(val), 10))
	case int8:
		w.buf.Write(strconv.AppendInt(w.buf.AvailableBuffer(), int64(val), 10))
	case int16:
		w.buf.Write(strconv.AppendInt(w.buf.AvailableBuffer(), int64(val), 10))
	case int32:
		w.buf.Write(strconv.AppendInt(w.buf.AvailableBuffer(), int64(val), 10))
	case int64:
		w.buf.Write(strconv.AppendInt(w.buf.AvailableBuffer(), val, 10))
	case uint:
		w.buf.Write(strconv.AppendUint(w.buf.AvailableBuffer(), uint64(val), 10))
	case uint8:
		w.buf.Write(strconv.AppendUint(w.buf.AvailableBuffer(), uint64(val), 10))
	case uint16:
		w.buf.Write(strconv.AppendUint(w.buf.AvailableBuffer(), uint64(val), 10))
	case uint32:
		w.buf.Write(strconv.AppendUint(w.buf.AvailableBuffer(), uint64(val), 10))
	case uint64:
		w.buf.Write(strconv.AppendUint(w.buf.AvailableBuffer(), val, 10))
	case float32:
		w.writeFloat(float64(val))
	case float64:
		w.writeFloat(val)
	case time.Time:
		w.buf.WriteByte('"')
		w.buf.Write(val.AppendFormat(w.buf.AvailableBuffer(), time.RFC3339Nano))
		w.buf.WriteByte('"')
	case error:
		w.writeString(val.Error())
	case []string:
		w.writeStringArray(val, depth)
	case []interface{}:
		w.writeArray(val, depth)
	case map[string]interface{}:
		w.writeMap(val, depth)
	case map[string]string:
		w.writeStringMap(val, depth)
	case fmt.Stringer:
		w.writeString(val.String())
	default:
		w.writeString(fmt.Sprint(val))
	}
}

// writeFloat encodes a finite float as a number. NaN and the infinities
// have no JSON representation, so they degrade to their textual form to
// keep the output parseable.
func (w *jsonWriter) writeFloat(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		w.writeString(strconv.FormatFloat(v, 'f', -1, 64))
		return
	}
	w.buf.Write(strconv.AppendFloat(w.buf.AvailableBuffer(), v, 'f', -1, 64))
}

func (w *jsonWriter) writeArray(vals []interface{}, depth int) {
	if len(vals) == 0 {
		w.buf.WriteString("[]")
		return
	}
	w.buf.WriteByte('[')
	for i, v := range vals {
		if i > 0 {
			w.buf.WriteByte(',')
		}
		w.newlineIndent(depth + 1)
		w.writeAny(v, depth+1)
	}
	w.newlineIndent(depth)
	w.buf.WriteByte(']')
}

func (w *jsonWriter) writeStringArray(vals []string, depth int) {
	if len(vals) == 0 {
		w.buf.WriteString("[]")
		return
	}
	w.buf.WriteByte('[')
	for i, v := range vals {
		if i > 0 {
			w.buf.WriteByte(',')
		}
		w.newlineIndent(depth + 1)
		w.writeString(v)
	}
	w.newlineIndent(depth)
	w.buf.WriteByte(']')
}

// writeMap encodes a nested map with its keys sorted. Go map iteration
// order is random, so sorting is what keeps the output deterministic.
func (w *jsonWriter) writeMap(m map[string]interface{}, depth int) {
	if len(m) == 0 {
		w.buf.WriteString("{}")
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w.buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			w.buf.WriteByte(',')
		}
		w.newlineIndent(depth + 1)
		w.writeString(k)
		w.buf.WriteByte(':')
		if w.indent > 0 {
			w.buf.WriteByte(' ')
		}
		w.writeAny(m[k], depth+1)
	}
	w.newlineIndent(depth)
	w.buf.WriteByte('}')
}

func (w *jsonWriter) writeStringMap(m map[string]string, depth int) {
	if len(m) == 0 {
		w.buf.WriteString("{}")
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w.buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			w.buf.WriteByte(',')
		}
		w.newlineIndent(depth + 1)
		w.writeString(k)
		w.buf.WriteByte(':')
		if w.indent > 0 {
			w.buf.WriteByte(' ')
		}
		w.writeString(m[k])
	}
	w.newlineIndent(depth)
	w.buf.WriteByte('}')
}

// newlineIndent starts a new line at the given nesting depth when indent
// mode is on. Compact mode writes nothing.
func (w *jsonWriter) newlineIndent(depth int) {
	if w.indent == 0 {
		return
	}
	w.buf.WriteByte('\n')
	for i := 0; i < depth*w.indent; i++ {
		w.buf.WriteByte(' ')
	}
}

func (w *jsonWriter) writeString(s string) {
	w.buf.WriteByte('"')
	if w.ensureASCII {
		w.writeEscapedASCII(s)
	} else {
		w.writeEscaped(s)
	}
	w.buf.WriteByte('"')
}

// writeEscaped writes a JSON-escaped string (without surrounding quotes)
// to the buffer, leaving multi-byte UTF-8 sequences untouched.
func (w *jsonWriter) writeEscaped(s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		// Flush unescaped prefix
		if start < i {
			w.buf.WriteString(s[start:i])
		}
		switch c {
		case '"':
			w.buf.WriteString(`\"`)
		case '\\':
			w.buf.WriteString(`\\`)
		case '\n':
			w.buf.WriteString(`\n`)
		case '\r':
			w.buf.WriteString(`\r`)
		case '\t':
			w.buf.WriteString(`\t`)
		default:
			w.buf.WriteString(`\u00`)
			w.buf.WriteByte(hexChars[c>>4])
			w.buf.WriteByte(hexChars[c&0x0f])
		}
		start = i + 1
	}
	// Flush remaining
	if start < len(s) {
		w.buf.WriteString(s[start:])
	}
}

// writeEscapedASCII is the EnsureASCII variant of writeEscaped: every rune
// outside the printable ASCII range becomes a \uXXXX sequence, with runes
// above the basic multilingual plane split into surrogate pairs.
func (w *jsonWriter) writeEscapedASCII(s string) {
	for _, r := range s {
		switch {
		case r == '"':
			w.buf.WriteString(`\"`)
		case r == '\\':
			w.buf.WriteString(`\\`)
		case r == '\n':
			w.buf.WriteString(`\n`)
		case r == '\r':
			w.buf.WriteString(`\r`)
		case r == '\t':
			w.buf.WriteString(`\t`)
		case r >= 0x20 && r < utf8.RuneSelf:
			w.buf.WriteByte(byte(r))
		case r > 0xFFFF:
			r1, r2 := utf16.EncodeRune(r)
			w.writeUnicodeEscape(uint16(r1))
			w.writeUnicodeEscape(uint16(r2))
		default:
			w.writeUnicodeEscape(uint16(r))
		}
	}
}

func (w *jsonWriter) writeUnicodeEscape(v uint16) {
	w.buf.WriteString(`\u`)
	w.buf.WriteByte(hexChars[v>>12&0x0f])
	w.buf.WriteByte(hexChars[v>>8&0x0f])
	w.buf.WriteByte(hexChars[v>>4&0x0f])
	w.buf.WriteByte(hexChars[v&0x0f])
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}
